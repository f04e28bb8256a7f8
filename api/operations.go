package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/swoga/netgear-exporter/model"
)

// Band selects one of the router's radios for the per-band operations.
type Band string

const (
	Band2G Band = "2.4G"
	Band5G Band = "5G"
)

// bandAction picks the per-band variant of an action. The two constants are
// the whole vocabulary; anything else is rejected before a single byte goes
// out.
func bandAction(band Band, on24, on5 action) (action, error) {
	switch band {
	case Band2G:
		return on24, nil
	case Band5G:
		return on5, nil
	}
	return action{}, fmt.Errorf("unknown band %q", band)
}

// opError tags a decode failure with the action that produced the response.
func opError(a action, err error) error {
	return fmt.Errorf("%s: %w", a.String(), err)
}

// Login authenticates the session. The body shape depends on the login
// method the router advertised on its settings page: method 2 and later
// firmwares take the SOAPLogin body, older ones authenticate through the
// parental-control service.
func (c *Client) Login(ctx context.Context, username, password string) error {
	_, method, err := c.session(ctx)
	if err != nil {
		return err
	}
	if method >= 2 {
		_, _, err = c.callAction(ctx, actionLogin, loginBody(username, password))
	} else {
		_, _, err = c.callAction(ctx, actionAuthenticate, authenticateBody(username, password))
	}
	return err
}

// Logout ends the SOAP session on the router.
func (c *Client) Logout(ctx context.Context) error {
	_, _, err := c.callAction(ctx, actionLogout, callBody(actionLogout))
	return err
}

// Probe checks that the SOAP endpoint answers at all. It posts an empty
// body, so any well-formed response counts as reachable, including ones that
// carry an error code.
func (c *Client) Probe(ctx context.Context) error {
	_, _, err := c.callAction(ctx, actionNil, nilBody)
	var pe *ProtocolError
	if errors.As(err, &pe) && pe.Code != "" {
		return nil
	}
	return err
}

// GetInfo returns the router's identity block.
func (c *Client) GetInfo(ctx context.Context) (*model.DeviceInfo, error) {
	fields, _, err := c.callAction(ctx, actionGetInfo, callBody(actionGetInfo))
	if err != nil {
		return nil, err
	}
	info, err := model.DecodeDeviceInfo(fields)
	if err != nil {
		return nil, opError(actionGetInfo, err)
	}
	return info, nil
}

// GetSystemInfo returns the router's current CPU and memory usage. Not all
// firmwares implement the action.
func (c *Client) GetSystemInfo(ctx context.Context) (*model.SystemInfo, error) {
	fields, _, err := c.callAction(ctx, actionGetSystemInfo, callBody(actionGetSystemInfo))
	if err != nil {
		return nil, err
	}
	info, err := model.DecodeSystemInfo(fields)
	if err != nil {
		return nil, opError(actionGetSystemInfo, err)
	}
	return info, nil
}

// GetAttachedDevices lists attached devices through the legacy delimited
// format. An empty or absent list yields no devices, not an error.
func (c *Client) GetAttachedDevices(ctx context.Context) ([]model.AttachedDevice, error) {
	fields, _, err := c.callAction(ctx, actionGetAttachDevice, callBody(actionGetAttachDevice))
	if err != nil {
		return nil, err
	}
	list := fields["NewAttachDevice"]
	if list == "" {
		return nil, nil
	}
	segments := strings.Split(list, "@")
	devices := make([]model.AttachedDevice, 0, len(segments))
	// The first segment only carries the record count.
	for _, segment := range segments[1:] {
		if segment == "" {
			continue
		}
		device, err := model.ParseAttachedDevice(segment)
		if err != nil {
			return nil, opError(actionGetAttachDevice, err)
		}
		devices = append(devices, *device)
	}
	return devices, nil
}

// GetAttachedDevices2 lists attached devices through the keyed format newer
// firmwares provide, which carries more per-device detail.
func (c *Client) GetAttachedDevices2(ctx context.Context) ([]model.AttachedDevice, error) {
	_, body, err := c.callAction(ctx, actionGetAttachDevice2, callBody(actionGetAttachDevice2))
	if err != nil {
		return nil, err
	}
	maps := deviceFields(body)
	devices := make([]model.AttachedDevice, 0, len(maps))
	for _, fields := range maps {
		device, err := model.DecodeAttachedDevice(fields)
		if err != nil {
			return nil, opError(actionGetAttachDevice2, err)
		}
		devices = append(devices, *device)
	}
	return devices, nil
}

// GetTrafficMeterStatistics returns the traffic meter counters.
func (c *Client) GetTrafficMeterStatistics(ctx context.Context) (*model.TrafficMeterStatistics, error) {
	fields, _, err := c.callAction(ctx, actionGetTrafficMeterStatistics, callBody(actionGetTrafficMeterStatistics))
	if err != nil {
		return nil, err
	}
	stats, err := model.DecodeTrafficMeterStatistics(fields)
	if err != nil {
		return nil, opError(actionGetTrafficMeterStatistics, err)
	}
	return stats, nil
}

// GetTrafficMeterEnabled reports whether the traffic meter is on.
func (c *Client) GetTrafficMeterEnabled(ctx context.Context) (bool, error) {
	return c.boolAction(ctx, actionGetTrafficMeterEnabled, "NewTrafficMeterEnable")
}

// SetTrafficMeterEnabled turns the traffic meter on or off.
func (c *Client) SetTrafficMeterEnabled(ctx context.Context, enabled bool) error {
	return c.configAction(ctx, actionEnableTrafficMeter,
		paramsBody(actionEnableTrafficMeter, soapParam{"NewTrafficMeterEnable", soapFlag(enabled)}))
}

// GetParentalControlEnabled reports whether parental control is on. The
// query body intentionally skips the usual namespaced wrapper, old firmwares
// answer nothing else.
func (c *Client) GetParentalControlEnabled(ctx context.Context) (bool, error) {
	fields, _, err := c.callAction(ctx, actionGetEnableStatus, parentalControlStatusBody)
	if err != nil {
		return false, err
	}
	return flagField(actionGetEnableStatus, fields, "NewEnable")
}

// SetParentalControlEnabled turns parental control on or off.
func (c *Client) SetParentalControlEnabled(ctx context.Context, enabled bool) error {
	return c.configAction(ctx, actionEnableParentalControl,
		paramsBody(actionEnableParentalControl, soapParam{"NewEnable", soapFlag(enabled)}))
}

// GetQoSEnabled reports whether QoS is on.
func (c *Client) GetQoSEnabled(ctx context.Context) (bool, error) {
	return c.boolAction(ctx, actionGetQoSEnableStatus, "NewQoSEnableStatus")
}

// SetQoSEnabled turns QoS on or off. The parameter tag differs from the one
// the status query returns; the firmware wants it exactly like this.
func (c *Client) SetQoSEnabled(ctx context.Context, enabled bool) error {
	return c.configAction(ctx, actionSetQoSEnableStatus,
		paramsBody(actionSetQoSEnableStatus, soapParam{"NewQoSEnable", soapFlag(enabled)}))
}

// GetGuestAccessEnabled reports whether the guest network of a band is on.
func (c *Client) GetGuestAccessEnabled(ctx context.Context, band Band) (bool, error) {
	a, err := bandAction(band, actionGetGuestAccessEnabled, actionGet5GGuestAccessEnabled)
	if err != nil {
		return false, err
	}
	return c.boolAction(ctx, a, "NewGuestAccessEnabled")
}

// SetGuestAccessEnabled turns the guest network of a band on or off.
func (c *Client) SetGuestAccessEnabled(ctx context.Context, band Band, enabled bool) error {
	a, err := bandAction(band, actionSetGuestAccessEnabled, actionSet5GGuestAccessEnabled)
	if err != nil {
		return err
	}
	return c.configAction(ctx, a, paramsBody(a, soapParam{"NewGuestAccessEnabled", soapFlag(enabled)}))
}

// GetSmartConnectEnabled reports whether smart connect, the shared SSID over
// both radios, is on.
func (c *Client) GetSmartConnectEnabled(ctx context.Context) (bool, error) {
	return c.boolAction(ctx, actionIsSmartConnectEnabled, "NewSmartConnectEnable")
}

// SetSmartConnectEnabled turns smart connect on or off.
func (c *Client) SetSmartConnectEnabled(ctx context.Context, enabled bool) error {
	return c.configAction(ctx, actionSetSmartConnectEnable,
		paramsBody(actionSetSmartConnectEnable, soapParam{"NewSmartConnectEnable", soapFlag(enabled)}))
}

// GetChannel returns the Wi-Fi channel of a band, "0" meaning auto.
func (c *Client) GetChannel(ctx context.Context, band Band) (string, error) {
	a, err := bandAction(band, actionGetChannelInfo, actionGet5GChannelInfo)
	if err != nil {
		return "", err
	}
	fields, _, err := c.callAction(ctx, a, callBody(a))
	if err != nil {
		return "", err
	}
	channel, ok := fields["NewChannel"]
	if !ok {
		return "", opError(a, &model.DecodeError{Field: "NewChannel", Reason: "missing"})
	}
	return channel, nil
}

// SetChannel sets the Wi-Fi channel of a band. Pass "0" for auto.
func (c *Client) SetChannel(ctx context.Context, band Band, channel string) error {
	a, err := bandAction(band, actionSetChannel, actionSet5GChannel)
	if err != nil {
		return err
	}
	return c.configAction(ctx, a, paramsBody(a, soapParam{"NewChannel", channel}))
}

// GetWPASecurityKey returns the WPA passphrase of the main network.
func (c *Client) GetWPASecurityKey(ctx context.Context) (string, error) {
	fields, _, err := c.callAction(ctx, actionGetWPASecurityKeys, callBody(actionGetWPASecurityKeys))
	if err != nil {
		return "", err
	}
	key, ok := fields["NewWPAPassphrase"]
	if !ok {
		return "", opError(actionGetWPASecurityKeys, &model.DecodeError{Field: "NewWPAPassphrase", Reason: "missing"})
	}
	return key, nil
}

// GetEthernetLinkStatus returns the WAN link state, "Up" when the uplink is
// connected.
func (c *Client) GetEthernetLinkStatus(ctx context.Context) (string, error) {
	fields, _, err := c.callAction(ctx, actionGetEthernetLinkStatus, callBody(actionGetEthernetLinkStatus))
	if err != nil {
		return "", err
	}
	status, ok := fields["NewEthernetLinkStatus"]
	if !ok {
		return "", opError(actionGetEthernetLinkStatus, &model.DecodeError{Field: "NewEthernetLinkStatus", Reason: "missing"})
	}
	return status, nil
}

// CheckNewFirmware asks the router to look for a firmware update.
func (c *Client) CheckNewFirmware(ctx context.Context) (*model.FirmwareCheck, error) {
	fields, _, err := c.callAction(ctx, actionCheckNewFirmware, callBody(actionCheckNewFirmware))
	if err != nil {
		return nil, err
	}
	check, err := model.DecodeFirmwareCheck(fields)
	if err != nil {
		return nil, opError(actionCheckNewFirmware, err)
	}
	return check, nil
}

// Reboot restarts the router. The connection drops shortly after the router
// acknowledges, so expect the next call to fail until it is back.
func (c *Client) Reboot(ctx context.Context) error {
	return c.configAction(ctx, actionReboot, callBody(actionReboot))
}

// boolAction runs a parameterless getter whose response is a single flag
// field.
func (c *Client) boolAction(ctx context.Context, a action, key string) (bool, error) {
	fields, _, err := c.callAction(ctx, a, callBody(a))
	if err != nil {
		return false, err
	}
	return flagField(a, fields, key)
}

func flagField(a action, fields map[string]string, key string) (bool, error) {
	value, ok := fields[key]
	if !ok {
		return false, opError(a, &model.DecodeError{Field: key, Reason: "missing"})
	}
	return value == "1", nil
}

// soapFlag renders a bool the way the firmware expects its flags.
func soapFlag(enabled bool) string {
	if enabled {
		return "1"
	}
	return "0"
}
