package model

// DeviceMode says whether the box runs as a router or as an access point.
type DeviceMode int

const (
	DeviceModeRouter      DeviceMode = 0
	DeviceModeAccessPoint DeviceMode = 1
)

func (m DeviceMode) String() string {
	switch m {
	case DeviceModeRouter:
		return "router"
	case DeviceModeAccessPoint:
		return "access point"
	}
	return "unknown"
}

// DeviceInfo is the identity block returned by DeviceInfo#GetInfo.
type DeviceInfo struct {
	ModelName            string
	SerialNumber         string
	FirmwareVersion      string
	SmartAgentVersion    string
	FirewallVersion      string
	VPNVersion           *string
	OtherSoftwareVersion string
	HardwareVersion      string
	OtherHardwareVersion *string
	DeviceName           string
	DeviceMode           DeviceMode
}

// DecodeDeviceInfo builds DeviceInfo from the flattened response fields. The
// VPN and other-hardware versions are missing or "N/A" on most models, and
// DeviceMode arrives as "0.0" on some firmwares.
func DecodeDeviceInfo(fields map[string]string) (*DeviceInfo, error) {
	info := &DeviceInfo{}
	var err error
	if info.ModelName, err = requiredField(fields, "ModelName"); err != nil {
		return nil, err
	}
	if info.SerialNumber, err = requiredField(fields, "SerialNumber"); err != nil {
		return nil, err
	}
	if info.FirmwareVersion, err = requiredField(fields, "Firmwareversion"); err != nil {
		return nil, err
	}
	if info.SmartAgentVersion, err = requiredField(fields, "SmartAgentversion"); err != nil {
		return nil, err
	}
	if info.FirewallVersion, err = requiredField(fields, "FirewallVersion"); err != nil {
		return nil, err
	}
	if vpn, ok := optionalField(fields, "VPNVersion"); ok && vpn != "N/A" {
		info.VPNVersion = ptr(vpn)
	}
	if info.OtherSoftwareVersion, err = requiredField(fields, "OthersoftwareVersion"); err != nil {
		return nil, err
	}
	if info.HardwareVersion, err = requiredField(fields, "Hardwareversion"); err != nil {
		return nil, err
	}
	if other, ok := optionalField(fields, "Otherhardwareversion"); ok && other != "N/A" {
		info.OtherHardwareVersion = ptr(other)
	}
	if info.DeviceName, err = requiredField(fields, "DeviceName"); err != nil {
		return nil, err
	}
	rawMode, err := requiredField(fields, "DeviceMode")
	if err != nil {
		return nil, err
	}
	mode, err := coerceInt("DeviceMode", rawMode)
	if err != nil {
		return nil, err
	}
	if mode != int(DeviceModeRouter) && mode != int(DeviceModeAccessPoint) {
		return nil, badField("DeviceMode", rawMode, "unknown device mode")
	}
	info.DeviceMode = DeviceMode(mode)
	return info, nil
}
