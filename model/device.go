package model

import "strings"

// ConnectionType classifies how an attached device reaches the router.
type ConnectionType string

const (
	ConnectionWired      ConnectionType = "wired"
	ConnectionWireless   ConnectionType = "wireless"
	Connection2GWireless ConnectionType = "2.4GHz wireless"
	Connection5GWireless ConnectionType = "5GHz wireless"
)

func parseConnectionType(key, value string) (ConnectionType, error) {
	switch strings.ToLower(value) {
	case "wired":
		return ConnectionWired, nil
	case "wireless":
		return ConnectionWireless, nil
	case "2.4ghz wireless":
		return Connection2GWireless, nil
	case "5ghz wireless":
		return Connection5GWireless, nil
	}
	return "", badField(key, value, "unknown connection type")
}

// AttachedDevice is one entry of the router's attached-device table. Older
// firmwares return a compact semicolon-delimited record, newer ones a fully
// keyed map; both decode into this shape, and fields the source format did
// not carry stay nil.
type AttachedDevice struct {
	IP                 string
	MAC                string
	Hostname           *string
	NameUserSet        *bool
	ConnectionType     *ConnectionType
	SSID               *string
	LinkSpeed          *int
	SignalStrength     *int
	Blocked            *bool
	Schedule           *bool
	DeviceType         *int
	DeviceModel        *string
	DeviceModelUserSet *bool
	QoSPriority        *int
}

// ParseAttachedDevice decodes one semicolon-delimited record as emitted by
// GetAttachDevice. The layout is positional:
//
//	index;ip;hostname;mac[;connection;speed;signal[;allow]]
//
// The index is discarded, "--" marks an unknown hostname and an empty speed
// segment an unknown link speed. The allow segment is present only on
// firmwares with access control; anything but "Allow" counts as blocked.
func ParseAttachedDevice(record string) (*AttachedDevice, error) {
	parts := strings.Split(record, ";")
	if len(parts) < 4 {
		return nil, &DecodeError{Value: record, Reason: "want at least index;ip;hostname;mac"}
	}
	device := &AttachedDevice{IP: parts[1], MAC: parts[3]}
	if parts[2] != "--" {
		device.Hostname = ptr(parts[2])
	}
	if len(parts) < 7 {
		return device, nil
	}
	connection, err := parseConnectionType("ConnectionType", parts[4])
	if err != nil {
		return nil, err
	}
	device.ConnectionType = ptr(connection)
	if parts[5] != "" {
		speed, err := parseInt("Linkspeed", parts[5])
		if err != nil {
			return nil, err
		}
		device.LinkSpeed = ptr(speed)
	}
	signal, err := parseInt("SignalStrength", parts[6])
	if err != nil {
		return nil, err
	}
	device.SignalStrength = ptr(signal)
	if len(parts) >= 8 {
		device.Blocked = ptr(parts[7] != "Allow")
	}
	return device, nil
}

// DecodeAttachedDevice decodes one keyed Device element of a
// GetAttachDevice2 response.
func DecodeAttachedDevice(fields map[string]string) (*AttachedDevice, error) {
	ip, err := requiredField(fields, "IP")
	if err != nil {
		return nil, err
	}
	mac, err := requiredField(fields, "MAC")
	if err != nil {
		return nil, err
	}
	device := &AttachedDevice{IP: ip, MAC: mac}
	if name, ok := optionalField(fields, "Name"); ok {
		device.Hostname = ptr(name)
	}
	if raw, ok := optionalField(fields, "NameUserSet"); ok {
		set, err := parseBool("NameUserSet", raw)
		if err != nil {
			return nil, err
		}
		device.NameUserSet = ptr(set)
	}
	if raw, ok := optionalField(fields, "ConnectionType"); ok {
		connection, err := parseConnectionType("ConnectionType", raw)
		if err != nil {
			return nil, err
		}
		device.ConnectionType = ptr(connection)
	}
	if ssid, ok := optionalField(fields, "SSID"); ok {
		device.SSID = ptr(ssid)
	}
	if raw, ok := optionalField(fields, "Linkspeed"); ok {
		speed, err := parseInt("Linkspeed", raw)
		if err != nil {
			return nil, err
		}
		device.LinkSpeed = ptr(speed)
	}
	if raw, ok := optionalField(fields, "SignalStrength"); ok {
		signal, err := parseInt("SignalStrength", raw)
		if err != nil {
			return nil, err
		}
		device.SignalStrength = ptr(signal)
	}
	// Unlike the delimited shape this flag is always present: anything but
	// the literal "Block" counts as allowed.
	device.Blocked = ptr(fields["AllowOrBlock"] == "Block")
	if raw, ok := optionalField(fields, "Schedule"); ok {
		schedule, err := parseBool("Schedule", raw)
		if err != nil {
			return nil, err
		}
		device.Schedule = ptr(schedule)
	}
	if raw, ok := optionalField(fields, "DeviceType"); ok {
		deviceType, err := parseInt("DeviceType", raw)
		if err != nil {
			return nil, err
		}
		device.DeviceType = ptr(deviceType)
	}
	if deviceModel, ok := optionalField(fields, "DeviceModel"); ok {
		device.DeviceModel = ptr(deviceModel)
	}
	if raw, ok := optionalField(fields, "DeviceModelUserSet"); ok {
		set, err := parseBool("DeviceModelUserSet", raw)
		if err != nil {
			return nil, err
		}
		device.DeviceModelUserSet = ptr(set)
	}
	if raw, ok := optionalField(fields, "QosPriority"); ok {
		priority, err := parseInt("QosPriority", raw)
		if err != nil {
			return nil, err
		}
		device.QoSPriority = ptr(priority)
	}
	return device, nil
}
