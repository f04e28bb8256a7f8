package model

// CurrentSettings is the plaintext settings page every NETGEAR router serves
// on its plain HTTP port before any SOAP session exists. The port and login
// method in here drive all later calls.
type CurrentSettings struct {
	FirmwareVersion string
	Model           string
	LoginMethod     int
	SOAPPort        int
}

// DecodeCurrentSettings builds CurrentSettings from the Key=Value pairs of
// the settings page. LoginMethod arrives as "2.0" on current firmwares.
func DecodeCurrentSettings(fields map[string]string) (*CurrentSettings, error) {
	firmware, err := requiredField(fields, "Firmware")
	if err != nil {
		return nil, err
	}
	modelName, err := requiredField(fields, "Model")
	if err != nil {
		return nil, err
	}
	rawMethod, err := requiredField(fields, "LoginMethod")
	if err != nil {
		return nil, err
	}
	method, err := coerceInt("LoginMethod", rawMethod)
	if err != nil {
		return nil, err
	}
	rawPort, err := requiredField(fields, "SOAP_HTTPs_Port")
	if err != nil {
		return nil, err
	}
	port, err := parseInt("SOAP_HTTPs_Port", rawPort)
	if err != nil {
		return nil, err
	}
	return &CurrentSettings{
		FirmwareVersion: firmware,
		Model:           modelName,
		LoginMethod:     method,
		SOAPPort:        port,
	}, nil
}
