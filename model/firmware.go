package model

// FirmwareCheck is the outcome of asking the router to look for a firmware
// update. NewVersion and ReleaseNote are set only when an update exists.
type FirmwareCheck struct {
	CurrentVersion string
	NewVersion     *string
	ReleaseNote    *string
}

func DecodeFirmwareCheck(fields map[string]string) (*FirmwareCheck, error) {
	current, err := requiredField(fields, "CurrentVersion")
	if err != nil {
		return nil, err
	}
	check := &FirmwareCheck{CurrentVersion: current}
	if version, ok := optionalField(fields, "NewVersion"); ok {
		check.NewVersion = ptr(version)
	}
	if note, ok := optionalField(fields, "ReleaseNote"); ok {
		check.ReleaseNote = ptr(note)
	}
	return check, nil
}
