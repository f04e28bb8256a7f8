package model

import "testing"

func TestDecodeFirmwareCheckUpdateAvailable(t *testing.T) {
	check, err := DecodeFirmwareCheck(map[string]string{
		"CurrentVersion": "V1.0.2.80",
		"NewVersion":     "V1.0.2.86",
		"ReleaseNote":    "Security fixes.",
	})
	if err != nil {
		t.Fatalf("DecodeFirmwareCheck returned error: %v", err)
	}
	if check.NewVersion == nil || *check.NewVersion != "V1.0.2.86" {
		t.Errorf("NewVersion = %v, want V1.0.2.86", check.NewVersion)
	}
	if check.ReleaseNote == nil || *check.ReleaseNote != "Security fixes." {
		t.Errorf("ReleaseNote = %v, want release note text", check.ReleaseNote)
	}
}

func TestDecodeFirmwareCheckUpToDate(t *testing.T) {
	check, err := DecodeFirmwareCheck(map[string]string{
		"CurrentVersion": "V1.0.2.86",
		"NewVersion":     "",
	})
	if err != nil {
		t.Fatalf("DecodeFirmwareCheck returned error: %v", err)
	}
	if check.NewVersion != nil {
		t.Errorf("NewVersion = %q, want unset", *check.NewVersion)
	}
	if check.ReleaseNote != nil {
		t.Errorf("ReleaseNote = %q, want unset", *check.ReleaseNote)
	}
}

func TestDecodeSystemInfo(t *testing.T) {
	info, err := DecodeSystemInfo(map[string]string{
		"NewCPUUtilization":    "21.25",
		"NewMemoryUtilization": "72",
	})
	if err != nil {
		t.Fatalf("DecodeSystemInfo returned error: %v", err)
	}
	if info.CPUUtilization != 21.25 {
		t.Errorf("CPUUtilization = %v, want 21.25", info.CPUUtilization)
	}
	if info.MemoryUtilization != 72 {
		t.Errorf("MemoryUtilization = %v, want 72", info.MemoryUtilization)
	}
}

func TestDecodeSystemInfoMissingField(t *testing.T) {
	if _, err := DecodeSystemInfo(map[string]string{"NewCPUUtilization": "10"}); err == nil {
		t.Fatal("DecodeSystemInfo returned no error for missing memory field")
	}
}
