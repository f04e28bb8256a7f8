package model

// SystemInfo carries the router's current resource usage in percent.
type SystemInfo struct {
	CPUUtilization    float64
	MemoryUtilization float64
}

func DecodeSystemInfo(fields map[string]string) (*SystemInfo, error) {
	cpu, err := floatField(fields, "NewCPUUtilization")
	if err != nil {
		return nil, err
	}
	memory, err := floatField(fields, "NewMemoryUtilization")
	if err != nil {
		return nil, err
	}
	return &SystemInfo{CPUUtilization: cpu, MemoryUtilization: memory}, nil
}
