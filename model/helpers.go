package model

import (
	"strconv"
	"strings"
)

// unsetDuration is what the traffic meter reports for periods without data.
const unsetDuration = "--:--"

// TimeToMinutes converts an "HH:MM" connection-time string into total
// minutes. The meter emits "--:--" when it has nothing to report, which
// counts as zero.
func TimeToMinutes(s string) (int, error) {
	if s == unsetDuration {
		return 0, nil
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, &DecodeError{Value: s, Reason: "want HH:MM"}
	}
	hours, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, &DecodeError{Value: s, Reason: "want HH:MM"}
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0, &DecodeError{Value: s, Reason: "want HH:MM"}
	}
	return hours*60 + minutes, nil
}

// Ratio is a combined total plus per-day average, the shape the traffic
// meter uses for its weekly and monthly counters.
type Ratio struct {
	Total   float64
	Average float64
}

// ParseRatio splits a "total/average" counter string.
func ParseRatio(s string) (Ratio, error) {
	total, average, ok := strings.Cut(s, "/")
	if !ok {
		return Ratio{}, &DecodeError{Value: s, Reason: "want total/average"}
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(total), 64)
	if err != nil {
		return Ratio{}, &DecodeError{Value: s, Reason: "want total/average"}
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(average), 64)
	if err != nil {
		return Ratio{}, &DecodeError{Value: s, Reason: "want total/average"}
	}
	return Ratio{Total: t, Average: a}, nil
}
