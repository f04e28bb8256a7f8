package model

import (
	"errors"
	"math"
	"strconv"
)

func ptr[T any](v T) *T {
	return &v
}

func requiredField(fields map[string]string, key string) (string, error) {
	value, ok := fields[key]
	if !ok {
		return "", missingField(key)
	}
	return value, nil
}

// optionalField treats an empty value the same as an absent key.
func optionalField(fields map[string]string, key string) (string, bool) {
	value, ok := fields[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, badField(key, value, "not an integer")
	}
	return n, nil
}

// coerceInt parses integers that some firmwares format as decimal strings
// ("1.0"), so the value goes through a float and gets truncated. ParseFloat
// also accepts "NaN" and "Inf", which have no integer value, so those are
// rejected before the conversion.
func coerceInt(key, value string) (int, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, badField(key, value, "not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, badField(key, value, "not a finite number")
	}
	return int(f), nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, badField(key, value, "not a number")
	}
	return f, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, badField(key, value, "not a boolean")
	}
	return b, nil
}

func floatField(fields map[string]string, key string) (float64, error) {
	value, err := requiredField(fields, key)
	if err != nil {
		return 0, err
	}
	return parseFloat(key, value)
}

func durationField(fields map[string]string, key string) (int, error) {
	value, err := requiredField(fields, key)
	if err != nil {
		return 0, err
	}
	minutes, err := TimeToMinutes(value)
	if err != nil {
		return 0, fieldError(key, err)
	}
	return minutes, nil
}

func ratioField(fields map[string]string, key string) (Ratio, error) {
	value, err := requiredField(fields, key)
	if err != nil {
		return Ratio{}, err
	}
	ratio, err := ParseRatio(value)
	if err != nil {
		return Ratio{}, fieldError(key, err)
	}
	return ratio, nil
}

// fieldError attaches the field name to a DecodeError coming out of one of
// the bare micro-format parsers.
func fieldError(key string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) && de.Field == "" {
		named := *de
		named.Field = key
		return &named
	}
	return err
}
