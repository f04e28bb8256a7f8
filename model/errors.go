package model

import "fmt"

// DecodeError reports a response field that could not be turned into its
// record type. Field is empty for errors raised by the bare micro-format
// parsers; the codecs fill it in.
type DecodeError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DecodeError) Error() string {
	msg := e.Reason
	if e.Value != "" {
		msg = fmt.Sprintf("%s (value %q)", e.Reason, e.Value)
	}
	if e.Field == "" {
		return msg
	}
	return fmt.Sprintf("field %s: %s", e.Field, msg)
}

func missingField(field string) *DecodeError {
	return &DecodeError{Field: field, Reason: "missing"}
}

func badField(field, value, reason string) *DecodeError {
	return &DecodeError{Field: field, Value: value, Reason: reason}
}
