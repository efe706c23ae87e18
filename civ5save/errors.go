package civ5save

import "fmt"

// FormatError reports malformed or unrecognized save bytes. Offset is the
// byte offset where decoding failed, or -1 when no position is known.
type FormatError struct {
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("invalid save file: %s", e.Reason)
	}
	return fmt.Sprintf("invalid save file at offset %d: %s", e.Offset, e.Reason)
}

func formatErrf(offset int, format string, args ...interface{}) error {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports a field value outside its allowed domain. The
// container is left untouched when one is returned.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Value)
}

func validationErrf(field string, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Value: fmt.Sprintf(format, args...)}
}
