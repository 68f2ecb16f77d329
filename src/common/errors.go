package common

import "fmt"

// FormatError reports a local format-contract violation on a draft field.
// It is terminal: no persistence call is made once one is raised.
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidationError reports a missing required field on an operation, caught
// before any persistence call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
