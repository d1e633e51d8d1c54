package service

import "fmt"

// Validation failure reasons.
const (
	ReasonRequired = "required"
	ReasonTooLong  = "too_long"
	ReasonInvalid  = "invalid"
)

// ValidationError reports a rejected input field. Handlers map it to a 400
// response carrying Code as the error body.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// Code returns the wire-level error code, e.g. "first_name_required".
func (e *ValidationError) Code() string {
	return e.Field + "_" + e.Reason
}
