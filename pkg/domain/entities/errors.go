package entities

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the single error kind raised for rejected simulation inputs
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterMessage is the text shown to the user when input is rejected
const InvalidParameterMessage = "Values must be greater than zero"

// ParameterError describes which input was rejected and why
type ParameterError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s=%q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParameter
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func newParameterError(field, value, reason string) error {
	return &ParameterError{Field: field, Value: value, Reason: reason}
}
