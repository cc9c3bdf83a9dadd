package model

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every validation failure returned from Set.
var ErrInvalid = errors.New("model: invalid attributes")

// ValidationError reports a Set rejected by the type's Validator.
type ValidationError struct {
	// Type is the name of the rejecting model type.
	Type string
	// Err is the validator's error.
	Err error
}

func (e *ValidationError) Error() string {
	name := e.Type
	if name == "" {
		name = "model"
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

// Unwrap exposes both ErrInvalid and the validator's error to errors.Is/As.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalid, e.Err}
}
