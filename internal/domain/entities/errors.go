package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes of a fleet run.
var (
	ErrValidation = errors.New("validation failed")
	ErrTransport  = errors.New("transport failed")
)

// ValidationError reports a topology parameter that cannot be generated.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for field
func NewValidationError(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// TransportError reports a connection, login or command failure on one switch.
type TransportError struct {
	Switch string
	Target string
	Op     string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s (%s): %s: %v", e.Switch, e.Target, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Switch, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTransport) match any TransportError.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError wraps err with the switch and operation it failed on
func NewTransportError(sw, target, op string, err error) *TransportError {
	return &TransportError{Switch: sw, Target: target, Op: op, Err: err}
}
