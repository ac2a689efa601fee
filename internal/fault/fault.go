// Package fault defines the error taxonomy shared across the scheduling core.
package fault

import (
	"errors"
	"fmt"
)

// ValidationError reports bad or missing caller input, naming the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StateConflictError reports an operation that is illegal in the current
// appointment state.
type StateConflictError struct {
	Msg string
}

func (e *StateConflictError) Error() string { return e.Msg }

func StateConflict(format string, args ...any) error {
	return &StateConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced identity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// PreconditionError reports a command invoked out of order, e.g. undo before
// execute. It never corrupts the invoker history.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

func Precondition(format string, args ...any) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// DeliveryError reports a failed notification send. Best-effort: callers log
// it and never roll back committed state.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery via %s failed: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func Delivery(channel string, err error) error {
	return &DeliveryError{Channel: channel, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsStateConflict(err error) bool {
	var c *StateConflictError
	return errors.As(err, &c)
}

func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

func IsPrecondition(err error) bool {
	var p *PreconditionError
	return errors.As(err, &p)
}

func IsDelivery(err error) bool {
	var d *DeliveryError
	return errors.As(err, &d)
}
