package finmath

import "errors"

// ErrInvalidArgument is matched by every argument error returned from this package.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError represents a usage error such as a negative duration.
type InvalidArgumentError struct {
	Operation string
	Argument  string
	Message   string
}

func (e *InvalidArgumentError) Error() string {
	return e.Operation + ": " + e.Argument + ": " + e.Message
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(op, arg, msg string) error {
	return &InvalidArgumentError{Operation: op, Argument: arg, Message: msg}
}
