package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when the divisor of a "/" operation is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidOperator is returned for any operator outside + - * /.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrMalformedInput is returned when an operand cannot be read as a number.
	ErrMalformedInput = errors.New("malformed input")
)

// InputError describes a token that could not be read.
type InputError struct {
	Field string
	Token string
	Err   error
}

// Error implements the error interface
func (e *InputError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("malformed input for %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed input for %s %q: %v", e.Field, e.Token, e.Err)
}

// Unwrap exposes both ErrMalformedInput and the underlying cause.
func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedInput}
	}
	return []error{ErrMalformedInput, e.Err}
}

// User-facing lines. These are part of the program's output contract.
const (
	MsgDivisionByZero  = "Error: Division by zero!"
	MsgInvalidOperator = "Invalid operator"
	MsgMalformedInput  = "Error: Invalid input!"
)

// Message returns the line printed to the user for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDivisionByZero):
		return MsgDivisionByZero
	case errors.Is(err, ErrInvalidOperator):
		return MsgInvalidOperator
	case errors.Is(err, ErrMalformedInput):
		return MsgMalformedInput
	default:
		return "Error: " + err.Error()
	}
}

// Outcome names the result class of an evaluation, used as a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrInvalidOperator):
		return "invalid_operator"
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	default:
		return "error"
	}
}
