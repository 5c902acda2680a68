// Package calculator implements the four-way arithmetic dispatch and the
// parsing and formatting rules around it.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Operator selects the arithmetic operation.
type Operator rune

const (
	Add Operator = '+'
	Sub Operator = '-'
	Mul Operator = '*'
	Div Operator = '/'

	// Unknown stands for an operator token that is not a single character.
	Unknown Operator = utf8.RuneError
)

// Valid reports whether o is one of + - * /.
func (o Operator) Valid() bool {
	switch o {
	case Add, Sub, Mul, Div:
		return true
	}
	return false
}

func (o Operator) String() string {
	return string(rune(o))
}

// Operation is one fully read request.
type Operation struct {
	Left  float64
	Op    Operator
	Right float64
}

// Evaluate runs the operation.
func (op Operation) Evaluate() (float64, error) {
	return Evaluate(op.Left, op.Op, op.Right)
}

// Evaluate applies op to a and b.
func Evaluate(a float64, op Operator, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, op.String())
	}
}

// ParseOperand parses a complete numeric token. field names the operand in
// the returned *InputError.
func ParseOperand(field, token string) (float64, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return 0, &InputError{Field: field, Token: token, Err: strconv.ErrSyntax}
	}
	// strconv accepts underscores in prefixed literals; scanf does not.
	if strings.Contains(t, "_") {
		return 0, &InputError{Field: field, Token: token, Err: strconv.ErrSyntax}
	}
	v, err := strconv.ParseFloat(hexExponent(t), 64)
	if err != nil {
		// Overflow saturates to ±Inf, which is what %lf yields too.
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, &InputError{Field: field, Token: token, Err: err}
	}
	return v, nil
}

// hexExponent adds the binary exponent strconv requires on hex floats.
func hexExponent(t string) string {
	s := strings.TrimLeft(t, "+-")
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") && !strings.ContainsAny(s, "pP") {
		return t + "p0"
	}
	return t
}

// ParseOperator reads an operator token. Anything that is not exactly one
// valid operator character is ErrInvalidOperator.
func ParseOperator(token string) (Operator, error) {
	t := strings.TrimSpace(token)
	if utf8.RuneCountInString(t) != 1 {
		return Unknown, fmt.Errorf("%w: %q", ErrInvalidOperator, token)
	}
	r, _ := utf8.DecodeRuneInString(t)
	op := Operator(r)
	if !op.Valid() {
		return op, fmt.Errorf("%w: %q", ErrInvalidOperator, t)
	}
	return op, nil
}

// FormatResult renders v as the success line, six decimal places. Non-finite
// values use the C spellings.
func FormatResult(v float64) string {
	return "Result: " + formatFloat(v)
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		if math.Signbit(v) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
