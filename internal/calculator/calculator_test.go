package calculator

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		a    float64
		op   Operator
		b    float64
		want float64
	}{
		{"add", 4, Add, 5, 9},
		{"add negative", -2.5, Add, 1, -1.5},
		{"subtract", 10, Sub, 3, 7},
		{"subtract below zero", 3, Sub, 10, -7},
		{"multiply", 6, Mul, 7, 42},
		{"multiply by zero", 123.4, Mul, 0, 0},
		{"divide", 10, Div, 4, 2.5},
		{"divide negative", -9, Div, 3, -3},
		{"zero numerator", 0, Div, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.a, tt.op, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_MatchesGoArithmetic(t *testing.T) {
	pairs := [][2]float64{
		{0, 1}, {1.5, -2.25}, {1e300, 1e10}, {-7, 0.1}, {math.MaxFloat64, 2}, {3, 1e-320},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]

		got, err := Evaluate(a, Add, b)
		require.NoError(t, err)
		assert.Equal(t, a+b, got)

		got, err = Evaluate(a, Sub, b)
		require.NoError(t, err)
		assert.Equal(t, a-b, got)

		got, err = Evaluate(a, Mul, b)
		require.NoError(t, err)
		assert.Equal(t, a*b, got)

		got, err = Evaluate(a, Div, b)
		require.NoError(t, err)
		assert.Equal(t, a/b, got)
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, zero := range []float64{0, math.Copysign(0, -1)} {
		_, err := Evaluate(10, Div, zero)
		assert.ErrorIs(t, err, ErrDivisionByZero)
	}
}

func TestEvaluate_InvalidOperator(t *testing.T) {
	for _, op := range []Operator{'%', '^', 'x', ' ', 0} {
		_, err := Evaluate(3, op, 2)
		assert.ErrorIs(t, err, ErrInvalidOperator, "operator %q", op.String())
	}
}

func TestOperation_Evaluate(t *testing.T) {
	got, err := Operation{Left: 2, Op: Mul, Right: 8}.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 16.0, got)
}

func TestOperator_Valid(t *testing.T) {
	assert.True(t, Add.Valid())
	assert.True(t, Div.Valid())
	assert.False(t, Operator('%').Valid())
	assert.Equal(t, "*", Mul.String())
}

func TestParseOperand(t *testing.T) {
	tests := []struct {
		token string
		want  float64
	}{
		{"4", 4},
		{"-3.25", -3.25},
		{"+7", 7},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"2.5E-2", 0.025},
		{"0x10", 16},
		{"0x1p-2", 0.25},
		{"  42  ", 42},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseOperand("first number", tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-finite", func(t *testing.T) {
		v, err := ParseOperand("x", "inf")
		require.NoError(t, err)
		assert.True(t, math.IsInf(v, 1))

		v, err = ParseOperand("x", "-Infinity")
		require.NoError(t, err)
		assert.True(t, math.IsInf(v, -1))

		v, err = ParseOperand("x", "NaN")
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v))
	})

	t.Run("overflow saturates", func(t *testing.T) {
		v, err := ParseOperand("x", "1e400")
		require.NoError(t, err)
		assert.True(t, math.IsInf(v, 1))
	})
}

func TestParseOperand_Malformed(t *testing.T) {
	for _, token := range []string{"", "abc", "1.2.3", "4+5", "1_000", "0x_1p0", "--1"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseOperand("second number", token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, "second number", inputErr.Field)
			assert.Equal(t, token, inputErr.Token)
		})
	}
}

func TestInputError(t *testing.T) {
	err := &InputError{Field: "first number", Token: "abc", Err: strconv.ErrSyntax}
	assert.Equal(t, `malformed input for first number "abc": invalid syntax`, err.Error())
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.ErrorIs(t, err, ErrMalformedInput)

	noToken := &InputError{Field: "operator"}
	assert.ErrorIs(t, noToken, ErrMalformedInput)
	assert.Contains(t, noToken.Error(), "operator")
}

func TestParseOperator(t *testing.T) {
	for _, tok := range []string{"+", "-", "*", "/", " / "} {
		op, err := ParseOperator(tok)
		require.NoError(t, err)
		assert.True(t, op.Valid())
	}

	for _, tok := range []string{"%", "", "++", "plus", "÷"} {
		op, err := ParseOperator(tok)
		assert.ErrorIs(t, err, ErrInvalidOperator, "token %q", tok)
		assert.NotZero(t, op, "token %q", tok)
		assert.False(t, op.Valid(), "token %q", tok)
	}

	op, _ := ParseOperator("%%")
	assert.Equal(t, Unknown, op)
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{9, "Result: 9.000000"},
		{2.5, "Result: 2.500000"},
		{-1.0 / 3, "Result: -0.333333"},
		{1e20, "Result: 100000000000000000000.000000"},
		{math.Copysign(0, -1), "Result: -0.000000"},
		{math.Inf(1), "Result: inf"},
		{math.Inf(-1), "Result: -inf"},
		{math.NaN(), "Result: nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatResult(tt.in))
	}
}

func TestMessageAndOutcome(t *testing.T) {
	_, divErr := Evaluate(1, Div, 0)
	_, opErr := Evaluate(1, '%', 0)
	_, inErr := ParseOperand("first number", "x")

	assert.Equal(t, MsgDivisionByZero, Message(divErr))
	assert.Equal(t, MsgInvalidOperator, Message(opErr))
	assert.Equal(t, MsgMalformedInput, Message(inErr))
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Error: boom", Message(errors.New("boom")))

	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "division_by_zero", Outcome(divErr))
	assert.Equal(t, "invalid_operator", Outcome(opErr))
	assert.Equal(t, "malformed_input", Outcome(inErr))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}
