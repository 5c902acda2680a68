// Package evaluator runs one arithmetic evaluation against a pair of streams:
// prompt, read, compute, report.
package evaluator

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"calc/internal/calculator"
	"calc/internal/telemetry"
	"calc/internal/ui"
)

// Prompts written before each read.
const (
	PromptFirst    = "Enter first number: "
	PromptOperator = "Enter an operator (+, -, *, /): "
	PromptSecond   = "Enter second number: "
)

// Session holds the streams and collaborators for one evaluation.
type Session struct {
	scanner *Scanner
	out     io.Writer
	styles  *ui.Styles
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithStyles renders the result and error lines through styles.
func WithStyles(styles *ui.Styles) Option {
	return func(s *Session) { s.styles = styles }
}

// WithMetrics records every evaluation in m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session reading from in and writing to out.
func NewSession(in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		scanner: NewScanner(in),
		out:     out,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prompts for both operands and the operator, evaluates, and prints the
// result line or the error line. The returned error has already been shown
// to the user.
func (s *Session) Run() (float64, error) {
	start := time.Now()
	op := calculator.Operation{}

	fmt.Fprint(s.out, PromptFirst)
	left, err := s.scanner.Operand("first number")
	if err != nil {
		return 0, s.fail(op, err, start)
	}
	op.Left = left

	fmt.Fprint(s.out, PromptOperator)
	operator, err := s.scanner.Operator()
	if err != nil {
		return 0, s.fail(op, err, start)
	}
	op.Op = operator

	fmt.Fprint(s.out, PromptSecond)
	right, err := s.scanner.Operand("second number")
	if err != nil {
		return 0, s.fail(op, err, start)
	}
	op.Right = right

	return s.finish(op, start)
}

// Eval evaluates the three tokens a, op, b without prompting. Operands are
// checked before the operator, matching the order Run reads them in.
func (s *Session) Eval(a, op, b string) (float64, error) {
	start := time.Now()
	operation := calculator.Operation{}

	left, err := calculator.ParseOperand("first number", a)
	if err != nil {
		return 0, s.fail(operation, err, start)
	}
	operation.Left = left

	right, err := calculator.ParseOperand("second number", b)
	if err != nil {
		return 0, s.fail(operation, err, start)
	}
	operation.Right = right

	operator, err := calculator.ParseOperator(op)
	operation.Op = operator
	if err != nil {
		return 0, s.fail(operation, err, start)
	}

	return s.finish(operation, start)
}

func (s *Session) finish(op calculator.Operation, start time.Time) (float64, error) {
	result, err := op.Evaluate()
	if err != nil {
		return 0, s.fail(op, err, start)
	}

	fmt.Fprintln(s.out, s.styles.Result(calculator.FormatResult(result)))
	s.observe(operatorLabel(op.Op), nil, start)
	s.logger.Debug("evaluated",
		"operator", op.Op.String(),
		floatAttr("left", op.Left),
		floatAttr("right", op.Right),
		floatAttr("result", result),
	)
	return result, nil
}

func (s *Session) fail(op calculator.Operation, err error, start time.Time) error {
	fmt.Fprintln(s.out, s.styles.Error(calculator.Message(err)))

	operator := operatorLabel(op.Op)
	s.observe(operator, err, start)
	s.logger.Info("evaluation failed",
		"operator", operator,
		floatAttr("left", op.Left),
		floatAttr("right", op.Right),
		"error", err,
	)
	return err
}

func (s *Session) observe(operator string, err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.Observe(operator, calculator.Outcome(err), time.Since(start))
}

// floatAttr logs non-finite values as strings; JSON has no inf or nan.
func floatAttr(key string, v float64) slog.Attr {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return slog.String(key, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return slog.Float64(key, v)
}

// operatorLabel keeps the metrics label set bounded.
func operatorLabel(op calculator.Operator) string {
	switch {
	case op == 0:
		return "none"
	case !op.Valid():
		return "invalid"
	}
	return op.String()
}
