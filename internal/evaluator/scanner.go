package evaluator

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"calc/internal/calculator"
)

// Scanner reads operands and operators from a stream the way scanf does:
// leading whitespace is skipped and a number ends where it stops being
// valid, so "4+5" yields three tokens and "5abc" leaves "abc" unread.
type Scanner struct {
	r *bufio.Reader
}

// NewScanner wraps in.
func NewScanner(in io.Reader) *Scanner {
	if br, ok := in.(*bufio.Reader); ok {
		return &Scanner{r: br}
	}
	return &Scanner{r: bufio.NewReader(in)}
}

// Operand reads the longest prefix of the input that is a valid number, as
// strtod does, and leaves everything after it unread. field names the
// operand in errors.
func (s *Scanner) Operand(field string) (float64, error) {
	if err := s.skipSpace(); err != nil {
		return 0, &calculator.InputError{Field: field, Err: eofAsUnexpected(err)}
	}

	// Peek copies: a later Peek may move the buffered bytes.
	var peeked string
	complete := 0
	for n := 1; n <= s.r.Size(); n++ {
		buf, err := s.r.Peek(n)
		if len(buf) < n {
			if err != nil && !errors.Is(err, io.EOF) {
				return 0, &calculator.InputError{Field: field, Token: string(buf), Err: err}
			}
			break
		}
		viable, whole := matchNumber(string(buf))
		if !viable {
			if peeked == "" {
				peeked = string(buf)
			}
			break
		}
		peeked = string(buf)
		if whole {
			complete = n
		}
	}

	if complete == 0 {
		return 0, &calculator.InputError{Field: field, Token: peeked, Err: strconv.ErrSyntax}
	}
	token := peeked[:complete]
	if _, err := s.r.Discard(complete); err != nil {
		return 0, &calculator.InputError{Field: field, Token: token, Err: err}
	}
	return calculator.ParseOperand(field, token)
}

// Operator reads one non-space character. It is not validated here: the
// caller decides when an unknown operator is reported.
func (s *Scanner) Operator() (calculator.Operator, error) {
	if err := s.skipSpace(); err != nil {
		return 0, &calculator.InputError{Field: "operator", Err: eofAsUnexpected(err)}
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		return 0, &calculator.InputError{Field: "operator", Err: eofAsUnexpected(err)}
	}
	return calculator.Operator(r), nil
}

func (s *Scanner) skipSpace() error {
	for {
		r, _, err := s.r.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return s.r.UnreadRune()
		}
	}
}

// matchNumber reports whether s can still be extended into a number
// (viable) and whether s already is one (whole).
func matchNumber(s string) (viable, whole bool) {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return true, false
	}

	lower := strings.ToLower(s)
	switch lower[0] {
	case 'i', 'n':
		for _, word := range []string{"infinity", "inf", "nan"} {
			if lower == word {
				return true, true
			}
		}
		return strings.HasPrefix("infinity", lower) || strings.HasPrefix("nan", lower), false
	}

	if strings.HasPrefix(lower, "0x") {
		return matchMantissa(lower[2:], isHexDigit, 'p')
	}
	return matchMantissa(lower, isDigit, 'e')
}

// matchMantissa matches digits, an optional fraction and an optional
// exponent introduced by exp. Exponent digits are always decimal.
func matchMantissa(s string, digit func(byte) bool, exp byte) (viable, whole bool) {
	i, digits := 0, 0
	for i < len(s) && digit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && digit(s[i]) {
			i++
			digits++
		}
	}
	if i == len(s) {
		return true, digits > 0
	}
	if digits == 0 || s[i] != exp {
		return false, false
	}

	i++
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	expDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		expDigits++
	}
	if i < len(s) {
		return false, false
	}
	return true, expDigits > 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f')
}

func eofAsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
