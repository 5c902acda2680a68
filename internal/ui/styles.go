package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewStyles.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles renders the result and error lines for one output stream.
// A nil *Styles renders plain text.
type Styles struct {
	result lipgloss.Style
	err    lipgloss.Style
}

// NewStyles binds the line styles to w. In auto mode colour is only emitted
// when w is a terminal.
func NewStyles(w io.Writer, mode string) *Styles {
	if mode == ColorNever {
		return nil
	}

	r := lipgloss.NewRenderer(w)
	if mode == ColorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Styles{
		result: r.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true),
		err: r.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true),
	}
}

// Result styles a success line. line must not contain a newline.
func (s *Styles) Result(line string) string {
	if s == nil {
		return line
	}
	return s.result.Render(line)
}

// Error styles an error line. line must not contain a newline.
func (s *Styles) Error(line string) string {
	if s == nil {
		return line
	}
	return s.err.Render(line)
}
