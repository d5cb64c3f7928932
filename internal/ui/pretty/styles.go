// Package pretty renders diagnostics and summaries for terminals with
// lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ANSI palette indexes.
const (
	colorGray   = "8"
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorLight  = "7"
)

// Styles holds one lipgloss style per visual element. With color
// disabled every style renders text unchanged.
type Styles struct {
	Error, Warning, Info lipgloss.Style

	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	Success, Failure lipgloss.Style
	Dim, Bold        lipgloss.Style

	// Width truncates source lines when positive.
	Width int
}

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) *Styles {
	plain := lipgloss.NewStyle()
	if !color {
		return &Styles{
			Error: plain, Warning: plain, Info: plain,
			FilePath: plain, RuleID: plain, Message: plain,
			Suggestion: plain, SourceLine: plain, Caret: plain,
			Success: plain, Failure: plain, Dim: plain, Bold: plain,
		}
	}

	fg := func(c string) lipgloss.Style { return plain.Foreground(lipgloss.Color(c)) }
	return &Styles{
		Error:      fg(colorRed).Bold(true),
		Warning:    fg(colorYellow).Bold(true),
		Info:       fg(colorBlue).Bold(true),
		FilePath:   plain.Bold(true),
		RuleID:     fg(colorGray),
		Message:    plain,
		Suggestion: fg(colorGreen).Italic(true),
		SourceLine: fg(colorLight),
		Caret:      fg(colorYellow),
		Success:    fg(colorGreen).Bold(true),
		Failure:    fg(colorRed).Bold(true),
		Dim:        fg(colorGray),
		Bold:       plain.Bold(true),
	}
}

// WithWidth sets Width and returns s.
func (s *Styles) WithWidth(width int) *Styles {
	s.Width = width
	return s
}

// IsColorEnabled resolves a --color mode for w. "auto" honours NO_COLOR
// and otherwise colors only terminals.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd, ok := fileFd(w)
	return ok && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// TerminalWidth returns the width of w in columns, or 0 when w is not a
// terminal.
func TerminalWidth(w io.Writer) int {
	fd, ok := fileFd(w)
	if !ok || !term.IsTerminal(int(fd)) {
		return 0
	}
	if width, _, err := term.GetSize(int(fd)); err == nil {
		return width
	}
	return 0
}

func fileFd(w io.Writer) (uintptr, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	return f.Fd(), true
}
