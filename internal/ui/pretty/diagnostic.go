package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

const (
	contextIndent = "        "
	ellipsis      = "…"
)

// FormatDiagnostic formats a diagnostic as
// "path:line:col  severity  message  (rule)" followed, when showContext
// is set, by the source line and a caret underline.
func (s *Styles) FormatDiagnostic(
	diag *lint.Diagnostic,
	showContext bool,
	sourceLine string,
	ruleFormat config.RuleFormat,
) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if showContext && sourceLine != "" {
		endColumn := diag.EndColumn
		if diag.EndLine != diag.StartLine {
			// Underline to the end of the first line.
			endColumn = len(sourceLine) + 1
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, endColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats line with a caret underline covering the
// 1-based byte columns [startCol, endCol). An empty or inverted range
// gets a single caret. Lines wider than s.Width are truncated and the
// underline is clipped to match.
func (s *Styles) FormatSourceContext(line string, startCol, endCol int) string {
	if startCol < 1 {
		startCol = 1
	}
	if startCol > len(line)+1 {
		startCol = len(line) + 1
	}
	if endCol > len(line)+1 {
		endCol = len(line) + 1
	}

	prefix := line[:startCol-1]
	marked := ""
	if endCol > startCol {
		marked = line[startCol-1 : endCol-1]
	}

	padding := lipgloss.Width(prefix)
	underline := max(lipgloss.Width(marked), 1)

	shown := line
	if limit := s.Width - len(contextIndent); s.Width > 0 && lipgloss.Width(line) > limit {
		shown = truncate(line, limit-1) + ellipsis
		if padding >= limit {
			padding = limit - 1
			underline = 1
		} else if padding+underline > limit {
			underline = limit - padding
		}
	}

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(shown) + "\n")
	builder.WriteString(contextIndent + strings.Repeat(" ", max(padding, 0)))
	builder.WriteString(s.Caret.Render(strings.Repeat("^", max(underline, 1))) + "\n")

	return builder.String()
}

// truncate returns the longest rune prefix of line at most width cells wide.
func truncate(line string, width int) string {
	if width <= 0 {
		return ""
	}
	var builder strings.Builder
	used := 0
	for _, r := range line {
		w := lipgloss.Width(string(r))
		if used+w > width {
			break
		}
		builder.WriteRune(r)
		used += w
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
