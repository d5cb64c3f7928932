package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/runner"
)

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 files (5 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file")))

	var tail string
	if stats.FilesErrored > 0 {
		tail = ", " + s.Failure.Render(plural(stats.FilesErrored, "file")+" failed")
	}

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No undefined references") + checked + tail + "\n"
	}

	var severityParts []string
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(plural(n, "error")))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(plural(n, "warning")))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	line := plural(stats.DiagnosticsTotal, "issue")
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}
	line += " in " + plural(stats.FilesWithIssues, "file")

	return line + checked + tail + "\n"
}
