package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdrefcheck/internal/ui/pretty"
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

func sampleDiagnostic() *lint.Diagnostic {
	return &lint.Diagnostic{
		RuleID:      "REF001",
		RuleName:    "no-undefined-references",
		Message:     `Found reference to undefined definition for a link "mercury"`,
		Severity:    config.SeverityWarning,
		FilePath:    "doc.md",
		StartLine:   3,
		StartColumn: 7,
		EndLine:     3,
		EndColumn:   16,
	}
}

func TestFormatDiagnostic_MainLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		format config.RuleFormat
		rule   string
	}{
		{config.RuleFormatName, "(no-undefined-references)"},
		{config.RuleFormatID, "(REF001)"},
		{config.RuleFormatCombined, "(REF001/no-undefined-references)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			got := styles.FormatDiagnostic(sampleDiagnostic(), false, "", tt.format)
			want := "  doc.md:3:7  warning  " +
				`Found reference to undefined definition for a link "mercury"  ` + tt.rule + "\n"
			assert.Equal(t, want, got)
		})
	}
}

func TestFormatDiagnostic_Context(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatDiagnostic(sampleDiagnostic(), true, "> see [Mercury]", config.RuleFormatID)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "        > see [Mercury]", lines[1])
	assert.Equal(t, "              ^^^^^^^^^", lines[2])
}

func TestFormatDiagnostic_MultiLineUnderlinesToEndOfLine(t *testing.T) {
	t.Parallel()

	diag := sampleDiagnostic()
	diag.StartColumn = 5
	diag.EndLine = 4
	diag.EndColumn = 3

	styles := pretty.NewStyles(false)
	got := styles.FormatDiagnostic(diag, true, "see [Mercury", config.RuleFormatID)

	assert.Contains(t, got, "            ^^^^^^^^\n")
}

func TestFormatDiagnostic_Suggestion(t *testing.T) {
	t.Parallel()

	diag := sampleDiagnostic()
	diag.Suggestion = "Add a definition such as [mercury]: <url>"

	got := pretty.NewStyles(false).FormatDiagnostic(diag, false, "", config.RuleFormatName)
	assert.Contains(t, got, "Suggestion: Add a definition such as [mercury]: <url>")
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		width    int
		line     string
		start    int
		end      int
		wantLine string
		wantMark string
	}{
		{
			name:     "empty range gets single caret",
			line:     "abc",
			start:    2,
			end:      2,
			wantLine: "abc",
			wantMark: " ^",
		},
		{
			name:     "range clipped to line",
			line:     "abc",
			start:    2,
			end:      10,
			wantLine: "abc",
			wantMark: " ^^",
		},
		{
			name:     "multibyte prefix measured in cells",
			line:     "é [x]",
			start:    4,
			end:      7,
			wantLine: "é [x]",
			wantMark: "  ^^^",
		},
		{
			name:     "truncated to width",
			width:    18,
			line:     "0123456789abcdefghij",
			start:    3,
			end:      5,
			wantLine: "012345678…",
			wantMark: "  ^^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			styles := pretty.NewStyles(false).WithWidth(tt.width)
			got := styles.FormatSourceContext(tt.line, tt.start, tt.end)

			lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
			assert.Len(t, lines, 2)
			assert.Equal(t, "        "+tt.wantLine, lines[0])
			assert.Equal(t, "        "+tt.wantMark, lines[1])
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "custom", styles.FormatSeverity(config.Severity("custom")))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "doc.md", styles.FormatFileHeader("doc.md", 0))
	assert.Equal(t, "doc.md (1 issue)", styles.FormatFileHeader("doc.md", 1))
	assert.Equal(t, "doc.md (4 issues)", styles.FormatFileHeader("doc.md", 4))
}
