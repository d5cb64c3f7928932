package lint

import (
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	RuleID   string
	RuleName string
	Message  string
	Severity config.Severity
	FilePath string

	// Lines and columns are 1-based; EndColumn is exclusive. Columns
	// count bytes.
	StartLine, StartColumn int
	EndLine, EndColumn     int

	// StartOffset and EndOffset delimit the problem in the file's
	// bytes, or are -1 when unknown.
	StartOffset, EndOffset int

	// Ancestors names the enclosing node kinds, outermost first.
	Ancestors []string

	Suggestion string
}

// SourcePosition returns the line and column span of d.
func (d *Diagnostic) SourcePosition() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine: d.StartLine, StartColumn: d.StartColumn,
		EndLine: d.EndLine, EndColumn: d.EndColumn,
	}
}
