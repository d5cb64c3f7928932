package lint

import (
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// DiagnosticBuilder assembles a Diagnostic. RuleName and a missing
// Severity are filled in by the Engine.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts a diagnostic at pos. Offsets are unknown until
// WithOffsets is called.
func NewDiagnosticAt(ruleID, filePath string, pos mdast.SourcePosition, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{diag: Diagnostic{
		RuleID:      ruleID,
		Message:     message,
		FilePath:    filePath,
		StartLine:   pos.StartLine,
		StartColumn: pos.StartColumn,
		EndLine:     pos.EndLine,
		EndColumn:   pos.EndColumn,
		StartOffset: -1,
		EndOffset:   -1,
	}}
}

// NewDiagnostic starts a diagnostic covering node. A nil node or one
// without a file yields a diagnostic without a location.
func NewDiagnostic(ruleID string, node *mdast.Node, message string) *DiagnosticBuilder {
	if node == nil {
		return NewDiagnosticAt(ruleID, "", mdast.SourcePosition{}, message)
	}

	var path string
	if node.File != nil {
		path = node.File.Path
	}
	b := NewDiagnosticAt(ruleID, path, node.SourcePosition(), message)
	if node.HasOffsets() {
		b.WithOffsets(node.Start, node.End)
	}
	return b
}

func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithOffsets records the half-open byte range of the issue.
func (b *DiagnosticBuilder) WithOffsets(start, end int) *DiagnosticBuilder {
	b.diag.StartOffset = start
	b.diag.EndOffset = end
	return b
}

// WithAncestors records the enclosing node kinds, root first.
func (b *DiagnosticBuilder) WithAncestors(kinds []string) *DiagnosticBuilder {
	b.diag.Ancestors = kinds
	return b
}

func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
