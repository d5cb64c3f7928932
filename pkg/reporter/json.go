package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the document written by --format json.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult lists one file's diagnostics. Diagnostics is always an
// array, empty for clean or unreadable files.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is one undefined reference. Offsets are bytes into the
// file, or -1 when unknown; lines and columns are 1-based.
type JSONDiagnostic struct {
	RuleID      string   `json:"ruleId"`
	RuleName    string   `json:"ruleName"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	StartOffset int      `json:"startOffset"`
	EndOffset   int      `json:"endOffset"`
	Ancestors   []string `json:"ancestors,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// JSONSummary counts files and diagnostics. FilesChecked includes files
// that could not be read.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter writes one JSONOutput document per Report call.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := JSONOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result != nil {
		for _, file := range result.Files {
			doc.Files = append(doc.Files, r.fileResult(file, &doc.Summary))
		}
	}

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return doc.Summary.TotalIssues, nil
}

// fileResult converts one outcome and adds it to summary.
func (r *JSONReporter) fileResult(file runner.FileOutcome, summary *JSONSummary) JSONFileResult {
	out := JSONFileResult{
		Path:        r.opts.displayPath(file.Path),
		Diagnostics: []JSONDiagnostic{},
	}

	summary.FilesChecked++
	if file.Error != nil {
		out.Error = file.Error.Error()
		summary.FilesErrored++
	}

	for _, diag := range file.Diagnostics() {
		jd := jsonDiagnostic(diag)
		out.Diagnostics = append(out.Diagnostics, jd)
		summary.BySeverity[jd.Severity]++
	}
	if n := len(out.Diagnostics); n > 0 {
		summary.TotalIssues += n
		summary.FilesWithIssues++
	}

	return out
}

func jsonDiagnostic(diag lint.Diagnostic) JSONDiagnostic {
	severity := diag.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	return JSONDiagnostic{
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		StartOffset: diag.StartOffset,
		EndOffset:   diag.EndOffset,
		Ancestors:   diag.Ancestors,
		Suggestion:  diag.Suggestion,
	}
}
