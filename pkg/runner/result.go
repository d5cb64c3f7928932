package runner

import (
	"cmp"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

// FileOutcome is what happened to one file. Exactly one of Result and
// Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.FileResult
	Error  error
}

// Diagnostics returns the file's diagnostics, or nil when it failed.
func (o FileOutcome) Diagnostics() []lint.Diagnostic {
	if o.Result == nil {
		return nil
	}
	return o.Result.Diagnostics
}

// Stats summarizes a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int

	DiagnosticsTotal      int
	DiagnosticsBySeverity map[config.Severity]int
}

// Result is the outcome of a run, with files in input order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool { return r.count(config.SeverityError) > 0 }

// HasWarnings reports whether any diagnostic has warning severity.
func (r *Result) HasWarnings() bool { return r.count(config.SeverityWarning) > 0 }

// HasIssues reports whether anything was found.
func (r *Result) HasIssues() bool { return r != nil && r.Stats.DiagnosticsTotal > 0 }

func (r *Result) count(sev config.Severity) int {
	if r == nil {
		return 0
	}
	return r.Stats.DiagnosticsBySeverity[sev]
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: map[config.Severity]int{}}
}

func (r *Result) accumulate(o FileOutcome) {
	r.Files = append(r.Files, o)

	switch {
	case o.Error != nil:
		r.Stats.FilesErrored++
		return
	case o.Result == nil:
		return
	}

	r.Stats.FilesProcessed++
	diags := o.Result.Diagnostics
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(diags)
	for i := range diags {
		r.Stats.DiagnosticsBySeverity[cmp.Or(diags[i].Severity, config.SeverityWarning)]++
	}
}
