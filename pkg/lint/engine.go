package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// FileResult is the outcome of checking one file.
type FileResult struct {
	Snapshot *mdast.FileSnapshot

	// Diagnostics are ordered by start line, then column.
	Diagnostics []Diagnostic

	// RuleErrors maps a rule ID to the error it failed with. Other
	// rules still run.
	RuleErrors map[string]error
}

// CountSeverity counts the diagnostics at sev.
func (fr *FileResult) CountSeverity(sev config.Severity) int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Severity == sev {
			n++
		}
	}
	return n
}

// Engine parses files and runs the enabled rules over them. It holds no
// per-file state and may be shared between workers.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine returns an Engine.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// Validate checks the options of every enabled rule so a bad
// configuration is rejected before any file is read.
func (e *Engine) Validate(cfg *config.Config) error {
	return ValidateRules(e.Registry, cfg)
}

// LintFile parses content and checks it. A rule error wrapping
// ErrInvalidConfig aborts the file; other rule errors are recorded in
// FileResult.RuleErrors.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return e.LintSnapshot(ctx, snapshot, cfg)
}

// LintSnapshot checks a file that has already been parsed.
func (e *Engine) LintSnapshot(ctx context.Context, snapshot *mdast.FileSnapshot, cfg *config.Config) (*FileResult, error) {
	res := &FileResult{Snapshot: snapshot, RuleErrors: map[string]error{}}

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("linting cancelled: %w", err)
		}

		diags, err := rr.Rule.Apply(NewRuleContext(ctx, snapshot, cfg, rr.Config))
		switch {
		case errors.Is(err, ErrInvalidConfig):
			return nil, fmt.Errorf("rule %s: %w", rr.Rule.ID(), err)
		case err != nil:
			res.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			d := &diags[i]
			d.Severity = rr.Severity
			d.FilePath = cmp.Or(d.FilePath, snapshot.Path)
			d.RuleName = cmp.Or(d.RuleName, rr.Rule.Name())
		}
		res.Diagnostics = append(res.Diagnostics, diags...)
	}

	slices.SortStableFunc(res.Diagnostics, func(a, b Diagnostic) int {
		return cmp.Or(cmp.Compare(a.StartLine, b.StartLine), cmp.Compare(a.StartColumn, b.StartColumn))
	})
	return res, nil
}
