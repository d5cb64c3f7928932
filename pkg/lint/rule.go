// Package lint runs mdrefcheck's rules over parsed Markdown. It defines
// the Rule and Parser contracts, the rule registry, rule resolution
// against configuration and the diagnostics rules produce.
package lint

import (
	"context"
	"errors"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// ErrInvalidConfig marks a configuration problem that must stop the run
// before any output. Rules wrap option errors with it.
var ErrInvalidConfig = errors.New("invalid configuration")

// Parser turns Markdown bytes into a snapshot. Implementations are
// deterministic, do no I/O, and return a snapshot whose Path and
// Content equal the arguments, whose Root is a NodeDocument, and whose
// nodes all point back at it.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// Rule is one check.
type Rule interface {
	ID() string
	Name() string
	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Tags() []string

	// Apply returns a diagnostic per violation. It returns an error
	// only when the rule itself fails, and should stop early once
	// ctx is cancelled.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// OptionsValidator is implemented by rules with options that can be
// wrong. It runs once per run; errors should wrap ErrInvalidConfig.
type OptionsValidator interface {
	ValidateOptions(cfg *config.RuleConfig) error
}

// BaseRule supplies the metadata half of Rule. Embed it and implement
// Apply; the defaults are enabled at warning severity.
type BaseRule struct {
	id, name, desc string
	tags           []string
}

// NewBaseRule returns a BaseRule.
func NewBaseRule(id, name, desc string, tags []string) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags}
}

func (r *BaseRule) ID() string                       { return r.id }
func (r *BaseRule) Name() string                     { return r.name }
func (r *BaseRule) Description() string              { return r.desc }
func (r *BaseRule) Tags() []string                   { return r.tags }
func (r *BaseRule) DefaultEnabled() bool             { return true }
func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Apply reports nothing.
func (r *BaseRule) Apply(*RuleContext) ([]Diagnostic, error) { return nil, nil }
