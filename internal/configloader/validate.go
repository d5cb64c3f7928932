package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the dotted path of the value, e.g. "rules.REF001.severity".
	Field    string
	Value    any
	Message  string
	FilePath string
	Err      error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			b.WriteString(part)
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Message)
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult collects every finding of one validation pass.
// Errors prevent loading; Warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil. Each joined error is a
// *ValidationError.
func (r *ValidationResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// ValidateWithRegistry checks cfg against registry. Rule options are
// only checked once the rest of the configuration is valid.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if sev := cfg.SeverityDefault; sev != "" && !config.Severity(sev).IsValid() {
		result.fail("severity_default", sev, "invalid severity %q; must be one of: error, warning, info", sev)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, sarif", cfg.Format)
	}
	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.fail("rule_format", cfg.RuleFormat, "invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means one per CPU)")
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
				Err:     err,
			})
		}
	}

	for id, rc := range cfg.Rules {
		if rc.Severity != nil && !config.Severity(*rc.Severity).IsValid() {
			result.fail("rules."+id+".severity", *rc.Severity,
				"invalid severity %q; must be one of: error, warning, info", *rc.Severity)
		}
	}

	if registry == nil {
		return result
	}

	for id := range cfg.Rules {
		if _, _, ok := registry.Resolve(id); !ok {
			result.warn("rules."+id, id, "unknown rule %q; it will be ignored", id)
		}
	}
	for _, key := range cfg.EnableRules {
		if _, _, ok := registry.Resolve(key); !ok {
			result.warn("enable", key, "unknown rule %q; it will be ignored", key)
		}
	}
	for _, key := range cfg.DisableRules {
		if _, _, ok := registry.Resolve(key); !ok {
			result.warn("disable", key, "unknown rule %q; it will be ignored", key)
		}
	}

	if result.Valid() {
		if err := lint.ValidateRules(registry, cfg); err != nil {
			result.Errors = append(result.Errors, ValidationError{Field: "rules", Message: err.Error(), Err: err})
		}
	}

	return result
}
