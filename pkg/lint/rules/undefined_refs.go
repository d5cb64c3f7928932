package rules

import (
	"fmt"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/lint/refs"
)

const (
	// UndefinedRefsID is the ID of the undefined references rule.
	UndefinedRefsID = "REF001"

	// UndefinedRefsName is the canonical name of the undefined references rule.
	UndefinedRefsName = "no-undefined-references"

	// UndefinedRefsAlias is the alternate configuration name of the rule.
	UndefinedRefsAlias = "undefined-references"

	optAllow                  = "allow"
	optAllowShortcutLink      = "allow_shortcut_link"
	optAllowShortcutLinkCamel = "allowShortcutLink"
)

// UndefinedRefsRule reports link, image, and footnote references that
// have no matching definition (REF001).
type UndefinedRefsRule struct {
	lint.BaseRule
}

// NewUndefinedRefsRule creates a new undefined references rule.
func NewUndefinedRefsRule() *UndefinedRefsRule {
	return &UndefinedRefsRule{
		BaseRule: lint.NewBaseRule(
			UndefinedRefsID,
			UndefinedRefsName,
			"References should have a matching definition",
			[]string{"links", "images", "footnotes", "references"},
		),
	}
}

// ValidateOptions compiles the allow list so that a bad pattern fails the
// run before any file is read.
func (r *UndefinedRefsRule) ValidateOptions(cfg *config.RuleConfig) error {
	_, err := checkerOptions(cfg)
	return err
}

// Apply reports every undefined reference in the file.
func (r *UndefinedRefsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	opts, err := checkerOptions(ctx.RuleConfig)
	if err != nil {
		return nil, err
	}

	if ctx.Cancelled() {
		return nil, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
	}

	found := refs.NewChecker(opts).Check(ctx.File)
	if len(found) == 0 {
		return nil, nil
	}

	diags := make([]lint.Diagnostic, 0, len(found))
	for _, ref := range found {
		diag := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, ref.Position, ref.Message()).
			WithOffsets(ref.Start, ref.End).
			WithAncestors(ancestorNames(ref)).
			WithSuggestion(suggestion(ref)).
			Build()
		diags = append(diags, diag)
	}

	return diags, nil
}

// checkerOptions decodes the rule's options into refs.Options.
func checkerOptions(cfg *config.RuleConfig) (refs.Options, error) {
	allow, err := refs.CompileAllowList(lint.OptionSlice(cfg, optAllow))
	if err != nil {
		return refs.Options{}, fmt.Errorf("%w: %s: %w", lint.ErrInvalidConfig, optAllow, err)
	}

	return refs.Options{
		Allow:             allow,
		AllowShortcutLink: lint.OptionBool(cfg, false, optAllowShortcutLink, optAllowShortcutLinkCamel),
	}, nil
}

func ancestorNames(ref refs.Reference) []string {
	kinds := ref.AncestorKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

func suggestion(ref refs.Reference) string {
	if ref.Kind == refs.KindFootnote {
		return fmt.Sprintf("add a footnote definition \"[^%s]: ...\"", ref.Identifier)
	}
	if ref.Shortcut {
		return fmt.Sprintf("add a definition \"[%s]: <url>\" or escape the brackets", ref.Identifier)
	}
	return fmt.Sprintf("add a definition \"[%s]: <url>\"", ref.Identifier)
}
