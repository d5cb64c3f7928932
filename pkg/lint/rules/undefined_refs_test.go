package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/lint/rules"
	"github.com/yaklabco/mdrefcheck/pkg/parser/goldmark"
)

func lintString(t *testing.T, cfg *config.Config, content string) []lint.Diagnostic {
	t.Helper()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	engine := lint.NewEngine(goldmark.New(string(config.FlavorGFM)), registry)
	require.NoError(t, engine.Validate(cfg))

	result, err := engine.LintFile(context.Background(), "doc.md", []byte(content), cfg)
	require.NoError(t, err)
	require.Empty(t, result.RuleErrors)
	return result.Diagnostics
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestUndefinedRefs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		options map[string]any
		want    []string
	}{
		{
			name:    "collapsed reference with definition",
			content: "[Mercury][]\n\n[mercury]: https://example.com\n",
			want:    []string{},
		},
		{
			name:    "undefined shortcut",
			content: "[Mercury]\n",
			want:    []string{`Found reference to undefined definition for a link "mercury"`},
		},
		{
			name:    "undefined image",
			content: "![Mars]\n",
			want:    []string{`Found reference to undefined definition for an image "mars"`},
		},
		{
			name:    "undefined footnote",
			content: "Mercury[^note]\n",
			want:    []string{`Found reference to undefined definition for a footnote "note"`},
		},
		{
			name:    "escaped brackets",
			content: "\\[Not a link\\]\n",
			want:    []string{},
		},
		{
			name:    "shortcuts allowed",
			content: "[Mercury]\n",
			options: map[string]any{"allow_shortcut_link": true},
			want:    []string{},
		},
		{
			name:    "camel case alias",
			content: "[Mercury]\n",
			options: map[string]any{"allowShortcutLink": true},
			want:    []string{},
		},
		{
			name:    "full reference still checked with shortcuts allowed",
			content: "[text][venus]\n",
			options: map[string]any{"allow_shortcut_link": true},
			want:    []string{`Found reference to undefined definition for a link "venus"`},
		},
		{
			name:    "allow literal",
			content: "[ x ] and [Y]\n",
			options: map[string]any{"allow": []any{"x"}},
			want:    []string{`Found reference to undefined definition for a link "y"`},
		},
		{
			name:    "allow pattern",
			content: "[TODO-1] and [done]\n",
			options: map[string]any{"allow": []any{map[string]any{"source": "^todo-"}}},
			want:    []string{`Found reference to undefined definition for a link "done"`},
		},
		{
			name:    "source order",
			content: "[b]\n\n[a]\n",
			want: []string{
				`Found reference to undefined definition for a link "b"`,
				`Found reference to undefined definition for a link "a"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			for k, v := range tt.options {
				cfg.RuleOptions(rules.UndefinedRefsID)[k] = v
			}

			assert.Equal(t, tt.want, messages(lintString(t, cfg, tt.content)))
		})
	}
}

func TestUndefinedRefs_DiagnosticFields(t *testing.T) {
	t.Parallel()

	diags := lintString(t, config.NewConfig(), "# Title\n\n> see [Mercury]\n")
	require.Len(t, diags, 1)

	diag := diags[0]
	assert.Equal(t, rules.UndefinedRefsID, diag.RuleID)
	assert.Equal(t, rules.UndefinedRefsName, diag.RuleName)
	assert.Equal(t, config.SeverityWarning, diag.Severity)
	assert.Equal(t, "doc.md", diag.FilePath)
	assert.Equal(t, 3, diag.StartLine)
	assert.Equal(t, 7, diag.StartColumn)
	assert.Equal(t, 3, diag.EndLine)
	assert.Equal(t, 16, diag.EndColumn)
	assert.Equal(t, 15, diag.StartOffset)
	assert.Equal(t, 24, diag.EndOffset)
	assert.Equal(t, []string{"Document", "Blockquote", "Paragraph"}, diag.Ancestors)
	assert.Contains(t, diag.Suggestion, "[mercury]: <url>")
}

func TestUndefinedRefs_InvalidPattern(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	engine := lint.NewEngine(goldmark.New(string(config.FlavorGFM)), registry)

	cfg := config.NewConfig()
	cfg.RuleOptions(rules.UndefinedRefsID)["allow"] = []any{map[string]any{"source": "("}}

	require.ErrorIs(t, engine.Validate(cfg), lint.ErrInvalidConfig)

	result, err := engine.LintFile(context.Background(), "doc.md", []byte("[x]\n"), cfg)
	require.ErrorIs(t, err, lint.ErrInvalidConfig)
	assert.Nil(t, result)
}

func TestUndefinedRefs_Disabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DisableRules = []string{rules.UndefinedRefsID}

	assert.Empty(t, lintString(t, cfg, "[Mercury]\n"))
}
