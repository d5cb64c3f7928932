package config

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/template"
)

// TemplateOptions selects what GenerateTemplate writes.
type TemplateOptions struct {
	// Full adds an uncommented rules section describing every
	// registered rule.
	Full bool
}

// RuleInfo is the rule metadata written into a full template.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string

	// OptionsExample is YAML already indented for placement under the
	// rule key.
	OptionsExample string
}

// RuleInfoProvider lists the registered rules. The rules package sets
// DefaultRuleInfoProvider so this package need not import lint.
type RuleInfoProvider func() []RuleInfo

//nolint:gochecknoglobals // set once by the rules package
var DefaultRuleInfoProvider RuleInfoProvider

var starterTemplate = template.Must(template.New("config").Funcs(template.FuncMap{ //nolint:gochecknoglobals // parsed once
	"wrap": func(s string) string { return strings.Join(wrapWords(s, 70), "\n  # ") },
	"join": strings.Join,
}).Parse(`# mdrefcheck configuration
# See: https://github.com/yaklabco/mdrefcheck

# Markdown flavor: commonmark or gfm (footnotes and tables need gfm)
flavor: gfm

# Severity for rules that do not set one: error, warning, or info
# severity_default: warning

# Number of parallel workers (0 = auto)
# jobs: 0

# Output format: text, json, or sarif
# format: text

# File patterns to ignore (glob patterns, ** matches across directories)
# ignore:
#   - "node_modules/**"
#   - "CHANGELOG.md"

# Check files in vendored directories too
# include_vendored: false
{{- if not .Full}}

# Rule-specific configuration, keyed by rule ID or name
# rules:
#   no-undefined-references:
#     severity: error
#     options:
#       allow:
#         - "x"
#         - source: "^todo-"
#       allow_shortcut_link: false
{{- else}}

# Rule-specific configuration
rules:
{{- range .Rules}}

  # {{.ID}}: {{.Name}}
  # {{wrap .Description}}
{{- if .Tags}}
  # Tags: {{join .Tags ", "}}
{{- end}}
  {{.ID}}:
    enabled: {{.Enabled}}
    severity: {{.Severity}}
{{- with .OptionsExample}}
{{.}}
{{- end}}
{{- end}}
{{- end}}
`))

// GenerateTemplate renders a commented starter configuration. A full
// template needs DefaultRuleInfoProvider to report at least one rule.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	data := struct {
		Full  bool
		Rules []RuleInfo
	}{Full: opts.Full}

	if opts.Full {
		if DefaultRuleInfoProvider != nil {
			data.Rules = slices.Clone(DefaultRuleInfoProvider())
		}
		if len(data.Rules) == 0 {
			return nil, errors.New("generate template: no rules registered")
		}
		slices.SortFunc(data.Rules, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })
	}

	var buf bytes.Buffer
	if err := starterTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapWords greedily splits text into lines of at most width bytes.
// A single word longer than width gets a line of its own.
func wrapWords(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for word := range strings.FieldsSeq(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
