package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefcheck/internal/cli"
	"github.com/yaklabco/mdrefcheck/pkg/reporter"
)

// undefinedDoc has one undefined link, one undefined image and one
// defined reference.
const undefinedDoc = "# Guide\n\nSee [Venus] and ![Mars][planet].\n\n[Mercury][]\n\n[mercury]: https://example.com\n"

type execResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with an empty explicit config so the
// developer's own configuration cannot leak in.
func execute(t *testing.T, cfgContent string, args ...string) execResult {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfgContent), 0o644))

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_CheckReportsWarnings(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "", "check", doc)

	require.NoError(t, res.err, "warnings do not fail without --strict")
	assert.Contains(t, res.stdout, `Found reference to undefined definition for a link "venus"`)
	assert.Contains(t, res.stdout, `Found reference to undefined definition for an image "planet"`)
	assert.NotContains(t, res.stdout, `"mercury"`)
	assert.Contains(t, res.stdout, "(no-undefined-references)")
	assert.Contains(t, res.stdout, "2 issues (2 warnings) in 1 file")
}

func TestIntegration_LintAlias(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "", "lint", "--no-context", doc)

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"venus"`)
	assert.NotContains(t, res.stdout, "^")
}

func TestIntegration_StrictExitCode(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "", "check", "--strict", doc)

	require.Error(t, res.err)
	require.ErrorIs(t, res.err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitWarningsFound, cli.ExitCode(res.err))
	assert.False(t, cli.ShouldLog(res.err))
}

func TestIntegration_ConfigSeverityByAlias(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "rules:\n  undefined-references:\n    severity: error\n", "check", doc)

	require.Error(t, res.err)
	assert.Equal(t, cli.ExitIssuesFound, cli.ExitCode(res.err))
	assert.Contains(t, res.stdout, "2 issues (2 errors)")
}

func TestIntegration_RuleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		want    string
		notWant string
	}{
		{"name", "(no-undefined-references)", "REF001"},
		{"id", "(REF001)", "no-undefined-references"},
		{"combined", "(REF001/no-undefined-references)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			doc := writeDoc(t, undefinedDoc)
			res := execute(t, "", "check", "--rule-format", tt.format, doc)

			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, res.stdout, tt.notWant)
			}
		})
	}
}

func TestIntegration_AllowFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		content string
		want    []string
		notWant []string
	}{
		{
			name:    "literal allow",
			args:    []string{"--allow", "Venus"},
			content: undefinedDoc,
			want:    []string{`"planet"`},
			notWant: []string{`"venus"`},
		},
		{
			name:    "allow pattern is case-insensitive",
			args:    []string{"--allow-pattern", "^PLAN"},
			content: undefinedDoc,
			want:    []string{`"venus"`},
			notWant: []string{`"planet"`},
		},
		{
			name:    "allow shortcut link",
			args:    []string{"--allow-shortcut-link"},
			content: undefinedDoc,
			want:    []string{`"planet"`},
			notWant: []string{`"venus"`},
		},
		{
			name:    "config and flag entries combine",
			args:    []string{"--allow", "planet"},
			content: undefinedDoc,
			notWant: []string{`"venus"`, `"planet"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := ""
			if tt.name == "config and flag entries combine" {
				cfg = "rules:\n  REF001:\n    options:\n      allow: [venus]\n"
			}

			doc := writeDoc(t, tt.content)
			res := execute(t, cfg, append([]string{"check"}, append(tt.args, doc)...)...)
			require.NoError(t, res.err)

			for _, want := range tt.want {
				assert.Contains(t, res.stdout, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, res.stdout, notWant)
			}
		})
	}
}

func TestIntegration_InvalidAllowPatternIsConfigError(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "", "check", "--allow-pattern", "(", doc)

	require.Error(t, res.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))
	assert.Empty(t, res.stdout, "no partial output")
}

func TestIntegration_InvalidConfigFile(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "flavor: markdown-extra\n", "check", doc)

	require.Error(t, res.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))
}

func TestIntegration_UnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "check", "--no-such-flag")

	require.Error(t, res.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}

func TestIntegration_DisableRule(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "", "check", "--strict", "--disable", "no-undefined-references", doc)

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No undefined references")
}

func TestIntegration_FootnotesJSON(t *testing.T) {
	t.Parallel()

	undefined := writeDoc(t, "Text[^note].\n")
	res := execute(t, "", "check", "--format", "json", undefined)
	require.NoError(t, res.err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].Diagnostics, 1)
	assert.Equal(t, `Found reference to undefined definition for a footnote "note"`, out.Files[0].Diagnostics[0].Message)

	defined := writeDoc(t, "Text[^note].\n\n[^note]: A footnote.\n")
	res = execute(t, "", "check", "--format", "json", "--strict", defined)
	require.NoError(t, res.err)
}

func TestIntegration_SARIFOutput(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, undefinedDoc)
	res := execute(t, "", "check", "--format", "sarif", "--compact", doc)
	require.NoError(t, res.err)

	var out reporter.SARIFLog
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Runs, 1)
	assert.Equal(t, "1.2.3", out.Runs[0].Tool.Driver.Version)
	assert.Len(t, out.Runs[0].Results, 2)
}

func TestIntegration_RulesJSON(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "rules", "--json")
	require.NoError(t, res.err)

	var rules []struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Aliases  []string `json:"aliases"`
		Severity string   `json:"severity"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "REF001", rules[0].ID)
	assert.Equal(t, "no-undefined-references", rules[0].Name)
	assert.Equal(t, []string{"undefined-references"}, rules[0].Aliases)
	assert.Equal(t, "warning", rules[0].Severity)
}

func TestIntegration_RulesText(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "rules", "--rule-format", "combined")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "REF001/no-undefined-references")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdrefcheck.yml")

	res := execute(t, "", "init", "--output", path)
	require.NoError(t, res.err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "REF001")

	// Tests never run with a terminal on stdin, so no prompt is shown.
	res = execute(t, "", "init", "--output", path)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--force")

	res = execute(t, "", "init", "--output", path, "--full", "--force")
	require.NoError(t, res.err)
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mdrefcheck")
	assert.Contains(t, res.stdout, "1.2.3")
	assert.Contains(t, res.stdout, "abc123")
}
