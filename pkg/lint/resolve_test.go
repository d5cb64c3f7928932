package lint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

const (
	testRuleID1 = "REF001"
	testRuleID2 = "REF002"
)

// testRule is a simple rule implementation for testing.
type testRule struct {
	lint.BaseRule
}

func newTestRule(id string) *testRule {
	return &testRule{
		BaseRule: lint.NewBaseRule(id, id+"-name", "", nil),
	}
}

// validatingRule rejects any options containing "bad".
type validatingRule struct {
	lint.BaseRule
}

func (r *validatingRule) ValidateOptions(cfg *config.RuleConfig) error {
	if cfg == nil {
		return nil
	}
	if _, ok := cfg.Options["bad"]; ok {
		return errors.New("option bad is not allowed")
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func resolvedIDs(resolved []lint.ResolvedRule) []string {
	ids := make([]string, 0, len(resolved))
	for _, rr := range resolved {
		ids = append(ids, rr.Rule.ID())
	}
	return ids
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(cfg *config.Config)
		want   []string
	}{
		{
			name:   "defaults enable everything",
			modify: func(*config.Config) {},
			want:   []string{testRuleID1, testRuleID2},
		},
		{
			name: "disabled in config",
			modify: func(cfg *config.Config) {
				cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(false)}
			},
			want: []string{testRuleID2},
		},
		{
			name: "cli enable overrides config",
			modify: func(cfg *config.Config) {
				cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(false)}
				cfg.EnableRules = []string{testRuleID1}
			},
			want: []string{testRuleID1, testRuleID2},
		},
		{
			name: "cli disable wins over enable",
			modify: func(cfg *config.Config) {
				cfg.EnableRules = []string{testRuleID2}
				cfg.DisableRules = []string{testRuleID2}
			},
			want: []string{testRuleID1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := lint.NewRegistry()
			registry.Register(newTestRule(testRuleID1))
			registry.Register(newTestRule(testRuleID2))

			cfg := config.NewConfig()
			tt.modify(cfg)

			assert.Equal(t, tt.want, resolvedIDs(lint.ResolveRules(registry, cfg)))
		})
	}
}

func TestResolveRules_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lint.ResolveRules(lint.NewRegistry(), config.NewConfig()))
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))

	resolved := lint.ResolveRules(registry, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, config.SeverityWarning, resolved[0].Severity)
	assert.Nil(t, resolved[0].Config)
}

func TestResolveRules_Severity(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))
	registry.Register(newTestRule(testRuleID2))

	cfg := config.NewConfig()
	cfg.SeverityDefault = "error"
	cfg.Rules[testRuleID2] = config.RuleConfig{Severity: ptr("info")}

	resolved := lint.ResolveRules(registry, cfg)
	require.Len(t, resolved, 2)
	assert.Equal(t, config.SeverityError, resolved[0].Severity, "severity_default applies")
	assert.Equal(t, config.SeverityInfo, resolved[1].Severity, "rule severity wins")
}

func TestResolveRules_InvalidSeverityDefaultIgnored(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))

	cfg := config.NewConfig()
	cfg.SeverityDefault = "loud"

	resolved := lint.ResolveRules(registry, cfg)
	require.Len(t, resolved, 1)
	assert.Equal(t, config.SeverityWarning, resolved[0].Severity)
}

func TestResolveRules_CarriesRuleConfig(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))

	cfg := config.NewConfig()
	cfg.RuleOptions(testRuleID1)["allow"] = []any{"x"}

	resolved := lint.ResolveRules(registry, cfg)
	require.Len(t, resolved, 1)
	require.NotNil(t, resolved[0].Config)
	assert.Equal(t, []any{"x"}, resolved[0].Config.Options["allow"])
}

func TestValidateRules(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&validatingRule{BaseRule: lint.NewBaseRule(testRuleID1, "checked", "", nil)})
	registry.Register(newTestRule(testRuleID2))

	cfg := config.NewConfig()
	require.NoError(t, lint.ValidateRules(registry, cfg))

	cfg.RuleOptions(testRuleID1)["bad"] = true
	err := lint.ValidateRules(registry, cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, lint.ErrInvalidConfig)
	assert.Contains(t, err.Error(), testRuleID1)

	cfg.DisableRules = []string{testRuleID1}
	require.NoError(t, lint.ValidateRules(registry, cfg), "disabled rules are not validated")
}
