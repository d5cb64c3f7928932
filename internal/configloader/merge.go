package configloader

import (
	"cmp"
	"maps"

	"github.com/yaklabco/mdrefcheck/pkg/config"
)

// merge layers override on top of base and returns a new Config.
//
// Zero scalars and nil slices in override leave base untouched, and
// booleans can only be switched on since false is indistinguishable
// from unset. Rule entries merge field by field and option by option.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	out.Flavor = cmp.Or(override.Flavor, base.Flavor)
	out.SeverityDefault = cmp.Or(override.SeverityDefault, base.SeverityDefault)
	out.Format = cmp.Or(override.Format, base.Format)
	out.RuleFormat = cmp.Or(override.RuleFormat, base.RuleFormat)
	out.Jobs = cmp.Or(override.Jobs, base.Jobs)
	out.IncludeVendored = base.IncludeVendored || override.IncludeVendored
	out.Strict = base.Strict || override.Strict

	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	if override.EnableRules != nil {
		out.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		out.DisableRules = override.DisableRules
	}

	if base.Rules != nil || override.Rules != nil {
		out.Rules = make(map[string]config.RuleConfig, len(base.Rules)+len(override.Rules))
		for id, rc := range base.Rules {
			out.Rules[id] = mergeRuleConfig(config.RuleConfig{}, rc)
		}
		for id, rc := range override.Rules {
			out.Rules[id] = mergeRuleConfig(out.Rules[id], rc)
		}
	}

	return &out
}

// mergeRuleConfig layers override on base. The result never shares an
// options map with either input.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	out := base
	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.Severity != nil {
		out.Severity = override.Severity
	}

	if len(base.Options) > 0 || len(override.Options) > 0 {
		out.Options = make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(out.Options, base.Options)
		maps.Copy(out.Options, override.Options)
	}
	return out
}
