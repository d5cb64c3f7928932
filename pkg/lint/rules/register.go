package rules

import (
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewUndefinedRefsRule()) // REF001
}

// RegisterAliases registers alternate configuration names that differ
// from a rule's canonical Name().
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias(UndefinedRefsAlias, UndefinedRefsID)
}

// RuleInfos describes the rules in registry for the starter config file.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:             rule.ID(),
			Name:           rule.Name(),
			Description:    rule.Description(),
			Enabled:        rule.DefaultEnabled(),
			Severity:       rule.DefaultSeverity(),
			Tags:           rule.Tags(),
			OptionsExample: optionsExample(rule.ID()),
		})
	}
	return infos
}

func optionsExample(ruleID string) string {
	if ruleID != UndefinedRefsID {
		return ""
	}
	return `    options:
      # Identifiers or {source, flags} patterns never reported
      allow: []
      # Accept every shortcut reference such as [x]
      allow_shortcut_link: false`
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
