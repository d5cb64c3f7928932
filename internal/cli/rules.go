package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefcheck/internal/logging"
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	json       bool
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long: `List all registered rules with their IDs, names, aliases,
default severity and description.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), lint.DefaultRegistry, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output rules as JSON")

	return cmd
}

func runRules(out io.Writer, registry *lint.Registry, flags *rulesFlags) error {
	rules := registry.Rules()

	if flags.json {
		return writeRulesJSON(out, registry, rules)
	}

	logger := logging.NewInteractive()
	logger.SetOutput(out)

	ruleFormat := config.RuleFormat(flags.ruleFormat)
	for _, rule := range rules {
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldAliases, registry.Aliases(rule.ID()),
			logging.FieldDescription, rule.Description(),
		)
	}

	return nil
}

func writeRulesJSON(out io.Writer, registry *lint.Registry, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Aliases:     registry.Aliases(rule.ID()),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
