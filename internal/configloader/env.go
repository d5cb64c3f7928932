package configloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint/rules"
)

const (
	envVarPrefix         = "MDREFCHECK_"
	optAllowShortcutLink = "allow_shortcut_link"
)

// envVar binds one MDREFCHECK_* variable to the config field it sets.
type envVar struct {
	suffix string
	desc   string
	apply  func(cfg *config.Config, value string) error
}

// Applied in this order, so errors are reported deterministically.
//
//nolint:gochecknoglobals // read-only
var envVars = []envVar{
	{"ALLOW", "comma-separated identifiers that are never reported", func(cfg *config.Config, v string) error {
		AppendAllow(cfg, toAny(splitList(v))...)
		return nil
	}},
	{"ALLOW_SHORTCUT_LINK", "accept every shortcut reference (true/false)", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err == nil {
			cfg.RuleOptions(rules.UndefinedRefsID)[optAllowShortcutLink] = b
		}
		return err
	}},
	{"FLAVOR", "Markdown flavor: commonmark or gfm", func(cfg *config.Config, v string) error {
		cfg.Flavor = config.Flavor(v)
		return nil
	}},
	{"FORMAT", "output format: text, json or sarif", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"IGNORE", "comma-separated glob patterns to skip", func(cfg *config.Config, v string) error {
		cfg.Ignore = splitList(v)
		return nil
	}},
	{"INCLUDE_VENDORED", "also check vendored directories (true/false)", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err == nil {
			cfg.IncludeVendored = b
		}
		return err
	}},
	{"JOBS", "number of parallel workers, 0 for one per CPU", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err == nil {
			cfg.Jobs = n
		}
		return err
	}},
	{"SEVERITY_DEFAULT", "severity for rules without one: error, warning or info", func(cfg *config.Config, v string) error {
		cfg.SeverityDefault = v
		return nil
	}},
}

// loadFromEnv applies every non-empty MDREFCHECK_* variable to cfg.
// A value that does not parse is returned as a *ValidationError.
func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return &ValidationError{Field: name, Value: value, Message: fmt.Sprintf("invalid value %q", value), Err: err}
		}
	}
	return nil
}

// EnvHelp describes the supported environment variables, one per line.
func EnvHelp() string {
	var b strings.Builder
	for _, ev := range envVars {
		fmt.Fprintf(&b, "  %-32s %s\n", envVarPrefix+ev.suffix, ev.desc)
	}
	return b.String()
}

// AppendAllow adds allow entries to the undefined references rule after
// any entries already configured.
func AppendAllow(cfg *config.Config, entries ...any) {
	if len(entries) == 0 {
		return
	}
	opts := cfg.RuleOptions(rules.UndefinedRefsID)

	var merged []any
	switch existing := opts["allow"].(type) {
	case []any:
		merged = append(merged, existing...)
	case []string:
		merged = append(merged, toAny(existing)...)
	}
	opts["allow"] = append(merged, entries...)
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
