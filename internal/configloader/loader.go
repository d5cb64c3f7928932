// Package configloader resolves the effective mdrefcheck configuration.
// It discovers config files in XDG locations and the project tree,
// layers them with MDREFCHECK_* environment variables and CLI flags,
// and validates the result against the rule registry.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/mdrefcheck/internal/logging"
	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/lint/rules"
)

// LoadOptions controls Load.
type LoadOptions struct {
	// WorkingDir anchors the project config search; empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config file, if any.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds settings taken from flags.
	CLIConfig *config.Config

	// Allow holds --allow and --allow-pattern entries. They are added
	// to whatever the lower layers allow.
	Allow []any

	// AllowShortcutLink is non-nil when --allow-shortcut-link was given.
	AllowShortcutLink *bool

	// Registry resolves rule names and aliases. Nil means
	// lint.DefaultRegistry.
	Registry *lint.Registry

	getenv func(string) string
}

// LoadResult is the outcome of Load.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the config files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are problems that did not stop loading, such as
	// configuration for an unknown rule.
	Warnings []string
}

type fileLayer struct {
	name, path string
}

// Load builds the configuration from, in increasing precedence:
// defaults, the system file, the user file, the project file, the
// --config file, MDREFCHECK_* variables and CLI flags.
//
// An invalid result, including a malformed allow pattern, is reported
// as an error wrapping *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	registry := registryOrDefault(opts.Registry)
	getenv := opts.getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	var layers []fileLayer
	if !opts.IgnoreSystemConfig {
		layers = append(layers, fileLayer{"system", paths.System})
	}
	if !opts.IgnoreUserConfig {
		layers = append(layers, fileLayer{"user", paths.User})
	}
	if !opts.IgnoreProjectConfig {
		layers = append(layers, fileLayer{"project", paths.Project})
	}
	layers = append(layers, fileLayer{"explicit", paths.Explicit})

	res := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range layers {
		if layer.path == "" {
			continue
		}
		layerCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		res.canonicalizeRules(layerCfg, registry)
		cfg = merge(cfg, layerCfg)
		res.LoadedFrom = append(res.LoadedFrom, layer.path)
		logging.FromContext(ctx).Debug("loaded config", logging.FieldConfig, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := loadFromEnv(cfg, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		flagCfg := opts.CLIConfig.Clone()
		res.canonicalizeRules(flagCfg, registry)
		cfg = merge(cfg, flagCfg)
	}
	AppendAllow(cfg, opts.Allow...)
	if opts.AllowShortcutLink != nil {
		cfg.RuleOptions(rules.UndefinedRefsID)[optAllowShortcutLink] = *opts.AllowShortcutLink
	}

	cfg.EnableRules = canonicalIDs(cfg.EnableRules, registry)
	cfg.DisableRules = canonicalIDs(cfg.DisableRules, registry)

	vr := ValidateWithRegistry(cfg, registry)
	if !vr.Valid() {
		return nil, fmt.Errorf("invalid configuration: %w", vr.Err())
	}
	for _, w := range vr.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}

	res.Config = cfg
	return res, nil
}

func registryOrDefault(r *lint.Registry) *lint.Registry {
	if r == nil {
		return lint.DefaultRegistry
	}
	return r
}

func readConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// canonicalizeRules rekeys cfg.Rules by rule ID so a rule configured by
// name in one file and by ID in another merges into one entry. Two keys
// for the same rule within one file are merged in key order with a
// warning. Unknown keys are kept for validation to report.
func (res *LoadResult) canonicalizeRules(cfg *config.Config, registry *lint.Registry) {
	if len(cfg.Rules) == 0 {
		return
	}

	out := make(map[string]config.RuleConfig, len(cfg.Rules))
	firstKey := map[string]string{}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rc := cfg.Rules[key]
		id, _, ok := registry.Resolve(key)
		if !ok {
			out[key] = rc
			continue
		}
		if prev, dup := firstKey[id]; dup {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; merging", prev, key, id))
			rc = mergeRuleConfig(out[id], rc)
		} else {
			firstKey[id] = key
		}
		out[id] = rc
	}

	cfg.Rules = out
}

// canonicalIDs maps --enable/--disable arguments to rule IDs, leaving
// unknown names for validation.
func canonicalIDs(keys []string, registry *lint.Registry) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = key
		if id, _, ok := registry.Resolve(key); ok {
			out[i] = id
		}
	}
	return out
}
