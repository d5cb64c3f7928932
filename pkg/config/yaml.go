package config

import (
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a configuration file. Rules is never nil on success.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	return &cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Ignore = slices.Clone(c.Ignore)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)
	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = rc.clone()
		}
	}
	return &out
}

func (rc RuleConfig) clone() RuleConfig {
	out := RuleConfig{Enabled: clonePtr(rc.Enabled), Severity: clonePtr(rc.Severity)}
	if rc.Options != nil {
		out.Options = cloneOptions(rc.Options)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneOptions deep-copies rule options by re-encoding them as YAML,
// which is where they came from. Values YAML cannot carry fall back to
// a shallow copy.
func cloneOptions(opts map[string]any) map[string]any {
	out := make(map[string]any, len(opts))
	if data, err := yaml.Marshal(opts); err == nil && yaml.Unmarshal(data, &out) == nil {
		return out
	}
	maps.Copy(out, opts)
	return out
}
