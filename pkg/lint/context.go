package lint

import (
	"context"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// RuleContext is what a rule sees while checking one file. It lives for
// a single Apply call, which is why it carries a context.Context.
type RuleContext struct {
	Ctx context.Context

	File *mdast.FileSnapshot
	Root *mdast.Node

	// Config is the whole resolved configuration; RuleConfig is the
	// entry for the running rule and may be nil.
	Config     *config.Config
	RuleConfig *config.RuleConfig
}

// NewRuleContext returns a context for checking file. file may be nil.
func NewRuleContext(ctx context.Context, file *mdast.FileSnapshot, cfg *config.Config, ruleCfg *config.RuleConfig) *RuleContext {
	rc := &RuleContext{Ctx: ctx, File: file, Config: cfg, RuleConfig: ruleCfg}
	if file != nil {
		rc.Root = file.Root
	}
	return rc
}

// Cancelled reports whether Ctx is done.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw value of a rule option, or def.
func (rc *RuleContext) Option(key string, def any) any {
	if v, ok := option(rc.RuleConfig, key); ok {
		return v
	}
	return def
}

// OptionBool returns a boolean rule option, or def.
func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return OptionBool(rc.RuleConfig, def, key)
}

// OptionSlice returns a list rule option.
func (rc *RuleContext) OptionSlice(key string) []any {
	return OptionSlice(rc.RuleConfig, key)
}

// OptionBool returns the first of keys that holds a bool, or def. The
// extra keys are spellings accepted for compatibility.
func OptionBool(ruleCfg *config.RuleConfig, def bool, keys ...string) bool {
	for _, key := range keys {
		v, _ := option(ruleCfg, key)
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// OptionSlice returns a list option as []any. Config files decode lists
// as []any and flags produce []string; anything else yields nil.
func OptionSlice(ruleCfg *config.RuleConfig, key string) []any {
	v, _ := option(ruleCfg, key)
	switch list := v.(type) {
	case []any:
		return list
	case []string:
		out := make([]any, 0, len(list))
		for _, s := range list {
			out = append(out, s)
		}
		return out
	}
	return nil
}

func option(ruleCfg *config.RuleConfig, key string) (any, bool) {
	if ruleCfg == nil {
		return nil, false
	}
	v, ok := ruleCfg.Options[key]
	return v, ok
}
