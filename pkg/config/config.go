// Package config defines core configuration types for mdrefcheck.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-undefined-references"
	RuleFormatID       RuleFormat = "id"       // "REF001"
	RuleFormatCombined RuleFormat = "combined" // "REF001/no-undefined-references"
)

// IsValid returns true if the rule format is supported.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is supported.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// Config is the root configuration structure.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// SeverityDefault is the severity for rules whose config does not set one.
	// Empty means each rule's own default.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// IncludeVendored disables skipping of vendored directories.
	IncludeVendored bool `yaml:"include_vendored,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Jobs specifies the number of parallel workers (0 means GOMAXPROCS).
	Jobs int `yaml:"jobs,omitempty"`

	// CLI-level options (not persisted to config files).

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`

	// Strict makes warnings fail the run.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorGFM,
		Rules:      make(map[string]RuleConfig),
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0,
	}
}

// RuleOptions returns the options map for a rule, creating the rule entry
// and the map if needed so callers can set values in place.
func (c *Config) RuleOptions(ruleID string) map[string]any {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
	rc := c.Rules[ruleID]
	if rc.Options == nil {
		rc.Options = make(map[string]any)
		c.Rules[ruleID] = rc
	}
	return rc.Options
}
