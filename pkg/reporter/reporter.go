// Package reporter renders check results as text, JSON or SARIF.
package reporter

import (
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/mdrefcheck/pkg/runner"
)

// Reporter writes a check result in some output format.
type Reporter interface {
	// Report writes result and returns how many diagnostics it wrote.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Format names an output format.
type Format string

// Output formats.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

var formats = []Format{FormatText, FormatJSON, FormatSARIF} //nolint:gochecknoglobals // enum values

// ParseFormat validates s. The empty string means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, json, sarif", s)
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool { return slices.Contains(formats, f) }

// New returns the reporter for opts.Format, writing to stdout when
// opts.Writer is nil.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
