package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/mdrefcheck/pkg/config"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/runner"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifToolURI = "https://github.com/yaklabco/mdrefcheck"
)

// SARIFLog is the subset of a SARIF 2.1.0 log that mdrefcheck emits.
type SARIFLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is one invocation of the checker.
type SARIFRun struct {
	Tool struct {
		Driver SARIFDriver `json:"driver"`
	} `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFDriver identifies the tool and the rules it ran.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is a reportingDescriptor.
type SARIFRule struct {
	ID               string    `json:"id"`
	Name             string    `json:"name,omitempty"`
	ShortDescription SARIFText `json:"shortDescription"`
	DefaultConfig    *struct {
		Level string `json:"level"`
	} `json:"defaultConfiguration,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// SARIFText is a plain-text message.
type SARIFText struct {
	Text string `json:"text"`
}

// SARIFResult is one undefined reference.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFLocation wraps a physical location.
type SARIFLocation struct {
	PhysicalLocation struct {
		ArtifactLocation struct {
			URI string `json:"uri"`
		} `json:"artifactLocation"`
		Region SARIFRegion `json:"region"`
	} `json:"physicalLocation"`
}

// SARIFRegion is a span in a file. Columns are 1-based and the end
// column is exclusive.
type SARIFRegion struct {
	StartLine   int  `json:"startLine"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFInvocation reports whether every file could be read and parsed.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification describes a file that could not be checked.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFReporter writes a SARIF log.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter returns a SARIF reporter writing to opts.Writer.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (n int, err error) {
	defer func() {
		if ferr := r.bw.Flush(); err == nil {
			err = ferr
		}
	}()

	run := r.run(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	doc := SARIFLog{Schema: sarifSchema, Version: sarifVersion, Runs: []SARIFRun{run}}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(run.Results), nil
}

func (r *SARIFReporter) run(result *runner.Result) SARIFRun {
	var run SARIFRun
	run.Tool.Driver = SARIFDriver{
		Name:           "mdrefcheck",
		Version:        r.opts.Version,
		InformationURI: sarifToolURI,
		Rules:          []SARIFRule{},
	}
	run.Results = []SARIFResult{}

	rules := ruleTable{driver: &run.Tool.Driver, index: map[string]int{}}
	if r.opts.Registry != nil {
		for _, rule := range r.opts.Registry.Rules() {
			rules.add(describeRule(rule))
		}
	}
	if result == nil {
		return run
	}

	inv := SARIFInvocation{ExecutionSuccessful: true}
	for _, file := range result.Files {
		uri := filepath.ToSlash(r.opts.displayPath(file.Path))

		if file.Error != nil {
			inv.ExecutionSuccessful = false
			inv.ToolExecutionNotifications = append(inv.ToolExecutionNotifications, SARIFNotification{
				Level:     "error",
				Message:   SARIFText{Text: file.Error.Error()},
				Locations: []SARIFLocation{location(uri, SARIFRegion{StartLine: 1})},
			})
			continue
		}

		for _, diag := range file.Diagnostics() {
			run.Results = append(run.Results, SARIFResult{
				RuleID: diag.RuleID,
				RuleIndex: rules.add(SARIFRule{
					ID:               diag.RuleID,
					Name:             diag.RuleName,
					ShortDescription: SARIFText{Text: diag.RuleName},
				}),
				Level:     sarifLevel(diag.Severity),
				Message:   SARIFText{Text: diag.Message},
				Locations: []SARIFLocation{location(uri, region(&diag))},
			})
		}
	}
	run.Invocations = []SARIFInvocation{inv}

	return run
}

// ruleTable keeps driver rules unique by ID.
type ruleTable struct {
	driver *SARIFDriver
	index  map[string]int
}

func (t ruleTable) add(rule SARIFRule) int {
	if i, ok := t.index[rule.ID]; ok {
		return i
	}
	t.index[rule.ID] = len(t.driver.Rules)
	t.driver.Rules = append(t.driver.Rules, rule)
	return t.index[rule.ID]
}

func describeRule(rule lint.Rule) SARIFRule {
	d := SARIFRule{
		ID:               rule.ID(),
		Name:             rule.Name(),
		ShortDescription: SARIFText{Text: rule.Description()},
		Properties:       map[string]any{"tags": rule.Tags()},
	}
	d.DefaultConfig = &struct {
		Level string `json:"level"`
	}{Level: sarifLevel(rule.DefaultSeverity())}
	return d
}

func location(uri string, reg SARIFRegion) SARIFLocation {
	var loc SARIFLocation
	loc.PhysicalLocation.ArtifactLocation.URI = uri
	loc.PhysicalLocation.Region = reg
	return loc
}

func region(diag *lint.Diagnostic) SARIFRegion {
	reg := SARIFRegion{
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
	}
	if diag.StartOffset >= 0 && diag.EndOffset >= diag.StartOffset {
		off, length := diag.StartOffset, diag.EndOffset-diag.StartOffset
		reg.ByteOffset, reg.ByteLength = &off, &length
	}
	return reg
}

func sarifLevel(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
