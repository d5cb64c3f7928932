package refs

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// patternTimeout bounds a single allow pattern match.
const patternTimeout = 100 * time.Millisecond

// ErrInvalidAllowEntry is returned for allow list entries that cannot be
// compiled.
var ErrInvalidAllowEntry = errors.New("invalid allow entry")

// AllowList holds identifiers that are never reported even when undefined.
type AllowList struct {
	literals map[string]struct{}
	patterns []*regexp2.Regexp
}

// Pattern describes an ECMAScript regular expression allow entry.
// Without FlagsSet the pattern compiles with the "i" flag; with it,
// Flags is used as given, so an empty Flags is case-sensitive.
type Pattern struct {
	Source   string
	Flags    string
	FlagsSet bool
}

// CompileAllowList builds an AllowList from decoded configuration.
// Each entry is either a literal string or a pattern given as a Pattern or
// as a map with "source" and optional "flags" keys.
func CompileAllowList(entries []any) (*AllowList, error) {
	list := &AllowList{literals: make(map[string]struct{})}

	for idx, entry := range entries {
		switch val := entry.(type) {
		case string:
			list.literals[Normalize(val)] = struct{}{}

		case Pattern:
			if err := list.addPattern(val); err != nil {
				return nil, fmt.Errorf("allow[%d]: %w", idx, err)
			}

		case map[string]any:
			pattern, err := patternFromMap(val)
			if err != nil {
				return nil, fmt.Errorf("allow[%d]: %w", idx, err)
			}
			if err := list.addPattern(pattern); err != nil {
				return nil, fmt.Errorf("allow[%d]: %w", idx, err)
			}

		default:
			return nil, fmt.Errorf("allow[%d]: %w: expected string or {source, flags}, got %T",
				idx, ErrInvalidAllowEntry, entry)
		}
	}

	return list, nil
}

// Allows reports whether a normalized identifier is allowed.
func (l *AllowList) Allows(id string) bool {
	if l == nil {
		return false
	}
	if _, ok := l.literals[id]; ok {
		return true
	}
	for _, re := range l.patterns {
		// A match that errors, such as a timeout, counts as no match.
		if ok, err := re.MatchString(id); err == nil && ok {
			return true
		}
	}
	return false
}

// Len returns the number of literals and patterns in the list.
func (l *AllowList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.literals) + len(l.patterns)
}

func (l *AllowList) addPattern(p Pattern) error {
	re, err := compilePattern(p)
	if err != nil {
		return err
	}
	l.patterns = append(l.patterns, re)
	return nil
}

func patternFromMap(m map[string]any) (Pattern, error) {
	var pattern Pattern

	for key, raw := range m {
		if key == "flags" && raw == nil {
			continue
		}
		str, ok := raw.(string)
		if !ok {
			return Pattern{}, fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidAllowEntry, key, raw)
		}
		switch key {
		case "source":
			pattern.Source = str
		case "flags":
			pattern.Flags, pattern.FlagsSet = str, true
		default:
			return Pattern{}, fmt.Errorf("%w: unknown key %q", ErrInvalidAllowEntry, key)
		}
	}

	if pattern.Source == "" {
		return Pattern{}, fmt.Errorf("%w: pattern requires a non-empty source", ErrInvalidAllowEntry)
	}

	return pattern, nil
}

// compilePattern maps JavaScript RegExp flags onto regexp2 options.
// g, y and u have no meaning for a whole-identifier match and are accepted.
func compilePattern(p Pattern) (*regexp2.Regexp, error) {
	flags := p.Flags
	if !p.FlagsSet {
		flags = "i"
	}

	var opts regexp2.RegexOptions = regexp2.ECMAScript
	for _, flag := range flags {
		switch flag {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'g', 'y', 'u':
		default:
			return nil, fmt.Errorf("%w: unknown flag %q in pattern %q", ErrInvalidAllowEntry, flag, p.Source)
		}
	}

	re, err := regexp2.Compile(p.Source, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidAllowEntry, p.Source, err)
	}
	re.MatchTimeout = patternTimeout
	return re, nil
}
