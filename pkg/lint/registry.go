package lint

import (
	"maps"
	"slices"
	"sync"
)

// Registry maps rule IDs, names and aliases to rules. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule

	// names and aliases both point at rule IDs. Names come from
	// Rule.Name; aliases are extra spellings accepted in configuration.
	names   map[string]string
	aliases map[string]string
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string]Rule),
		names:   make(map[string]string),
		aliases: make(map[string]string),
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[rule.ID()]; ok {
		delete(r.names, old.Name())
	}
	r.rules[rule.ID()] = rule
	r.names[rule.Name()] = rule.ID()
}

// RegisterAlias makes alias resolve to ruleID. The rule does not need
// to be registered yet.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get looks key up as an ID, then as a name. Aliases are only honored
// by Resolve.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.GetByID(key); ok {
		return rule, true
	}
	return r.GetByName(key)
}

// GetByID returns the rule registered under id.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// GetByName returns the rule whose Name is name.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[r.names[name]]
	return rule, ok
}

// Resolve maps an ID, name or alias to the canonical rule ID.
// An alias pointing at an unregistered ID does not resolve.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := key
	if _, ok := r.rules[id]; !ok {
		if byName, ok := r.names[key]; ok {
			id = byName
		} else {
			id = r.aliases[key]
		}
	}

	rule, ok := r.rules[id]
	if !ok {
		return "", nil, false
	}
	return id, rule, true
}

// Rules returns every registered rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(r.rules))
	out := make([]Rule, len(ids))
	for i, id := range ids {
		out[i] = r.rules[id]
	}
	return out
}

// Aliases returns the aliases of ruleID, sorted.
func (r *Registry) Aliases(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for alias, id := range r.aliases {
		if id == ruleID {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// IDs returns the registered rule IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// DefaultRegistry holds the built-in rules, which register themselves
// from init functions.
//
//nolint:gochecknoglobals // populated by rule packages at init
var DefaultRegistry = NewRegistry()
