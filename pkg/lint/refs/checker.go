package refs

import (
	"fmt"
	"slices"

	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// Options configures a Checker.
type Options struct {
	// Allow lists identifiers that are never reported.
	Allow *AllowList

	// AllowShortcutLink accepts every shortcut reference (`[x]`) without
	// looking it up.
	AllowShortcutLink bool
}

// Reference is an undefined reference found in a document.
type Reference struct {
	Kind       Kind
	Identifier string

	// Start and End are the byte offsets of the whole bracket range.
	Start int
	End   int

	// Shortcut is true for `[x]` and for a dangling `[x][`.
	Shortcut bool

	Position mdast.SourcePosition

	// Ancestors is the path from the document root to the phrasing
	// container holding the reference. The container is the last element;
	// text leaves are left out since one range may span several of them.
	Ancestors []*mdast.Node
}

// Message describes the reference for a diagnostic.
func (r Reference) Message() string {
	return fmt.Sprintf("Found reference to undefined definition for %s \"%s\"", r.Kind.withArticle(), r.Identifier)
}

// AncestorKinds returns the kinds of the reference's ancestors, root first.
func (r Reference) AncestorKinds() []mdast.NodeKind {
	kinds := make([]mdast.NodeKind, len(r.Ancestors))
	for i, n := range r.Ancestors {
		kinds[i] = n.Kind
	}
	return kinds
}

// Checker finds undefined references in parsed documents.
// A Checker is immutable and safe for concurrent use.
type Checker struct {
	opts Options
}

// NewChecker creates a Checker with the given options.
func NewChecker(opts Options) *Checker {
	return &Checker{opts: opts}
}

// Check returns the undefined references in file, in source order.
func (c *Checker) Check(file *mdast.FileSnapshot) []Reference {
	if file == nil || file.Root == nil {
		return nil
	}

	defs := CollectDefinitions(file.Root)

	var found []Reference
	Scan(file.Root, file.Content, func(r Range, ancestors []*mdast.Node) {
		cand, ok := Classify(file.Content, r)
		if !ok {
			return
		}

		id, undefined := c.resolve(cand, defs)
		if !undefined {
			return
		}

		start, end := cand.Range.Start(), cand.Range.End()
		found = append(found, Reference{
			Kind:       cand.Kind,
			Identifier: id,
			Start:      start,
			End:        end,
			Shortcut:   cand.Shortcut,
			Position:   file.PositionOf(start, end),
			Ancestors:  ancestors,
		})
	})

	// Inner containers finish before the ranges that enclose them.
	slices.SortStableFunc(found, func(a, b Reference) int {
		return a.Start - b.Start
	})

	return found
}

// Check is a convenience wrapper around NewChecker(opts).Check(file).
func Check(file *mdast.FileSnapshot, opts Options) []Reference {
	return NewChecker(opts).Check(file)
}

// resolve normalizes the candidate's label and reports whether it is
// undefined.
func (c *Checker) resolve(cand Candidate, defs *Definitions) (string, bool) {
	id := Normalize(cand.Label)
	if cand.Kind == KindFootnote {
		var ok bool
		if id, ok = NormalizeFootnote(cand.Label); !ok {
			return "", false
		}
	}

	switch {
	case id == "":
		// `[]`, `[ ]` and `[][]` name nothing.
		return id, false
	case c.opts.AllowShortcutLink && cand.Shortcut:
		return id, false
	case defs.Has(cand.Kind, id):
		return id, false
	case c.opts.Allow.Allows(id):
		return id, false
	}

	return id, true
}
