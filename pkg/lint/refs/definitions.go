package refs

import "github.com/yaklabco/mdrefcheck/pkg/mdast"

// Definitions holds the normalized identifiers defined in a document.
type Definitions struct {
	Links     map[string]struct{}
	Footnotes map[string]struct{}
}

// CollectDefinitions walks the document once and records every link
// reference definition and every footnote definition.
func CollectDefinitions(root *mdast.Node) *Definitions {
	defs := &Definitions{
		Links:     make(map[string]struct{}),
		Footnotes: make(map[string]struct{}),
	}

	_ = mdast.Walk(root, func(n *mdast.Node) error { //nolint:errcheck // visitor never returns error
		switch n.Kind {
		case mdast.NodeDefinition:
			defs.Links[Normalize(n.DefinitionLabel())] = struct{}{}
		case mdast.NodeFootnoteDefinition:
			if id, ok := NormalizeFootnote(n.DefinitionLabel()); ok {
				defs.Footnotes[id] = struct{}{}
			}
		}
		return nil
	})

	return defs
}

// Has reports whether id is defined for the given kind.
func (d *Definitions) Has(kind Kind, id string) bool {
	if d == nil {
		return false
	}
	set := d.Links
	if kind == KindFootnote {
		set = d.Footnotes
	}
	_, ok := set[id]
	return ok
}
