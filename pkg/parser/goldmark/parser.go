// Package goldmark parses Markdown into mdast trees with
// github.com/yuin/goldmark.
package goldmark

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// Supported flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// The priorities extension.Footnote registers its parsers with.
const (
	footnoteBlockPriority  = 999
	footnoteInlinePriority = 101
)

// Parser implements lint.Parser. It is safe for concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a parser for flavor. Anything other than "gfm" parses
// plain CommonMark.
func New(flavor string) *Parser {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}
	return &Parser{flavor: flavor, md: goldmark.New(flavorOptions(flavor)...)}
}

// Flavor returns the flavor the parser was built for.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds a snapshot of a private copy of content.
//
// goldmark consumes link reference definitions before building its AST,
// so they are taken from the parser context and appended to the
// document as NodeDefinition nodes without offsets, ordered by label.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var owned []byte
	if content != nil {
		owned = bytes.Clone(content)
	}
	snapshot := mdast.NewFileSnapshot(path, owned)

	pc := parser.NewContext()
	gmDoc := p.md.Parser().Parse(text.NewReader(snapshot.Content), parser.WithContext(pc))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snapshot.Root = newMapper(snapshot.Content).mapDocument(gmDoc)
	for _, def := range definitionNodes(pc.References()) {
		mdast.AppendChild(snapshot.Root, def)
	}
	mdast.SetFile(snapshot.Root, snapshot)

	return snapshot, nil
}

// definitionNodes converts goldmark's references, which keep only the
// first definition of each label, into nodes sorted by raw label.
func definitionNodes(refs []parser.Reference) []*mdast.Node {
	refs = slices.Clone(refs)
	slices.SortFunc(refs, func(a, b parser.Reference) int {
		return bytes.Compare(a.Label(), b.Label())
	})

	nodes := make([]*mdast.Node, len(refs))
	for i, ref := range refs {
		nodes[i] = mdast.NewNode(mdast.NodeDefinition)
		nodes[i].Block = &mdast.BlockAttrs{Definition: &mdast.DefinitionAttrs{
			Label:       string(ref.Label()),
			Destination: string(ref.Destination()),
			Title:       string(ref.Title()),
		}}
	}
	return nodes
}

// flavorOptions configures goldmark for flavor.
//
// GFM registers the footnote parsers directly rather than through
// extension.Footnote, whose transformer drops footnote definitions that
// nothing references. Those still count as definitions here.
func flavorOptions(flavor string) []goldmark.Option {
	if flavor != FlavorGFM {
		return nil
	}
	return []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithBlockParsers(
				util.Prioritized(extension.NewFootnoteBlockParser(), footnoteBlockPriority),
			),
			parser.WithInlineParsers(
				util.Prioritized(extension.NewFootnoteParser(), footnoteInlinePriority),
			),
		),
	}
}
