package goldmark

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// Goldmark nodes that map onto a plain mdast container without attributes.
//
//nolint:gochecknoglobals // read-only
var containerKinds = map[ast.NodeKind]mdast.NodeKind{
	ast.KindParagraph:      mdast.NodeParagraph,
	ast.KindTextBlock:      mdast.NodeParagraph,
	ast.KindListItem:       mdast.NodeListItem,
	ast.KindBlockquote:     mdast.NodeBlockquote,
	east.KindStrikethrough: mdast.NodeStrikethrough,
	east.KindTable:         mdast.NodeTable,
	east.KindTableHeader:   mdast.NodeTableRow,
	east.KindTableRow:      mdast.NodeTableRow,
	east.KindTableCell:     mdast.NodeTableCell,
	east.KindFootnoteList:  mdast.NodeFootnoteList,
}

// mapper converts a goldmark AST over content into an mdast tree.
//
// Leaves and line-bearing blocks take their offsets from goldmark
// segments. Containers without lines of their own span their children.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	mdast.SpanChildren(doc)
	mdast.SetRange(doc, 0, len(m.content))
	return doc
}

// mapChildren appends the converted children of gmParent to parent.
// goldmark folds a line break into the preceding text node; here it
// becomes a sibling of its own.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for gm := gmParent.FirstChild(); gm != nil; gm = gm.NextSibling() {
		if node := m.mapNode(gm); !mergeText(parent, node) {
			mdast.AppendChild(parent, node)
		}

		if t, ok := gm.(*ast.Text); ok {
			if t.HardLineBreak() {
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
			} else if t.SoftLineBreak() {
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
			}
		}
	}
}

// mergeText extends parent's last text child when node directly
// continues it. goldmark splits a run of text wherever an inline parser
// was tried and failed, e.g. at every unresolved bracket.
func mergeText(parent, node *mdast.Node) bool {
	last := parent.LastChild
	if last == nil || last.Kind != mdast.NodeText || node.Kind != mdast.NodeText {
		return false
	}
	if !last.HasOffsets() || !node.HasOffsets() || last.End != node.Start {
		return false
	}
	last.End = node.End
	return true
}

func (m *mapper) mapNode(gm ast.Node) *mdast.Node {
	if kind, ok := containerKinds[gm.Kind()]; ok {
		return m.container(gm, mdast.NewNode(kind))
	}

	switch gmn := gm.(type) {
	case *ast.Heading:
		node := mdast.NewNode(mdast.NodeHeading)
		node.Block = &mdast.BlockAttrs{HeadingLevel: gmn.Level}
		return m.container(gm, node)

	case *ast.List:
		node := mdast.NewNode(mdast.NodeList)
		node.Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{
			Ordered: gmn.IsOrdered(),
			Start:   gmn.Start,
			Tight:   gmn.IsTight,
		}}
		return m.container(gm, node)

	case *ast.FencedCodeBlock:
		attrs := &mdast.CodeBlockAttrs{}
		if gmn.Info != nil {
			attrs.Info = string(gmn.Info.Segment.Value(m.content))
		}
		return m.leaf(gm, mdast.NodeCodeBlock, &mdast.BlockAttrs{CodeBlock: attrs})

	case *ast.CodeBlock:
		return m.leaf(gm, mdast.NodeCodeBlock, &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Indented: true}})

	case *ast.ThematicBreak:
		return m.leaf(gm, mdast.NodeThematicBreak, nil)

	case *ast.HTMLBlock:
		return m.leaf(gm, mdast.NodeHTMLBlock, nil)

	case *east.Footnote:
		node := mdast.NewNode(mdast.NodeFootnoteDefinition)
		node.Block = &mdast.BlockAttrs{Definition: &mdast.DefinitionAttrs{Label: string(gmn.Ref)}}
		return m.container(gm, node)

	case *ast.Text:
		return mdast.NewText(gmn.Segment.Start, gmn.Segment.Stop)

	case *ast.String:
		// Synthesized by goldmark; there is no source span.
		return mdast.NewNode(mdast.NodeText)

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level == 2 {
			kind = mdast.NodeStrong
		}
		return m.container(gm, mdast.NewNode(kind))

	case *ast.CodeSpan:
		// Code is never scanned for references, so its text stays unmapped.
		node := mdast.NewNode(mdast.NodeCodeSpan)
		start, end := childSegmentRange(gmn)
		mdast.SetRange(node, start, end)
		return node

	case *ast.RawHTML:
		node := mdast.NewNode(mdast.NodeHTMLInline)
		start, end := segmentsRange(gmn.Segments)
		mdast.SetRange(node, start, end)
		return node

	case *ast.Link:
		return m.container(gm, linkNode(mdast.NodeLink, string(gmn.Destination), string(gmn.Title)))

	case *ast.Image:
		return m.container(gm, linkNode(mdast.NodeImage, string(gmn.Destination), string(gmn.Title)))

	case *ast.AutoLink:
		node := linkNode(mdast.NodeLink, string(gmn.URL(m.content)), "")
		node.Inline.Link.Autolink = true
		return node

	case *east.FootnoteLink:
		node := mdast.NewNode(mdast.NodeFootnoteReference)
		node.Inline = &mdast.InlineAttrs{FootnoteIndex: gmn.Index}
		return node

	case *east.TaskCheckBox:
		return mdast.NewNode(mdast.NodeRaw)

	default:
		return m.container(gm, mdast.NewNode(mdast.NodeRaw))
	}
}

// container maps gm's children into node and gives node gm's line span
// when gm is a block that has lines.
func (m *mapper) container(gm ast.Node, node *mdast.Node) *mdast.Node {
	m.mapChildren(gm, node)
	if start, end := blockRange(gm); start >= 0 {
		mdast.SetRange(node, start, end)
	}
	return node
}

// leaf creates a childless node spanning gm's lines.
func (m *mapper) leaf(gm ast.Node, kind mdast.NodeKind, attrs *mdast.BlockAttrs) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Block = attrs
	if start, end := blockRange(gm); start >= 0 {
		mdast.SetRange(node, start, end)
	}
	return node
}

func linkNode(kind mdast.NodeKind, destination, title string) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{Destination: destination, Title: title}}
	return node
}
