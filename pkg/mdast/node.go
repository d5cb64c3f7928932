package mdast

import (
	"iter"
	"strings"
)

// NodeKind is the type of a Node.
type NodeKind uint16

// Block kinds come first, then inline kinds, so IsBlock and IsInline
// are range checks.
const (
	NodeDocument NodeKind = iota
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeDefinition
	NodeFootnoteList
	NodeFootnoteDefinition
	NodeTable
	NodeTableRow
	NodeTableCell

	NodeText
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeFootnoteReference
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// NodeRaw stands in for anything the parser could not map.
	NodeRaw
)

const kindNames = "Document Paragraph Heading List ListItem Blockquote CodeBlock ThematicBreak " +
	"HTMLBlock Definition FootnoteList FootnoteDefinition Table TableRow TableCell " +
	"Text Emphasis Strong Strikethrough CodeSpan Link Image FootnoteReference " +
	"SoftBreak HardBreak HTMLInline Raw"

var kindNameList = strings.Fields(kindNames) //nolint:gochecknoglobals // read-only

func (k NodeKind) String() string {
	if int(k) < len(kindNameList) {
		return kindNameList[k]
	}
	return "Unknown"
}

// Node is an element of the Markdown tree. Nodes never copy text; Start
// and End index into File.Content.
type Node struct {
	Kind NodeKind

	Parent, FirstChild, LastChild *Node
	Prev, Next                    *Node

	// Start and End delimit the node in File.Content, End exclusive.
	// Both are -1 when the node has no source span of its own, as for
	// definitions goldmark consumes before building its tree.
	Start, End int

	File *FileSnapshot

	Block  *BlockAttrs
	Inline *InlineAttrs
}

// IsBlock reports whether n is a block-level node.
func (n *Node) IsBlock() bool { return n.Kind <= NodeTableCell }

// IsInline reports whether n is an inline node. NodeRaw is neither.
func (n *Node) IsInline() bool { return n.Kind >= NodeText && n.Kind <= NodeHTMLInline }

// HoldsPhrasing reports whether n's children are running text: the
// inline content of headings, paragraphs and table cells.
func (n *Node) HoldsPhrasing() bool {
	return n.Kind == NodeHeading || n.Kind == NodeParagraph || n.Kind == NodeTableCell
}

// HasOffsets reports whether n has a source span.
func (n *Node) HasOffsets() bool { return n.Start >= 0 && n.End >= n.Start }

// HasChildren reports whether n has any children.
func (n *Node) HasChildren() bool { return n.FirstChild != nil }

// ChildNodes iterates over n's direct children.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.FirstChild; c != nil; c = c.Next {
			if !yield(c) {
				return
			}
		}
	}
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for range n.ChildNodes() {
		count++
	}
	return count
}
