package mdast

// BlockAttrs carries the details of block nodes. At most one field is
// meaningful for a given Kind.
type BlockAttrs struct {
	// HeadingLevel is 1-6 for NodeHeading.
	HeadingLevel int

	List       *ListAttrs
	CodeBlock  *CodeBlockAttrs
	Definition *DefinitionAttrs
}

// ListAttrs describes a NodeList.
type ListAttrs struct {
	Ordered bool
	Start   int
	Tight   bool
}

// CodeBlockAttrs describes a NodeCodeBlock. Info is empty for indented
// blocks.
type CodeBlockAttrs struct {
	Info     string
	Indented bool
}

// DefinitionAttrs describes a NodeDefinition or NodeFootnoteDefinition.
// Label is the raw label as written, without brackets and, for
// footnotes, without the caret.
type DefinitionAttrs struct {
	Label       string
	Destination string
	Title       string
}

// InlineAttrs carries the details of inline nodes.
type InlineAttrs struct {
	// Link is set for NodeLink and NodeImage.
	Link *LinkAttrs

	// FootnoteIndex is the 1-based number of a NodeFootnoteReference.
	FootnoteIndex int
}

// LinkAttrs describes a resolved link or image.
type LinkAttrs struct {
	Destination string
	Title       string
	Autolink    bool
}

// DefinitionLabel returns the raw label of a definition node, or "".
func (n *Node) DefinitionLabel() string {
	if n.Block == nil || n.Block.Definition == nil {
		return ""
	}
	return n.Block.Definition.Label
}
