package mdast

// NewNode returns a detached node of kind without source offsets.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind, Start: -1, End: -1}
}

// NewDocument returns an empty document root.
func NewDocument() *Node { return NewNode(NodeDocument) }

// NewText returns a text leaf over content[start:end].
func NewText(start, end int) *Node {
	n := NewNode(NodeText)
	SetRange(n, start, end)
	return n
}

// AppendChild makes child the last child of parent, detaching it from
// any previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	RemoveChild(child.Parent, child)

	child.Parent, child.Prev, child.Next = parent, parent.LastChild, nil
	if last := parent.LastChild; last != nil {
		last.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild unlinks child from parent. It is a no-op when child does
// not belong to parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if prev := child.Prev; prev != nil {
		prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if next := child.Next; next != nil {
		next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}
	child.Parent, child.Prev, child.Next = nil, nil, nil
}

// SetRange records n's source offsets. A negative or inverted range
// clears them.
func SetRange(n *Node, start, end int) {
	if n == nil {
		return
	}
	if start < 0 || end < start {
		start, end = -1, -1
	}
	n.Start, n.End = start, end
}

// SpanChildren fills in offsets for every node that lacks them with the
// smallest range covering its children, working bottom-up.
func SpanChildren(root *Node) {
	if root == nil {
		return
	}

	start, end := -1, -1
	for c := root.FirstChild; c != nil; c = c.Next {
		SpanChildren(c)
		if !c.HasOffsets() {
			continue
		}
		if start < 0 {
			start = c.Start
		}
		start, end = min(start, c.Start), max(end, c.End)
	}

	if !root.HasOffsets() {
		SetRange(root, start, end)
	}
}

// SetFile points node and its whole subtree at file.
func SetFile(node *Node, file *FileSnapshot) {
	if node == nil {
		return
	}
	node.File = file
	for c := node.FirstChild; c != nil; c = c.Next {
		SetFile(c, file)
	}
}
