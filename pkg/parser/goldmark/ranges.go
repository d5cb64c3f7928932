package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// blockRange returns the byte range covered by a block node's lines.
// Inline nodes and blocks without lines return (-1, -1); their span is
// derived from their children afterwards.
func blockRange(gmNode ast.Node) (int, int) {
	if gmNode.Type() != ast.TypeBlock {
		return -1, -1
	}

	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return -1, -1
	}

	return lines.At(0).Start, lines.At(lines.Len() - 1).Stop
}

// childSegmentRange returns the union of the segments of a node's
// direct text children.
func childSegmentRange(gmNode ast.Node) (int, int) {
	start, end := -1, -1

	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		if start == -1 || t.Segment.Start < start {
			start = t.Segment.Start
		}
		if t.Segment.Stop > end {
			end = t.Segment.Stop
		}
	}

	return start, end
}

// segmentsRange returns the union of a segment list.
func segmentsRange(segs *text.Segments) (int, int) {
	if segs == nil || segs.Len() == 0 {
		return -1, -1
	}

	start, end := -1, -1
	for i := range segs.Len() {
		seg := segs.At(i)
		if start == -1 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > end {
			end = seg.Stop
		}
	}

	return start, end
}
