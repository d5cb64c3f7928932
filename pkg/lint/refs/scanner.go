package refs

import (
	"slices"

	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// frame is an open bracket on the stack.
type frame struct {
	offsets [4]int
	n       int
}

// scanner re-reads the raw source of phrasing content.
type scanner struct {
	source []byte
	emit   func(r Range, ancestors []*mdast.Node)
}

// Scan calls emit for every bracket range found in the phrasing content
// below root, with the path from root to the enclosing container.
// Headings, paragraphs and table cells start a scan; any inline child
// with children of its own is scanned with a separate stack.
func Scan(root *mdast.Node, source []byte, emit func(r Range, ancestors []*mdast.Node)) {
	s := &scanner{source: source, emit: emit}

	_ = mdast.WalkPath(root, func(n *mdast.Node, ancestors []*mdast.Node) error { //nolint:errcheck // visitor never returns error
		if n.HoldsPhrasing() {
			s.scanContainer(n, ancestors)
		}
		return nil
	})
}

func (s *scanner) scanContainer(container *mdast.Node, ancestors []*mdast.Node) {
	if !container.HasOffsets() {
		return
	}

	path := append(slices.Clone(ancestors), container)

	// Brackets may open in one text leaf and close in a later sibling.
	var stack []frame

	for child := container.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Kind == mdast.NodeText:
			if child.HasOffsets() && child.End <= len(s.source) {
				stack = s.scanText(child.Start, child.End, stack, path)
			}
		case child.HasChildren():
			s.scanContainer(child, path)
		}
	}

	// A lone `[` is dropped, but a dangling `[x][` still names x.
	for _, open := range stack {
		if open.n == 3 {
			s.emit(Range{Offsets: open.offsets, N: open.n}, path)
		}
	}
}

// scanText scans one text leaf line by line. Line breaks and the block
// quote markers after them are skipped; the stack carries across them.
func (s *scanner) scanText(start, end int, stack []frame, path []*mdast.Node) []frame {
	text := s.source[start:end]

	lineStart := 0
	for _, loc := range lineBreak.FindAllIndex(text, -1) {
		stack = s.scanLine(start+lineStart, start+loc[0], stack, path)
		lineStart = loc[1]
	}

	return s.scanLine(start+lineStart, end, stack, path)
}

func (s *scanner) scanLine(start, end int, stack []frame, path []*mdast.Node) []frame {
	for idx := start; idx < end; {
		switch s.source[idx] {
		case '[':
			stack = append(stack, frame{offsets: [4]int{idx}, n: 1})
			idx++

		case '\\':
			idx += 2

		case ']':
			if len(stack) == 0 {
				idx++
				continue
			}

			top := &stack[len(stack)-1]
			switch {
			case top.n == 3:
				top.offsets[3] = idx + 1
				top.n = 4
			case top.n == 1 && idx+1 < end && s.source[idx+1] == '[':
				top.offsets[1] = idx + 1
				top.offsets[2] = idx + 1
				top.n = 3
				idx += 2
				continue
			default:
				top.offsets[1] = idx + 1
				top.n = 2
			}

			s.emit(Range{Offsets: top.offsets, N: top.n}, path)
			stack = stack[:len(stack)-1]
			idx++

		default:
			idx++
		}
	}

	return stack
}
