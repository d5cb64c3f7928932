package mdast

// SourcePosition is a 1-based line/column range. The end column points
// one past the last byte, as unist positions do. The zero value means
// "no location".
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsValid reports whether every coordinate is set.
func (sp SourcePosition) IsValid() bool {
	return min(sp.StartLine, sp.StartColumn, sp.EndLine, sp.EndColumn) > 0
}

// SourcePosition returns n's line/column range, or the zero value when
// n has no file or no offsets.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || !n.HasOffsets() {
		return SourcePosition{}
	}
	return n.File.PositionOf(n.Start, n.End)
}

// Text returns the source bytes n covers, or nil.
func (n *Node) Text() []byte {
	if n.File == nil || !n.HasOffsets() || n.End > len(n.File.Content) {
		return nil
	}
	return n.File.Content[n.Start:n.End]
}

// PositionOf converts the half-open byte range [start, end) into line
// and column coordinates.
func (f *FileSnapshot) PositionOf(start, end int) SourcePosition {
	var sp SourcePosition
	sp.StartLine, sp.StartColumn = f.LineAt(start)
	sp.EndLine, sp.EndColumn = f.LineAt(end)
	return sp
}
