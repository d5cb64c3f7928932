package mdast

import "slices"

// BuildLines indexes the lines of content. LF, CRLF and a lone CR each
// end a line. The final line is always recorded, even when empty, so
// that an offset at EOF still resolves.
func BuildLines(content []byte) []LineInfo {
	lines := []LineInfo{}
	if len(content) == 0 {
		return lines
	}

	start := 0
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c != '\n' && c != '\r' {
			continue
		}
		next := i + 1
		if c == '\r' && next < len(content) && content[next] == '\n' {
			next++
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: i, EndOffset: next})
		start = next
		i = next - 1
	}

	return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// LineCount reports how many lines the file has.
func (f *FileSnapshot) LineCount() int { return len(f.Lines) }

// LineAt maps a byte offset to a 1-based line and byte column. Offsets
// at or past EOF land on the last line; negative offsets yield (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx := len(f.Lines) - 1
	if offset < len(f.Content) {
		// First line whose end lies beyond offset.
		idx, _ = slices.BinarySearchFunc(f.Lines, offset, func(li LineInfo, off int) int {
			if li.EndOffset <= off {
				return -1
			}
			return 1
		})
		idx = min(idx, len(f.Lines)-1)
	}

	li := f.Lines[idx]
	if offset < li.StartOffset {
		return 0, 0
	}
	return idx + 1, offset - li.StartOffset + 1
}

// Offset is the inverse of LineAt. A column one past the end of the
// line is accepted.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}
	li := f.Lines[line-1]
	off := li.StartOffset + col - 1
	return off, off <= li.EndOffset
}

// LineContent returns line without its terminator, or nil when line is
// out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	li := f.Lines[line-1]
	return f.Content[li.StartOffset:li.NewlineStart]
}
