// Package mdast is mdrefcheck's Markdown syntax tree.
//
// A FileSnapshot owns a file's bytes and a line index; its tree of
// Nodes refers back into those bytes by offset, so a check can always
// recover the exact source text of a construct.
package mdast

// FileSnapshot is a parsed file. Treat it as read-only once built.
type FileSnapshot struct {
	// Path may be empty for content that did not come from disk.
	Path    string
	Content []byte
	Lines   []LineInfo
	Root    *Node
}

// LineInfo locates one line of Content. NewlineStart is where the line
// terminator begins and equals EndOffset for an unterminated last line.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// NewFileSnapshot indexes the lines of content. Root stays nil until a
// parser fills it in.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{Path: path, Content: content, Lines: BuildLines(content)}
}
