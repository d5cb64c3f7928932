// Package refs finds bracketed reference syntax in Markdown phrasing content
// and resolves it against the document's definitions and a configured allow
// list.
//
// Brackets that never became links are plain text in the parsed tree, so the
// scanner re-reads the raw source of every text leaf, tracks bracket pairs
// with a stack local to each phrasing container and classifies what it finds
// as link, image or footnote references.
package refs

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// lineBreak matches a line ending followed by the indentation and block
// quote markers that continue a logical line inside a container.
var lineBreak = regexp.MustCompile(`(\r?\n|\r)[\t ]*(>[\t ]*)*`)

// Normalize canonicalizes a label so that `Foo`, ` foo ` and a label
// wrapped across block quote lines all compare equal.
func Normalize(label string) string {
	label = lineBreak.ReplaceAllLiteralString(label, " ")
	label = strings.Join(strings.Fields(label), " ")
	// cases.Caser is stateful; a fresh one keeps Normalize safe for
	// concurrent use.
	return cases.Fold().String(label)
}

// NormalizeFootnote normalizes a footnote label and strips its leading
// caret. It reports false when the result contains whitespace, which no
// footnote identifier can.
func NormalizeFootnote(label string) (string, bool) {
	id := strings.TrimPrefix(Normalize(label), "^")
	if strings.ContainsAny(id, " \t\n\r") {
		return "", false
	}
	return id, true
}
