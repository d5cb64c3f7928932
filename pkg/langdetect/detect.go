// Package langdetect classifies files for discovery using go-enry's
// linguist data: which files are Markdown, and which paths are vendored
// or generated trees that should not be checked.
package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// markdownLanguage is the linguist name for Markdown.
const markdownLanguage = "Markdown"

// IsMarkdown reports whether path names a Markdown file, judged by its
// file name and extension.
//
// Extensions linguist shares with other languages (".md" is also a GCC
// machine description) still count when Markdown is among the candidates.
func IsMarkdown(path string) bool {
	name := filepath.Base(path)

	if lang, ok := enry.GetLanguageByFilename(name); ok {
		return lang == markdownLanguage
	}

	return slices.Contains(enry.GetLanguagesByExtension(name, nil, nil), markdownLanguage)
}

// IsVendored reports whether a slash-separated relative path lies in a
// vendored or third-party tree (node_modules, vendor, bower_components...).
// Directories should be passed with a trailing slash.
func IsVendored(relPath string) bool {
	return enry.IsVendor(filepath.ToSlash(relPath))
}

// IsHidden reports whether the last element of path is a dot file or
// dot directory. "." and ".." are not hidden.
func IsHidden(path string) bool {
	name := filepath.Base(strings.TrimSuffix(filepath.ToSlash(path), "/"))
	return name != "." && name != ".." && strings.HasPrefix(name, ".")
}

// Extensions returns the file extensions linguist associates with Markdown.
func Extensions() []string {
	exts := enry.GetLanguageExtensions(markdownLanguage)
	out := slices.Clone(exts)
	slices.Sort(out)
	return out
}
