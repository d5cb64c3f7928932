package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdrefcheck/pkg/langdetect"
)

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"README.md", true},
		{"docs/guide.markdown", true},
		{"notes/today.mdown", true},
		{"a/b/c.mkd", true},
		{"main.go", false},
		{"config.yaml", false},
		{"Makefile", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsMarkdown(tt.path))
		})
	}
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/", true},
		{"web/node_modules/pkg/README.md", true},
		{"vendor/github.com/x/README.md", true},
		{"docs/guide.md", false},
		{"README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsVendored(tt.path))
		})
	}
}

func TestIsHidden(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsHidden(".git"))
	assert.True(t, langdetect.IsHidden("a/.github/"))
	assert.True(t, langdetect.IsHidden("docs/.draft.md"))
	assert.False(t, langdetect.IsHidden("."))
	assert.False(t, langdetect.IsHidden(".."))
	assert.False(t, langdetect.IsHidden("docs/guide.md"))
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	exts := langdetect.Extensions()
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".markdown")
	assert.IsNonDecreasing(t, exts)
}
