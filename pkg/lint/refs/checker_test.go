package refs_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefcheck/pkg/lint/refs"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
	"github.com/yaklabco/mdrefcheck/pkg/parser/goldmark"
)

// found is the part of a Reference most tests care about.
type found struct {
	Kind refs.Kind
	ID   string
}

func parse(t *testing.T, content string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	return snapshot
}

func check(t *testing.T, content string, opts refs.Options) []found {
	t.Helper()

	var got []found
	for _, ref := range refs.Check(parse(t, content), opts) {
		got = append(got, found{Kind: ref.Kind, ID: ref.Identifier})
	}
	return got
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		opts    refs.Options
		want    []found
	}{
		{
			name:    "collapsed reference with definition",
			content: "[Mercury][]\n\n[mercury]: https://example.com\n",
		},
		{
			name:    "undefined shortcut link",
			content: "[Mercury]",
			want:    []found{{refs.KindLink, "mercury"}},
		},
		{
			name:    "undefined image",
			content: "![Mars]",
			want:    []found{{refs.KindImage, "mars"}},
		},
		{
			name:    "undefined footnote",
			content: "Mercury[^note]",
			want:    []found{{refs.KindFootnote, "note"}},
		},
		{
			name:    "escaped brackets",
			content: "\\[Not a link\\]",
		},
		{
			name:    "shortcut links allowed",
			content: "[Mercury]",
			opts:    refs.Options{AllowShortcutLink: true},
		},
		{
			name:    "undefined collapsed reference uses the first label",
			content: "[Mercury][]",
			want:    []found{{refs.KindLink, "mercury"}},
		},
		{
			name:    "full reference looks up the second label",
			content: "[the planet][Venus]",
			want:    []found{{refs.KindLink, "venus"}},
		},
		{
			name:    "full reference is not a shortcut",
			content: "[the planet][Venus]",
			opts:    refs.Options{AllowShortcutLink: true},
			want:    []found{{refs.KindLink, "venus"}},
		},
		{
			name:    "dangling second bracket degrades to shortcut",
			content: "[Mercury][",
			want:    []found{{refs.KindLink, "mercury"}},
		},
		{
			name:    "dangling second bracket is allowed as shortcut",
			content: "[Mercury][",
			opts:    refs.Options{AllowShortcutLink: true},
		},
		{
			name:    "empty brackets",
			content: "a [] b [][] c [ ]",
		},
		{
			name:    "stray closing bracket",
			content: "a ] b",
		},
		{
			name:    "lone opening bracket",
			content: "a [ b",
		},
		{
			name:    "escaped opening bracket",
			content: "\\[x]",
		},
		{
			name:    "case and whitespace insensitive definitions",
			content: "[Foo   Bar] and [foo bar]\n\n[FOO BAR]: https://example.com\n",
		},
		{
			name:    "footnote with definition",
			content: "Text[^1].\n\n[^1]: Defined.\n",
		},
		{
			name:    "footnote label with whitespace is skipped",
			content: "[^two words]",
		},
		{
			name:    "nested brackets report both",
			content: "[outer [inner] text]",
			want: []found{
				{refs.KindLink, "outer [inner] text"},
				{refs.KindLink, "inner"},
			},
		},
		{
			name:    "brackets spanning emphasis",
			content: "[a *b* c]",
			want:    []found{{refs.KindLink, "a *b* c"}},
		},
		{
			name:    "link text is scanned",
			content: "[see [x]](https://example.com)",
			want:    []found{{refs.KindLink, "x"}},
		},
		{
			name:    "image alt text is scanned",
			content: "![alt [y]](img.png)",
			want:    []found{{refs.KindLink, "y"}},
		},
		{
			name:    "code is not scanned",
			content: "`[x]`\n\n```\n[y]\n```\n",
		},
		{
			name:    "table cells are scanned",
			content: "| [a] | b |\n|---|---|\n| c | [d] |\n",
			want: []found{
				{refs.KindLink, "a"},
				{refs.KindLink, "d"},
			},
		},
		{
			name:    "footnote definition content is scanned",
			content: "Text[^1].\n\n[^1]: See [inner].\n",
			want:    []found{{refs.KindLink, "inner"}},
		},
		{
			name:    "multi-line label in block quote",
			content: "> [Mercury\n> Venus]\n",
			want:    []found{{refs.KindLink, "mercury venus"}},
		},
		{
			name:    "task list markers are not references",
			content: "- [ ] todo\n- [x] done\n",
		},
		{
			name:    "heading",
			content: "# About [Pluto]\n",
			want:    []found{{refs.KindLink, "pluto"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check(t, tt.content, tt.opts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("undefined references mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheck_AllowList(t *testing.T) {
	t.Parallel()

	allow, err := refs.CompileAllowList([]any{
		"Mercury",
		map[string]any{"source": "^todo-"},
	})
	require.NoError(t, err)

	got := check(t, "[mercury] [TODO-1] ![todo-img] [x]", refs.Options{Allow: allow})
	assert.Equal(t, []found{{refs.KindLink, "x"}}, got)
}

func TestCheck_Positions(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, "# Title\n\nSee [Mercury] here.\n")
	found := refs.Check(snapshot, refs.Options{})
	require.Len(t, found, 1)

	ref := found[0]
	assert.Equal(t, 13, ref.Start)
	assert.Equal(t, 22, ref.End)
	assert.True(t, ref.Shortcut)
	assert.Equal(t, mdast.SourcePosition{StartLine: 3, StartColumn: 5, EndLine: 3, EndColumn: 14}, ref.Position)
	assert.Equal(t, []mdast.NodeKind{mdast.NodeDocument, mdast.NodeParagraph}, ref.AncestorKinds())
	assert.Equal(t, `Found reference to undefined definition for a link "mercury"`, ref.Message())
}

func TestCheck_AncestorsEndAtContainer(t *testing.T) {
	t.Parallel()

	found := refs.Check(parse(t, "> *see [Mercury] now*\n"), refs.Options{})
	require.Len(t, found, 1)

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument, mdast.NodeBlockquote, mdast.NodeParagraph, mdast.NodeEmphasis,
	}, found[0].AncestorKinds())
}

func TestCheck_Messages(t *testing.T) {
	t.Parallel()

	found := refs.Check(parse(t, "![Mars] and x[^n]"), refs.Options{})
	require.Len(t, found, 2)

	assert.Equal(t, `Found reference to undefined definition for an image "mars"`, found[0].Message())
	assert.Equal(t, `Found reference to undefined definition for a footnote "n"`, found[1].Message())
}

func TestCheck_Idempotent(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, "[a] ![b] [^c] [d][e]\n\n> [f\n> g]\n")
	checker := refs.NewChecker(refs.Options{})

	first := checker.Check(snapshot)
	second := checker.Check(snapshot)

	require.Len(t, first, 5)
	ignore := cmpopts.IgnoreFields(refs.Reference{}, "Ancestors")
	if diff := cmp.Diff(first, second, ignore); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestCheck_NilFile(t *testing.T) {
	t.Parallel()

	assert.Nil(t, refs.Check(nil, refs.Options{}))
	assert.Nil(t, refs.Check(&mdast.FileSnapshot{}, refs.Options{}))
}
