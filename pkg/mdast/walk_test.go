package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

// buildTestTree builds:
//
//	Document
//	  Heading
//	    Text
//	  Paragraph
//	    Text
//	    Emphasis
//	      Text
func buildTestTree() (*mdast.Node, *mdast.Node) {
	doc := mdast.NewDocument()

	heading := mdast.NewNode(mdast.NodeHeading)
	mdast.AppendChild(heading, mdast.NewNode(mdast.NodeText))
	mdast.AppendChild(doc, heading)

	para := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendChild(para, mdast.NewNode(mdast.NodeText))
	emphasis := mdast.NewNode(mdast.NodeEmphasis)
	deepest := mdast.NewNode(mdast.NodeText)
	mdast.AppendChild(emphasis, deepest)
	mdast.AppendChild(para, emphasis)
	mdast.AppendChild(doc, para)

	return doc, deepest
}

func TestWalk(t *testing.T) {
	t.Parallel()

	doc, _ := buildTestTree()

	var visited []mdast.NodeKind
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeParagraph,
		mdast.NodeText,
		mdast.NodeEmphasis,
		mdast.NodeText,
	}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	doc, _ := buildTestTree()
	stop := errors.New("stop")

	count := 0
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeParagraph {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 4, count)
	assert.NoError(t, mdast.Walk(nil, func(*mdast.Node) error { return stop }))
}

func TestWalkPath(t *testing.T) {
	t.Parallel()

	doc, deepest := buildTestTree()

	var got []mdast.NodeKind
	err := mdast.WalkPath(doc, func(n *mdast.Node, ancestors []*mdast.Node) error {
		if n != deepest {
			return nil
		}
		for _, a := range ancestors {
			got = append(got, a.Kind)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []mdast.NodeKind{mdast.NodeDocument, mdast.NodeParagraph, mdast.NodeEmphasis}, got)
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	doc, deepest := buildTestTree()

	chain := mdast.Ancestors(deepest)
	require.Len(t, chain, 3)
	assert.Same(t, doc, chain[0])
	assert.Equal(t, mdast.NodeEmphasis, chain[2].Kind)
	assert.Empty(t, mdast.Ancestors(doc))
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	doc, _ := buildTestTree()

	assert.Len(t, mdast.FindByKind(doc, mdast.NodeText), 3)
	assert.Len(t, mdast.FindByKind(doc, mdast.NodeParagraph), 1)
	assert.Empty(t, mdast.FindByKind(doc, mdast.NodeLink))
}
