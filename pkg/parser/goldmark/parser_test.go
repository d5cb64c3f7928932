package goldmark

import (
	"context"
	"testing"
	"time"

	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	content := []byte("# Hello\n\nWorld")
	snapshot, err := New(FlavorCommonMark).Parse(context.Background(), "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Path != "test.md" {
		t.Errorf("Path = %q, want %q", snapshot.Path, "test.md")
	}
	if string(snapshot.Content) != string(content) {
		t.Errorf("Content mismatch")
	}

	// The snapshot owns its content.
	content[0] = 'X'
	if snapshot.Content[0] != '#' {
		t.Error("snapshot content should be a copy")
	}

	if len(snapshot.Lines) != 3 {
		t.Errorf("Lines = %d, want 3", len(snapshot.Lines))
	}
	if snapshot.Root == nil || snapshot.Root.Kind != mdast.NodeDocument {
		t.Fatal("expected document root")
	}
	if snapshot.Root.ChildCount() != 2 {
		t.Errorf("root children = %d, want 2", snapshot.Root.ChildCount())
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	snapshot, err := New(FlavorGFM).Parse(context.Background(), "empty.md", nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Root.HasChildren() {
		t.Error("empty document should have no children")
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(FlavorGFM).Parse(ctx, "test.md", []byte("# Hi")); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	if _, err := New(FlavorGFM).Parse(ctx, "test.md", []byte("# Hi")); err == nil {
		t.Error("expected error for expired context")
	}
}

func TestParser_Parse_Definitions(t *testing.T) {
	content := "[Zeta]: https://z.test\n[alpha]: https://a.test \"Alpha\"\n[ALPHA]: https://dup.test\n\nSee [alpha].\n"
	snapshot, err := New(FlavorCommonMark).Parse(context.Background(), "defs.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	defs := mdast.FindByKind(snapshot.Root, mdast.NodeDefinition)
	if len(defs) != 2 {
		t.Fatalf("definitions = %d, want 2 (duplicates keep the first)", len(defs))
	}

	// Sorted by raw label bytes: "Zeta" sorts before "alpha".
	if defs[0].DefinitionLabel() != "Zeta" || defs[1].DefinitionLabel() != "alpha" {
		t.Errorf("labels = %q, %q", defs[0].DefinitionLabel(), defs[1].DefinitionLabel())
	}
	if defs[1].Block.Definition.Destination != "https://a.test" || defs[1].Block.Definition.Title != "Alpha" {
		t.Errorf("unexpected definition attrs: %+v", defs[1].Block.Definition)
	}
	if defs[0].HasOffsets() {
		t.Error("definitions carry no offsets")
	}
	if defs[0].File != snapshot {
		t.Error("definition should reference the snapshot")
	}
}

func TestParser_Parse_PositionMapping(t *testing.T) {
	content := "# Title\n\nSome [ref] text."
	snapshot, err := New(FlavorGFM).Parse(context.Background(), "pos.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	paras := mdast.FindByKind(snapshot.Root, mdast.NodeParagraph)
	if len(paras) != 1 {
		t.Fatalf("paragraphs = %d, want 1", len(paras))
	}

	pos := paras[0].SourcePosition()
	if pos.StartLine != 3 || pos.StartColumn != 1 {
		t.Errorf("paragraph starts at %d:%d, want 3:1", pos.StartLine, pos.StartColumn)
	}
	if string(paras[0].Text()) != "Some [ref] text." {
		t.Errorf("paragraph text = %q", paras[0].Text())
	}
}

func TestParser_ImplementsInterface(_ *testing.T) {
	var _ lint.Parser = (*Parser)(nil)
}

func TestParser_Parse_Deterministic(t *testing.T) {
	content := []byte("[b]: /b\n[a]: /a\n[c]: /c\n\n[a] [b] [c] [d]\n")
	p := New(FlavorGFM)

	first, err := p.Parse(context.Background(), "d.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	for range 10 {
		again, err := p.Parse(context.Background(), "d.md", content)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		a := mdast.FindByKind(first.Root, mdast.NodeDefinition)
		b := mdast.FindByKind(again.Root, mdast.NodeDefinition)
		if len(a) != len(b) {
			t.Fatalf("definition count changed: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].DefinitionLabel() != b[i].DefinitionLabel() {
				t.Errorf("definition %d: %q vs %q", i, a[i].DefinitionLabel(), b[i].DefinitionLabel())
			}
		}
	}
}
