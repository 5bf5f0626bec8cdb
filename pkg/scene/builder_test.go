package scene

import (
	"strings"
	"testing"

	"github.com/hugozap/volare/pkg/record"
)

func mustBuild(t *testing.T, input string) (TreeNode, *Builder) {
	t.Helper()
	root, recs, err := record.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("record.Parse: %v", err)
	}
	node, b, err := Build(root, recs, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return node, b
}

func TestBuildMinimalVStack(t *testing.T) {
	input := `{"id":"r","type":"vstack","children":["t"]}
{"id":"t","type":"text","content":"Hi","font_size":12}`

	node, b := mustBuild(t, input)
	if node.Handle.Kind != KindVStack {
		t.Fatalf("root kind = %v, want vstack", node.Handle.Kind)
	}
	if len(node.Children) != 1 {
		t.Fatalf("len(children) = %d, want 1", len(node.Children))
	}
	txt := b.Texts[node.Children[0].Handle.Index]
	if txt.Content != "Hi" {
		t.Errorf("text content = %q, want Hi", txt.Content)
	}
}

func TestBuildForwardReferenceOrderIndependent(t *testing.T) {
	forward := `{"id":"r","type":"hstack","children":["a","b"],"spacing":10}
{"id":"a","type":"rect","width":40,"height":20}
{"id":"b","type":"rect","width":60,"height":30}`

	reordered := `{"id":"r","type":"hstack","children":["a","b"],"spacing":10}
{"id":"b","type":"rect","width":60,"height":30}
{"id":"a","type":"rect","width":40,"height":20}`

	n1, b1 := mustBuild(t, forward)
	n2, b2 := mustBuild(t, reordered)

	if len(n1.Children) != len(n2.Children) {
		t.Fatalf("child count differs")
	}
	for i := range n1.Children {
		s1 := b1.Shapes[n1.Children[i].Handle.Index]
		s2 := b2.Shapes[n2.Children[i].Handle.Index]
		if s1.ID != s2.ID {
			t.Errorf("child %d id mismatch: %q vs %q", i, s1.ID, s2.ID)
		}
	}
}

func TestBuildAliasEquivalence(t *testing.T) {
	canonical := `{"id":"r","type":"rect","background":"#ff0000","border_color":"#000000"}`
	aliased := `{"id":"r","type":"rect","fill":"#ff0000","stroke":"#000000"}`

	n1, b1 := mustBuild(t, canonical)
	n2, b2 := mustBuild(t, aliased)

	s1 := b1.Shapes[n1.Handle.Index]
	s2 := b2.Shapes[n2.Handle.Index]

	if s1.Attrs["background"] != s2.Attrs["background"] {
		t.Errorf("background mismatch: %v vs %v", s1.Attrs["background"], s2.Attrs["background"])
	}
	if s1.Attrs["border_color"] != s2.Attrs["border_color"] {
		t.Errorf("border_color mismatch: %v vs %v", s1.Attrs["border_color"], s2.Attrs["border_color"])
	}
}

func TestBuildWarnsOnConflictingAliasSpelling(t *testing.T) {
	input := `{"id":"r","type":"rect","background":"#ff0000","fill":"#00ff00"}`
	_, b := mustBuild(t, input)

	shape := b.Shapes[0]
	if shape.Attrs["background"] != "#ff0000" {
		t.Errorf("background = %v, want canonical value #ff0000 kept", shape.Attrs["background"])
	}
	if len(b.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly 1 conflict warning", b.Warnings)
	}
}

func TestBuildNoWarningWhenAliasAgreesWithCanonical(t *testing.T) {
	input := `{"id":"r","type":"rect","background":"#ff0000","fill":"#ff0000"}`
	_, b := mustBuild(t, input)

	if len(b.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none when alias and canonical agree", b.Warnings)
	}
}

func TestBuildBoxArity(t *testing.T) {
	input := `{"id":"r","type":"box","children":["a","b"]}
{"id":"a","type":"rect"}
{"id":"b","type":"rect"}`

	root, recs, err := record.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("record.Parse: %v", err)
	}
	_, _, err = Build(root, recs, nil)
	if err == nil {
		t.Fatal("expected ArityError, got nil")
	}
}

func TestBuildUnknownKind(t *testing.T) {
	input := `{"id":"r","type":"not_a_real_kind"}`
	root, recs, err := record.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("record.Parse: %v", err)
	}
	_, _, err = Build(root, recs, nil)
	if err == nil {
		t.Fatal("expected UnknownKind, got nil")
	}
}

func TestConnectorPromotion(t *testing.T) {
	// a and b live under two different vstacks, both nested under the root
	// group; the connector between them must be promoted to the root.
	input := `{"id":"root","type":"group","children":["left","right","conn"]}
{"id":"left","type":"vstack","children":["a"]}
{"id":"right","type":"vstack","children":["b"]}
{"id":"a","type":"rect","width":10,"height":10}
{"id":"b","type":"rect","width":10,"height":10}
{"id":"conn","type":"connector","source":"a","target":"b"}`

	node, b := mustBuild(t, input)
	if node.Handle.Kind != KindGroup {
		t.Fatalf("root kind = %v", node.Handle.Kind)
	}
	found := false
	for _, c := range node.Children {
		if c.Handle.Kind == KindConnector {
			found = true
		}
	}
	if !found {
		t.Fatal("connector not found at root after promotion")
	}
	conn := b.Connectors[0]
	if conn.SourceH.Kind != KindRect || conn.TargetH.Kind != KindRect {
		t.Errorf("connector endpoints not resolved: %+v", conn)
	}
}

func TestFreeContainerPlacement(t *testing.T) {
	input := `{"id":"r","type":"free_container","width":200,"height":100,"children":["x","y"]}
{"id":"x","type":"rect","width":10,"height":10,"x":5,"y":5}
{"id":"y","type":"rect","width":10,"height":10,"x":100,"y":50}`

	_, b := mustBuild(t, input)
	fc := b.FreeContainers[0]
	if len(fc.Placements) != 2 {
		t.Fatalf("len(placements) = %d, want 2", len(fc.Placements))
	}
	if fc.Placements[0].X != 5 || fc.Placements[0].Y != 5 {
		t.Errorf("placement 0 = (%v,%v), want (5,5)", fc.Placements[0].X, fc.Placements[0].Y)
	}
	if fc.Placements[1].X != 100 || fc.Placements[1].Y != 50 {
		t.Errorf("placement 1 = (%v,%v), want (100,50)", fc.Placements[1].X, fc.Placements[1].Y)
	}
}
