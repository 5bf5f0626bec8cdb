package layout

import (
	"context"
	"strings"
	"testing"

	"github.com/hugozap/volare/pkg/fontmetrics"
	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
)

func mustLayout(t *testing.T, input string) (scene.TreeNode, *scene.Builder, GeometryMap) {
	t.Helper()
	rootID, recs, err := record.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("record.Parse: %v", err)
	}
	tree, b, err := scene.Build(rootID, recs, nil)
	if err != nil {
		t.Fatalf("scene.Build: %v", err)
	}
	geo, _, _, err := Layout(context.Background(), tree, b, fontmetrics.NewFixedAdvance())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return tree, b, geo
}

func TestHStackWithSpacingCentersCrossAxis(t *testing.T) {
	input := `{"id":"r","type":"hstack","children":["a","b"],"spacing":10}
{"id":"a","type":"rect","width":40,"height":20}
{"id":"b","type":"rect","width":60,"height":30}`
	tree, _, geo := mustLayout(t, input)

	root := geo[tree.Handle]
	if root != (Geometry{X: 0, Y: 0, W: 110, H: 30}) {
		t.Errorf("root = %+v, want (0,0,110,30)", root)
	}

	aGeo := geo[tree.Children[0].Handle]
	if aGeo != (Geometry{X: 0, Y: 5, W: 40, H: 20}) {
		t.Errorf("a = %+v, want (0,5,40,20)", aGeo)
	}
	bGeo := geo[tree.Children[1].Handle]
	if bGeo != (Geometry{X: 50, Y: 0, W: 60, H: 30}) {
		t.Errorf("b = %+v, want (50,0,60,30)", bGeo)
	}
}

func TestHStackOrderIndependentOfStreamOrder(t *testing.T) {
	forward := `{"id":"r","type":"hstack","children":["a","b"],"spacing":10}
{"id":"a","type":"rect","width":40,"height":20}
{"id":"b","type":"rect","width":60,"height":30}`
	reordered := `{"id":"r","type":"hstack","children":["a","b"],"spacing":10}
{"id":"b","type":"rect","width":60,"height":30}
{"id":"a","type":"rect","width":40,"height":20}`

	t1, _, g1 := mustLayout(t, forward)
	t2, _, g2 := mustLayout(t, reordered)

	if g1[t1.Handle] != g2[t2.Handle] {
		t.Errorf("root geometry differs: %+v vs %+v", g1[t1.Handle], g2[t2.Handle])
	}
	for i := range t1.Children {
		if g1[t1.Children[i].Handle] != g2[t2.Children[i].Handle] {
			t.Errorf("child %d geometry differs: %+v vs %+v", i, g1[t1.Children[i].Handle], g2[t2.Children[i].Handle])
		}
	}
}

func TestFreeContainerPositionsChildrenAtDeclaredCoordinates(t *testing.T) {
	input := `{"id":"r","type":"free_container","width":200,"height":100,"children":["x","y"]}
{"id":"x","type":"rect","width":10,"height":10,"x":5,"y":5}
{"id":"y","type":"rect","width":10,"height":10,"x":100,"y":50}`
	tree, _, geo := mustLayout(t, input)

	x := geo[tree.Children[0].Handle]
	if x != (Geometry{X: 5, Y: 5, W: 10, H: 10}) {
		t.Errorf("x = %+v, want (5,5,10,10)", x)
	}
	y := geo[tree.Children[1].Handle]
	if y != (Geometry{X: 100, Y: 50, W: 10, H: 10}) {
		t.Errorf("y = %+v, want (100,50,10,10)", y)
	}
}

func TestFreeContainerGrowFallsBackToContentSizeAndWarns(t *testing.T) {
	// A rect's content size is derived from kind-specific attributes, not
	// its own declared width/height, so a rect with width="grow" has a
	// content-mode intrinsic width of 0 - there is nothing for the
	// free_container to allocate and no other rect attribute to fall back
	// on. The point of this test is the warning and the lack of a crash,
	// not a specific non-zero size.
	input := `{"id":"r","type":"free_container","width":200,"height":100,"children":["x"]}
{"id":"x","type":"rect","width":"grow","height":20,"x":5,"y":5}`

	rootID, recs, err := record.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("record.Parse: %v", err)
	}
	tree, b, err := scene.Build(rootID, recs, nil)
	if err != nil {
		t.Fatalf("scene.Build: %v", err)
	}
	geo, _, diag, err := Layout(context.Background(), tree, b, fontmetrics.NewFixedAdvance())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	x := geo[tree.Children[0].Handle]
	if x.W != 0 {
		t.Errorf("x.W = %g, want 0 (rect's own content size, grow has nothing to grow into)", x.W)
	}
	if x.H != 20 {
		t.Errorf("x.H = %g, want 20 (fixed height unaffected)", x.H)
	}
	if len(diag.Warnings) == 0 {
		t.Error("Diagnostics.Warnings: want a grow-inside-free_container warning, got none")
	}
}

func TestConstraintContainerStackAndOverConstrained(t *testing.T) {
	base := `{"id":"r","type":"constraint_container","children":["a","b","c"],"constraints":[{"type":"stack_horizontal","entities":["a","b","c"],"spacing":10},{"type":"align_top","entities":["a","b","c"]}]}
{"id":"a","type":"rect","width":30,"height":30}
{"id":"b","type":"rect","width":30,"height":30}
{"id":"c","type":"rect","width":30,"height":30}`

	tree, _, geo := mustLayout(t, base)
	root := geo[tree.Handle]
	if root.W != 110 || root.H != 30 {
		t.Errorf("root = %+v, want w=110 h=30", root)
	}
	a := geo[tree.Children[0].Handle]
	bGeo := geo[tree.Children[1].Handle]
	c := geo[tree.Children[2].Handle]
	if a.X != 0 || bGeo.X != 40 || c.X != 80 {
		t.Errorf("x positions = %g,%g,%g, want 0,40,80", a.X, bGeo.X, c.X)
	}
	if a.Y != 0 || bGeo.Y != 0 || c.Y != 0 {
		t.Errorf("y positions = %g,%g,%g, want all 0", a.Y, bGeo.Y, c.Y)
	}

	overConstrained := `{"id":"r","type":"constraint_container","children":["a","b","c"],"constraints":[{"type":"stack_horizontal","entities":["a","b","c"],"spacing":10},{"type":"align_top","entities":["a","b","c"]},{"type":"same_width","entities":["a","b"]},{"type":"proportional_width","entities":["a","b"],"ratio":2}]}
{"id":"a","type":"rect","width":30,"height":30}
{"id":"b","type":"rect","width":30,"height":30}
{"id":"c","type":"rect","width":30,"height":30}`

	rootID, recs, err := record.Parse(strings.NewReader(overConstrained))
	if err != nil {
		t.Fatalf("record.Parse: %v", err)
	}
	ocTree, ocB, err := scene.Build(rootID, recs, nil)
	if err != nil {
		t.Fatalf("scene.Build: %v", err)
	}
	_, _, _, err = Layout(context.Background(), ocTree, ocB, fontmetrics.NewFixedAdvance())
	if err == nil {
		t.Fatal("Layout: want OverConstrained error, got nil")
	}
}
