package components

import (
	"strings"
	"testing"

	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
)

func mustBuild(t *testing.T, input string) (scene.TreeNode, *scene.Builder) {
	t.Helper()
	root, recs, err := record.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("record.Parse: %v", err)
	}
	node, b, err := scene.Build(root, recs, Lookup)
	if err != nil {
		t.Fatalf("scene.Build: %v", err)
	}
	return node, b
}

func TestBuildIshikawa(t *testing.T) {
	input := `{"id":"r","type":"ishikawa","problem":"Late shipments","categories":[{"name":"People","causes":["Understaffed","Untrained"]},{"name":"Process","causes":["No checklist"]}]}`

	node, b := mustBuild(t, input)
	if node.Handle.Kind != scene.KindHStack {
		t.Fatalf("root kind = %v, want hstack", node.Handle.Kind)
	}
	if len(node.Children) != 3 { // 2 bones + head
		t.Fatalf("len(children) = %d, want 3", len(node.Children))
	}
	if len(b.Texts) == 0 {
		t.Fatal("expected text entities for causes/labels/head")
	}
}

func TestBuildDocumentPropertiesItems(t *testing.T) {
	input := `{"id":"r","type":"document.properties","items":[{"name":"Author","value":"Ada"},{"name":"Version","value":"1.0"}]}`
	node, b := mustBuild(t, input)
	if node.Handle.Kind != scene.KindTable {
		t.Fatalf("root kind = %v, want table", node.Handle.Kind)
	}
	tbl := b.Tables[node.Handle.Index]
	if len(tbl.Children) != 4 {
		t.Fatalf("len(tbl.Children) = %d, want 4", len(tbl.Children))
	}
}

func TestBuildDocumentPropertiesTuples(t *testing.T) {
	input := `{"id":"r","type":"document.properties","properties":[["Author","Ada"],["Version","1.0"]]}`
	node, b := mustBuild(t, input)
	tbl := b.Tables[node.Handle.Index]
	if len(tbl.Children) != 4 {
		t.Fatalf("len(tbl.Children) = %d, want 4", len(tbl.Children))
	}
}

func TestBuildDocumentSection(t *testing.T) {
	input := `{"id":"r","type":"document.section","header_id":"h","content_id":"c"}
{"id":"h","type":"document.text","content":"Header"}
{"id":"c","type":"document.text","content":"Body"}`

	node, b := mustBuild(t, input)
	if node.Handle.Kind != scene.KindVStack {
		t.Fatalf("root kind = %v, want vstack", node.Handle.Kind)
	}
	if len(node.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(node.Children))
	}
	if len(b.Texts) != 2 {
		t.Fatalf("len(b.Texts) = %d, want 2", len(b.Texts))
	}
}
