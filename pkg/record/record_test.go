package record

import (
	"errors"
	"strings"
	"testing"

	"github.com/hugozap/volare/pkg/volerr"
)

func mustParse(t *testing.T, input string) (string, map[string]Record) {
	t.Helper()
	root, recs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return root, recs
}

func TestParseMinimal(t *testing.T) {
	input := `{"id":"r","type":"vstack","children":["t"]}
{"id":"t","type":"text","content":"Hi","font_size":12}`

	root, recs := mustParse(t, input)
	if root != "r" {
		t.Errorf("root = %q, want %q", root, "r")
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs["t"].Type() != "text" {
		t.Errorf("recs[t].Type() = %q, want text", recs["t"].Type())
	}
}

func TestParseSkipsBlankAndComment(t *testing.T) {
	input := `# a comment

{"id":"r","type":"box","children":["a"]}

{"id":"a","type":"rect"}
`
	root, recs := mustParse(t, input)
	if root != "r" {
		t.Errorf("root = %q, want r", root)
	}
	if len(recs) != 2 {
		t.Errorf("len(recs) = %d, want 2", len(recs))
	}
}

func TestParseDuplicateId(t *testing.T) {
	input := `{"id":"r","type":"rect"}
{"id":"r","type":"rect"}`

	_, _, err := Parse(strings.NewReader(input))
	var dup *volerr.DuplicateId
	if !errors.As(err, &dup) {
		t.Fatalf("expected *volerr.DuplicateId, got %T (%v)", err, err)
	}
	if dup.ID != "r" {
		t.Errorf("dup.ID = %q, want r", dup.ID)
	}
}

func TestParseMissingID(t *testing.T) {
	input := `{"type":"rect"}`
	_, _, err := Parse(strings.NewReader(input))
	var pe *volerr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *volerr.ParseError, got %T (%v)", err, err)
	}
}

func TestParseMissingType(t *testing.T) {
	input := `{"id":"r"}`
	_, _, err := Parse(strings.NewReader(input))
	var pe *volerr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *volerr.ParseError, got %T (%v)", err, err)
	}
}

func TestParseMalformedJSON(t *testing.T) {
	input := `{"id":"r","type":`
	_, _, err := Parse(strings.NewReader(input))
	var pe *volerr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *volerr.ParseError, got %T (%v)", err, err)
	}
}

func TestParseOrderIndependence(t *testing.T) {
	forward := `{"id":"r","type":"vstack","children":["a","b"]}
{"id":"a","type":"rect","width":10,"height":10}
{"id":"b","type":"rect","width":20,"height":20}`

	reordered := `{"id":"r","type":"vstack","children":["a","b"]}
{"id":"b","type":"rect","width":20,"height":20}
{"id":"a","type":"rect","width":10,"height":10}`

	root1, recs1 := mustParse(t, forward)
	root2, recs2 := mustParse(t, reordered)

	if root1 != root2 {
		t.Fatalf("roots differ: %q vs %q", root1, root2)
	}
	if len(recs1) != len(recs2) {
		t.Fatalf("record counts differ: %d vs %d", len(recs1), len(recs2))
	}
	for id, r1 := range recs1 {
		r2, ok := recs2[id]
		if !ok {
			t.Fatalf("id %q missing from reordered set", id)
		}
		if r1.Type() != r2.Type() {
			t.Errorf("id %q: type mismatch %q vs %q", id, r1.Type(), r2.Type())
		}
	}
}

