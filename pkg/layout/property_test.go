package layout

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/hugozap/volare/pkg/fontmetrics"
	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
)

// buildStream renders n rect children of random size into a hstack document,
// in the given child order, returning the JSONL source.
func buildStream(n int, widths, heights []float64, order []int) string {
	var sb strings.Builder
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
	}
	fmt.Fprintf(&sb, `{"id":"r","type":"hstack","spacing":4,"children":[`)
	for i, idx := range order {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%q", ids[idx])
	}
	sb.WriteString("]}\n")
	for _, idx := range order {
		fmt.Fprintf(&sb, `{"id":%q,"type":"rect","width":%g,"height":%g}`+"\n", ids[idx], widths[idx], heights[idx])
	}
	return sb.String()
}

// TestFiniteNonNegativeGeometryHoldsForRandomHStacks is a property test: for
// any random chain of rect children with positive declared sizes, every
// reachable entity's resolved geometry is finite and non-negative.
func TestFiniteNonNegativeGeometryHoldsForRandomHStacks(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		widths := make([]float64, n)
		heights := make([]float64, n)
		for i := 0; i < n; i++ {
			widths[i] = rapid.Float64Range(1, 500).Draw(rt, fmt.Sprintf("w%d", i))
			heights[i] = rapid.Float64Range(1, 500).Draw(rt, fmt.Sprintf("h%d", i))
		}
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}

		input := buildStream(n, widths, heights, order)
		rootID, recs, err := record.Parse(strings.NewReader(input))
		if err != nil {
			rt.Fatalf("record.Parse: %v", err)
		}
		tree, b, err := scene.Build(rootID, recs, nil)
		if err != nil {
			rt.Fatalf("scene.Build: %v", err)
		}
		geo, _, _, err := Layout(context.Background(), tree, b, fontmetrics.NewFixedAdvance())
		if err != nil {
			rt.Fatalf("Layout: %v", err)
		}

		result := CheckFiniteNonNegative(tree, geo)
		if !result.Satisfied {
			rt.Fatalf("CheckFiniteNonNegative failed: %s", result.Details)
		}
	})
}

// TestHStackGeometryOrderIndependent is a property test: permuting the
// stream order of a fixed set of records (keeping the declared children
// order of the hstack itself fixed) must not change any entity's resolved
// geometry.
func TestHStackGeometryOrderIndependent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 8).Draw(rt, "n")
		widths := make([]float64, n)
		heights := make([]float64, n)
		for i := 0; i < n; i++ {
			widths[i] = rapid.Float64Range(1, 200).Draw(rt, fmt.Sprintf("w%d", i))
			heights[i] = rapid.Float64Range(1, 200).Draw(rt, fmt.Sprintf("h%d", i))
		}
		declared := make([]int, n)
		for i := range declared {
			declared[i] = i
		}

		streamOrder := make([]int, n)
		copy(streamOrder, declared)
		// Fisher-Yates shuffle driven by rapid-drawn swap indices, since the
		// library has no built-in permutation generator.
		for i := n - 1; i > 0; i-- {
			j := rapid.IntRange(0, i).Draw(rt, fmt.Sprintf("swap%d", i))
			streamOrder[i], streamOrder[j] = streamOrder[j], streamOrder[i]
		}

		baseline := buildStream(n, widths, heights, declared)
		shuffled := buildStreamInOrder(n, widths, heights, declared, streamOrder)

		r1, recs1, err := record.Parse(strings.NewReader(baseline))
		if err != nil {
			rt.Fatalf("record.Parse baseline: %v", err)
		}
		t1, b1, err := scene.Build(r1, recs1, nil)
		if err != nil {
			rt.Fatalf("scene.Build baseline: %v", err)
		}
		g1, _, _, err := Layout(context.Background(), t1, b1, fontmetrics.NewFixedAdvance())
		if err != nil {
			rt.Fatalf("Layout baseline: %v", err)
		}

		r2, recs2, err := record.Parse(strings.NewReader(shuffled))
		if err != nil {
			rt.Fatalf("record.Parse shuffled: %v", err)
		}
		t2, b2, err := scene.Build(r2, recs2, nil)
		if err != nil {
			rt.Fatalf("scene.Build shuffled: %v", err)
		}
		g2, _, _, err := Layout(context.Background(), t2, b2, fontmetrics.NewFixedAdvance())
		if err != nil {
			rt.Fatalf("Layout shuffled: %v", err)
		}

		if g1[t1.Handle] != g2[t2.Handle] {
			rt.Fatalf("root geometry differs: %+v vs %+v", g1[t1.Handle], g2[t2.Handle])
		}
		for i := range t1.Children {
			if g1[t1.Children[i].Handle] != g2[t2.Children[i].Handle] {
				rt.Fatalf("child %d geometry differs: %+v vs %+v", i, g1[t1.Children[i].Handle], g2[t2.Children[i].Handle])
			}
		}
	})
}

// TestLayoutIsIdempotent is a property test: running Layout twice over the
// same tree and builder produces byte-identical geometry both times, since
// neither measure nor arrange mutate the builder's declared attributes.
func TestLayoutIsIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(rt, "n")
		widths := make([]float64, n)
		heights := make([]float64, n)
		for i := 0; i < n; i++ {
			widths[i] = rapid.Float64Range(1, 300).Draw(rt, fmt.Sprintf("w%d", i))
			heights[i] = rapid.Float64Range(1, 300).Draw(rt, fmt.Sprintf("h%d", i))
		}
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}

		input := buildStream(n, widths, heights, order)
		rootID, recs, err := record.Parse(strings.NewReader(input))
		if err != nil {
			rt.Fatalf("record.Parse: %v", err)
		}
		tree, b, err := scene.Build(rootID, recs, nil)
		if err != nil {
			rt.Fatalf("scene.Build: %v", err)
		}

		g1, _, _, err := Layout(context.Background(), tree, b, fontmetrics.NewFixedAdvance())
		if err != nil {
			rt.Fatalf("Layout (first run): %v", err)
		}
		g2, _, _, err := Layout(context.Background(), tree, b, fontmetrics.NewFixedAdvance())
		if err != nil {
			rt.Fatalf("Layout (second run): %v", err)
		}

		if len(g1) != len(g2) {
			rt.Fatalf("geometry map size differs: %d vs %d", len(g1), len(g2))
		}
		for h, geo1 := range g1 {
			geo2, ok := g2[h]
			if !ok || geo1 != geo2 {
				rt.Fatalf("%v: geometry differs between runs: %+v vs %+v", h, geo1, geo2)
			}
		}
	})
}

// buildTableStream renders n rect children into a table document, spelling
// cell padding and column count either canonically or via their aliases.
func buildTableStream(n, columns int, padding float64, widths, heights []float64, useAliases bool) string {
	colKey, padKey := "columns", "cell_padding"
	if useAliases {
		colKey, padKey = "cols", "padding"
	}
	var sb strings.Builder
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
	}
	fmt.Fprintf(&sb, `{"id":"r","type":"table","%s":%d,"%s":%g,"children":[`, colKey, columns, padKey, padding)
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%q", id)
	}
	sb.WriteString("]}\n")
	for i, id := range ids {
		fmt.Fprintf(&sb, `{"id":%q,"type":"rect","width":%g,"height":%g}`+"\n", id, widths[i], heights[i])
	}
	return sb.String()
}

// TestTableAliasEquivalentScenesProduceIdenticalGeometry is a property test:
// a table document spelled with "cols"/"padding" lays out identically to the
// same document spelled with "columns"/"cell_padding".
func TestTableAliasEquivalentScenesProduceIdenticalGeometry(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 9).Draw(rt, "n")
		columns := rapid.IntRange(1, 4).Draw(rt, "columns")
		padding := rapid.Float64Range(0, 20).Draw(rt, "padding")
		widths := make([]float64, n)
		heights := make([]float64, n)
		for i := 0; i < n; i++ {
			widths[i] = rapid.Float64Range(1, 100).Draw(rt, fmt.Sprintf("w%d", i))
			heights[i] = rapid.Float64Range(1, 100).Draw(rt, fmt.Sprintf("h%d", i))
		}

		canonical := buildTableStream(n, columns, padding, widths, heights, false)
		aliased := buildTableStream(n, columns, padding, widths, heights, true)

		r1, recs1, err := record.Parse(strings.NewReader(canonical))
		if err != nil {
			rt.Fatalf("record.Parse canonical: %v", err)
		}
		t1, b1, err := scene.Build(r1, recs1, nil)
		if err != nil {
			rt.Fatalf("scene.Build canonical: %v", err)
		}
		g1, _, _, err := Layout(context.Background(), t1, b1, fontmetrics.NewFixedAdvance())
		if err != nil {
			rt.Fatalf("Layout canonical: %v", err)
		}

		r2, recs2, err := record.Parse(strings.NewReader(aliased))
		if err != nil {
			rt.Fatalf("record.Parse aliased: %v", err)
		}
		t2, b2, err := scene.Build(r2, recs2, nil)
		if err != nil {
			rt.Fatalf("scene.Build aliased: %v", err)
		}
		g2, _, _, err := Layout(context.Background(), t2, b2, fontmetrics.NewFixedAdvance())
		if err != nil {
			rt.Fatalf("Layout aliased: %v", err)
		}

		if g1[t1.Handle] != g2[t2.Handle] {
			rt.Fatalf("root geometry differs: %+v vs %+v", g1[t1.Handle], g2[t2.Handle])
		}
		for i := range t1.Children {
			if g1[t1.Children[i].Handle] != g2[t2.Children[i].Handle] {
				rt.Fatalf("child %d geometry differs: %+v vs %+v", i, g1[t1.Children[i].Handle], g2[t2.Children[i].Handle])
			}
		}
	})
}

// buildStreamInOrder writes the root record first (stream position is fixed
// at index 0, matching the "root must be first" build contract), then the
// children's own records in streamOrder rather than declaration order.
func buildStreamInOrder(n int, widths, heights []float64, declared, streamOrder []int) string {
	var sb strings.Builder
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
	}
	fmt.Fprintf(&sb, `{"id":"r","type":"hstack","spacing":4,"children":[`)
	for i, idx := range declared {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%q", ids[idx])
	}
	sb.WriteString("]}\n")
	for _, idx := range streamOrder {
		fmt.Fprintf(&sb, `{"id":%q,"type":"rect","width":%g,"height":%g}`+"\n", ids[idx], widths[idx], heights[idx])
	}
	return sb.String()
}
