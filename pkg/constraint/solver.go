package constraint

import (
	"fmt"
	"math"

	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/volerr"
)

// Rect is a child's solved frame, relative to the constraint container's
// own origin.
type Rect struct {
	X, Y, W, H float64
}

// ChildSpec is one constraint_container child, identified by its own
// declared id (not a scene.Handle; this package is scene-agnostic) plus its
// content-mode intrinsic size.
type ChildSpec struct {
	ID                     string
	IntrinsicW, IntrinsicH float64
}

// Solve resolves a declarative constraint vocabulary over children and
// returns a Rect per child id. Returns *volerr.OverConstrained if any
// required constraint cannot be satisfied.
func Solve(children []ChildSpec, constraints []record.Record) (map[string]Rect, error) {
	intrinsicW := make(map[string]float64, len(children))
	intrinsicH := make(map[string]float64, len(children))
	order := make([]string, 0, len(children))
	for _, c := range children {
		intrinsicW[c.ID] = c.IntrinsicW
		intrinsicH[c.ID] = c.IntrinsicH
		order = append(order, c.ID)
	}

	wUF := newRatioUF()
	hUF := newRatioUF()
	xUF := newOffsetUF()
	yUF := newOffsetUF()

	var conflicts []string
	minHeight := map[string]float64{}
	aspectRatio := map[string]float64{}
	atLeastSameHeight := [][2]string{}

	for _, c := range constraints {
		kind := c.Type()
		entities := c.StrList("entities")
		desc := func() string { return fmt.Sprintf("%s%v", kind, entities) }

		switch kind {
		case "same_width":
			if !pairwiseUnion(wUF, entities, 1) {
				conflicts = append(conflicts, desc())
			}
		case "same_height":
			if !pairwiseUnion(hUF, entities, 1) {
				conflicts = append(conflicts, desc())
			}
		case "same_size":
			ok1 := pairwiseUnion(wUF, entities, 1)
			ok2 := pairwiseUnion(hUF, entities, 1)
			if !ok1 || !ok2 {
				conflicts = append(conflicts, desc())
			}
		case "proportional_width":
			if len(entities) == 2 {
				r, _ := numAttr(c, "ratio", 1)
				if !wUF.union(entities[0], entities[1], r) {
					conflicts = append(conflicts, desc())
				}
			}
		case "proportional_height":
			if len(entities) == 2 {
				r, _ := numAttr(c, "ratio", 1)
				if !hUF.union(entities[0], entities[1], r) {
					conflicts = append(conflicts, desc())
				}
			}
		case "min_height":
			if id := strAttr(c, "entity"); id != "" {
				h, _ := numAttr(c, "h", 0)
				if cur, ok := minHeight[id]; !ok || h > cur {
					minHeight[id] = h
				}
			}
		case "aspect_ratio":
			if id := strAttr(c, "entity"); id != "" {
				r, _ := numAttr(c, "ratio", 1)
				aspectRatio[id] = r
			}
		case "at_least_same_height":
			if len(entities) == 2 {
				atLeastSameHeight = append(atLeastSameHeight, [2]string{entities[0], entities[1]})
			}

		case "align_left":
			if !pairwiseUnion(xUF, entities, 0) {
				conflicts = append(conflicts, desc())
			}
		case "align_top":
			if !pairwiseUnion(yUF, entities, 0) {
				conflicts = append(conflicts, desc())
			}
		case "align_right", "align_bottom", "center_horizontal", "center_vertical":
			// deferred until sizes are resolved; handled in the position pass below.

		case "right_of", "left_of", "above", "below", "horizontal_spacing", "vertical_spacing",
			"stack_horizontal", "stack_vertical", "fixed_distance",
			"distribute_horizontally", "distribute_vertically":
			// deferred to the position pass below.

		default:
			// unrecognized constraint kind: ignore rather than fail the whole
			// container, matching the tolerant-default spirit of alias resolution.
		}
	}

	if len(conflicts) > 0 {
		return nil, &volerr.OverConstrained{Constraints: conflicts}
	}

	// Resolve sizes: root of each w/h class keeps its own intrinsic value.
	finalW := resolveRatioClass(wUF, order, intrinsicW)
	finalH := resolveRatioClass(hUF, order, intrinsicH)

	for id, min := range minHeight {
		if finalH[id] < min {
			finalH[id] = min
		}
	}
	for _, pair := range atLeastSameHeight {
		if finalH[pair[0]] < finalH[pair[1]] {
			finalH[pair[0]] = finalH[pair[1]]
		}
	}
	for id, ratio := range aspectRatio {
		finalW[id] = ratio * finalH[id]
	}

	// A directional constraint paired with a spacing constraint on the same
	// two entities takes that spacing as its gap.
	gap := map[[3]string]float64{}
	for _, c := range constraints {
		if ents := c.StrList("entities"); len(ents) == 2 && (c.Type() == "horizontal_spacing" || c.Type() == "vertical_spacing") {
			gap[[3]string{c.Type(), ents[0], ents[1]}], _ = numAttr(c, "spacing", 0)
		}
	}

	// Second pass over constraints: resolve x/y now that every width/height
	// is a known constant.
	for _, c := range constraints {
		kind := c.Type()
		entities := c.StrList("entities")
		desc := func() string { return fmt.Sprintf("%s%v", kind, entities) }

		var ok bool
		switch kind {
		case "align_right":
			ok = alignEdge(xUF, entities, finalW, +1)
		case "align_bottom":
			ok = alignEdge(yUF, entities, finalH, +1)
		case "center_horizontal":
			ok = alignEdge(xUF, entities, finalW, 0)
		case "center_vertical":
			ok = alignEdge(yUF, entities, finalH, 0)

		case "right_of":
			ok = len(entities) == 2 && xUF.union(entities[0], entities[1], finalW[entities[1]]+gap[[3]string{"horizontal_spacing", entities[1], entities[0]}])
		case "left_of":
			ok = len(entities) == 2 && xUF.union(entities[0], entities[1], -finalW[entities[0]]-gap[[3]string{"horizontal_spacing", entities[0], entities[1]}])
		case "above":
			ok = len(entities) == 2 && yUF.union(entities[0], entities[1], -finalH[entities[0]]-gap[[3]string{"vertical_spacing", entities[0], entities[1]}])
		case "below":
			ok = len(entities) == 2 && yUF.union(entities[0], entities[1], finalH[entities[1]]+gap[[3]string{"vertical_spacing", entities[1], entities[0]}])

		case "horizontal_spacing":
			if len(entities) == 2 {
				spacing, _ := numAttr(c, "spacing", 0)
				ok = xUF.union(entities[1], entities[0], finalW[entities[0]]+spacing)
			}
		case "vertical_spacing":
			if len(entities) == 2 {
				spacing, _ := numAttr(c, "spacing", 0)
				ok = yUF.union(entities[1], entities[0], finalH[entities[0]]+spacing)
			}

		case "stack_horizontal":
			spacing, _ := numAttr(c, "spacing", 0)
			ok = chainUnion(xUF, entities, finalW, spacing)
		case "stack_vertical":
			spacing, _ := numAttr(c, "spacing", 0)
			ok = chainUnion(yUF, entities, finalH, spacing)

		case "distribute_horizontally":
			ok = chainUnion(xUF, entities, finalW, 0)
		case "distribute_vertically":
			ok = chainUnion(yUF, entities, finalH, 0)

		case "fixed_distance":
			if len(entities) == 2 {
				d, _ := numAttr(c, "distance", 0)
				step := d / math.Sqrt2
				okX := xUF.union(entities[1], entities[0], step)
				okY := yUF.union(entities[1], entities[0], step)
				ok = okX && okY
			}

		default:
			ok = true
		}
		if !ok {
			conflicts = append(conflicts, desc())
		}
	}

	if len(conflicts) > 0 {
		return nil, &volerr.OverConstrained{Constraints: conflicts}
	}

	xRoots := rootValues(xUF, order)
	yRoots := rootValues(yUF, order)

	out := make(map[string]Rect, len(order))
	for _, id := range order {
		out[id] = Rect{
			X: xUF.value(id, xRoots),
			Y: yUF.value(id, yRoots),
			W: finalW[id],
			H: finalH[id],
		}
	}
	return out, nil
}

// pairwiseUnion unions entities[i] to entities[0] with the given offset (or
// ratio, for a ratioUF) for every i>0. Works for both union-find flavors via
// a minimal shared interface.
func pairwiseUnion(u interface{ union(a, b string, want float64) bool }, entities []string, want float64) bool {
	if len(entities) < 2 {
		return true
	}
	ok := true
	for i := 1; i < len(entities); i++ {
		if !u.union(entities[i], entities[0], want) {
			ok = false
		}
	}
	return ok
}

// alignEdge aligns every entity's trailing (or centered) edge to the first
// entity's, given each entity's final size. side is +1 for the far edge
// (right/bottom), 0 for the center.
func alignEdge(u *offsetUF, entities []string, size map[string]float64, side float64) bool {
	if len(entities) < 2 {
		return true
	}
	first := entities[0]
	ok := true
	for _, id := range entities[1:] {
		var want float64
		if side == 0 {
			want = (size[first] - size[id]) / 2
		} else {
			want = size[first] - size[id]
		}
		if !u.union(id, first, want) {
			ok = false
		}
	}
	return ok
}

// chainUnion links each consecutive pair in entities: value(entities[i]) =
// value(entities[i-1]) + size(entities[i-1]) + spacing.
func chainUnion(u *offsetUF, entities []string, size map[string]float64, spacing float64) bool {
	ok := true
	for i := 1; i < len(entities); i++ {
		prev, cur := entities[i-1], entities[i]
		if !u.union(cur, prev, size[prev]+spacing) {
			ok = false
		}
	}
	return ok
}

// resolveRatioClass assigns every id's final value: each equivalence class's
// root keeps its own intrinsic value, and every other member derives via its
// stored ratio. Singleton classes (never touched by a sizing constraint) are
// unaffected: their own intrinsic value stands.
func resolveRatioClass(u *ratioUF, order []string, intrinsic map[string]float64) map[string]float64 {
	rootValue := make(map[string]float64)
	for _, id := range order {
		r := u.root(id)
		if _, ok := rootValue[r]; !ok {
			rootValue[r] = intrinsic[r]
		}
	}
	out := make(map[string]float64, len(order))
	for _, id := range order {
		out[id] = u.value(id, rootValue)
	}
	return out
}

// rootValues anchors every distinct root of an offsetUF to 0 (absent an
// explicit constraint, an unconstrained x or y is pinned weakly to 0).
func rootValues(u *offsetUF, order []string) map[string]float64 {
	roots := map[string]float64{}
	for _, id := range order {
		roots[u.root(id)] = 0
	}
	return roots
}

func strAttr(r record.Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func numAttr(r record.Record, key string, def float64) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return def, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return def, false
	}
}
