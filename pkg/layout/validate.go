package layout

import (
	"fmt"
	"math"

	"github.com/hugozap/volare/pkg/scene"
)

// Result mirrors one quantified invariant check: a name, the
// assertion it checks, whether it held, and human-readable detail.
type Result struct {
	Name      string
	Assertion string
	Satisfied bool
	Details   string
}

// Report aggregates every invariant check run over one layout result.
type Report struct {
	Passed  bool
	Results []Result
	Errors  []string
}

// Validate runs the geometry-shape invariants over a completed layout: every
// reachable entity has exactly one finite non-negative-size geometry record,
// and every flow container (box, stack, table) contains its children within
// its own rect.
func Validate(tree scene.TreeNode, b *scene.Builder, geo GeometryMap) *Report {
	report := &Report{Passed: true}

	checks := []Result{
		CheckFiniteNonNegative(tree, geo),
		CheckBoxContainment(tree, b, geo),
		CheckStackContainment(tree, geo),
		CheckTableContainment(tree, geo),
	}
	for _, result := range checks {
		if !result.Satisfied {
			report.Passed = false
			report.Errors = append(report.Errors, result.Details)
		} else {
			report.Results = append(report.Results, result)
		}
	}

	return report
}

// CheckFiniteNonNegative walks every node reachable from tree and confirms
// it has a geometry entry with finite, non-negative width and height.
func CheckFiniteNonNegative(tree scene.TreeNode, geo GeometryMap) Result {
	var bad []string
	tree.Walk(func(n scene.TreeNode) bool {
		g, ok := geo[n.Handle]
		if !ok {
			bad = append(bad, fmt.Sprintf("%v: missing geometry", n.Handle))
			return true
		}
		if math.IsInf(g.W, 0) || math.IsInf(g.H, 0) || math.IsNaN(g.W) || math.IsNaN(g.H) || g.W < 0 || g.H < 0 {
			bad = append(bad, fmt.Sprintf("%v: non-finite or negative size %+v", n.Handle, g))
		}
		return true
	})

	if len(bad) > 0 {
		return Result{
			Name:      "FiniteNonNegativeGeometry",
			Assertion: "every reachable entity has one finite, non-negative-size geometry record",
			Satisfied: false,
			Details:   fmt.Sprintf("%d violation(s): %v", len(bad), bad),
		}
	}
	return Result{
		Name:      "FiniteNonNegativeGeometry",
		Assertion: "every reachable entity has one finite, non-negative-size geometry record",
		Satisfied: true,
		Details:   "all geometry finite and non-negative",
	}
}

// CheckBoxContainment confirms every box's child rect lies within the box's
// inner rect (outer rect shrunk by padding on all sides).
func CheckBoxContainment(tree scene.TreeNode, b *scene.Builder, geo GeometryMap) Result {
	var bad []string
	tree.Walk(func(n scene.TreeNode) bool {
		if n.Handle.Kind != scene.KindBox {
			return true
		}
		box := b.Boxes[n.Handle.Index]
		outer, ok := geo[n.Handle]
		if !ok {
			return true
		}
		child, ok := geo[box.Child]
		if !ok {
			return true
		}
		inner := Geometry{
			X: outer.X + box.Padding,
			Y: outer.Y + box.Padding,
			W: outer.W - 2*box.Padding,
			H: outer.H - 2*box.Padding,
		}
		const tol = 0.5
		if child.X < inner.X-tol || child.Y < inner.Y-tol ||
			child.X+child.W > inner.X+inner.W+tol || child.Y+child.H > inner.Y+inner.H+tol {
			bad = append(bad, fmt.Sprintf("%v: child rect %+v escapes inner rect %+v", n.Handle, child, inner))
		}
		return true
	})

	if len(bad) > 0 {
		return Result{
			Name:      "BoxContainment",
			Assertion: "every box child's rect is contained within the box's padded inner rect",
			Satisfied: false,
			Details:   fmt.Sprintf("%d violation(s): %v", len(bad), bad),
		}
	}
	return Result{
		Name:      "BoxContainment",
		Assertion: "every box child's rect is contained within the box's padded inner rect",
		Satisfied: true,
		Details:   "all box children contained",
	}
}

// CheckStackContainment confirms every vstack/hstack's children lie within
// the stack's own rect. Stacks carry no padding, so the container rect
// itself is the bound (unlike box, which shrinks by padding first).
func CheckStackContainment(tree scene.TreeNode, geo GeometryMap) Result {
	bad := containedWithin(tree, geo, func(k scene.Kind) bool {
		return k == scene.KindVStack || k == scene.KindHStack
	})
	return containmentResult("StackContainment", "every stack child's rect is contained within the stack's rect", bad)
}

// CheckTableContainment confirms every table's children lie within the
// table's own rect.
func CheckTableContainment(tree scene.TreeNode, geo GeometryMap) Result {
	bad := containedWithin(tree, geo, func(k scene.Kind) bool {
		return k == scene.KindTable
	})
	return containmentResult("TableContainment", "every table child's rect is contained within the table's rect", bad)
}

// containedWithin walks tree and, for every node whose kind matches, checks
// that each of its non-connector children's geometry lies within the node's
// own geometry to within tolerance.
func containedWithin(tree scene.TreeNode, geo GeometryMap, match func(scene.Kind) bool) []string {
	const tol = 0.5
	var bad []string
	tree.Walk(func(n scene.TreeNode) bool {
		if !match(n.Handle.Kind) {
			return true
		}
		outer, ok := geo[n.Handle]
		if !ok {
			return true
		}
		for _, c := range n.Children {
			if c.Handle.Kind == scene.KindConnector {
				continue
			}
			child, ok := geo[c.Handle]
			if !ok {
				continue
			}
			if child.X < outer.X-tol || child.Y < outer.Y-tol ||
				child.X+child.W > outer.X+outer.W+tol || child.Y+child.H > outer.Y+outer.H+tol {
				bad = append(bad, fmt.Sprintf("%v: child rect %+v escapes container rect %+v", n.Handle, child, outer))
			}
		}
		return true
	})
	return bad
}

func containmentResult(name, assertion string, bad []string) Result {
	if len(bad) > 0 {
		return Result{
			Name:      name,
			Assertion: assertion,
			Satisfied: false,
			Details:   fmt.Sprintf("%d violation(s): %v", len(bad), bad),
		}
	}
	return Result{
		Name:      name,
		Assertion: assertion,
		Satisfied: true,
		Details:   "all children contained",
	}
}

// CheckConnectorAttachment confirms that any connector whose source and
// target ports are both "center" has endpoints matching the centers of its
// endpoint rects to within 0.5px.
func CheckConnectorAttachment(b *scene.Builder, geo GeometryMap, conn ConnectorMap) Result {
	const tol = 0.5
	var bad []string
	for i, c := range b.Connectors {
		if c.SourcePort != "center" || c.TargetPort != "center" {
			continue
		}
		h := scene.Handle{Kind: scene.KindConnector, Index: i}
		path, ok := conn[h]
		if !ok {
			continue
		}
		srcGeo, hasSrc := geo[c.SourceH]
		tgtGeo, hasTgt := geo[c.TargetH]
		if !hasSrc || !hasTgt {
			continue
		}
		wantStart := Point{X: srcGeo.X + srcGeo.W/2, Y: srcGeo.Y + srcGeo.H/2}
		wantEnd := Point{X: tgtGeo.X + tgtGeo.W/2, Y: tgtGeo.Y + tgtGeo.H/2}
		if math.Abs(path.Start.X-wantStart.X) > tol || math.Abs(path.Start.Y-wantStart.Y) > tol ||
			math.Abs(path.End.X-wantEnd.X) > tol || math.Abs(path.End.Y-wantEnd.Y) > tol {
			bad = append(bad, c.ID)
		}
	}

	if len(bad) > 0 {
		return Result{
			Name:      "ConnectorEndpointAttachment",
			Assertion: `connector with source_port=target_port="center" endpoints equal rect centers within 0.5px`,
			Satisfied: false,
			Details:   fmt.Sprintf("mismatched connectors: %v", bad),
		}
	}
	return Result{
		Name:      "ConnectorEndpointAttachment",
		Assertion: `connector with source_port=target_port="center" endpoints equal rect centers within 0.5px`,
		Satisfied: true,
		Details:   "all center-port connectors attached correctly",
	}
}
