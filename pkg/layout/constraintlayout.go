package layout

import (
	"github.com/hugozap/volare/pkg/constraint"
	"github.com/hugozap/volare/pkg/scene"
)

// measureConstraintContainer computes each child's content-mode intrinsic
// size, solves the declared constraints over those sizes, and reports the
// container's own intrinsic size as the solved bounding box
// unless the container declares a fixed width/height.
func (e *engine) measureConstraintContainer(n scene.TreeNode) (intrinsic, error) {
	cc := e.b.ConstraintContainers[n.Handle.Index]
	children := nonConnectorChildren(n.Children)

	solved, _, err := e.solveConstraints(n, children, cc)
	if err != nil {
		return intrinsic{}, err
	}

	var maxX, maxY float64
	for _, r := range solved {
		if right := r.X + r.W; right > maxX {
			maxX = right
		}
		if bottom := r.Y + r.H; bottom > maxY {
			maxY = bottom
		}
	}

	return intrinsic{
		W: resolveDim(cc.Width, maxX),
		H: resolveDim(cc.Height, maxY),
	}, nil
}

func (e *engine) arrangeConstraintContainer(n scene.TreeNode, outer Geometry) error {
	e.geo[n.Handle] = outer
	cc := e.b.ConstraintContainers[n.Handle.Index]
	children := nonConnectorChildren(n.Children)

	solved, byHandle, err := e.solveConstraints(n, children, cc)
	if err != nil {
		return err
	}

	for _, c := range children {
		id := byHandle[c.Handle]
		r, ok := solved[id]
		if !ok {
			continue
		}
		geo := Geometry{X: outer.X + r.X, Y: outer.Y + r.Y, W: r.W, H: r.H}
		if err := e.arrange(c, geo); err != nil {
			return err
		}
	}
	return nil
}

// solveConstraints measures every child's intrinsic size, runs the solver,
// and also returns the handle->id map the caller needs to place children
// back by handle.
func (e *engine) solveConstraints(n scene.TreeNode, children []scene.TreeNode, cc scene.ConstraintContainer) (map[string]constraint.Rect, map[scene.Handle]string, error) {
	specs := make([]constraint.ChildSpec, 0, len(children))
	byHandle := make(map[scene.Handle]string, len(children))

	for _, c := range children {
		ci, err := e.measure(c)
		if err != nil {
			return nil, nil, err
		}
		id := e.b.IDOf(c.Handle)
		byHandle[c.Handle] = id
		specs = append(specs, constraint.ChildSpec{ID: id, IntrinsicW: ci.W, IntrinsicH: ci.H})
	}

	solved, err := constraint.Solve(specs, cc.Constraints)
	if err != nil {
		return nil, nil, err
	}
	return solved, byHandle, nil
}
