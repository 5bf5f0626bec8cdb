package layout

import "github.com/hugozap/volare/pkg/scene"

func (e *engine) measureBox(n scene.TreeNode) (intrinsic, error) {
	box := e.b.Boxes[n.Handle.Index]
	if len(n.Children) != 1 {
		return intrinsic{}, errf("box %q must have exactly 1 child, got %d", box.ID, len(n.Children))
	}
	childIntr, err := e.measure(n.Children[0])
	if err != nil {
		return intrinsic{}, err
	}
	pad2 := 2 * box.Padding
	return intrinsic{
		W: resolveDim(box.Width, childIntr.W+pad2),
		H: resolveDim(box.Height, childIntr.H+pad2),
	}, nil
}

func (e *engine) arrangeBox(n scene.TreeNode, outer Geometry) error {
	e.geo[n.Handle] = outer
	box := e.b.Boxes[n.Handle.Index]
	inner := Geometry{
		X: outer.X + box.Padding,
		Y: outer.Y + box.Padding,
		W: maxF(0, outer.W-2*box.Padding),
		H: maxF(0, outer.H-2*box.Padding),
	}

	child := n.Children[0]
	childIntr, err := e.measure(child)
	if err != nil {
		return err
	}
	cw, ch := e.finalSize(child.Handle, childIntr, inner.W, inner.H)

	return e.arrange(child, Geometry{X: inner.X, Y: inner.Y, W: cw, H: ch})
}

func (e *engine) finalSize(h scene.Handle, intr intrinsic, allocW, allocH float64) (float64, float64) {
	wd, hd := e.b.Dims(h)
	w := intr.W
	switch wd.Mode {
	case scene.ModeFixed:
		w = wd.Value
	case scene.ModeGrow:
		w = allocW
	}
	ht := intr.H
	switch hd.Mode {
	case scene.ModeFixed:
		ht = hd.Value
	case scene.ModeGrow:
		ht = allocH
	}
	return w, ht
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
