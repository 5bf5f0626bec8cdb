package layout

import "github.com/hugozap/volare/pkg/scene"

// measureFreePlacements computes the tight bounding box of a set of declared
// placements, each measured at its own intrinsic size. Shared by
// free_container and group, which place children identically and differ
// only in whether a declared width/height is expected.
func (e *engine) measureFreePlacements(children []scene.TreeNode, placements []scene.FreePlacement) (float64, float64, error) {
	byHandle := make(map[scene.Handle]scene.FreePlacement, len(placements))
	for _, p := range placements {
		byHandle[p.Child] = p
	}

	var maxX, maxY float64
	for _, c := range nonConnectorChildren(children) {
		ci, err := e.measure(c)
		if err != nil {
			return 0, 0, err
		}
		p := byHandle[c.Handle]
		// resolveDim's caller already decided fixed-vs-content per entity;
		// here we just need the intrinsic extent to place bounding-box math.
		right := p.X + ci.W
		bottom := p.Y + ci.H
		if right > maxX {
			maxX = right
		}
		if bottom > maxY {
			maxY = bottom
		}
	}
	return maxX, maxY, nil
}

func (e *engine) arrangeFreePlacements(children []scene.TreeNode, placements []scene.FreePlacement, outer Geometry) error {
	byHandle := make(map[scene.Handle]scene.FreePlacement, len(placements))
	for _, p := range placements {
		byHandle[p.Child] = p
	}

	for _, c := range nonConnectorChildren(children) {
		ci, err := e.measure(c)
		if err != nil {
			return err
		}
		p := byHandle[c.Handle]
		cw, ch := e.freeFinalSize(c.Handle, ci)
		geo := Geometry{X: outer.X + p.X, Y: outer.Y + p.Y, W: cw, H: ch}
		if err := e.arrange(c, geo); err != nil {
			return err
		}
	}
	return nil
}

// freeFinalSize resolves a free-placed child's final size. Unlike a flow
// container, a free_container/group has no allocation to grow into along
// either axis: each child sits at its own declared x,y with nothing to
// stretch against. grow therefore falls back to the child's content size,
// the same way it would if the child had no parent allocation at all.
func (e *engine) freeFinalSize(h scene.Handle, intr intrinsic) (float64, float64) {
	wd, hd := e.b.Dims(h)
	w := intr.W
	if wd.Mode == scene.ModeFixed {
		w = wd.Value
	} else if wd.Mode == scene.ModeGrow {
		e.diag.warn("%s: grow width inside free_container/group has no allocation to grow into, using content size", e.b.IDOf(h))
	}
	ht := intr.H
	if hd.Mode == scene.ModeFixed {
		ht = hd.Value
	} else if hd.Mode == scene.ModeGrow {
		e.diag.warn("%s: grow height inside free_container/group has no allocation to grow into, using content size", e.b.IDOf(h))
	}
	return w, ht
}

func (e *engine) measureFreeContainer(n scene.TreeNode) (intrinsic, error) {
	fc := e.b.FreeContainers[n.Handle.Index]
	w, h, err := e.measureFreePlacements(n.Children, fc.Placements)
	if err != nil {
		return intrinsic{}, err
	}
	return intrinsic{
		W: resolveDim(fc.Width, w),
		H: resolveDim(fc.Height, h),
	}, nil
}

func (e *engine) arrangeFreeContainer(n scene.TreeNode, outer Geometry) error {
	e.geo[n.Handle] = outer
	fc := e.b.FreeContainers[n.Handle.Index]
	return e.arrangeFreePlacements(n.Children, fc.Placements, outer)
}

func (e *engine) measureGroup(n scene.TreeNode) (intrinsic, error) {
	g := e.b.Groups[n.Handle.Index]
	w, h, err := e.measureFreePlacements(n.Children, g.Placements)
	if err != nil {
		return intrinsic{}, err
	}
	return intrinsic{
		W: resolveDim(g.Width, w),
		H: resolveDim(g.Height, h),
	}, nil
}

func (e *engine) arrangeGroup(n scene.TreeNode, outer Geometry) error {
	e.geo[n.Handle] = outer
	g := e.b.Groups[n.Handle.Index]
	return e.arrangeFreePlacements(n.Children, g.Placements, outer)
}
