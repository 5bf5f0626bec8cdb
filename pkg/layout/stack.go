package layout

import "github.com/hugozap/volare/pkg/scene"

// nonConnectorChildren filters out promoted-in connector nodes that may
// ride along in a container's declared children; connectors are resolved
// in a separate pass after every sibling has geometry.
func nonConnectorChildren(children []scene.TreeNode) []scene.TreeNode {
	out := make([]scene.TreeNode, 0, len(children))
	for _, c := range children {
		if c.Handle.Kind == scene.KindConnector {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (e *engine) measureStack(n scene.TreeNode) (intrinsic, error) {
	stack := e.b.Stacks[n.Handle.Index]
	isVertical := stack.Kind == scene.KindVStack

	children := nonConnectorChildren(n.Children)
	var sumMain, maxCross float64
	for _, c := range children {
		ci, err := e.measure(c)
		if err != nil {
			return intrinsic{}, err
		}
		main, cross := mainCross(isVertical, ci.W, ci.H)
		sumMain += main
		if cross > maxCross {
			maxCross = cross
		}
	}
	if len(children) > 1 {
		sumMain += float64(len(children)-1) * stack.Spacing
	}

	w, h := fromMainCross(isVertical, sumMain, maxCross)
	return intrinsic{
		W: resolveDim(stack.Width, w),
		H: resolveDim(stack.Height, h),
	}, nil
}

func (e *engine) arrangeStack(n scene.TreeNode, outer Geometry) error {
	e.geo[n.Handle] = outer
	stack := e.b.Stacks[n.Handle.Index]
	isVertical := stack.Kind == scene.KindVStack
	children := nonConnectorChildren(n.Children)

	outerMain, outerCross := mainCross(isVertical, outer.W, outer.H)

	type childInfo struct {
		node      scene.TreeNode
		intr      intrinsic
		mainDim   scene.Dim
		crossDim  scene.Dim
		mainIntr  float64
		crossIntr float64
	}

	infos := make([]childInfo, 0, len(children))
	var fixedMain float64
	var growCount int
	for _, c := range children {
		ci, err := e.measure(c)
		if err != nil {
			return err
		}
		wd, hd := e.b.Dims(c.Handle)
		mainDim, crossDim := mainCrossDim(isVertical, wd, hd)
		mainIntr, crossIntr := mainCross(isVertical, ci.W, ci.H)

		switch mainDim.Mode {
		case scene.ModeFixed:
			fixedMain += mainDim.Value
		case scene.ModeGrow:
			growCount++
		default:
			fixedMain += mainIntr
		}

		infos = append(infos, childInfo{c, ci, mainDim, crossDim, mainIntr, crossIntr})
	}

	if len(infos) > 1 {
		fixedMain += float64(len(infos)-1) * stack.Spacing
	}

	var perGrow float64
	if growCount > 0 {
		perGrow = maxF(0, (outerMain-fixedMain)/float64(growCount))
	}

	cursor := 0.0
	for _, info := range infos {
		var mainSize float64
		switch info.mainDim.Mode {
		case scene.ModeFixed:
			mainSize = info.mainDim.Value
		case scene.ModeGrow:
			mainSize = perGrow
		default:
			mainSize = info.mainIntr
		}

		var crossSize float64
		if stack.Align == "stretch" {
			crossSize = outerCross
		} else {
			switch info.crossDim.Mode {
			case scene.ModeFixed:
				crossSize = info.crossDim.Value
			case scene.ModeGrow:
				crossSize = outerCross
			default:
				crossSize = info.crossIntr
			}
		}

		crossPos := alignOffset(stack.Align, outerCross, crossSize)

		var geo Geometry
		if isVertical {
			geo = Geometry{X: outer.X + crossPos, Y: outer.Y + cursor, W: crossSize, H: mainSize}
		} else {
			geo = Geometry{X: outer.X + cursor, Y: outer.Y + crossPos, W: mainSize, H: crossSize}
		}

		if err := e.arrange(info.node, geo); err != nil {
			return err
		}
		cursor += mainSize + stack.Spacing
	}

	return nil
}

func mainCross(isVertical bool, w, h float64) (main, cross float64) {
	if isVertical {
		return h, w
	}
	return w, h
}

func fromMainCross(isVertical bool, main, cross float64) (w, h float64) {
	if isVertical {
		return cross, main
	}
	return main, cross
}

func mainCrossDim(isVertical bool, wd, hd scene.Dim) (mainDim, crossDim scene.Dim) {
	if isVertical {
		return hd, wd
	}
	return wd, hd
}

// alignOffset computes the cross-axis offset for an alignment key.
// left/top -> 0, center -> centered, right/bottom -> flush far edge,
// stretch -> 0 (caller already forced crossSize == outerCross).
func alignOffset(align string, outerCross, childCross float64) float64 {
	switch align {
	case "center":
		return maxF(0, (outerCross-childCross)/2)
	case "right", "bottom":
		return maxF(0, outerCross-childCross)
	default: // left, top, stretch
		return 0
	}
}
