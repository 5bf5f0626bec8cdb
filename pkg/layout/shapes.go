package layout

import "github.com/hugozap/volare/pkg/scene"

func (e *engine) measureShape(h scene.Handle) intrinsic {
	s := e.b.Shapes[h.Index]
	w, ht := shapeContentSize(s)
	return intrinsic{
		W: resolveDim(s.Width, w),
		H: resolveDim(s.Height, ht),
	}
}

// shapeContentSize derives a content-mode intrinsic size from a shape's
// kind-specific attributes. Kinds with no such attribute (rect, image,
// spacer) report 0,0; a declared fixed width/height is applied on top by
// measureShape.
func shapeContentSize(s scene.Shape) (w, h float64) {
	switch s.Kind {
	case scene.KindEllipse:
		rx := numOrRadius(s.Attrs, "radius_x", "radius", 0)
		ry := numOrRadius(s.Attrs, "radius_y", "radius", 0)
		return rx * 2, ry * 2

	case scene.KindArc, scene.KindSemicircle, scene.KindQuarterCircle:
		r := numOrRadius(s.Attrs, "radius", "radius", 0)
		return r * 2, r * 2

	case scene.KindLine:
		x1 := attrNum(s.Attrs, "start_x", 0)
		y1 := attrNum(s.Attrs, "start_y", 0)
		x2 := attrNum(s.Attrs, "end_x", 0)
		y2 := attrNum(s.Attrs, "end_y", 0)
		return absF(x2 - x1), absF(y2 - y1)

	case scene.KindPolyline:
		return polylineBounds(s.Attrs)

	default: // rect, image, spacer
		return 0, 0
	}
}

func numOrRadius(attrs map[string]any, primary, fallback string, def float64) float64 {
	if v, ok := attrs[primary].(float64); ok {
		return v
	}
	if v, ok := attrs[fallback].(float64); ok {
		return v
	}
	return def
}

func attrNum(attrs map[string]any, key string, def float64) float64 {
	if v, ok := attrs[key].(float64); ok {
		return v
	}
	return def
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func polylineBounds(attrs map[string]any) (w, h float64) {
	raw, ok := attrs["points"].([]any)
	if !ok {
		return 0, 0
	}
	var minX, minY, maxX, maxY float64
	first := true
	for _, p := range raw {
		pt, ok := p.(map[string]any)
		if !ok {
			continue
		}
		x, _ := pt["x"].(float64)
		y, _ := pt["y"].(float64)
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			continue
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return maxX - minX, maxY - minY
}
