package layout

import (
	"math"

	"github.com/hugozap/volare/pkg/scene"
	"github.com/hugozap/volare/pkg/volerr"
)

// resolveConnectors runs last, once every other entity has geometry
// it reads each connector's resolved source/target
// handles directly from the builder rather than walking the tree, since
// promotion already settled which container owns each connector and every
// endpoint's Geometry is already keyed by handle regardless of nesting.
func (e *engine) resolveConnectors() error {
	for i, c := range e.b.Connectors {
		h := scene.Handle{Kind: scene.KindConnector, Index: i}

		srcGeo, ok := e.geo[c.SourceH]
		if !ok {
			return &volerr.UnresolvedReference{FromID: c.ID, ToID: c.Source}
		}
		tgtGeo, ok := e.geo[c.TargetH]
		if !ok {
			return &volerr.UnresolvedReference{FromID: c.ID, ToID: c.Target}
		}

		start := portAnchor(srcGeo, c.SourcePort)
		end := portAnchor(tgtGeo, c.TargetPort)

		path := ConnectorPath{
			Start:      start,
			End:        end,
			Mode:       c.Mode,
			ArrowStart: c.ArrowStart,
			ArrowEnd:   c.ArrowEnd,
			ArrowSize:  c.ArrowSize,
		}

		switch c.Mode {
		case "orthogonal":
			path.Waypoints = orthogonalRoute(start, end)
		case "curved":
			path.Waypoints = []Point{curveControlPoint(start, end, c.CurveOffset)}
		default: // straight
		}

		e.conn[h] = path
		e.geo[h] = boundingBox(path)
	}
	return nil
}

// portAnchor resolves a named port on a rectangle to an absolute point.
// Center and the four edge-midpoints cover the common "center/edge-midpoints",
// the four corners cover "corners"; an unrecognized port falls back to center.
func portAnchor(g Geometry, port string) Point {
	switch port {
	case "top":
		return Point{X: g.X + g.W/2, Y: g.Y}
	case "bottom":
		return Point{X: g.X + g.W/2, Y: g.Y + g.H}
	case "left":
		return Point{X: g.X, Y: g.Y + g.H/2}
	case "right":
		return Point{X: g.X + g.W, Y: g.Y + g.H/2}
	case "top_left":
		return Point{X: g.X, Y: g.Y}
	case "top_right":
		return Point{X: g.X + g.W, Y: g.Y}
	case "bottom_left":
		return Point{X: g.X, Y: g.Y + g.H}
	case "bottom_right":
		return Point{X: g.X + g.W, Y: g.Y + g.H}
	default: // "center" and anything unrecognized
		return Point{X: g.X + g.W/2, Y: g.Y + g.H/2}
	}
}

// orthogonalRoute returns the single interior corner of an L route,
// horizontal-first when |dx| >= |dy|.
func orthogonalRoute(start, end Point) []Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	if math.Abs(dx) >= math.Abs(dy) {
		return []Point{{X: end.X, Y: start.Y}}
	}
	return []Point{{X: start.X, Y: end.Y}}
}

// curveControlPoint returns the quadratic Bezier control point: the
// midpoint of start/end, displaced perpendicular to the line by offset.
func curveControlPoint(start, end Point, offset float64) Point {
	mx, my := (start.X+end.X)/2, (start.Y+end.Y)/2
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Point{X: mx, Y: my}
	}
	// Perpendicular unit vector (-dy, dx) / length.
	nx, ny := -dy/length, dx/length
	return Point{X: mx + nx*offset, Y: my + ny*offset}
}

func boundingBox(p ConnectorPath) Geometry {
	minX, maxX := math.Min(p.Start.X, p.End.X), math.Max(p.Start.X, p.End.X)
	minY, maxY := math.Min(p.Start.Y, p.End.Y), math.Max(p.Start.Y, p.End.Y)
	for _, w := range p.Waypoints {
		minX, maxX = math.Min(minX, w.X), math.Max(maxX, w.X)
		minY, maxY = math.Min(minY, w.Y), math.Max(maxY, w.Y)
	}
	return Geometry{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
