package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/hugozap/volare/pkg/layout"
	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
)

// SVGOptions configures the reference SVG renderer.
type SVGOptions struct {
	Width, Height int
	Background    string // canvas background, empty means transparent
}

// DefaultSVGOptions returns a fixed 800x600 canvas with a white background.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 600, Background: "#ffffff"}
}

// SVGRenderer is the reference Renderer implementation, grounded on the
// corpus's own SVG exporter: one canvas.<Primitive> call per draw method,
// styles built as semicolon-joined "key:value" strings.
type SVGRenderer struct {
	canvas *svg.SVG
}

// NewSVGRenderer starts a canvas of the given size on w and returns a
// Renderer ready to receive draw calls. Callers must call Close when done.
func NewSVGRenderer(w io.Writer, opts SVGOptions) *SVGRenderer {
	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	if opts.Background != "" {
		canvas.Rect(0, 0, opts.Width, opts.Height, fmt.Sprintf("fill:%s", opts.Background))
	}
	return &SVGRenderer{canvas: canvas}
}

// Close emits the closing SVG tag. Must be called exactly once after the
// render driver has finished walking the tree.
func (s *SVGRenderer) Close() {
	s.canvas.End()
}

func (s *SVGRenderer) DrawText(t scene.Text, rect layout.Geometry) error {
	style := fmt.Sprintf("font-family:%s;font-size:%gpx;fill:%s", t.FontFamily, t.FontSize, t.Color)
	lines := layout.WrapLines(t.Content, t.LineWidth)
	lineHeight := t.FontSize + t.LineSpacing
	for i, line := range lines {
		y := int(rect.Y + t.FontSize + float64(i)*lineHeight)
		s.canvas.Text(int(rect.X), y, line, style)
	}
	return nil
}

func (s *SVGRenderer) DrawRect(attrs record.Record, rect layout.Geometry) error {
	style := fillStrokeStyle(attrs)
	rx := numAttr(attrs, "corner_radius", 0)
	if rx > 0 {
		s.canvas.Roundrect(int(rect.X), int(rect.Y), int(rect.W), int(rect.H), int(rx), int(rx), style)
	} else {
		s.canvas.Rect(int(rect.X), int(rect.Y), int(rect.W), int(rect.H), style)
	}
	return nil
}

func (s *SVGRenderer) DrawEllipse(attrs record.Record, rect layout.Geometry) error {
	style := fillStrokeStyle(attrs)
	cx := int(rect.X + rect.W/2)
	cy := int(rect.Y + rect.H/2)
	s.canvas.Ellipse(cx, cy, int(rect.W/2), int(rect.H/2), style)
	return nil
}

// DrawArc, DrawSemicircle and DrawQuarterCircle all sweep an elliptical arc
// between start_angle and end_angle (degrees, 0 = +x axis, clockwise),
// defaulting to a half or quarter turn when the entity kind implies it and
// no explicit angles are declared.
func (s *SVGRenderer) DrawArc(attrs record.Record, rect layout.Geometry) error {
	return s.drawSweep(attrs, rect, numAttr(attrs, "start_angle", 0), numAttr(attrs, "end_angle", 90))
}

func (s *SVGRenderer) DrawSemicircle(attrs record.Record, rect layout.Geometry) error {
	return s.drawSweep(attrs, rect, numAttr(attrs, "start_angle", 0), numAttr(attrs, "end_angle", 180))
}

func (s *SVGRenderer) DrawQuarterCircle(attrs record.Record, rect layout.Geometry) error {
	return s.drawSweep(attrs, rect, numAttr(attrs, "start_angle", 0), numAttr(attrs, "end_angle", 90))
}

func (s *SVGRenderer) drawSweep(attrs record.Record, rect layout.Geometry, startDeg, endDeg float64) error {
	style := fillStrokeStyle(attrs)
	cx := rect.X + rect.W/2
	cy := rect.Y + rect.H/2
	rx := rect.W / 2
	ry := rect.H / 2

	start := startDeg * math.Pi / 180
	end := endDeg * math.Pi / 180
	sx := int(cx + rx*math.Cos(start))
	sy := int(cy + ry*math.Sin(start))
	ex := int(cx + rx*math.Cos(end))
	ey := int(cy + ry*math.Sin(end))

	large := math.Abs(endDeg-startDeg) > 180
	s.canvas.Arc(sx, sy, int(rx), int(ry), 0, large, true, ex, ey, style)
	return nil
}

func (s *SVGRenderer) DrawLine(attrs record.Record, rect layout.Geometry) error {
	style := strokeStyle(attrs)
	x1 := int(rect.X + numAttr(attrs, "start_x", 0))
	y1 := int(rect.Y + numAttr(attrs, "start_y", 0))
	x2 := int(rect.X + numAttr(attrs, "end_x", rect.W))
	y2 := int(rect.Y + numAttr(attrs, "end_y", rect.H))
	s.canvas.Line(x1, y1, x2, y2, style)
	return nil
}

func (s *SVGRenderer) DrawPolyline(attrs record.Record, rect layout.Geometry) error {
	raw, _ := attrs["points"].([]any)
	xs := make([]int, 0, len(raw))
	ys := make([]int, 0, len(raw))
	for _, p := range raw {
		pt, ok := p.(map[string]any)
		if !ok {
			continue
		}
		x, _ := pt["x"].(float64)
		y, _ := pt["y"].(float64)
		xs = append(xs, int(rect.X+x))
		ys = append(ys, int(rect.Y+y))
	}
	s.canvas.Polyline(xs, ys, strokeStyle(attrs))
	return nil
}

func (s *SVGRenderer) DrawImage(attrs record.Record, rect layout.Geometry) error {
	link, _ := attrs["source"].(string)
	if link == "" {
		link, _ = attrs["src"].(string)
	}
	s.canvas.Image(int(rect.X), int(rect.Y), int(rect.W), int(rect.H), link)
	return nil
}

func (s *SVGRenderer) DrawSpacer(rect layout.Geometry) error {
	return nil // spacer has no visual representation
}

func (s *SVGRenderer) DrawConnector(c scene.Connector, path layout.ConnectorPath) error {
	style := fmt.Sprintf("stroke:%s;stroke-width:%g;fill:none", connectorColor(c.Attrs), connectorWidth(c.Attrs))

	points := append([]layout.Point{path.Start}, path.Waypoints...)
	points = append(points, path.End)

	switch c.Mode {
	case "curved":
		s.drawQuadratic(path.Start, path.Waypoints[0], path.End, style)
	default:
		xs := make([]int, len(points))
		ys := make([]int, len(points))
		for i, p := range points {
			xs[i] = int(p.X)
			ys[i] = int(p.Y)
		}
		s.canvas.Polyline(xs, ys, style)
	}

	arrowColor := connectorColor(c.Attrs)
	if c.ArrowStart {
		dx, dy := directionTo(path, true)
		s.drawArrowhead(path.Start, dx, dy, c.ArrowSize, arrowColor)
	}
	if c.ArrowEnd {
		dx, dy := directionTo(path, false)
		s.drawArrowhead(path.End, dx, dy, c.ArrowSize, arrowColor)
	}
	return nil
}

func (s *SVGRenderer) drawQuadratic(p0, ctrl, p1 layout.Point, style string) {
	const steps = 16
	xs := make([]int, 0, steps+1)
	ys := make([]int, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		mt := 1 - t
		x := mt*mt*p0.X + 2*mt*t*ctrl.X + t*t*p1.X
		y := mt*mt*p0.Y + 2*mt*t*ctrl.Y + t*t*p1.Y
		xs = append(xs, int(x))
		ys = append(ys, int(y))
	}
	s.canvas.Polyline(xs, ys, style)
}

// directionTo returns the unit vector pointing away from the named endpoint
// along the connector's first (or last) segment, used to orient an arrowhead.
func directionTo(path layout.ConnectorPath, atStart bool) (dx, dy float64) {
	var from, to layout.Point
	if atStart {
		from = path.Start
		if len(path.Waypoints) > 0 && path.Mode != "curved" {
			to = path.Waypoints[0]
		} else {
			to = path.End
		}
	} else {
		to = path.End
		if len(path.Waypoints) > 0 && path.Mode != "curved" {
			from = path.Waypoints[len(path.Waypoints)-1]
		} else {
			from = path.Start
		}
	}
	ddx, ddy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(ddx, ddy)
	if length == 0 {
		return 0, 0
	}
	return ddx / length, ddy / length
}

func (s *SVGRenderer) drawArrowhead(tip layout.Point, dx, dy, size float64, color string) {
	angle := math.Atan2(dy, dx)
	const spread = 2.6
	leftX := tip.X - size*math.Cos(angle-spread)
	leftY := tip.Y - size*math.Sin(angle-spread)
	rightX := tip.X - size*math.Cos(angle+spread)
	rightY := tip.Y - size*math.Sin(angle+spread)

	xs := []int{int(tip.X), int(leftX), int(rightX)}
	ys := []int{int(tip.Y), int(leftY), int(rightY)}
	s.canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s", color))
}

func fillStrokeStyle(attrs record.Record) string {
	fill, _ := attrs["background"].(string)
	if fill == "" {
		fill = "none"
	}
	border, _ := attrs["border_color"].(string)
	width := numAttr(attrs, "border_width", 1)
	if border == "" {
		return fmt.Sprintf("fill:%s;stroke:none", fill)
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", fill, border, width)
}

func strokeStyle(attrs record.Record) string {
	color, _ := attrs["border_color"].(string)
	if color == "" {
		color = "#000000"
	}
	width := numAttr(attrs, "border_width", 1)
	return fmt.Sprintf("stroke:%s;stroke-width:%g;fill:none", color, width)
}

func connectorColor(attrs record.Record) string {
	c, _ := attrs["color"].(string)
	if c == "" {
		return "#000000"
	}
	return c
}

func connectorWidth(attrs record.Record) float64 {
	return numAttr(attrs, "line_width", 1)
}

func numAttr(attrs record.Record, key string, def float64) float64 {
	if v, ok := attrs[key].(float64); ok {
		return v
	}
	return def
}
