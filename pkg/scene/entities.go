package scene

import "github.com/hugozap/volare/pkg/record"

// Handle is an ownership-free reference into a Builder's typed stores: a
// (kind, index) pair. Index is stable for the lifetime of the Builder.
type Handle struct {
	Kind  Kind
	Index int
}

// Text is the "text" entity kind: wrapped, measured via a FontMetrics service.
type Text struct {
	ID          string
	Width       Dim // usually content, but fixed/grow are honored like any entity
	Height      Dim
	Content     string
	FontFamily  string
	FontSize    float64
	LineWidth   int // max characters per line; 0 means unbounded (single line)
	LineSpacing float64
	Color       string
	Attrs       record.Record
}

// Box wraps exactly one child with uniform padding on all sides.
type Box struct {
	ID      string
	Width   Dim
	Height  Dim
	Padding float64
	Child   Handle
	Attrs   record.Record
}

// Shape covers every other childless primitive: rect, ellipse, line, arc,
// semicircle, quarter_circle, polyline, image, spacer. Their geometry
// attributes vary enough by kind that layout reads them out of Attrs rather
// than forcing one schema on all nine kinds.
type Shape struct {
	ID     string
	Kind   Kind
	Width  Dim
	Height Dim
	Attrs  record.Record
}

// Stack is the shared representation for vstack and hstack; Kind
// discriminates the main axis.
type Stack struct {
	ID       string
	Kind     Kind // KindVStack or KindHStack
	Width    Dim
	Height   Dim
	Spacing  float64
	Align    string // cross-axis alignment key: left|center|right|top|bottom|stretch
	Children []Handle
	Attrs    record.Record
}

// Group is a plain container with no flow rule of its own. "group" names
// an entity kind without prescribing its layout, so its
// behavior is filled in the same way as free_container (declared x/y per
// child, defaulting to (0,0), no clipping) but self-sized as the tight
// bounding box of its placed children unless width/height is declared —
// the natural default for a kind whose purpose is grouping (e.g. as a
// connector-promotion ancestor) rather than flow arrangement.
type Group struct {
	ID         string
	Width      Dim
	Height     Dim
	Placements []FreePlacement
	Attrs      record.Record
}

// Table arranges children into Columns columns and ceil(n/Columns) rows.
type Table struct {
	ID          string
	Columns     int
	CellPadding float64
	HeaderFill  string
	Fill        string
	Children    []Handle
	Attrs       record.Record
}

// FreePlacement is one child's declared position within a FreeContainer.
type FreePlacement struct {
	Child Handle
	X, Y  float64
}

// FreeContainer places children at declared (x,y) with no clipping.
type FreeContainer struct {
	ID         string
	Width      Dim
	Height     Dim
	Placements []FreePlacement
	Attrs      record.Record
}

// ConstraintContainer delegates its children's geometry to the constraint
// solver. Constraints are kept as raw records; pkg/constraint decodes them
// to avoid a scene->constraint->scene import cycle.
type ConstraintContainer struct {
	ID          string
	Width       Dim
	Height      Dim
	Children    []Handle
	Constraints []record.Record
	Attrs       record.Record
}

// Connector draws a line between two resolved peer entities. Source/Target
// hold the declared ids; SourceH/TargetH are filled in once the
// whole tree is built and ids are known to resolve.
type Connector struct {
	ID                 string
	Source, Target     string
	SourceH, TargetH   Handle
	SourcePort         string
	TargetPort         string
	Mode               string // straight|orthogonal|curved
	CurveOffset        float64
	ArrowStart         bool
	ArrowEnd           bool
	ArrowSize          float64
	Attrs              record.Record
}
