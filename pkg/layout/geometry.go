// Package layout implements the third pipeline stage: walking the tree
// bottom-up to measure intrinsic sizes and top-down to arrange final
// rectangles, delegating constraint_container children to pkg/constraint.
package layout

import (
	"fmt"

	"github.com/hugozap/volare/pkg/scene"
)

// Geometry is the final per-entity output: {x,y,w,h} in the coordinate
// space of the top-level document, origin top-left, y growing downward.
type Geometry struct {
	X, Y, W, H float64
}

// GeometryMap holds one Geometry per entity reachable from the root.
type GeometryMap map[scene.Handle]Geometry

// Point is a single x,y coordinate in document space.
type Point struct {
	X, Y float64
}

// ConnectorPath is the resolved line a connector renders as: two endpoints,
// zero or more interior waypoints (orthogonal routing) or a single control
// point (curved mode, held as the one entry in Waypoints), plus the arrow
// and mode flags the renderer needs. Geometry[connector] still holds the
// path's bounding box so connectors behave like every other entity for
// diagnostics and containment checks.
type ConnectorPath struct {
	Start, End Point
	Waypoints  []Point
	Mode       string
	ArrowStart bool
	ArrowEnd   bool
	ArrowSize  float64
}

// ConnectorMap holds one resolved ConnectorPath per connector entity.
type ConnectorMap map[scene.Handle]ConnectorPath

// Diagnostics accumulates non-fatal warnings raised over the whole pipeline.
// Layout seeds its own Diagnostics with the Builder's Warnings (alias
// collisions, connectors left unpromoted for lack of an eligible ancestor)
// and adds its own (grow requested where a free_container/group has no
// allocation to grow into), so callers see one combined list regardless of
// which stage raised the warning.
type Diagnostics struct {
	Warnings []string
}

func (d *Diagnostics) warn(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// intrinsic is the bottom-up measurement result for one node: the size it
// wants when unconstrained by its parent.
type intrinsic struct {
	W, H float64
}
