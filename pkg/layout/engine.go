package layout

import (
	"context"
	"fmt"

	"github.com/hugozap/volare/pkg/fontmetrics"
	"github.com/hugozap/volare/pkg/scene"
)

// engine carries the read-only inputs shared across one layout pass: the
// builder (entity stores), the font metrics service, and accumulated
// diagnostics. A plain stage-orchestrator shape, but for a two-phase tree
// walk instead of a multi-stage generation pipeline.
type engine struct {
	b    *scene.Builder
	fm   fontmetrics.Service
	diag *Diagnostics
	geo  GeometryMap
	conn ConnectorMap
}

// Layout runs the measure/arrange two-phase walk over tree and returns the
// resolved geometry for every entity reachable from the root. ctx is
// checked at the phase boundary between measure and arrange, consistent
// with a single-threaded, non-suspending pipeline:
// cancellation is observed between stages, not injected mid-recursion.
func Layout(ctx context.Context, tree scene.TreeNode, b *scene.Builder, fm fontmetrics.Service) (GeometryMap, ConnectorMap, *Diagnostics, error) {
	if fm == nil {
		fm = fontmetrics.NewFixedAdvance()
	}
	e := &engine{b: b, fm: fm, diag: &Diagnostics{}, geo: make(GeometryMap), conn: make(ConnectorMap)}
	e.diag.Warnings = append(e.diag.Warnings, b.Warnings...)

	rootIntrinsic, err := e.measure(tree)
	if err != nil {
		return nil, nil, nil, err
	}

	select {
	case <-ctx.Done():
		return nil, nil, nil, ctx.Err()
	default:
	}

	root := Geometry{X: 0, Y: 0, W: rootIntrinsic.W, H: rootIntrinsic.H}
	if err := e.arrange(tree, root); err != nil {
		return nil, nil, nil, err
	}

	if err := e.resolveConnectors(); err != nil {
		return nil, nil, nil, err
	}

	return e.geo, e.conn, e.diag, nil
}

func (e *engine) measure(n scene.TreeNode) (intrinsic, error) {
	switch n.Handle.Kind {
	case scene.KindConnector:
		return intrinsic{}, nil
	case scene.KindText:
		return e.measureText(n.Handle), nil
	case scene.KindBox:
		return e.measureBox(n)
	case scene.KindVStack, scene.KindHStack:
		return e.measureStack(n)
	case scene.KindGroup:
		return e.measureGroup(n)
	case scene.KindTable:
		return e.measureTable(n)
	case scene.KindFreeContainer:
		return e.measureFreeContainer(n)
	case scene.KindConstraintContainer:
		return e.measureConstraintContainer(n)
	default:
		return e.measureShape(n.Handle), nil
	}
}

func (e *engine) arrange(n scene.TreeNode, outer Geometry) error {
	switch n.Handle.Kind {
	case scene.KindConnector:
		return nil // resolved in a later pass, after all siblings have geometry
	case scene.KindText:
		e.geo[n.Handle] = outer
		return nil
	case scene.KindBox:
		return e.arrangeBox(n, outer)
	case scene.KindVStack, scene.KindHStack:
		return e.arrangeStack(n, outer)
	case scene.KindGroup:
		return e.arrangeGroup(n, outer)
	case scene.KindTable:
		return e.arrangeTable(n, outer)
	case scene.KindFreeContainer:
		return e.arrangeFreeContainer(n, outer)
	case scene.KindConstraintContainer:
		return e.arrangeConstraintContainer(n, outer)
	default:
		e.geo[n.Handle] = outer
		return nil
	}
}

// resolveDim picks the size to use for the *measure* of one dimension: the
// declared value when the dimension is fixed, otherwise the content-mode
// intrinsic value (grow measures like content). Final size is
// decided later, in arrange, using the declared mode against the parent's
// allocation.
func resolveDim(d scene.Dim, contentValue float64) float64 {
	if d.Mode == scene.ModeFixed {
		return d.Value
	}
	return contentValue
}

func errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
