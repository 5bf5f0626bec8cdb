// Package render implements the fifth and final pipeline stage: walking the
// built, laid-out tree and calling a narrow per-kind Renderer interface
// with resolved geometry. The core never re-queries the
// Builder for geometry from inside a Renderer call; every draw call carries
// its own Rect.
package render

import (
	"github.com/hugozap/volare/pkg/layout"
	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
)

// Renderer is implemented by a rendering back end. One method per entity
// kind's primitive, plus a connector method driven by the resolved
// ConnectorPath rather than a plain Rect. attrs is always the alias-resolved
// record (canonical attribute names only).
type Renderer interface {
	DrawText(t scene.Text, rect layout.Geometry) error
	DrawRect(attrs record.Record, rect layout.Geometry) error
	DrawEllipse(attrs record.Record, rect layout.Geometry) error
	DrawArc(attrs record.Record, rect layout.Geometry) error
	DrawSemicircle(attrs record.Record, rect layout.Geometry) error
	DrawQuarterCircle(attrs record.Record, rect layout.Geometry) error
	DrawLine(attrs record.Record, rect layout.Geometry) error
	DrawPolyline(attrs record.Record, rect layout.Geometry) error
	DrawImage(attrs record.Record, rect layout.Geometry) error
	DrawSpacer(rect layout.Geometry) error
	DrawConnector(c scene.Connector, path layout.ConnectorPath) error
}
