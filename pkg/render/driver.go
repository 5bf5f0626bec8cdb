package render

import (
	"fmt"

	"github.com/hugozap/volare/pkg/layout"
	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
	"github.com/hugozap/volare/pkg/volerr"
)

// Render walks tree depth-first, calling r once per entity with its
// resolved geometry. A container's own background/border is
// drawn before its children so the container appears "under" them;
// connectors are drawn last within their (already-promoted) container.
func Render(tree scene.TreeNode, b *scene.Builder, geo layout.GeometryMap, conn layout.ConnectorMap, r Renderer) error {
	return renderNode(tree, b, geo, conn, r)
}

func renderNode(n scene.TreeNode, b *scene.Builder, geo layout.GeometryMap, conn layout.ConnectorMap, r Renderer) error {
	switch n.Handle.Kind {
	case scene.KindConnector:
		return renderConnector(n, b, conn, r)

	case scene.KindText:
		t := b.Texts[n.Handle.Index]
		return wrap(t.ID, r.DrawText(t, geo[n.Handle]))

	case scene.KindBox:
		box := b.Boxes[n.Handle.Index]
		if hasVisual(box.Attrs) {
			if err := wrap(box.ID, r.DrawRect(box.Attrs, geo[n.Handle])); err != nil {
				return err
			}
		}
		if len(n.Children) == 1 {
			return renderNode(n.Children[0], b, geo, conn, r)
		}
		return nil

	case scene.KindVStack, scene.KindHStack, scene.KindGroup, scene.KindFreeContainer, scene.KindConstraintContainer:
		return renderChildren(n, b, geo, conn, r)

	case scene.KindTable:
		return renderTable(n, b, geo, conn, r)

	default:
		return renderShape(n, b, geo, r)
	}
}

// renderChildren draws every non-connector child in declared order, then
// every connector child, so promoted connectors always draw last.
func renderChildren(n scene.TreeNode, b *scene.Builder, geo layout.GeometryMap, conn layout.ConnectorMap, r Renderer) error {
	var connectors []scene.TreeNode
	for _, c := range n.Children {
		if c.Handle.Kind == scene.KindConnector {
			connectors = append(connectors, c)
			continue
		}
		if err := renderNode(c, b, geo, conn, r); err != nil {
			return err
		}
	}
	for _, c := range connectors {
		if err := renderNode(c, b, geo, conn, r); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(n scene.TreeNode, b *scene.Builder, geo layout.GeometryMap, conn layout.ConnectorMap, r Renderer) error {
	table := b.Tables[n.Handle.Index]
	cols := table.Columns
	if cols <= 0 {
		cols = 1
	}

	i := 0
	var connectors []scene.TreeNode
	for _, c := range n.Children {
		if c.Handle.Kind == scene.KindConnector {
			connectors = append(connectors, c)
			continue
		}
		fill := table.Fill
		if i/cols == 0 {
			fill = table.HeaderFill
		}
		cellAttrs := record.Record{"background": fill}
		if err := wrap(table.ID, r.DrawRect(cellAttrs, geo[c.Handle])); err != nil {
			return err
		}
		if err := renderNode(c, b, geo, conn, r); err != nil {
			return err
		}
		i++
	}
	for _, c := range connectors {
		if err := renderNode(c, b, geo, conn, r); err != nil {
			return err
		}
	}
	return nil
}

func renderConnector(n scene.TreeNode, b *scene.Builder, conn layout.ConnectorMap, r Renderer) error {
	c := b.Connectors[n.Handle.Index]
	path, ok := conn[n.Handle]
	if !ok {
		return &volerr.RenderError{Detail: fmt.Sprintf("connector %q has no resolved path", c.ID)}
	}
	return wrap(c.ID, r.DrawConnector(c, path))
}

func renderShape(n scene.TreeNode, b *scene.Builder, geo layout.GeometryMap, r Renderer) error {
	s := b.Shapes[n.Handle.Index]
	rect := geo[n.Handle]
	switch s.Kind {
	case scene.KindRect:
		return wrap(s.ID, r.DrawRect(s.Attrs, rect))
	case scene.KindEllipse:
		return wrap(s.ID, r.DrawEllipse(s.Attrs, rect))
	case scene.KindArc:
		return wrap(s.ID, r.DrawArc(s.Attrs, rect))
	case scene.KindSemicircle:
		return wrap(s.ID, r.DrawSemicircle(s.Attrs, rect))
	case scene.KindQuarterCircle:
		return wrap(s.ID, r.DrawQuarterCircle(s.Attrs, rect))
	case scene.KindLine:
		return wrap(s.ID, r.DrawLine(s.Attrs, rect))
	case scene.KindPolyline:
		return wrap(s.ID, r.DrawPolyline(s.Attrs, rect))
	case scene.KindImage:
		return wrap(s.ID, r.DrawImage(s.Attrs, rect))
	case scene.KindSpacer:
		return wrap(s.ID, r.DrawSpacer(rect))
	default:
		return &volerr.RenderError{Detail: fmt.Sprintf("entity %q: no primitive for kind %s", s.ID, s.Kind)}
	}
}

func hasVisual(attrs record.Record) bool {
	_, bg := attrs["background"]
	_, border := attrs["border_color"]
	return bg || border
}

func wrap(id string, err error) error {
	if err == nil {
		return nil
	}
	return &volerr.RenderError{Detail: fmt.Sprintf("rendering %q", id), Cause: err}
}
