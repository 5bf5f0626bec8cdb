package components

import (
	"fmt"

	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/scene"
)

// buildDocumentSection assembles a vstack of up to three referenced
// sub-records: header_id, content_id, footer_id, in that order. Any of the
// three may be absent.
func buildDocumentSection(id string, attrs record.Record, records map[string]record.Record, b *scene.Builder) (scene.TreeNode, error) {
	var handles []scene.Handle
	var nodes []scene.TreeNode

	for _, key := range []string{"header_id", "content_id", "footer_id"} {
		refID, _ := attrs[key].(string)
		if refID == "" {
			continue
		}
		node, err := b.BuildEntity(refID, records)
		if err != nil {
			return scene.TreeNode{}, fmt.Errorf("document.section %s: %w", key, err)
		}
		handles = append(handles, node.Handle)
		nodes = append(nodes, node)
	}

	stack := scene.Stack{
		ID:       id,
		Kind:     scene.KindVStack,
		Width:    dimAttr(attrs, "width"),
		Height:   dimAttr(attrs, "height"),
		Spacing:  numOr(attrs, "spacing", 8),
		Align:    strOr(attrs, "align", "left"),
		Children: handles,
	}
	h := b.PushStack(stack)
	return scene.TreeNode{Handle: h, Children: nodes}, nil
}

// buildDocumentProperties assembles a two-column table of name/value pairs.
// Both documented input shapes are accepted and
// normalized to a common []  {name, value}  list:
//
//	items:      [{"name": "...", "value": "..."}, ...]
//	properties: [["name", "value"], ...]
func buildDocumentProperties(id string, attrs record.Record, _ map[string]record.Record, b *scene.Builder) (scene.TreeNode, error) {
	type pair struct{ name, value string }
	var pairs []pair

	if items, ok := attrs["items"].([]any); ok {
		for _, raw := range items {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name, _ := m["name"].(string)
			value, _ := m["value"].(string)
			pairs = append(pairs, pair{name, value})
		}
	} else if props, ok := attrs["properties"].([]any); ok {
		for _, raw := range props {
			row, ok := raw.([]any)
			if !ok || len(row) != 2 {
				continue
			}
			name, _ := row[0].(string)
			value, _ := row[1].(string)
			pairs = append(pairs, pair{name, value})
		}
	}

	var handles []scene.Handle
	var nodes []scene.TreeNode
	for i, p := range pairs {
		nameH := b.PushText(scene.Text{ID: subID(id, i, "propname", 0), Content: p.name, FontSize: 11})
		valueH := b.PushText(scene.Text{ID: subID(id, i, "propvalue", 0), Content: p.value, FontSize: 11})
		handles = append(handles, nameH, valueH)
		nodes = append(nodes, scene.TreeNode{Handle: nameH}, scene.TreeNode{Handle: valueH})
	}

	table := scene.Table{
		ID:          id,
		Columns:     2,
		CellPadding: numOr(attrs, "cell_padding", 4),
		HeaderFill:  strOr(attrs, "header_fill_color", "#dddddd"),
		Fill:        strOr(attrs, "fill_color", "#ffffff"),
		Children:    handles,
	}
	h := b.PushTable(table)
	return scene.TreeNode{Handle: h, Children: nodes}, nil
}

// buildDocumentText is a thin pass-through that materializes a native text
// entity from document.text's attributes, letting document.section treat
// body copy the same as any other referenced sub-entity.
func buildDocumentText(id string, attrs record.Record, _ map[string]record.Record, b *scene.Builder) (scene.TreeNode, error) {
	content, _ := attrs["content"].(string)
	if content == "" {
		content, _ = attrs["text"].(string)
	}
	h := b.PushText(scene.Text{
		ID:          id,
		Content:     content,
		FontFamily:  strOr(attrs, "font_family", "default"),
		FontSize:    numOr(attrs, "font_size", 12),
		LineWidth:   int(numOr(attrs, "line_width", 0)),
		LineSpacing: numOr(attrs, "line_spacing", 4),
		Color:       strOr(attrs, "color", "#000000"),
		Attrs:       attrs,
	})
	return scene.TreeNode{Handle: h}, nil
}

func numOr(attrs record.Record, key string, fallback float64) float64 {
	if v, ok := attrs[key].(float64); ok {
		return v
	}
	return fallback
}

func strOr(attrs record.Record, key, fallback string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return fallback
}

func dimAttr(attrs record.Record, key string) scene.Dim {
	v, ok := attrs[key]
	if !ok {
		return scene.Dim{Mode: scene.ModeContent}
	}
	switch t := v.(type) {
	case float64:
		return scene.Dim{Mode: scene.ModeFixed, Value: t}
	case string:
		if t == "grow" {
			return scene.Dim{Mode: scene.ModeGrow}
		}
	}
	return scene.Dim{Mode: scene.ModeContent}
}
