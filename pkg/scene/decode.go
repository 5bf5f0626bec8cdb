package scene

import "github.com/hugozap/volare/pkg/record"

// numAttr reads a numeric attribute, returning (value, true) if present and
// numeric, else (fallback, false).
func numAttr(rec record.Record, key string, fallback float64) (float64, bool) {
	v, ok := rec[key]
	if !ok {
		return fallback, false
	}
	n, ok := v.(float64)
	if !ok {
		return fallback, false
	}
	return n, true
}

func intAttr(rec record.Record, key string, fallback int) int {
	n, ok := numAttr(rec, key, float64(fallback))
	if !ok {
		return fallback
	}
	return int(n)
}

func strAttrDefault(rec record.Record, key, fallback string) string {
	v, ok := rec[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

func boolAttr(rec record.Record, key string, fallback bool) bool {
	v, ok := rec[key]
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

func decodeText(id string, rec record.Record) Text {
	return Text{
		ID:          id,
		Width:       dimFromAttr(rec["width"]),
		Height:      dimFromAttr(rec["height"]),
		Content:     strAttrDefault(rec, "content", ""),
		FontFamily:  strAttrDefault(rec, "font_family", "default"),
		FontSize:    firstNum(rec, 16, "font_size"),
		LineWidth:   intAttr(rec, "line_width", 0),
		LineSpacing: firstNum(rec, 4, "line_spacing"),
		Color:       strAttrDefault(rec, "color", "#000000"),
		Attrs:       rec,
	}
}

func decodeBox(id string, rec record.Record) Box {
	return Box{
		ID:      id,
		Width:   dimFromAttr(rec["width"]),
		Height:  dimFromAttr(rec["height"]),
		Padding: firstNum(rec, 0, "padding"),
		Attrs:   rec,
	}
}

func decodeShape(id string, kind Kind, rec record.Record) Shape {
	return Shape{
		ID:     id,
		Kind:   kind,
		Width:  dimFromAttr(rec["width"]),
		Height: dimFromAttr(rec["height"]),
		Attrs:  rec,
	}
}

func decodeStack(id string, kind Kind, rec record.Record) Stack {
	// Cross-axis alignment defaults to centered when a record doesn't
	// declare one explicitly.
	defaultAlign := "center"
	return Stack{
		ID:      id,
		Kind:    kind,
		Width:   dimFromAttr(rec["width"]),
		Height:  dimFromAttr(rec["height"]),
		Spacing: firstNum(rec, 0, "spacing"),
		Align:   strAttrDefault(rec, "align", defaultAlign),
		Attrs:   rec,
	}
}

func decodeGroup(id string, rec record.Record) Group {
	return Group{
		ID:     id,
		Width:  dimFromAttr(rec["width"]),
		Height: dimFromAttr(rec["height"]),
		Attrs:  rec,
	}
}

func decodeTable(id string, rec record.Record) Table {
	return Table{
		ID:          id,
		Columns:     intAttr(rec, "columns", 1),
		CellPadding: firstNum(rec, 4, "cell_padding"),
		HeaderFill:  strAttrDefault(rec, "header_fill_color", "#dddddd"),
		Fill:        strAttrDefault(rec, "fill_color", "#ffffff"),
		Attrs:       rec,
	}
}

func decodeFreeContainer(id string, rec record.Record) FreeContainer {
	return FreeContainer{
		ID:     id,
		Width:  dimFromAttr(rec["width"]),
		Height: dimFromAttr(rec["height"]),
		Attrs:  rec,
	}
}

func decodeConstraintContainer(id string, rec record.Record) ConstraintContainer {
	var constraints []record.Record
	if raw, ok := rec["constraints"].([]any); ok {
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				constraints = append(constraints, record.Record(m))
			}
		}
	}
	return ConstraintContainer{
		ID:          id,
		Width:       dimFromAttr(rec["width"]),
		Height:      dimFromAttr(rec["height"]),
		Constraints: constraints,
		Attrs:       rec,
	}
}

func decodeConnector(id string, rec record.Record) Connector {
	return Connector{
		ID:          id,
		Source:      strAttrDefault(rec, "source", ""),
		Target:      strAttrDefault(rec, "target", ""),
		SourcePort:  strAttrDefault(rec, "source_port", "center"),
		TargetPort:  strAttrDefault(rec, "target_port", "center"),
		Mode:        strAttrDefault(rec, "mode", "straight"),
		CurveOffset: firstNum(rec, 20, "curve_offset"),
		ArrowStart:  boolAttr(rec, "arrow_start", false),
		ArrowEnd:    boolAttr(rec, "arrow_end", false),
		ArrowSize:   firstNum(rec, 8, "arrow_size"),
		Attrs:       rec,
	}
}

// firstNum reads the first matching key present among names, else fallback.
func firstNum(rec record.Record, fallback float64, names ...string) float64 {
	for _, n := range names {
		if v, ok := numAttr(rec, n, 0); ok {
			return v
		}
	}
	return fallback
}
