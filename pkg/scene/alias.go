package scene

import "github.com/hugozap/volare/pkg/record"

// aliasTable maps every alias to its canonical attribute name.
// First-seen alias wins when a record carries more than one spelling for the
// same canonical key; resolveAliases implements that by only filling a
// canonical key that is not already present.
var aliasTable = map[string]string{
	"background_color":     "background",
	"fill":                  "background",
	"stroke_color":          "border_color",
	"stroke":                "border_color",
	"stroke_width":          "border_width",
	"text":                  "content",
	"text_color":            "color",
	"source_id":             "source",
	"from":                  "source",
	"target_id":             "target",
	"to":                    "target",
	"rx":                    "radius_x",
	"ry":                    "radius_y",
	"r":                     "radius",
	"cols":                  "columns",
	"h_align":               "horizontal_alignment",
	"v_align":               "vertical_alignment",
	"x1":                    "start_x",
	"y1":                    "start_y",
	"x2":                    "end_x",
	"y2":                    "end_y",
	"start":                 "start_angle",
	"end":                   "end_angle",
}

// tablePaddingAlias is applied only to "table" records, where "padding" is
// an alias of "cell_padding" (unlike "box", where "padding" is its own
// canonical attribute).
const tablePaddingAlias = "padding"

// resolveAliases returns a copy of rec with every alias key folded onto its
// canonical name. If both a canonical key and one of its aliases are
// present, the canonical key's value is kept (it was "seen first" in the
// sense that it is the authoritative spelling); if the two spellings
// disagree, the discard is reported through b.warn so a silently-dropped
// value doesn't go unnoticed.
func resolveAliases(id string, rec record.Record, b *Builder) record.Record {
	out := make(record.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for alias, canonical := range aliasTable {
		v, ok := out[alias]
		if !ok {
			continue
		}
		if existing, hasCanonical := out[canonical]; !hasCanonical {
			out[canonical] = v
		} else if existing != v {
			b.warn("%s: alias %q (%v) conflicts with canonical %q (%v), keeping canonical", id, alias, v, canonical, existing)
		}
	}
	if out.Type() == "table" {
		if v, ok := out[tablePaddingAlias]; ok {
			if existing, hasCanonical := out["cell_padding"]; !hasCanonical {
				out["cell_padding"] = v
			} else if existing != v {
				b.warn("%s: alias %q (%v) conflicts with canonical %q (%v), keeping canonical", id, tablePaddingAlias, v, "cell_padding", existing)
			}
		}
	}
	return out
}
