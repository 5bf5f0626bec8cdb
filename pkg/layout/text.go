package layout

import (
	"strings"

	"github.com/hugozap/volare/pkg/scene"
)

func (e *engine) measureText(h scene.Handle) intrinsic {
	t := e.b.Texts[h.Index]
	lines := WrapLines(t.Content, t.LineWidth)

	longest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}

	advance := e.fm.Advance(t.FontFamily, t.FontSize)
	charCap := longest
	if t.LineWidth > 0 && t.LineWidth < charCap {
		charCap = t.LineWidth
	}

	width := float64(charCap) * advance
	lineHeight := t.FontSize + t.LineSpacing
	height := float64(len(lines)) * lineHeight
	if len(lines) == 0 {
		height = lineHeight
	}

	return intrinsic{W: width, H: height}
}

// WrapLines greedily wraps content to at most maxChars characters per line
// (character-count wrapping only, skipping real text
// shaping). maxChars <= 0 means unbounded: the whole content is one line.
func WrapLines(content string, maxChars int) []string {
	if content == "" {
		return []string{""}
	}
	if maxChars <= 0 {
		return []string{content}
	}

	words := strings.Fields(content)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	for _, w := range words {
		candidate := w
		if cur.Len() > 0 {
			candidate = cur.String() + " " + w
		}
		if len([]rune(candidate)) > maxChars && cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
			continue
		}
		cur.Reset()
		cur.WriteString(candidate)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
