package scene

// Dims returns h's declared Width/Height size modes, generic across every
// kind that carries them. Connectors have no size of their own (they are
// derived from their endpoints), so they report content/content.
func (b *Builder) Dims(h Handle) (width, height Dim) {
	switch h.Kind {
	case KindText:
		t := b.Texts[h.Index]
		return t.Width, t.Height
	case KindBox:
		v := b.Boxes[h.Index]
		return v.Width, v.Height
	case KindVStack, KindHStack:
		v := b.Stacks[h.Index]
		return v.Width, v.Height
	case KindGroup:
		v := b.Groups[h.Index]
		return v.Width, v.Height
	case KindTable:
		return Dim{Mode: ModeContent}, Dim{Mode: ModeContent}
	case KindFreeContainer:
		v := b.FreeContainers[h.Index]
		return v.Width, v.Height
	case KindConstraintContainer:
		v := b.ConstraintContainers[h.Index]
		return v.Width, v.Height
	case KindConnector:
		return Dim{Mode: ModeContent}, Dim{Mode: ModeContent}
	default:
		v := b.Shapes[h.Index]
		return v.Width, v.Height
	}
}
