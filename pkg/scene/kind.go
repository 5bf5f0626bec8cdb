package scene

// Kind discriminates the entity variant held in a tree node handle. Modeled
// on the common enum-with-String() idiom.
type Kind int

const (
	KindText Kind = iota
	KindBox
	KindRect
	KindEllipse
	KindLine
	KindArc
	KindSemicircle
	KindQuarterCircle
	KindPolyline
	KindImage
	KindSpacer
	KindConnector
	KindVStack
	KindHStack
	KindGroup
	KindTable
	KindFreeContainer
	KindConstraintContainer
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBox:
		return "box"
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindSemicircle:
		return "semicircle"
	case KindQuarterCircle:
		return "quarter_circle"
	case KindPolyline:
		return "polyline"
	case KindImage:
		return "image"
	case KindSpacer:
		return "spacer"
	case KindConnector:
		return "connector"
	case KindVStack:
		return "vstack"
	case KindHStack:
		return "hstack"
	case KindGroup:
		return "group"
	case KindTable:
		return "table"
	case KindFreeContainer:
		return "free_container"
	case KindConstraintContainer:
		return "constraint_container"
	default:
		return "unknown"
	}
}

// nativeKinds maps the wire "type" string to its Kind, for every kind the
// builder decodes directly (as opposed to dispatching to a custom factory).
var nativeKinds = map[string]Kind{
	"text":                 KindText,
	"box":                  KindBox,
	"rect":                 KindRect,
	"ellipse":              KindEllipse,
	"line":                 KindLine,
	"arc":                  KindArc,
	"semicircle":           KindSemicircle,
	"quarter_circle":       KindQuarterCircle,
	"polyline":             KindPolyline,
	"image":                KindImage,
	"spacer":               KindSpacer,
	"connector":            KindConnector,
	"vstack":               KindVStack,
	"hstack":               KindHStack,
	"group":                KindGroup,
	"table":                KindTable,
	"free_container":       KindFreeContainer,
	"constraint_container": KindConstraintContainer,
}

// IsContainer reports whether entities of this kind carry a declared
// children list (as opposed to being leaves).
func (k Kind) IsContainer() bool {
	switch k {
	case KindBox, KindVStack, KindHStack, KindGroup, KindTable, KindFreeContainer, KindConstraintContainer:
		return true
	default:
		return false
	}
}
