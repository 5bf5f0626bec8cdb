package scene

import (
	"fmt"

	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/volerr"
)

// ComponentFactory builds a custom component's subtree. It receives the
// record's raw (pre-alias) attributes, the full record map (for resolving
// any ids it needs), and the Builder it must push new entities into. It
// returns the tree node representing the subtree it assembled.
type ComponentFactory func(id string, attrs record.Record, records map[string]record.Record, b *Builder) (TreeNode, error)

// ComponentLookup resolves a "type" string to a registered custom component
// factory. Kept as an injected function, not a package-level registry here,
// so that pkg/scene never imports pkg/components (which itself imports
// pkg/scene to build subtrees).
type ComponentLookup func(typeName string) (ComponentFactory, bool)

// Builder is the process-local context owning every entity produced by one
// pipeline run. One ordered slice per kind; slot indices are stable for the
// Builder's lifetime, a typed-slice-per-kind store
// pattern generalized to one store per entity kind.
type Builder struct {
	Texts                []Text
	Boxes                []Box
	Shapes               []Shape
	Stacks               []Stack
	Groups               []Group
	Tables               []Table
	FreeContainers       []FreeContainer
	ConstraintContainers []ConstraintContainer
	Connectors           []Connector

	ids    map[string]Handle // user id -> handle, unique
	lookup ComponentLookup   // active during Build, used by BuildEntity

	// Warnings accumulates non-fatal build-time notices: alias spellings
	// that collide with a different value for the same canonical key, and
	// connectors left in place because no eligible reparent ancestor was
	// found. pkg/layout merges these into its own Diagnostics so callers
	// see one combined warning list regardless of which stage raised them.
	Warnings []string
}

func newBuilder() *Builder {
	return &Builder{ids: make(map[string]Handle)}
}

func (b *Builder) warn(format string, args ...any) {
	b.Warnings = append(b.Warnings, fmt.Sprintf(format, args...))
}

// BuildEntity recurses the build of id using the same custom-component
// lookup as the enclosing Build call. Custom component factories call this
// to materialize sub-entities referenced by id (e.g. a header_id attribute),
// including further custom components.
func (b *Builder) BuildEntity(id string, records map[string]record.Record) (TreeNode, error) {
	return b.buildNode(id, records, b.lookup)
}

// Lookup resolves a user id to its handle.
func (b *Builder) Lookup(id string) (Handle, bool) {
	h, ok := b.ids[id]
	return h, ok
}

func (b *Builder) register(id string, h Handle) {
	b.ids[id] = h
}

// IDOf returns the declared id of the entity behind h.
func (b *Builder) IDOf(h Handle) string {
	switch h.Kind {
	case KindText:
		return b.Texts[h.Index].ID
	case KindBox:
		return b.Boxes[h.Index].ID
	case KindConnector:
		return b.Connectors[h.Index].ID
	case KindVStack, KindHStack:
		return b.Stacks[h.Index].ID
	case KindGroup:
		return b.Groups[h.Index].ID
	case KindTable:
		return b.Tables[h.Index].ID
	case KindFreeContainer:
		return b.FreeContainers[h.Index].ID
	case KindConstraintContainer:
		return b.ConstraintContainers[h.Index].ID
	default:
		return b.Shapes[h.Index].ID
	}
}

// Build materializes the tree rooted at rootID, two-phase (records are
// already fully parsed; this is the "build from root" half).
func Build(rootID string, records map[string]record.Record, lookup ComponentLookup) (TreeNode, *Builder, error) {
	b := newBuilder()
	b.lookup = lookup
	root, err := b.buildNode(rootID, records, lookup)
	if err != nil {
		return TreeNode{}, nil, err
	}
	if err := b.promoteConnectors(&root); err != nil {
		return TreeNode{}, nil, err
	}
	return root, b, nil
}

func (b *Builder) buildNode(id string, records map[string]record.Record, lookup ComponentLookup) (TreeNode, error) {
	rec, ok := records[id]
	if !ok {
		return TreeNode{}, &volerr.UnresolvedReference{ToID: id}
	}

	typeName := rec.Type()
	if kind, ok := nativeKinds[typeName]; ok {
		return b.buildNative(id, kind, rec, records, lookup)
	}

	if lookup != nil {
		if factory, ok := lookup(typeName); ok {
			node, err := factory(id, rec, records, b)
			if err != nil {
				return TreeNode{}, &volerr.CustomComponentError{Name: typeName, Cause: err}
			}
			return node, nil
		}
	}

	return TreeNode{}, &volerr.UnknownKind{Type: typeName}
}

func (b *Builder) buildNative(id string, kind Kind, raw record.Record, records map[string]record.Record, lookup ComponentLookup) (TreeNode, error) {
	rec := resolveAliases(id, raw, b)

	switch kind {
	case KindText:
		h := b.PushText(decodeText(id, rec))
		return TreeNode{Handle: h}, nil

	case KindBox:
		children := rec.StrList("children")
		if len(children) != 1 {
			return TreeNode{}, &volerr.ArityError{ID: id, Detail: fmt.Sprintf("box must have exactly 1 child, got %d", len(children))}
		}
		childNode, err := b.buildNode(children[0], records, lookup)
		if err != nil {
			return TreeNode{}, err
		}
		box := decodeBox(id, rec)
		box.Child = childNode.Handle
		h := b.PushBox(box)
		node := TreeNode{Handle: h, Children: []TreeNode{childNode}}
		return node, nil

	case KindVStack, KindHStack:
		ids := rec.StrList("children")
		nodes := make([]TreeNode, 0, len(ids))
		handles := make([]Handle, 0, len(ids))
		for _, cid := range ids {
			cn, err := b.buildNode(cid, records, lookup)
			if err != nil {
				return TreeNode{}, err
			}
			nodes = append(nodes, cn)
			handles = append(handles, cn.Handle)
		}
		stack := decodeStack(id, kind, rec)
		stack.Children = handles
		h := b.PushStack(stack)
		return TreeNode{Handle: h, Children: nodes}, nil

	case KindGroup:
		ids := rec.StrList("children")
		nodes := make([]TreeNode, 0, len(ids))
		placements := make([]FreePlacement, 0, len(ids))
		for _, cid := range ids {
			cn, err := b.buildNode(cid, records, lookup)
			if err != nil {
				return TreeNode{}, err
			}
			childRec := resolveAliases(cid, records[cid], b)
			x, _ := numAttr(childRec, "x", 0)
			y, _ := numAttr(childRec, "y", 0)
			nodes = append(nodes, cn)
			placements = append(placements, FreePlacement{Child: cn.Handle, X: x, Y: y})
		}
		group := decodeGroup(id, rec)
		group.Placements = placements
		h := b.PushGroup(group)
		return TreeNode{Handle: h, Children: nodes}, nil

	case KindTable:
		ids := rec.StrList("children")
		nodes := make([]TreeNode, 0, len(ids))
		handles := make([]Handle, 0, len(ids))
		for _, cid := range ids {
			cn, err := b.buildNode(cid, records, lookup)
			if err != nil {
				return TreeNode{}, err
			}
			nodes = append(nodes, cn)
			handles = append(handles, cn.Handle)
		}
		table := decodeTable(id, rec)
		table.Children = handles
		h := b.PushTable(table)
		return TreeNode{Handle: h, Children: nodes}, nil

	case KindFreeContainer:
		ids := rec.StrList("children")
		nodes := make([]TreeNode, 0, len(ids))
		placements := make([]FreePlacement, 0, len(ids))
		for _, cid := range ids {
			cn, err := b.buildNode(cid, records, lookup)
			if err != nil {
				return TreeNode{}, err
			}
			childRec := resolveAliases(cid, records[cid], b)
			x, _ := numAttr(childRec, "x", 0)
			y, _ := numAttr(childRec, "y", 0)
			nodes = append(nodes, cn)
			placements = append(placements, FreePlacement{Child: cn.Handle, X: x, Y: y})
		}
		fc := decodeFreeContainer(id, rec)
		fc.Placements = placements
		h := b.PushFreeContainer(fc)
		return TreeNode{Handle: h, Children: nodes}, nil

	case KindConstraintContainer:
		ids := rec.StrList("children")
		nodes := make([]TreeNode, 0, len(ids))
		handles := make([]Handle, 0, len(ids))
		for _, cid := range ids {
			cn, err := b.buildNode(cid, records, lookup)
			if err != nil {
				return TreeNode{}, err
			}
			nodes = append(nodes, cn)
			handles = append(handles, cn.Handle)
		}
		cc := decodeConstraintContainer(id, rec)
		cc.Children = handles
		h := b.PushConstraintContainer(cc)
		return TreeNode{Handle: h, Children: nodes}, nil

	case KindConnector:
		conn := decodeConnector(id, rec)
		h := b.PushConnector(conn)
		return TreeNode{Handle: h}, nil

	default:
		// rect, ellipse, line, arc, semicircle, quarter_circle, polyline, image, spacer
		h := b.PushShape(decodeShape(id, kind, rec))
		return TreeNode{Handle: h}, nil
	}
}

func (b *Builder) PushText(t Text) Handle {
	h := Handle{Kind: KindText, Index: len(b.Texts)}
	b.Texts = append(b.Texts, t)
	b.register(t.ID, h)
	return h
}

func (b *Builder) PushBox(v Box) Handle {
	h := Handle{Kind: KindBox, Index: len(b.Boxes)}
	b.Boxes = append(b.Boxes, v)
	b.register(v.ID, h)
	return h
}

func (b *Builder) PushShape(v Shape) Handle {
	h := Handle{Kind: v.Kind, Index: len(b.Shapes)}
	b.Shapes = append(b.Shapes, v)
	b.register(v.ID, h)
	return h
}

func (b *Builder) PushStack(v Stack) Handle {
	h := Handle{Kind: v.Kind, Index: len(b.Stacks)}
	b.Stacks = append(b.Stacks, v)
	b.register(v.ID, h)
	return h
}

func (b *Builder) PushGroup(v Group) Handle {
	h := Handle{Kind: KindGroup, Index: len(b.Groups)}
	b.Groups = append(b.Groups, v)
	b.register(v.ID, h)
	return h
}

func (b *Builder) PushTable(v Table) Handle {
	h := Handle{Kind: KindTable, Index: len(b.Tables)}
	b.Tables = append(b.Tables, v)
	b.register(v.ID, h)
	return h
}

func (b *Builder) PushFreeContainer(v FreeContainer) Handle {
	h := Handle{Kind: KindFreeContainer, Index: len(b.FreeContainers)}
	b.FreeContainers = append(b.FreeContainers, v)
	b.register(v.ID, h)
	return h
}

func (b *Builder) PushConstraintContainer(v ConstraintContainer) Handle {
	h := Handle{Kind: KindConstraintContainer, Index: len(b.ConstraintContainers)}
	b.ConstraintContainers = append(b.ConstraintContainers, v)
	b.register(v.ID, h)
	return h
}

func (b *Builder) PushConnector(v Connector) Handle {
	h := Handle{Kind: KindConnector, Index: len(b.Connectors)}
	b.Connectors = append(b.Connectors, v)
	b.register(v.ID, h)
	return h
}
