package scene

import "github.com/hugozap/volare/pkg/volerr"

// promoteConnectors resolves every connector's source/target ids to handles
// and reparents each connector to the lowest ancestor container whose
// subtree contains both endpoints.
// Search and reattachment skip box nodes: a box's arity is fixed at one
// child, so it can never absorb an additional connector, and a connector
// that already is a box's sole child is left untouched.
func (b *Builder) promoteConnectors(root *TreeNode) error {
	for i := range b.Connectors {
		c := &b.Connectors[i]
		srcH, ok := b.Lookup(c.Source)
		if !ok {
			return &volerr.UnresolvedReference{FromID: c.ID, ToID: c.Source}
		}
		tgtH, ok := b.Lookup(c.Target)
		if !ok {
			return &volerr.UnresolvedReference{FromID: c.ID, ToID: c.Target}
		}
		c.SourceH = srcH
		c.TargetH = tgtH
	}

	for i := range b.Connectors {
		c := b.Connectors[i]
		h := Handle{Kind: KindConnector, Index: i}

		if boxIsSoleParent(root, h) {
			continue
		}

		target := lowestContainingAncestor(root, b, c.Source, c.Target)
		if target == nil {
			b.warn("connector %q: no eligible reparent ancestor found, leaving it where declared", c.ID)
			continue
		}

		removeConnectorEverywhere(root, b, h)
		attachConnector(target, b, h)
	}

	return nil
}

// boxIsSoleParent reports whether h's current parent in the tree is a box
// (i.e. h is that box's single declared child).
func boxIsSoleParent(node *TreeNode, h Handle) bool {
	if node.Handle.Kind == KindBox {
		for _, c := range node.Children {
			if c.Handle == h {
				return true
			}
		}
	}
	for i := range node.Children {
		if boxIsSoleParent(&node.Children[i], h) {
			return true
		}
	}
	return false
}

// lowestContainingAncestor returns the deepest non-box node (as a pointer
// into the live tree rooted at root) whose subtree id-set contains both
// srcID and tgtID. Returns nil only if root itself does not contain both
// (should not happen once both endpoints are reachable from root, unless
// root is a box).
func lowestContainingAncestor(root *TreeNode, b *Builder, srcID, tgtID string) *TreeNode {
	ids := root.idSet(b)
	if !ids[srcID] || !ids[tgtID] {
		return nil
	}
	for i := range root.Children {
		if deeper := lowestContainingAncestor(&root.Children[i], b, srcID, tgtID); deeper != nil {
			return deeper
		}
	}
	if root.Handle.Kind == KindBox {
		return nil
	}
	return root
}

func removeConnectorEverywhere(node *TreeNode, b *Builder, h Handle) {
	filtered := node.Children[:0]
	for _, c := range node.Children {
		if c.Handle == h {
			continue
		}
		filtered = append(filtered, c)
	}
	node.Children = filtered

	for i := range node.Children {
		removeConnectorEverywhere(&node.Children[i], b, h)
	}

	removeHandleFromStore(b, node.Handle, h)
}

func removeHandleFromStore(b *Builder, parent Handle, h Handle) {
	switch parent.Kind {
	case KindVStack, KindHStack:
		s := &b.Stacks[parent.Index]
		s.Children = removeHandle(s.Children, h)
	case KindGroup:
		g := &b.Groups[parent.Index]
		g.Placements = removePlacement(g.Placements, h)
	case KindTable:
		t := &b.Tables[parent.Index]
		t.Children = removeHandle(t.Children, h)
	case KindFreeContainer:
		fc := &b.FreeContainers[parent.Index]
		fc.Placements = removePlacement(fc.Placements, h)
	case KindConstraintContainer:
		cc := &b.ConstraintContainers[parent.Index]
		cc.Children = removeHandle(cc.Children, h)
	}
}

func removePlacement(placements []FreePlacement, h Handle) []FreePlacement {
	out := placements[:0]
	for _, p := range placements {
		if p.Child == h {
			continue
		}
		out = append(out, p)
	}
	return out
}

func removeHandle(handles []Handle, h Handle) []Handle {
	out := handles[:0]
	for _, x := range handles {
		if x == h {
			continue
		}
		out = append(out, x)
	}
	return out
}

func attachConnector(target *TreeNode, b *Builder, h Handle) {
	target.Children = append(target.Children, TreeNode{Handle: h})

	switch target.Handle.Kind {
	case KindVStack, KindHStack:
		s := &b.Stacks[target.Handle.Index]
		s.Children = append(s.Children, h)
	case KindGroup:
		g := &b.Groups[target.Handle.Index]
		g.Placements = append(g.Placements, FreePlacement{Child: h, X: 0, Y: 0})
	case KindTable:
		t := &b.Tables[target.Handle.Index]
		t.Children = append(t.Children, h)
	case KindFreeContainer:
		fc := &b.FreeContainers[target.Handle.Index]
		fc.Placements = append(fc.Placements, FreePlacement{Child: h, X: 0, Y: 0})
	case KindConstraintContainer:
		cc := &b.ConstraintContainers[target.Handle.Index]
		cc.Children = append(cc.Children, h)
	}
}
