package tree

// SetOutgroup reroots the tree so that outgroup hangs directly off a new root.
// The outgroup branch is split in half between the two sides of the new root.
// Branch lengths and supports travel with the edges whose direction flips.
// An old root left with a single child is spliced out. The new root is returned.
func SetOutgroup(outgroup *Node) *Node {
	if outgroup == nil {
		return nil
	}
	if outgroup.IsRoot() {
		return outgroup
	}

	cur := outgroup.Parent
	cur.RemoveChild(outgroup)

	half := outgroup.Dist / 2
	newRoot := NewNode("")
	newRoot.Dist = 0
	newRoot.AddChild(outgroup)
	outgroup.Dist = half

	carriedDist, carriedSupport := cur.Dist, cur.Support
	cur.Dist, cur.Support = half, outgroup.Support

	node, parent := cur, cur.Parent
	for parent != nil {
		next := parent.Parent
		parent.RemoveChild(node)
		node.AddChild(parent)
		parent.Dist, carriedDist = carriedDist, parent.Dist
		parent.Support, carriedSupport = carriedSupport, parent.Support
		node, parent = parent, next
	}
	newRoot.AddChild(cur)

	// node is now the old root
	if len(node.Children) == 1 {
		spliceOut(node)
	}
	return newRoot
}

// spliceOut removes a single-child node, joining its child to its parent
// in the same position.
func spliceOut(n *Node) {
	parent := n.Parent
	if parent == nil || len(n.Children) != 1 {
		return
	}
	child := n.Children[0]
	child.Dist += n.Dist
	child.Parent = parent
	for i, c := range parent.Children {
		if c == n {
			parent.Children[i] = child
			break
		}
	}
	n.Children = nil
	n.Parent = nil
}
