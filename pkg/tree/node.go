// Package tree holds the phylogenetic tree model: Newick parsing and writing,
// traversal, rerooting, canonical ordering and the faces attached for drawing.
package tree

import "slices"

// DefaultDist and DefaultSupport are used when the Newick input omits them.
const (
	DefaultDist    = 1.0
	DefaultSupport = 1.0
)

// Node is one node of a rooted tree. Dist and Support describe the branch
// that joins the node to its parent.
type Node struct {
	Name     string
	Dist     float64
	Support  float64
	Children []*Node
	Parent   *Node
	Faces    []NodeFace
}

func NewNode(name string) *Node {
	return &Node{Name: name, Dist: DefaultDist, Support: DefaultSupport}
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// AddChild appends c and sets its parent.
func (n *Node) AddChild(c *Node) *Node {
	c.Parent = n
	n.Children = append(n.Children, c)
	return c
}

// RemoveChild detaches c. It is a no-op when c is not a child of n.
func (n *Node) RemoveChild(c *Node) {
	i := slices.Index(n.Children, c)
	if i < 0 {
		return
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	c.Parent = nil
}

// SwapChildren reverses the order of the children.
func (n *Node) SwapChildren() {
	slices.Reverse(n.Children)
}

// Root walks up to the root of the tree n belongs to.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// PreOrder visits n and its descendants, parents before children.
// Returning false from fn stops the walk below that node.
func (n *Node) PreOrder(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.PreOrder(fn)
	}
}

// PostOrder visits children before parents.
func (n *Node) PostOrder(fn func(*Node)) {
	for _, c := range n.Children {
		c.PostOrder(fn)
	}
	fn(n)
}

// LevelOrder returns the nodes breadth first.
func (n *Node) LevelOrder() []*Node {
	queue := []*Node{n}
	for i := 0; i < len(queue); i++ {
		queue = append(queue, queue[i].Children...)
	}
	return queue
}

// Leaves returns the leaves in drawing order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.PreOrder(func(x *Node) bool {
		if x.IsLeaf() {
			leaves = append(leaves, x)
		}
		return true
	})
	return leaves
}

func (n *Node) LeafNames() []string {
	leaves := n.Leaves()
	names := make([]string, len(leaves))
	for i, l := range leaves {
		names[i] = l.Name
	}
	return names
}

// Find returns the first node, in pre-order, named name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.PreOrder(func(x *Node) bool {
		if found != nil {
			return false
		}
		if x.Name == name {
			found = x
			return false
		}
		return true
	})
	return found
}

// MaxDepth is the largest summed branch length from n (Dist included) to a leaf.
func (n *Node) MaxDepth() float64 {
	deepest := 0.0
	for _, c := range n.Children {
		deepest = max(deepest, c.MaxDepth())
	}
	return n.Dist + deepest
}

// String returns the tree as Newick.
func (n *Node) String() string {
	return n.toGotree().Newick()
}
