package tree

import (
	"slices"
	"strings"
)

// Ladderize orders the children of every internal node by leaf count,
// smallest subtree first. Ties keep their current order.
func Ladderize(root *Node) {
	counts := leafCounts(root)
	root.PostOrder(func(n *Node) {
		slices.SortStableFunc(n.Children, func(a, b *Node) int {
			return counts[a] - counts[b]
		})
	})
}

// Canonicalize ladderizes the tree and then breaks ties between the two
// children of a binary node by their sorted, concatenated leaf names.
// warn is called for each internal node that is not binary; those nodes keep
// the ladderized order. Calling Canonicalize again does not change the tree.
func Canonicalize(root *Node, warn func(*Node)) {
	Ladderize(root)
	counts := leafCounts(root)
	for _, n := range root.LevelOrder() {
		if n.IsLeaf() {
			continue
		}
		if len(n.Children) != 2 {
			if warn != nil {
				warn(n)
			}
			continue
		}
		c0, c1 := n.Children[0], n.Children[1]
		if counts[c0] != counts[c1] {
			continue
		}
		if sortedLeafKey(c0) > sortedLeafKey(c1) {
			n.SwapChildren()
		}
	}
}

func leafCounts(root *Node) map[*Node]int {
	counts := make(map[*Node]int)
	root.PostOrder(func(n *Node) {
		if n.IsLeaf() {
			counts[n] = 1
			return
		}
		total := 0
		for _, c := range n.Children {
			total += counts[c]
		}
		counts[n] = total
	})
	return counts
}

func sortedLeafKey(n *Node) string {
	names := n.LeafNames()
	slices.Sort(names)
	return strings.Join(names, "")
}
