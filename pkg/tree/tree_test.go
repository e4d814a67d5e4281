package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *Node {
	t.Helper()
	n, err := ParseNewick(s)
	require.NoError(t, err)
	return n
}

func TestParseNewick(t *testing.T) {
	root := mustParse(t, "((A:1,B:2)90:0.5,C:3);")

	require.Len(t, root.Children, 2)
	inner := root.Children[0]
	assert.Equal(t, 90.0, inner.Support)
	assert.Equal(t, 0.5, inner.Dist)
	assert.Equal(t, "", inner.Name)
	assert.Equal(t, []string{"A", "B", "C"}, root.LeafNames())
	assert.Equal(t, 2.0, root.Find("B").Dist)
	assert.Same(t, inner, root.Find("A").Parent)

	again := mustParse(t, root.String())
	assert.Equal(t, root.LeafNames(), again.LeafNames())
	assert.Equal(t, 90.0, again.Children[0].Support)
	assert.Equal(t, 0.5, again.Children[0].Dist)
	assert.Equal(t, 3.0, again.Find("C").Dist)
}

func TestParseNewickDefaults(t *testing.T) {
	root := mustParse(t, "(-fig|1.1.peg.2,fig|1.1.peg.3);\n")
	assert.Equal(t, []string{"-fig|1.1.peg.2", "fig|1.1.peg.3"}, root.LeafNames())
	for _, l := range root.Leaves() {
		assert.Equal(t, DefaultDist, l.Dist)
		assert.Equal(t, DefaultSupport, l.Support)
	}
}

func TestParseNewickErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: "  "},
		{name: "unbalanced", input: "((A,B);"},
		{name: "no terminator", input: "(A,B)"},
		{name: "trailing", input: "(A,B);(C,D);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNewick(tt.input)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestSetOutgroup(t *testing.T) {
	root := mustParse(t, "((A:1,B:1):1,(C:1,D:2):1);")
	d := root.Find("D")

	newRoot := SetOutgroup(d)

	require.True(t, newRoot.IsRoot())
	require.Len(t, newRoot.Children, 2)
	assert.Same(t, d, newRoot.Children[0])
	assert.Equal(t, 1.0, d.Dist)

	other := newRoot.Children[1]
	assert.Equal(t, 1.0, other.Dist)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, other.LeafNames())

	// old root spliced out: A+B now hang off the former (C,D) node
	assert.Empty(t, root.Children)
	ab := newRoot.Find("A").Parent
	assert.Same(t, other, ab.Parent)
	assert.Equal(t, 2.0, ab.Dist)

	// parent links are consistent everywhere
	newRoot.PreOrder(func(n *Node) bool {
		for _, c := range n.Children {
			assert.Same(t, n, c.Parent)
		}
		return true
	})

	// path length D..A is unchanged
	pathLen := 0.0
	for n := newRoot.Find("A"); n != nil; n = n.Parent {
		pathLen += n.Dist
	}
	assert.Equal(t, 5.0, pathLen+d.Dist)
}

func TestSetOutgroupChildOfRoot(t *testing.T) {
	root := mustParse(t, "(A:2,(B:1,C:1):1);")
	newRoot := SetOutgroup(root.Find("A"))
	require.Len(t, newRoot.Children, 2)
	a, bc := newRoot.Children[0], newRoot.Children[1]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, 1.0, a.Dist)
	assert.Equal(t, 2.0, bc.Dist)
	assert.Equal(t, []string{"B", "C"}, bc.LeafNames())

	assert.Same(t, newRoot, SetOutgroup(newRoot))
	assert.Nil(t, SetOutgroup(nil))
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name   string
		newick string
		leaves []string
	}{
		{name: "ladder then names", newick: "((D,C),((B,A),E));", leaves: []string{"C", "D", "E", "A", "B"}},
		{name: "equal subtrees", newick: "((Z,Y),(B,X));", leaves: []string{"B", "X", "Y", "Z"}},
		{name: "already canonical", newick: "(A,(B,C));", leaves: []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tt.newick)
			Canonicalize(root, nil)
			assert.Equal(t, tt.leaves, root.LeafNames())

			once := root.String()
			Canonicalize(root, nil)
			assert.Equal(t, once, root.String())
		})
	}
}

func TestCanonicalizeWarnsOnPolytomy(t *testing.T) {
	root := mustParse(t, "((C,B,A),(D,E));")
	var warned []*Node
	Canonicalize(root, func(n *Node) { warned = append(warned, n) })

	require.Len(t, warned, 1)
	assert.Len(t, warned[0].Children, 3)
	// polytomy keeps its order, the binary sibling is ordered by name
	assert.Equal(t, []string{"D", "E", "C", "B", "A"}, root.LeafNames())
}

func TestFaceGrid(t *testing.T) {
	var g FaceGrid
	g.AddFace(NewTextFace("b", 30), 3)
	g.AddFace(NewTextFace("a", 30), 0)
	g.AddFace(NewTextFace("c", 30), 3)

	assert.Equal(t, []int{0, 3}, g.Columns())
	assert.Len(t, g.Faces(3), 2)
	assert.Equal(t, 3, g.Len())

	g.Clear()
	assert.Zero(t, g.Len())
	assert.Empty(t, g.Columns())
}

func TestFacesAt(t *testing.T) {
	n := NewNode("leaf")
	n.AddFace(NewTextFace("org", 30), 1, Aligned)
	n.AddFace(&ImageFace{Path: "x.png"}, 2, Aligned)
	n.AddFace(NewTextFace("name", 30), 0, Aligned)
	n.AddFace(NewTextFace("99", 20), 0, BranchTop)

	aligned := n.FacesAt(Aligned)
	require.Len(t, aligned, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{aligned[0].Column, aligned[1].Column, aligned[2].Column})
	assert.Len(t, n.FacesAt(BranchTop), 1)
	assert.Empty(t, n.FacesAt(BranchBottom))
}
