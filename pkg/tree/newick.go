package tree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	gotree "github.com/evolbioinfo/gotree/tree"
)

var ErrParse = errors.New("newick parse error")

// ReadNewickFile parses the first tree in path.
func ReadNewickFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	t, err := ParseNewick(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseNewick reads a single Newick tree. Branch lengths default to DefaultDist.
// A numeric label on an internal node is taken as its support value.
func ParseNewick(s string) (*Node, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	case !strings.HasSuffix(s, ";"):
		return nil, fmt.Errorf("%w: expected ';' at end of tree", ErrParse)
	case strings.IndexByte(s, ';') != len(s)-1:
		return nil, fmt.Errorf("%w: trailing data after ';'", ErrParse)
	case strings.Count(s, "(") != strings.Count(s, ")"):
		return nil, fmt.Errorf("%w: unbalanced parentheses", ErrParse)
	}

	t, err := newick.NewParser(strings.NewReader(s)).Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fromGotree(t.Root(), nil), nil
}

// fromGotree copies the subtree below gn, walking away from prev.
// gotree keeps length and support on edges; here they move onto the child.
func fromGotree(gn, prev *gotree.Node) *Node {
	n := NewNode(gn.Name())
	edges := gn.Edges()
	for i, gc := range gn.Neigh() {
		if gc == prev {
			continue
		}
		child := fromGotree(gc, gn)
		e := edges[i]
		if l := e.Length(); l != gotree.NIL_LENGTH {
			child.Dist = l
		}
		if s := e.Support(); s != gotree.NIL_SUPPORT {
			child.Support = s
		}
		n.AddChild(child)
	}
	if !n.IsLeaf() && n.Name != "" {
		if support, err := strconv.ParseFloat(n.Name, 64); err == nil {
			n.Support = support
			n.Name = ""
		}
	}
	return n
}

// toGotree builds the gotree equivalent of the subtree at n. Supports are
// written only for unnamed internal nodes, the root branch is dropped.
func (n *Node) toGotree() *gotree.Tree {
	t := gotree.NewTree()
	root := t.NewNode()
	t.SetRoot(root)

	var build func(gn *gotree.Node, n *Node)
	build = func(gn *gotree.Node, n *Node) {
		gn.SetName(n.Name)
		for _, c := range n.Children {
			gc := t.NewNode()
			e := t.ConnectNodes(gn, gc)
			e.SetLength(c.Dist)
			if !c.IsLeaf() && c.Name == "" {
				e.SetSupport(c.Support)
			}
			build(gc, c)
		}
	}
	build(root, n)
	return t
}

// Newick writes the tree rooted at n, with branch lengths and supports.
func (n *Node) Newick(w io.Writer) error {
	_, err := io.WriteString(w, n.String())
	return err
}
