package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/yumyai/ggregion/pkg/tree"
)

// ToDOT writes the tree topology as a left-to-right Graphviz digraph.
// Leaves are boxes with their names, internal nodes are points labelled by support.
func ToDOT(root *tree.Node) string {
	ids := map[*tree.Node]string{}
	for i, n := range root.LevelOrder() {
		ids[n] = "n" + strconv.Itoa(i)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph tree {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Times\", fontsize=14];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range root.LevelOrder() {
		if n.IsLeaf() {
			fmt.Fprintf(&buf, "  %s [shape=box, label=%s];\n", ids[n], dotQuote(n.Name))
			continue
		}
		label := ""
		if !n.IsRoot() {
			label = strconv.FormatFloat(n.Support, 'g', -1, 64)
		}
		fmt.Fprintf(&buf, "  %s [shape=point, xlabel=%s];\n", ids[n], dotQuote(label))
	}

	buf.WriteString("\n")
	root.PreOrder(func(n *tree.Node) bool {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %s -> %s [label=%s];\n", ids[n], ids[c], dotQuote(strconv.FormatFloat(c.Dist, 'g', 4, 64)))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote makes a DOT double-quoted string. Only backslash and quote are escaped.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderDOTSVG lays out a DOT graph with Graphviz and returns SVG.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
