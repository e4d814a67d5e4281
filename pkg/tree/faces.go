package tree

import "slices"

// FacePosition says where a face is drawn relative to its node.
type FacePosition int

const (
	BranchRight FacePosition = iota
	BranchTop
	BranchBottom
	Aligned
)

func (p FacePosition) String() string {
	switch p {
	case BranchRight:
		return "branch-right"
	case BranchTop:
		return "branch-top"
	case BranchBottom:
		return "branch-bottom"
	case Aligned:
		return "aligned"
	}
	return "unknown"
}

// Face is anything that can be drawn next to a node or in the legend.
type Face interface {
	isFace()
}

// TextFace is a run of text. Colours are "#rrggbb"; an empty Background is transparent.
type TextFace struct {
	Text       string
	FontSize   float64
	Family     string
	Bold       bool
	FgColor    string
	Background string
	Tooltip    string
}

// ImageFace shows a PNG from disk. Width and Height are in pixels.
type ImageFace struct {
	Path   string
	Width  int
	Height int
}

func (*TextFace) isFace()  {}
func (*ImageFace) isFace() {}

func NewTextFace(text string, size float64) *TextFace {
	return &TextFace{Text: text, FontSize: size, FgColor: "#000000"}
}

// NodeFace is a face attached to a node in a given column and position.
type NodeFace struct {
	Face     Face
	Column   int
	Position FacePosition
}

// AddFace attaches f to the node.
func (n *Node) AddFace(f Face, column int, pos FacePosition) {
	n.Faces = append(n.Faces, NodeFace{Face: f, Column: column, Position: pos})
}

// FacesAt returns the node's faces for one position, sorted by column.
func (n *Node) FacesAt(pos FacePosition) []NodeFace {
	var out []NodeFace
	for _, f := range n.Faces {
		if f.Position == pos {
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, func(a, b NodeFace) int { return a.Column - b.Column })
	return out
}

// FaceGrid holds faces by column, in insertion order within a column.
// It backs the tree title and legend.
type FaceGrid struct {
	cols map[int][]Face
}

func (g *FaceGrid) AddFace(f Face, column int) {
	if g.cols == nil {
		g.cols = make(map[int][]Face)
	}
	g.cols[column] = append(g.cols[column], f)
}

func (g *FaceGrid) Clear() {
	g.cols = nil
}

// Columns returns the occupied column indexes in ascending order.
func (g *FaceGrid) Columns() []int {
	cols := make([]int, 0, len(g.cols))
	for c := range g.cols {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

func (g *FaceGrid) Faces(column int) []Face {
	return g.cols[column]
}

// Len is the total number of faces in the grid.
func (g *FaceGrid) Len() int {
	n := 0
	for _, fs := range g.cols {
		n += len(fs)
	}
	return n
}

// LegendPosition is the corner the legend is drawn in.
type LegendPosition int

const (
	LegendTopLeft LegendPosition = iota + 1
	LegendTopRight
	LegendBottomLeft
	LegendBottomRight
)

// Style carries the tree-wide display settings.
type Style struct {
	ShowLeafName      bool
	ShowBranchSupport bool
	Title             FaceGrid
	Legend            FaceGrid
	LegendPosition    LegendPosition
}

func NewStyle() *Style {
	return &Style{ShowLeafName: true, ShowBranchSupport: true, LegendPosition: LegendBottomLeft}
}
