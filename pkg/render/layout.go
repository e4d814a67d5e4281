package render

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/yumyai/ggregion/pkg/tree"
)

// Layout is a positioned drawing of a tree, shared by the SVG and PNG sinks.
// Coordinates are pixels from the top-left corner.
type Layout struct {
	Width    float64
	Height   float64
	Lines    []Line
	Rects    []Rect
	Texts    []Text
	Pictures []Picture
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
}

type Rect struct {
	X, Y, W, H float64
	Fill       string
}

// Text is positioned by its baseline origin.
type Text struct {
	X, Y    float64
	Text    string
	Size    float64
	Bold    bool
	Family  string
	Color   string
	Tooltip string
}

type Picture struct {
	X, Y, W, H float64
	Path       string
}

type LayoutOptions struct {
	TreeWidth   float64 // px given to the deepest root-to-leaf path
	Margin      float64
	Padding     float64
	MinRow      float64
	BranchColor string
	LineWidth   float64
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		TreeWidth:   600,
		Margin:      10,
		Padding:     10,
		MinRow:      20,
		BranchColor: "#000000",
		LineWidth:   1,
	}
}

// faceBox is the measured size of a face.
type faceBox struct {
	w, h, ascent float64
}

func measureFace(f tree.Face) (faceBox, error) {
	switch f := f.(type) {
	case *tree.TextFace:
		w, ascent, descent, err := textMetrics(f.Text, f.FontSize, f.Bold)
		if err != nil {
			return faceBox{}, err
		}
		return faceBox{w: w, h: ascent + descent, ascent: ascent}, nil
	case *tree.ImageFace:
		if f.Width > 0 && f.Height > 0 {
			return faceBox{w: float64(f.Width), h: float64(f.Height)}, nil
		}
		img, err := imaging.Open(f.Path)
		if err != nil {
			return faceBox{}, fmt.Errorf("image face: %w", err)
		}
		b := img.Bounds()
		f.Width, f.Height = b.Dx(), b.Dy()
		return faceBox{w: float64(b.Dx()), h: float64(b.Dy())}, nil
	}
	return faceBox{}, fmt.Errorf("unsupported face %T", f)
}

// place adds f to the layout with its box's top-left corner at (x, y).
func (l *Layout) place(f tree.Face, box faceBox, x, y float64) {
	switch f := f.(type) {
	case *tree.TextFace:
		if f.Background != "" {
			l.Rects = append(l.Rects, Rect{X: x, Y: y, W: box.w, H: box.h, Fill: f.Background})
		}
		l.Texts = append(l.Texts, Text{
			X: x, Y: y + box.ascent,
			Text: f.Text, Size: f.FontSize, Bold: f.Bold,
			Family: f.Family, Color: f.FgColor, Tooltip: f.Tooltip,
		})
	case *tree.ImageFace:
		l.Pictures = append(l.Pictures, Picture{X: x, Y: y, W: box.w, H: box.h, Path: f.Path})
	}
}

// grid is a FaceGrid measured for placement.
type grid struct {
	cols   []int
	widths map[int]float64
	boxes  map[int][]faceBox
	width  float64
	height float64
}

func measureGrid(g *tree.FaceGrid, padding float64) (*grid, error) {
	out := &grid{widths: map[int]float64{}, boxes: map[int][]faceBox{}}
	out.cols = g.Columns()
	for i, c := range out.cols {
		colH := 0.0
		for _, f := range g.Faces(c) {
			box, err := measureFace(f)
			if err != nil {
				return nil, err
			}
			out.boxes[c] = append(out.boxes[c], box)
			out.widths[c] = max(out.widths[c], box.w)
			colH += box.h
		}
		out.height = max(out.height, colH)
		out.width += out.widths[c]
		if i > 0 {
			out.width += padding
		}
	}
	return out, nil
}

func (l *Layout) placeGrid(g *tree.FaceGrid, m *grid, x, y, padding float64) {
	for _, c := range m.cols {
		top := y
		for i, f := range g.Faces(c) {
			l.place(f, m.boxes[c][i], x, top)
			top += m.boxes[c][i].h
		}
		x += m.widths[c] + padding
	}
}

type rowFace struct {
	face tree.Face
	box  faceBox
}

// LayoutTree positions a rectangular drawing of root: title on top, legend
// above or below the tree, branch faces along the branches and aligned faces
// in columns to the right of the deepest leaf.
func LayoutTree(root *tree.Node, style *tree.Style, opts LayoutOptions) (*Layout, error) {
	leaves := root.Leaves()

	depth := root.MaxDepth() - root.Dist
	scale := 1.0
	if depth > 0 {
		scale = opts.TreeWidth / depth
	}
	xs := map[*tree.Node]float64{}
	root.PreOrder(func(n *tree.Node) bool {
		if n.Parent != nil {
			xs[n] = xs[n.Parent] + n.Dist*scale
		}
		return true
	})

	// faces to the right of each leaf, leaf name first
	right := map[*tree.Node][]rowFace{}
	rightWidth := map[*tree.Node]float64{}
	aligned := map[*tree.Node]map[int]rowFace{}
	colWidths := map[int]float64{}
	rowHeights := map[*tree.Node]float64{}

	for _, leaf := range leaves {
		var faces []tree.Face
		if style.ShowLeafName {
			faces = append(faces, tree.NewTextFace(leaf.Name, 12))
		}
		for _, nf := range leaf.FacesAt(tree.BranchRight) {
			faces = append(faces, nf.Face)
		}
		rowH := opts.MinRow
		for _, f := range faces {
			box, err := measureFace(f)
			if err != nil {
				return nil, err
			}
			right[leaf] = append(right[leaf], rowFace{f, box})
			rightWidth[leaf] += box.w + opts.Padding/2
			rowH = max(rowH, box.h)
		}

		aligned[leaf] = map[int]rowFace{}
		for _, nf := range leaf.FacesAt(tree.Aligned) {
			box, err := measureFace(nf.Face)
			if err != nil {
				return nil, err
			}
			// one face per column and leaf; later faces stack to the right
			col := nf.Column
			for {
				if _, taken := aligned[leaf][col]; !taken {
					break
				}
				col++
			}
			aligned[leaf][col] = rowFace{nf.Face, box}
			colWidths[col] = max(colWidths[col], box.w)
			rowH = max(rowH, box.h)
		}
		rowHeights[leaf] = rowH + opts.Padding/2
	}

	treeRight := opts.TreeWidth
	for _, leaf := range leaves {
		treeRight = max(treeRight, xs[leaf]+rightWidth[leaf])
	}
	alignX := opts.Margin + treeRight + opts.Padding

	cols := slices.Sorted(maps.Keys(colWidths))
	colX := map[int]float64{}
	contentRight := alignX
	x := alignX
	for _, c := range cols {
		colX[c] = x
		x += colWidths[c] + opts.Padding
		contentRight = x
	}

	title, err := measureGrid(&style.Title, opts.Padding)
	if err != nil {
		return nil, err
	}
	legend, err := measureGrid(&style.Legend, 0)
	if err != nil {
		return nil, err
	}

	l := &Layout{}
	l.Width = max(contentRight, opts.Margin+legend.width, opts.Margin+title.width) + opts.Margin

	y := opts.Margin
	if len(title.cols) > 0 {
		l.placeGrid(&style.Title, title, (l.Width-title.width)/2, y, opts.Padding)
		y += title.height + opts.Padding
	}
	legendX := opts.Margin
	if style.LegendPosition == tree.LegendTopRight || style.LegendPosition == tree.LegendBottomRight {
		legendX = l.Width - opts.Margin - legend.width
	}
	legendTop := style.LegendPosition == tree.LegendTopLeft || style.LegendPosition == tree.LegendTopRight
	if legendTop && len(legend.cols) > 0 {
		l.placeGrid(&style.Legend, legend, legendX, y, 0)
		y += legend.height + opts.Padding
	}

	// rows
	ys := map[*tree.Node]float64{}
	for _, leaf := range leaves {
		h := rowHeights[leaf]
		ys[leaf] = y + h/2
		y += h
	}
	root.PostOrder(func(n *tree.Node) {
		if n.IsLeaf() {
			return
		}
		ys[n] = (ys[n.Children[0]] + ys[n.Children[len(n.Children)-1]]) / 2
	})

	ox := opts.Margin
	var layoutErr error
	root.PreOrder(func(n *tree.Node) bool {
		nx, ny := ox+xs[n], ys[n]
		if n.Parent != nil {
			l.Lines = append(l.Lines, Line{X1: ox + xs[n.Parent], Y1: ny, X2: nx, Y2: ny, Color: opts.BranchColor, Width: opts.LineWidth})
		}
		if !n.IsLeaf() {
			first, last := n.Children[0], n.Children[len(n.Children)-1]
			l.Lines = append(l.Lines, Line{X1: nx, Y1: ys[first], X2: nx, Y2: ys[last], Color: opts.BranchColor, Width: opts.LineWidth})
		}
		// the root has no branch to decorate
		if n.Parent == nil {
			return true
		}
		top := n.FacesAt(tree.BranchTop)
		if style.ShowBranchSupport && !n.IsLeaf() {
			top = append(top, tree.NodeFace{Face: tree.NewTextFace(strconv.FormatFloat(n.Support, 'g', -1, 64), 10)})
		}
		bx := ox + xs[n.Parent] + 2
		for _, nf := range top {
			box, err := measureFace(nf.Face)
			if err != nil {
				layoutErr = err
				return false
			}
			l.place(nf.Face, box, bx, ny-2-box.h)
			bx += box.w + 2
		}
		bx = ox + xs[n.Parent] + 2
		for _, nf := range n.FacesAt(tree.BranchBottom) {
			box, err := measureFace(nf.Face)
			if err != nil {
				layoutErr = err
				return false
			}
			l.place(nf.Face, box, bx, ny+2)
			bx += box.w + 2
		}
		return true
	})
	if layoutErr != nil {
		return nil, layoutErr
	}

	for _, leaf := range leaves {
		ny := ys[leaf]
		rx := ox + xs[leaf] + opts.Padding/2
		for _, rf := range right[leaf] {
			l.place(rf.face, rf.box, rx, ny-rf.box.h/2)
			rx += rf.box.w + opts.Padding/2
		}
		for _, col := range slices.Sorted(maps.Keys(aligned[leaf])) {
			rf := aligned[leaf][col]
			l.place(rf.face, rf.box, colX[col], ny-rf.box.h/2)
		}
	}

	if !legendTop && len(legend.cols) > 0 {
		y += opts.Padding
		l.placeGrid(&style.Legend, legend, legendX, y, 0)
		y += legend.height
	}
	l.Height = y + opts.Margin
	return l, nil
}
