package render

import (
	"fmt"
	"math"

	"github.com/yumyai/ggregion/pkg/tree"
)

// Legend is the cluster key: one block of distinct colours and one block of
// grey, low frequency clusters. Each block is laid out as a near-square grid.
type Legend struct {
	Distinct     []Swatch
	LowFrequency []Swatch
	ColorCols    int
	GreyCols     int
	Threshold    int
}

func BuildLegend(lookup *ColorLookup) *Legend {
	l := &Legend{
		Distinct:     lookup.InBucket(Distinct),
		LowFrequency: lookup.InBucket(LowFrequency),
		Threshold:    lookup.Threshold(),
	}
	l.ColorCols = squareCols(len(l.Distinct))
	l.GreyCols = squareCols(len(l.LowFrequency))
	return l
}

func squareCols(n int) int {
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// CaptionColumn sits between the two blocks.
func (l *Legend) CaptionColumn() int {
	return l.ColorCols + 1
}

// Column returns the legend column of the i-th entry of a block.
func (l *Legend) Column(b Bucket, i int) int {
	if b == Distinct {
		return i % l.ColorCols
	}
	return i%l.GreyCols + l.ColorCols + 2
}

func (l *Legend) Caption() string {
	return fmt.Sprintf("> %d occurrences        < or = %d occurrences ", l.Threshold, l.Threshold)
}

// Apply adds the legend faces to grid, entries in natural cluster order.
func (l *Legend) Apply(grid *tree.FaceGrid, size float64) {
	for i, sw := range l.Distinct {
		grid.AddFace(legendFace(string(sw.Cluster), sw.Color.Hex(), size), l.Column(Distinct, i))
	}
	for i, sw := range l.LowFrequency {
		grid.AddFace(legendFace(string(sw.Cluster), sw.Color.Hex(), size), l.Column(LowFrequency, i))
	}
	grid.AddFace(legendFace(l.Caption(), "#ffffff", size), l.CaptionColumn())
}

func legendFace(text, background string, size float64) *tree.TextFace {
	f := tree.NewTextFace(" "+text+" ", size)
	f.Bold = true
	f.Background = background
	return f
}
