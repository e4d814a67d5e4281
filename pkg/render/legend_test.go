package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/ggregion/pkg/model"
	"github.com/yumyai/ggregion/pkg/tree"
)

func TestBuildLegend(t *testing.T) {
	occ := []model.ClusterID{"1", "1", "1", "1", "2", "2", "2", "2", "3", "4", "5"}
	legend := BuildLegend(BuildColorLookup(occ, 3))

	require.Len(t, legend.Distinct, 2)
	require.Len(t, legend.LowFrequency, 3)
	assert.Equal(t, 2, legend.ColorCols)
	assert.Equal(t, 2, legend.GreyCols)
	assert.Equal(t, 3, legend.CaptionColumn())

	assert.Equal(t, 0, legend.Column(Distinct, 0))
	assert.Equal(t, 1, legend.Column(Distinct, 1))
	assert.Equal(t, 4, legend.Column(LowFrequency, 0))
	assert.Equal(t, 5, legend.Column(LowFrequency, 1))
	assert.Equal(t, 4, legend.Column(LowFrequency, 2))

	var grid tree.FaceGrid
	legend.Apply(&grid, 30)
	assert.Equal(t, []int{0, 1, 3, 4, 5}, grid.Columns())
	assert.Equal(t, 6, grid.Len())

	first := grid.Faces(0)[0].(*tree.TextFace)
	assert.Equal(t, " 1 ", first.Text)
	assert.True(t, first.Bold)
	assert.Equal(t, 30.0, first.FontSize)
	assert.Equal(t, legend.Distinct[0].Color.Hex(), first.Background)

	grey := grid.Faces(4)[0].(*tree.TextFace)
	assert.Equal(t, " 3 ", grey.Text)
	assert.Equal(t, "#7f7f7f", grey.Background)

	caption := grid.Faces(3)[0].(*tree.TextFace)
	assert.Equal(t, " > 3 occurrences        < or = 3 occurrences  ", caption.Text)
}

func TestBuildLegendOnlyGrey(t *testing.T) {
	legend := BuildLegend(BuildColorLookup([]model.ClusterID{"1", "1", "2", "4", "4"}, 3))

	assert.Empty(t, legend.Distinct)
	assert.Len(t, legend.LowFrequency, 3)
	assert.Equal(t, 0, legend.ColorCols)
	assert.Equal(t, 1, legend.CaptionColumn())

	var grid tree.FaceGrid
	legend.Apply(&grid, 30)
	assert.Equal(t, []int{1, 2, 3}, grid.Columns())
	assert.Len(t, grid.Faces(2), 2)
}
