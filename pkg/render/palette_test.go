package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/ggregion/pkg/model"
)

func clusterIDs(n int) []model.ClusterID {
	ids := make([]model.ClusterID, n)
	for i := range ids {
		ids[i] = model.ClusterID(fmt.Sprint(i + 1))
	}
	return ids
}

func TestPartition(t *testing.T) {
	for _, n := range []int{1, 2, 4, 7, 25, 50} {
		t.Run(fmt.Sprintf("%d labels", n), func(t *testing.T) {
			labels := clusterIDs(n)
			colors := Partition(labels)
			require.Len(t, colors, n)

			seen := map[string]model.ClusterID{}
			for _, l := range labels {
				hex := colors[l].Hex()
				prev, dup := seen[hex]
				assert.False(t, dup, "%s and %s share %s", prev, l, hex)
				seen[hex] = l
				assert.NotEqual(t, Grey.Hex(), hex)
			}

			assert.Equal(t, colors, Partition(labels))
		})
	}
}

func TestPartitionGrid(t *testing.T) {
	colors := Partition([]model.ClusterID{"a", "b", "c", "d"})

	// hue 0, saturation 0.2, value 0.7
	first := colors["a"]
	assert.InDelta(t, 0.7, first.R, 1e-9)
	assert.InDelta(t, 0.56, first.G, 1e-9)
	assert.InDelta(t, 0.56, first.B, 1e-9)

	// the second label keeps the hue and raises the saturation
	second := colors["b"]
	assert.InDelta(t, 0.7, second.R, 1e-9)
	assert.InDelta(t, 0.21, second.G, 1e-9)

	assert.Empty(t, Partition(nil))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#7f7f7f", Grey.Hex())
	assert.Equal(t, "#ff0000", RGB{1, 0, 0}.Hex())

	c, err := ParseHex("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, RGB{1, 0, 0}, c)

	_, err = ParseHex("red")
	assert.Error(t, err)
}

func TestBuildColorLookupAllGrey(t *testing.T) {
	lookup := BuildColorLookup([]model.ClusterID{"1", "1", "2", "4", "4"}, 3)

	assert.Equal(t, 3, lookup.Len())
	assert.Empty(t, lookup.InBucket(Distinct))
	for _, sw := range lookup.Swatches() {
		assert.Equal(t, Grey, sw.Color)
		assert.Equal(t, LowFrequency, sw.Bucket)
	}
	_, ok := lookup.Color("3")
	assert.False(t, ok)
}

func TestBuildColorLookupThreshold(t *testing.T) {
	var occ []model.ClusterID
	for range 4 {
		occ = append(occ, "10")
	}
	for range 5 {
		occ = append(occ, "2")
	}
	occ = append(occ, "7")

	lookup := BuildColorLookup(occ, 3)
	want := Partition([]model.ClusterID{"2", "10"})

	c, ok := lookup.Color("2")
	require.True(t, ok)
	assert.Equal(t, want["2"], c)
	c, _ = lookup.Color("10")
	assert.Equal(t, want["10"], c)

	sw, ok := lookup.Swatch("7")
	require.True(t, ok)
	assert.Equal(t, LowFrequency, sw.Bucket)
	assert.Equal(t, Grey, sw.Color)
	assert.Equal(t, 1, sw.Count)

	var order []model.ClusterID
	for _, sw := range lookup.Swatches() {
		order = append(order, sw.Cluster)
	}
	assert.Equal(t, []model.ClusterID{"2", "7", "10"}, order)
}
