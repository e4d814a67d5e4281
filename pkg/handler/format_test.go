package handler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yumyai/ggregion/pkg/config"
	"github.com/yumyai/ggregion/pkg/tree"
)

func TestPrettyTree(t *testing.T) {
	rc, _ := newTestContext(t)
	root, err := tree.ParseNewick("((" + centerLeaf + ":1," + flaggedLeaf + ":1)80:1," + outgroupLeaf + ":2);")
	require.NoError(t, err)
	style := tree.NewStyle()
	style.Title.AddFace(tree.NewTextFace("old title", 10), 0)

	root, err = rc.PrettyTree(context.Background(), root, style, "McrA")
	require.NoError(t, err)

	assert.True(t, root.IsRoot())
	assert.Zero(t, root.Dist)
	// outgroup hangs off the new root, smallest subtree first
	assert.Equal(t, outgroupLeaf, root.Children[0].Name)
	// equal subtrees ordered by name: "...peg.20" < "...peg.3"
	assert.Equal(t, []string{outgroupLeaf, flaggedLeaf, centerLeaf}, root.LeafNames())

	assert.False(t, style.ShowLeafName)
	assert.False(t, style.ShowBranchSupport)
	require.Equal(t, 1, style.Title.Len())
	title := style.Title.Faces(0)[0].(*tree.TextFace)
	assert.Equal(t, "McrA cluster regions", title.Text)
	assert.Equal(t, 52.0, title.FontSize)

	center := root.Find(centerLeaf).FacesAt(tree.Aligned)
	require.Len(t, center, 2)
	name := center[0].Face.(*tree.TextFace)
	assert.Equal(t, centerLeaf, name.Text)
	assert.Equal(t, "Times", name.Family)
	assert.Equal(t, 30.0, name.FontSize)
	assert.Equal(t, "methyl-coenzyme M reductase 3", name.Tooltip)
	assert.Equal(t, "Methanosarcina mazei Go1", center[1].Face.(*tree.TextFace).Text)

	// no organism row for the outgroup: name only
	assert.Len(t, root.Find(outgroupLeaf).FacesAt(tree.Aligned), 1)

	internal := root.Find(centerLeaf).Parent
	support := internal.FacesAt(tree.BranchTop)
	require.Len(t, support, 1)
	sf := support[0].Face.(*tree.TextFace)
	assert.Equal(t, "80", sf.Text)
	assert.Equal(t, 20.0, sf.FontSize)
	assert.Equal(t, "#ff0000", sf.FgColor)
}

func TestPrettyTreeWarnsOnPolytomy(t *testing.T) {
	rc, _ := newTestContext(t)
	core, logs := observer.New(zapcore.WarnLevel)
	rc.SetLogger(zap.New(core))

	root, err := tree.ParseNewick("(a,b,c);")
	require.NoError(t, err)

	_, err = rc.PrettyTree(context.Background(), root, tree.NewStyle(), "x")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Node found with more than two children").Len())
}

func TestRun(t *testing.T) {
	_, cfg := newTestContext(t)
	treePath := filepath.Join(t.TempDir(), "McrA.tree")
	require.NoError(t, os.WriteFile(treePath, []byte(testNewick+"\n"), 0o644))
	cfg.ProtTree = treePath
	cfg.Isolate = true

	res, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "run1", res.RunID)
	assert.Equal(t, filepath.Join(cfg.OutDir, "McrA_region_tree.svg"), res.SVGPath)
	assert.Equal(t, 3, res.Leaves)
	assert.Equal(t, 1, res.Regions)
	assert.Len(t, res.Skipped, 2)
	assert.Zero(t, res.Distinct)
	assert.Equal(t, 3, res.LowFrequency)

	svg, err := os.ReadFile(res.SVGPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "McrA cluster regions")
	assert.Contains(t, string(svg), "data:image/png;base64,")

	png, err := imaging.Open(res.PNGPath)
	require.NoError(t, err)
	assert.Positive(t, png.Bounds().Dx())
}

func TestRunRequiresTree(t *testing.T) {
	_, err := Run(context.Background(), config.Default(), nil)
	assert.ErrorIs(t, err, config.ErrMissingTree)
}
