package handler

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/yumyai/ggregion/pkg/model"
	"github.com/yumyai/ggregion/pkg/tree"
)

// FindOutgroup returns the first leaf, in pre-order, of the outgroup organism.
func FindOutgroup(root *tree.Node, outgroup string) *tree.Node {
	for _, leaf := range root.Leaves() {
		if model.SpeciesOf(leaf.Name) == outgroup {
			return leaf
		}
	}
	return nil
}

// PrettyTree roots the tree on the outgroup, decorates leaves with their
// name and organism, shows supports on internal branches and puts the tree
// in canonical order. It returns the (possibly new) root.
func (rc *RegionContext) PrettyTree(ctx context.Context, root *tree.Node, style *tree.Style, title string) (*tree.Node, error) {
	log := rc.log(ctx)
	s := rc.Config.Style

	if out := FindOutgroup(root, rc.Config.Outgroup); out != nil {
		root = tree.SetOutgroup(out)
		log.Debug("Rerooted on outgroup", zap.String("leaf", out.Name))
	}

	info, err := model.GetGeneInfo(ctx, rc.Store, root.LeafNames())
	if err != nil {
		return nil, fmt.Errorf("gene info: %w", err)
	}

	orgNames := map[string]string{}
	for _, n := range root.LevelOrder() {
		if !n.IsLeaf() {
			support := &tree.TextFace{
				Text:     strconv.FormatFloat(n.Support, 'g', -1, 64),
				FontSize: s.SupportSize,
				Family:   s.FontFamily,
				FgColor:  s.SupportColor,
			}
			n.AddFace(support, 0, tree.BranchTop)
			continue
		}

		name := &tree.TextFace{Text: n.Name, FontSize: s.LeafNameSize, Family: s.FontFamily, FgColor: "#000000"}
		if gi, ok := info[n.Name]; ok && gi.Annotation != "" {
			name.Tooltip = gi.Annotation
		}
		n.AddFace(name, 0, tree.Aligned)

		species := model.SpeciesOf(n.Name)
		orgName, seen := orgNames[species]
		if !seen {
			var found bool
			orgName, found, err = model.GetOrganismName(ctx, rc.Store, species)
			if err != nil {
				return nil, fmt.Errorf("organism name of %s: %w", species, err)
			}
			if !found {
				orgName = ""
			}
			orgNames[species] = orgName
		}
		if orgName != "" {
			n.AddFace(&tree.TextFace{Text: orgName, FontSize: s.OrganismSize, Family: s.FontFamily, FgColor: "#000000"}, 1, tree.Aligned)
		}
	}

	tree.Canonicalize(root, func(n *tree.Node) {
		log.Warn("Node found with more than two children", zap.Int("children", len(n.Children)))
	})

	root.Dist = 0
	style.ShowBranchSupport = false
	style.ShowLeafName = false
	style.Title.Clear()
	style.Title.AddFace(&tree.TextFace{Text: title + " cluster regions", FontSize: s.TitleSize, FgColor: "#000000"}, 0)
	return root, nil
}
