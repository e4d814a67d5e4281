package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/ggregion/pkg/model"
	"github.com/yumyai/ggregion/pkg/render"
	"github.com/yumyai/ggregion/pkg/tree"
)

// FlagText marks leaves that were added by TBlastN.
const FlagText = "TBlastN added"

// Annotation is what DrawTreeRegions attached to a tree.
type Annotation struct {
	Regions  model.RegionIndex
	Lookup   *render.ColorLookup
	Legend   *render.Legend
	Flagged  map[string]bool
	Skipped  []string
	MaxWidth int64
	Images   map[string]string // leaf name -> region PNG
}

// StripMarkers removes leading '-' from leaf names. The stripped names are
// returned; they are the genes TBlastN added to the tree.
func StripMarkers(root *tree.Node) map[string]bool {
	flagged := map[string]bool{}
	for _, leaf := range root.Leaves() {
		if !strings.HasPrefix(leaf.Name, "-") {
			continue
		}
		leaf.Name = strings.TrimLeft(leaf.Name, "-")
		flagged[leaf.Name] = true
	}
	return flagged
}

// DrawTreeRegions fetches the neighborhood of every leaf, colours clusters
// across all of them, draws one aligned region image per leaf and builds the
// cluster legend into style.
func (rc *RegionContext) DrawTreeRegions(ctx context.Context, root *tree.Node, style *tree.Style) (*Annotation, error) {
	log := rc.log(ctx)
	ann := &Annotation{
		Regions: model.RegionIndex{},
		Flagged: StripMarkers(root),
		Images:  map[string]string{},
	}

	leaves := root.Leaves()
	for _, leaf := range leaves {
		if _, done := ann.Regions[leaf.Name]; done {
			continue
		}
		region, err := model.GetGeneNeighborhood(ctx, rc.Store, leaf.Name, rc.RunID)
		if errors.Is(err, model.ErrNoNeighborhood) {
			log.Warn("No neighborhood for leaf, skipping", zap.String("leaf", leaf.Name))
			ann.Skipped = append(ann.Skipped, leaf.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetch region of %s: %w", leaf.Name, err)
		}
		ann.Regions[leaf.Name] = region
	}

	ann.Lookup = render.BuildColorLookup(ann.Regions.Clusters(), rc.Config.Threshold)
	for _, region := range ann.Regions {
		lo, hi := render.Extent(region.Features)
		ann.MaxWidth = max(ann.MaxWidth, hi-lo)
	}
	log.Info("Regions fetched",
		zap.Int("leaves", len(leaves)),
		zap.Int("regions", len(ann.Regions)),
		zap.Int("clusters", ann.Lookup.Len()),
		zap.Int64("max_width", ann.MaxWidth),
	)

	opts := rc.drawOptions()
	for _, leaf := range leaves {
		region, ok := ann.Regions[leaf.Name]
		if !ok {
			continue
		}
		path, ok := ann.Images[leaf.Name]
		if !ok {
			img, err := render.DrawRegion(region, ann.Lookup, rc.Aliases, ann.MaxWidth, opts)
			if err != nil {
				return nil, fmt.Errorf("draw region of %s: %w", leaf.Name, err)
			}
			path, err = rc.Config.RegionImagePath(leaf.Name)
			if err != nil {
				return nil, err
			}
			if err := render.WriteRegionPNG(img, path); err != nil {
				return nil, err
			}
			ann.Images[leaf.Name] = path
			log.Debug("Region drawn", zap.String("leaf", leaf.Name), zap.String("path", path))
		}
		leaf.AddFace(&tree.ImageFace{Path: path}, 2, tree.Aligned)
		if ann.Flagged[leaf.Name] {
			leaf.AddFace(tree.NewTextFace(FlagText, rc.Config.Style.FlagSize), 3, tree.Aligned)
		}
	}

	ann.Legend = render.BuildLegend(ann.Lookup)
	ann.Legend.Apply(&style.Legend, rc.Config.Style.LegendSize)
	style.LegendPosition = tree.LegendTopLeft
	return ann, nil
}
