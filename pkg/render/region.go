package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/yumyai/ggregion/pkg/model"
)

var (
	ErrCenterNotFound = errors.New("center gene not found in its region")
	ErrNoColor        = errors.New("no colour for cluster")
)

// DrawOptions controls the raster of one neighborhood.
type DrawOptions struct {
	Height         int // px
	BPPerPixel     int
	LabelSize      float64
	AliasLabelSize float64
	LabelAngle     float64 // degrees, counter-clockwise
	Border         string
	CenterBorder   string
}

func DefaultDrawOptions() DrawOptions {
	return DrawOptions{
		Height:         225,
		BPPerPixel:     20,
		LabelSize:      20,
		AliasLabelSize: 25,
		LabelAngle:     20,
		Border:         "#ffffff",
		CenterBorder:   "#ff0000",
	}
}

// Extent returns the smallest and largest coordinate over both endpoints of
// every feature, whatever their orientation.
func Extent(features []*model.GeneFeature) (lo, hi int64) {
	if len(features) == 0 {
		return 0, 0
	}
	lo, hi = features[0].Min(), features[0].Max()
	for _, f := range features[1:] {
		lo = min(lo, f.Min())
		hi = max(hi, f.Max())
	}
	return lo, hi
}

// Alignment places a region on a page so that the midpoint of its center
// gene falls on the middle of the page. Distances are in pixels.
type Alignment struct {
	Page  float64
	Left  float64
	Right float64
	Lo    int64
	Hi    int64
	Mid   float64
	Scale float64
}

// XL and XR are the margins as fractions of the page width.
func (a Alignment) XL() float64 { return a.Left / a.Page }
func (a Alignment) XR() float64 { return a.Right / a.Page }

// X maps a genomic coordinate to a pixel column.
func (a Alignment) X(pos float64) float64 {
	return a.Left + (pos-float64(a.Lo))/a.Scale
}

// Align computes the page geometry of a region drawn at maxWidth bp.
func Align(features []*model.GeneFeature, centerID string, maxWidth int64, scale int) (Alignment, error) {
	if scale <= 0 {
		return Alignment{}, fmt.Errorf("scale must be positive, got %d", scale)
	}
	var center *model.GeneFeature
	for _, f := range features {
		if f.ID == centerID {
			center = f
			break
		}
	}
	if center == nil {
		return Alignment{}, fmt.Errorf("%w: %s", ErrCenterNotFound, centerID)
	}

	lo, hi := Extent(features)
	s := float64(scale)
	page := math.Max(float64(maxWidth)/s, 1)
	mid := float64(center.Min()) + float64(center.Max()-center.Min())/2

	return Alignment{
		Page:  page,
		Left:  page/2 - (mid-float64(lo))/s,
		Right: page/2 - (float64(hi)-mid)/s,
		Lo:    lo,
		Hi:    hi,
		Mid:   mid,
		Scale: s,
	}, nil
}

// DrawRegion rasterizes a neighborhood as a row of arrows coloured by
// cluster. The center gene has its own border colour. When the center gene is
// on the reverse strand the whole image is turned 180 degrees so it points right.
func DrawRegion(region *model.Region, lookup *ColorLookup, aliases model.Aliases, maxWidth int64, opts DrawOptions) (image.Image, error) {
	center, ok := region.Center()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCenterNotFound, region.CenterGene)
	}
	align, err := Align(region.Features, region.CenterGene, maxWidth, opts.BPPerPixel)
	if err != nil {
		return nil, err
	}

	width := int(math.Ceil(align.Page))
	height := opts.Height
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	trackY := float64(height) * 0.7
	arrowH := float64(height) * 0.2

	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawLine(align.X(float64(align.Lo)), trackY, align.X(float64(align.Hi)), trackY)
	dc.Stroke()

	for _, f := range region.Features {
		fill, ok := lookup.Color(f.Cluster)
		if !ok {
			return nil, fmt.Errorf("%w %s (gene %s)", ErrNoColor, f.Cluster, f.ID)
		}
		border := opts.Border
		if f.ID == region.CenterGene {
			border = opts.CenterBorder
		}
		x0 := align.X(float64(f.Min()))
		x1 := align.X(float64(f.Max()))
		arrowPath(dc, x0, x1, trackY, arrowH, f.Strand)
		dc.SetRGB(fill.R, fill.G, fill.B)
		dc.FillPreserve()
		dc.SetHexColor(border)
		dc.SetLineWidth(1)
		dc.Stroke()

		if err := drawLabel(dc, f, aliases, (x0+x1)/2, trackY-arrowH/2-2, opts); err != nil {
			return nil, err
		}
	}

	img := dc.Image()
	if center.Strand == model.StrandReverse {
		return imaging.Rotate180(img), nil
	}
	return img, nil
}

// arrowPath outlines a full-height arrow between x0 and x1 pointing along strand.
func arrowPath(dc *gg.Context, x0, x1, y, h float64, strand model.Strand) {
	top, bottom := y-h/2, y+h/2
	head := math.Min(h/2, x1-x0)
	if strand == model.StrandReverse {
		dc.MoveTo(x1, top)
		dc.LineTo(x0+head, top)
		dc.LineTo(x0, y)
		dc.LineTo(x0+head, bottom)
		dc.LineTo(x1, bottom)
	} else {
		dc.MoveTo(x0, top)
		dc.LineTo(x1-head, top)
		dc.LineTo(x1, y)
		dc.LineTo(x1-head, bottom)
		dc.LineTo(x0, bottom)
	}
	dc.ClosePath()
}

// featureLabel is the alias of a gene when one is known, else its peg number.
func featureLabel(f *model.GeneFeature, aliases model.Aliases, opts DrawOptions) (string, float64) {
	if alias, ok := aliases.Lookup(f.ID); ok {
		return alias, opts.AliasLabelSize
	}
	if gid, err := model.ParseGeneID(f.ID); err == nil {
		return gid.Peg, opts.LabelSize
	}
	return f.ID, opts.LabelSize
}

func drawLabel(dc *gg.Context, f *model.GeneFeature, aliases model.Aliases, x, y float64, opts DrawOptions) error {
	label, size := featureLabel(f, aliases, opts)
	face, err := fontFace(size, false)
	if err != nil {
		return err
	}
	dc.Push()
	defer dc.Pop()
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	dc.RotateAbout(gg.Radians(-opts.LabelAngle), x, y)
	dc.DrawStringAnchored(label, x, y, 0, 0)
	return nil
}

// WriteRegionPNG saves a region image, creating or replacing path.
func WriteRegionPNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("write region image %s: %w", path, err)
	}
	return nil
}
