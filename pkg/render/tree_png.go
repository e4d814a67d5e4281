package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// RasterizeLayout draws the layout on a transparent canvas with gg.
func RasterizeLayout(l *Layout) (image.Image, error) {
	dc := gg.NewContext(int(math.Ceil(l.Width)), int(math.Ceil(l.Height)))

	for _, r := range l.Rects {
		dc.DrawRectangle(r.X, r.Y, r.W, r.H)
		dc.SetHexColor(r.Fill)
		dc.Fill()
	}
	for _, ln := range l.Lines {
		dc.SetHexColor(ln.Color)
		dc.SetLineWidth(ln.Width)
		dc.DrawLine(ln.X1, ln.Y1, ln.X2, ln.Y2)
		dc.Stroke()
	}
	for _, p := range l.Pictures {
		img, err := imaging.Open(p.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p.Path, err)
		}
		if b := img.Bounds(); b.Dx() != int(p.W) || b.Dy() != int(p.H) {
			img = imaging.Resize(img, int(p.W), int(p.H), imaging.Lanczos)
		}
		dc.DrawImage(img, int(math.Round(p.X)), int(math.Round(p.Y)))
	}
	for _, t := range l.Texts {
		face, err := fontFace(t.Size, t.Bold)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		if t.Color == "" {
			dc.SetColor(color.Black)
		} else {
			dc.SetHexColor(t.Color)
		}
		dc.DrawString(t.Text, t.X, t.Y)
	}
	return dc.Image(), nil
}

// Trim crops img to the bounding box of its non-transparent pixels.
// A fully transparent image is returned unchanged.
func Trim(img image.Image) *image.NRGBA {
	src := imaging.Clone(img)
	b := src.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.NRGBAAt(x, y).A == 0 {
				continue
			}
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	if maxX < minX {
		return src
	}
	return imaging.Crop(src, image.Rect(minX, minY, maxX+1, maxY+1))
}

// WriteTrimmedPNG rasterizes the layout, trims it and saves it as 32-bit NRGBA.
func WriteTrimmedPNG(l *Layout, path string) error {
	img, err := RasterizeLayout(l)
	if err != nil {
		return err
	}
	if err := imaging.Save(Trim(img), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
