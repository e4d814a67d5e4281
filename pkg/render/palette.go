package render

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/yumyai/ggregion/pkg/model"
)

// RGB is a colour with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// Grey is the shared colour of low frequency clusters.
var Grey = RGB{0.5, 0.5, 0.5}

const paletteValue = 0.7

// Hex formats c as #rrggbb, truncating each channel (0.5 gives 7f).
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

func channel(x float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Trunc(x*255))))
}

// ParseHex reads #rrggbb (or #rgb) into an RGB.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return RGB{c.R, c.G, c.B}, nil
}

// Partition gives each label a distinct colour. Colours vary over a
// ceil(sqrt(N)) x ceil(sqrt(N)) hue/saturation grid at a fixed value of 0.7,
// hue changing slowest. The result depends only on labels and their order.
func Partition(labels []model.ClusterID) map[model.ClusterID]RGB {
	n := len(labels)
	out := make(map[model.ClusterID]RGB, n)
	if n == 0 {
		return out
	}

	perm := int(math.Ceil(math.Sqrt(float64(n))))
	hues := make([]float64, perm)
	sats := make([]float64, perm)
	for k := range perm {
		hues[k] = float64(k) / float64(perm)
		sats[k] = float64(k)/float64(perm) + 0.2
		if perm > 5 {
			// keep saturation below 1 on large grids
			sats[k] = 0.2 + 0.8*float64(k)/float64(perm)
		}
	}

	i := 0
	for _, h := range hues {
		for _, s := range sats {
			if i == n {
				return out
			}
			c := colorful.Hsv(h*360, s, paletteValue)
			out[labels[i]] = RGB{c.R, c.G, c.B}
			i++
		}
	}
	return out
}

// Bucket splits the legend into frequent and low frequency clusters.
type Bucket int

const (
	Distinct Bucket = iota
	LowFrequency
)

func (b Bucket) String() string {
	if b == Distinct {
		return "distinct"
	}
	return "low-frequency"
}

// Swatch is the colour assigned to one cluster.
type Swatch struct {
	Cluster model.ClusterID
	Color   RGB
	Bucket  Bucket
	Count   int
}

// ColorLookup maps every cluster seen in a run to its colour.
type ColorLookup struct {
	threshold int
	swatches  map[model.ClusterID]Swatch
	order     []model.ClusterID
}

// BuildColorLookup counts occurrences. Clusters seen more than threshold
// times get a colour from Partition, in natural id order. The rest are Grey.
func BuildColorLookup(occurrences []model.ClusterID, threshold int) *ColorLookup {
	counts := make(map[model.ClusterID]int)
	for _, c := range occurrences {
		counts[c]++
	}

	unique := make([]model.ClusterID, 0, len(counts))
	for c := range counts {
		unique = append(unique, c)
	}
	slices.SortFunc(unique, model.CompareClusterIDs)

	var frequent []model.ClusterID
	for _, c := range unique {
		if counts[c] > threshold {
			frequent = append(frequent, c)
		}
	}
	colors := Partition(frequent)

	lookup := &ColorLookup{
		threshold: threshold,
		swatches:  make(map[model.ClusterID]Swatch, len(unique)),
		order:     unique,
	}
	for _, c := range unique {
		sw := Swatch{Cluster: c, Count: counts[c], Color: Grey, Bucket: LowFrequency}
		if rgb, ok := colors[c]; ok {
			sw.Color = rgb
			sw.Bucket = Distinct
		}
		lookup.swatches[c] = sw
	}
	return lookup
}

func (l *ColorLookup) Color(c model.ClusterID) (RGB, bool) {
	sw, ok := l.swatches[c]
	return sw.Color, ok
}

func (l *ColorLookup) Swatch(c model.ClusterID) (Swatch, bool) {
	sw, ok := l.swatches[c]
	return sw, ok
}

// Swatches returns every entry in natural cluster order.
func (l *ColorLookup) Swatches() []Swatch {
	out := make([]Swatch, len(l.order))
	for i, c := range l.order {
		out[i] = l.swatches[c]
	}
	return out
}

// InBucket returns the entries of one bucket in natural cluster order.
func (l *ColorLookup) InBucket(b Bucket) []Swatch {
	var out []Swatch
	for _, c := range l.order {
		if sw := l.swatches[c]; sw.Bucket == b {
			out = append(out, sw)
		}
	}
	return out
}

func (l *ColorLookup) Threshold() int {
	return l.threshold
}

func (l *ColorLookup) Len() int {
	return len(l.order)
}
