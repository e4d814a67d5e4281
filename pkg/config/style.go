package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Style holds the font sizes and colours of every drawn element.
// It can be overridden from a TOML file; unset keys keep their defaults.
type Style struct {
	FontFamily string `toml:"font_family"`

	LeafNameSize float64 `toml:"leaf_name_size"`
	OrganismSize float64 `toml:"organism_size"`
	SupportSize  float64 `toml:"support_size"`
	SupportColor string  `toml:"support_color"`
	TitleSize    float64 `toml:"title_size"`
	LegendSize   float64 `toml:"legend_size"`
	FlagSize     float64 `toml:"flag_size"`

	LabelSize      float64 `toml:"label_size"`
	AliasLabelSize float64 `toml:"alias_label_size"`
	LabelAngle     float64 `toml:"label_angle"`
	Border         string  `toml:"border"`
	CenterBorder   string  `toml:"center_border"`
}

func DefaultStyle() Style {
	return Style{
		FontFamily:     "Times",
		LeafNameSize:   30,
		OrganismSize:   30,
		SupportSize:    20,
		SupportColor:   "#ff0000",
		TitleSize:      52,
		LegendSize:     30,
		FlagSize:       30,
		LabelSize:      20,
		AliasLabelSize: 25,
		LabelAngle:     20,
		Border:         "#ffffff",
		CenterBorder:   "#ff0000",
	}
}

// LoadStyle decodes a TOML style file over DefaultStyle.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	md, err := toml.DecodeFile(path, &style)
	if err != nil {
		return style, fmt.Errorf("decode style %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return style, fmt.Errorf("style %s: unknown keys %v", path, undecoded)
	}
	return style, nil
}
