package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	size float64
	bold bool
}

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *opentype.Font
	boldFont    *opentype.Font

	faceMu    sync.Mutex
	faceCache = make(map[faceKey]font.Face)
)

func loadFonts() error {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

// fontFace returns a cached Go font face of the given pixel size.
func fontFace(size float64, bold bool) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	key := faceKey{size: size, bold: bold}

	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[key]; ok {
		return face, nil
	}
	f := regularFont
	if bold {
		f = boldFont
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1f: %w", size, err)
	}
	faceCache[key] = face
	return face, nil
}

// textMetrics returns the advance width, ascent and descent of s in pixels.
func textMetrics(s string, size float64, bold bool) (w, ascent, descent float64, err error) {
	face, err := fontFace(size, bold)
	if err != nil {
		return 0, 0, 0, err
	}
	adv := font.MeasureString(face, s)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Ascent) / 64, float64(m.Descent) / 64, nil
}
