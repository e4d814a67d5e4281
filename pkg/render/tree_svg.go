package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"os"
)

// RenderSVG writes the layout as a self-contained SVG document.
// Pictures are read from disk and embedded as base64 PNG data URIs.
func RenderSVG(l *Layout) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	for _, r := range l.Rects {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			r.X, r.Y, r.W, r.H, html.EscapeString(r.Fill))
	}
	for _, ln := range l.Lines {
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			ln.X1, ln.Y1, ln.X2, ln.Y2, html.EscapeString(ln.Color), ln.Width)
	}
	for _, p := range l.Pictures {
		data, err := os.ReadFile(p.Path)
		if err != nil {
			return nil, fmt.Errorf("embed %s: %w", p.Path, err)
		}
		fmt.Fprintf(&buf, `  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" xlink:href="data:image/png;base64,%s"/>`+"\n",
			p.X, p.Y, p.W, p.H, base64.StdEncoding.EncodeToString(data))
	}
	for _, t := range l.Texts {
		renderSVGText(&buf, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderSVGText(buf *bytes.Buffer, t Text) {
	family := t.Family
	if family == "" {
		family = "sans-serif"
	}
	weight := "normal"
	if t.Bold {
		weight = "bold"
	}
	fill := t.Color
	if fill == "" {
		fill = "#000000"
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s" xml:space="preserve">`,
		t.X, t.Y, html.EscapeString(family), t.Size, weight, html.EscapeString(fill))
	if t.Tooltip != "" {
		fmt.Fprintf(buf, "<title>%s</title>", html.EscapeString(t.Tooltip))
	}
	buf.WriteString(html.EscapeString(t.Text))
	buf.WriteString("</text>\n")
}

// WriteSVG renders the layout to path.
func WriteSVG(l *Layout, path string) error {
	data, err := RenderSVG(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
