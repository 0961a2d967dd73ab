package pixel

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// Quantize reduces m to no more than n colors. If m already uses a palette
// small enough it is returned as-is.
func Quantize(m image.Image, n int) image.Image {
	if n <= 0 {
		return m
	}

	b := m.Bounds()

	if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= n {
		return m
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm
}
