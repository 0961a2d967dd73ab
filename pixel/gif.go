package pixel

import (
	"image"
	"image/gif"

	"golang.org/x/image/draw"
)

func clone(m *image.NRGBA) *image.NRGBA {
	dup := image.NewNRGBA(m.Rect)
	copy(dup.Pix, m.Pix)
	return dup
}

// Frames expands every frame of g into a complete image the size of the
// logical screen. GIF frames usually only carry the region that changed
// since the previous frame so each one is drawn over what came before,
// honouring the disposal method of the frame preceding it.
func Frames(g *gif.GIF) []*image.NRGBA {
	r := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if r.Empty() {
		for _, f := range g.Image {
			r = r.Union(f.Bounds())
		}
	}

	canvas := image.NewNRGBA(r)
	frames := make([]*image.NRGBA, 0, len(g.Image))

	for i, f := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = clone(canvas)
		}

		draw.Draw(canvas, f.Bounds(), f, f.Bounds().Min, draw.Over)
		frames = append(frames, clone(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, f.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return frames
}
