/*
Package pixel implements the resizing and packing of images into the flat
pixel arrays embedded in the generated header.

Each pixel is stored as a 32-bit value holding the red, green and blue
channels in its lower three bytes, red being the least significant. Alpha is
discarded rather than blended as the LEDs have no notion of transparency.
*/
package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const rgbMask = 0x00ffffff

// Encode packs c into a 24-bit RGB value, dropping the alpha channel.
func Encode(c color.NRGBA) uint32 {
	return binary.LittleEndian.Uint32([]byte{c.R, c.G, c.B, c.A}) & rgbMask
}

// Resize scales m to exactly width by height pixels using a Catmull-Rom
// filter. The result uses straight alpha so the color channels survive
// untouched by transparency.
func Resize(m image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Rect, m, m.Bounds(), draw.Src, nil)
	return dst
}

// Pixels encodes every pixel of m in row-major order.
func Pixels(m image.Image) []uint32 {
	b := m.Bounds()
	pixels := make([]uint32, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels = append(pixels, Encode(color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)))
		}
	}
	return pixels
}
