package pixel

import (
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	green = color.NRGBA{0x00, 0xff, 0x00, 0xff}
	blue  = color.NRGBA{0x00, 0x00, 0xff, 0xff}
)

func solid(width, height int, c color.Color) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

func TestEncode(t *testing.T) {
	tables := []struct {
		name string
		c    color.NRGBA
		want uint32
	}{
		{"red", red, 0x0000ff},
		{"green", green, 0x00ff00},
		{"blue", blue, 0xff0000},
		{"white", color.NRGBA{0xff, 0xff, 0xff, 0xff}, 0xffffff},
		{"transparent", color.NRGBA{0x12, 0x34, 0x56, 0x00}, 0x563412},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, Encode(table.c))
		})
	}
}

func TestEncodeIgnoresAlpha(t *testing.T) {
	for a := 0; a < 256; a++ {
		assert.Equal(t, Encode(color.NRGBA{0x12, 0x34, 0x56, 0xff}), Encode(color.NRGBA{0x12, 0x34, 0x56, uint8(a)}))
	}
}

func TestResize(t *testing.T) {
	tables := []struct {
		name          string
		width, height int
	}{
		{"downscale", 2, 2},
		{"upscale", 16, 8},
		{"same", 4, 4},
		{"single", 1, 1},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := Resize(solid(4, 4, red), table.width, table.height)
			assert.Equal(t, image.Rect(0, 0, table.width, table.height), m.Bounds())

			pixels := Pixels(m)
			require.Len(t, pixels, table.width*table.height)
			for _, p := range pixels {
				assert.Equal(t, uint32(0x0000ff), p)
			}
		})
	}
}

func TestPixelsRowMajor(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m.Set(0, 0, red)
	m.Set(1, 0, green)
	m.Set(0, 1, blue)
	m.Set(1, 1, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	assert.Equal(t, []uint32{0x0000ff, 0x00ff00, 0xff0000, 0xffffff}, Pixels(m))
}

func TestPixelsOffsetBounds(t *testing.T) {
	m := solid(4, 4, green).SubImage(image.Rect(2, 2, 4, 4))
	assert.Equal(t, []uint32{0x00ff00, 0x00ff00, 0x00ff00, 0x00ff00}, Pixels(m))
}

func TestQuantize(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.Set(x, y, color.NRGBA{uint8(x * 32), uint8(y * 32), 0x80, 0xff})
		}
	}

	q := Quantize(m, 4)
	assert.Equal(t, m.Bounds(), q.Bounds())

	colors := make(map[uint32]struct{})
	for _, p := range Pixels(q) {
		colors[p] = struct{}{}
	}
	assert.LessOrEqual(t, len(colors), 4)

	assert.Same(t, m, Quantize(m, 0))
}

var testPalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0x00},
	color.RGBA{0xff, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0xff, 0x00, 0xff},
}

func paletted(r image.Rectangle, index uint8) *image.Paletted {
	m := image.NewPaletted(r, testPalette)
	for i := range m.Pix {
		m.Pix[i] = index
	}
	return m
}

func TestFrames(t *testing.T) {
	tables := []struct {
		name     string
		disposal byte
		want     []uint32
	}{
		{"none", gif.DisposalNone, []uint32{0x0000ff, 0x00ff00}},
		{"unspecified", 0, []uint32{0x0000ff, 0x00ff00}},
		{"background", gif.DisposalBackground, []uint32{0x000000, 0x00ff00}},
		{"previous", gif.DisposalPrevious, []uint32{0x000000, 0x00ff00}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			g := &gif.GIF{
				Image: []*image.Paletted{
					paletted(image.Rect(0, 0, 2, 1), 1),
					paletted(image.Rect(1, 0, 2, 1), 2),
				},
				Delay:    []int{10, 10},
				Disposal: []byte{table.disposal, gif.DisposalNone},
				Config: image.Config{
					ColorModel: testPalette,
					Width:      2,
					Height:     1,
				},
			}

			frames := Frames(g)
			require.Len(t, frames, 2)
			assert.Equal(t, []uint32{0x0000ff, 0x0000ff}, Pixels(frames[0]))
			assert.Equal(t, table.want, Pixels(frames[1]))
		})
	}
}

func TestFramesTransparency(t *testing.T) {
	second := paletted(image.Rect(0, 0, 2, 1), 0)
	second.Pix[1] = 2

	g := &gif.GIF{
		Image:    []*image.Paletted{paletted(image.Rect(0, 0, 2, 1), 1), second},
		Delay:    []int{10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalNone},
		Config:   image.Config{ColorModel: testPalette, Width: 2, Height: 1},
	}

	frames := Frames(g)
	require.Len(t, frames, 2)
	assert.Equal(t, []uint32{0x0000ff, 0x00ff00}, Pixels(frames[1]))
}

func TestFramesEmpty(t *testing.T) {
	assert.Empty(t, Frames(&gif.GIF{Config: image.Config{Width: 4, Height: 4}}))
}
