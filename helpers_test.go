package ledheader

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
	green = color.RGBA{0x00, 0xff, 0x00, 0xff}
	blue  = color.RGBA{0x00, 0x00, 0xff, 0xff}
)

const (
	packedRed   = 0x0000ff
	packedGreen = 0x00ff00
	packedBlue  = 0xff0000
)

// A GIF with a logical screen but no frames
var emptyGIFData = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")

func writePNG(t *testing.T, file string, width, height int, c color.Color) {
	t.Helper()

	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(m, m.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)

	f, err := os.Create(file)
	require.Nil(t, err)
	defer f.Close()

	require.Nil(t, png.Encode(f, m))
}

// writeGIF writes an animation with one solid frame per color.
func writeGIF(t *testing.T, file string, width, height int, colors ...color.Color) {
	t.Helper()

	g := &gif.GIF{}
	for _, c := range colors {
		m := image.NewPaletted(image.Rect(0, 0, width, height), color.Palette{c})
		g.Image = append(g.Image, m)
		g.Delay = append(g.Delay, 10)
	}

	f, err := os.Create(file)
	require.Nil(t, err)
	defer f.Close()

	require.Nil(t, gif.EncodeAll(f, g))
}

func writeManifest(t *testing.T, dir string, width, height, pin int, assets ...Asset) string {
	t.Helper()

	b := new(strings.Builder)
	fmt.Fprintf(b, "width = %d\nheight = %d\ndata_pin = %d\n\n[images]\n", width, height, pin)
	for _, a := range assets {
		fmt.Fprintf(b, "%s = '%s'\n", a.Name, a.Path)
	}

	file := filepath.Join(dir, DefaultManifest)
	require.Nil(t, ioutil.WriteFile(file, []byte(b.String()), 0o644))

	return file
}

func repeat(p uint32, n int) []uint32 {
	pixels := make([]uint32, n)
	for i := range pixels {
		pixels[i] = p
	}
	return pixels
}
