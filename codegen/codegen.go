/*
Package codegen renders the C header embedding the converted images.

The header defines the target dimensions and data pin, one pixel array per
still image and, for every animation, one array per frame followed by a table
of pointers to those frames and a frame count.
*/
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Context is everything the header template needs.
type Context struct {
	Width          int
	Height         int
	DataPin        int
	Images         []Image
	AnimatedImages []AnimatedImage
}

// Image is a single frame of pixels at the target resolution.
type Image struct {
	Name   string
	Pixels []uint32
}

// AnimatedImage is an ordered sequence of frames.
type AnimatedImage struct {
	Name       string
	Frames     []Image
	FrameCount int
}

// NewAnimatedImage returns an AnimatedImage whose frame count matches frames.
func NewAnimatedImage(name string, frames []Image) AnimatedImage {
	return AnimatedImage{
		Name:       name,
		Frames:     frames,
		FrameCount: len(frames),
	}
}

const pixelsPerLine = 8

var funcs = template.FuncMap{
	"hex": func(p uint32) string {
		return fmt.Sprintf("0x%06X", p)
	},
	// sep returns the whitespace preceding the i'th pixel of an array.
	"sep": func(i int) string {
		if i%pixelsPerLine == 0 {
			return "\n\t"
		}
		return " "
	},
}

var header = template.Must(template.New("header.tmpl").Funcs(funcs).ParseFS(templates, "templates/*.tmpl"))

// Generate renders the header for c.
func Generate(c *Context) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := header.ExecuteTemplate(b, "header.tmpl", c); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
