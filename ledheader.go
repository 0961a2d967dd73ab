/*
Package ledheader is a library for converting a manifest of images, animated
GIFs and directories of frames into a C header of pixel data, ready to be
compiled into LED matrix firmware.
*/
package ledheader

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/ledheader/codegen"
)

// DefaultOutput is the header filename used when none is given.
const DefaultOutput = "images.h"

// Converter drives the conversion of a manifest into a header.
type Converter struct {
	cache   *Cache
	logger  *log.Logger
	workers int
}

// New returns a Converter loading assets with the given number of workers.
// The cache and logger are optional.
func New(cache *Cache, logger *log.Logger, workers int) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	if workers < 1 {
		workers = 1
	}
	return &Converter{
		cache:   cache,
		logger:  logger,
		workers: workers,
	}
}

// Convert loads every asset in m and returns the context for rendering the
// header. Still images and animations each keep the relative order they had
// in the manifest.
func (c *Converter) Convert(m *Manifest) (*codegen.Context, error) {
	results, err := c.loadAll(m)
	if err != nil {
		return nil, err
	}

	ctx := &codegen.Context{
		Width:          m.Width,
		Height:         m.Height,
		DataPin:        m.DataPin,
		Images:         []codegen.Image{},
		AnimatedImages: []codegen.AnimatedImage{},
	}

	for _, r := range results {
		switch {
		case r.Image != nil:
			ctx.Images = append(ctx.Images, *r.Image)
		case r.Animation != nil:
			ctx.AnimatedImages = append(ctx.AnimatedImages, *r.Animation)
		}
	}

	return ctx, nil
}

func (c *Converter) load(m *Manifest, a Asset) (Loaded, error) {
	kind, err := Classify(a.Path)
	if err != nil {
		return Loaded{}, err
	}

	l, err := c.loader(kind, m.Colors).Load(a.Name, a.Path, m.Width, m.Height)
	if err != nil {
		return Loaded{}, err
	}

	if l.Animation != nil {
		c.logger.Printf("Loaded \"%s\" from \"%s\" as %s, %d frames\n", a.Name, a.Path, kind, l.Animation.FrameCount)
	} else {
		c.logger.Printf("Loaded \"%s\" from \"%s\" as %s\n", a.Name, a.Path, kind)
	}

	return l, nil
}

// Run converts the manifest in input and writes the header to output. The
// output file is only replaced once the header has been generated in full.
func (c *Converter) Run(input, output string) error {
	m, err := LoadManifest(input)
	if err != nil {
		return err
	}

	ctx, err := c.Convert(m)
	if err != nil {
		return err
	}

	b, err := codegen.Generate(ctx)
	if err != nil {
		return newError(ErrCodeGen, "", err)
	}

	if err := writeFile(output, b); err != nil {
		return newError(ErrIO, output, err)
	}

	c.logger.Printf("Wrote %d images and %d animations to \"%s\"\n", len(ctx.Images), len(ctx.AnimatedImages), output)

	return nil
}

// writeFile writes b to a temporary file next to file and renames it into
// place. If file is a symlink the target is replaced and an existing file
// keeps its permissions.
func writeFile(file string, b []byte) error {
	if target, err := filepath.EvalSymlinks(file); err == nil {
		file = target
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(file); err == nil {
		mode = info.Mode().Perm()
	}

	f, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err = f.Write(b); err != nil {
		return err
	}

	if err = f.Sync(); err != nil {
		return err
	}

	if err = f.Chmod(mode); err != nil {
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}
