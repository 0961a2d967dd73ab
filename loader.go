package ledheader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/bodgit/ledheader/codegen"
	"github.com/bodgit/ledheader/pixel"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loaded is the result of loading a single asset. Exactly one of Image or
// Animation is set.
type Loaded struct {
	Image     *codegen.Image
	Animation *codegen.AnimatedImage
}

// Loader converts the asset at path into frames of width by height pixels.
type Loader interface {
	Load(name, path string, width, height int) (Loaded, error)
}

// frameName returns the name of the i'th frame of an animation.
func frameName(name string, i int) string {
	return fmt.Sprintf("%s_%d", name, i)
}

type options struct {
	cache  *Cache
	logger *log.Logger
	colors int
}

// readFile reads the whole of file, a failure to open it is reported as
// kind.
func readFile(file string, kind ErrorKind) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, newError(kind, file, err)
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, newError(ErrIO, file, err)
	}

	return b, nil
}

func (o options) key(b []byte, kind Kind, width, height int) cacheKey {
	return cacheKey{
		sha1:   fmt.Sprintf("%X", sha1.Sum(b)),
		kind:   kind,
		width:  width,
		height: height,
		colors: o.colors,
	}
}

func (o options) lookup(file string, key cacheKey) ([][]uint32, error) {
	if o.cache == nil {
		return nil, nil
	}
	frames, err := o.cache.get(key)
	if err != nil {
		return nil, newError(ErrIO, o.cache.file, err)
	}
	if frames != nil {
		o.logger.Printf("Cache hit for \"%s\"\n", file)
	}
	return frames, nil
}

func (o options) store(key cacheKey, frames [][]uint32) error {
	if o.cache == nil {
		return nil
	}
	if err := o.cache.put(key, frames); err != nil {
		return newError(ErrIO, o.cache.file, err)
	}
	return nil
}

func (o options) encode(m image.Image, width, height int) []uint32 {
	return pixel.Pixels(pixel.Quantize(pixel.Resize(m, width, height), o.colors))
}

type staticLoader struct {
	options
}

func (l staticLoader) frame(name, path string, width, height int) (codegen.Image, error) {
	b, err := readFile(path, ErrImageDecode)
	if err != nil {
		return codegen.Image{}, err
	}

	key := l.key(b, KindStatic, width, height)
	frames, err := l.lookup(path, key)
	if err != nil {
		return codegen.Image{}, err
	}
	if len(frames) == 1 {
		return codegen.Image{Name: name, Pixels: frames[0]}, nil
	}

	m, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return codegen.Image{}, newError(ErrImageDecode, path, err)
	}

	pixels := l.encode(m, width, height)
	if err := l.store(key, [][]uint32{pixels}); err != nil {
		return codegen.Image{}, err
	}

	return codegen.Image{Name: name, Pixels: pixels}, nil
}

func (l staticLoader) Load(name, path string, width, height int) (Loaded, error) {
	i, err := l.frame(name, path, width, height)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Image: &i}, nil
}

type gifLoader struct {
	options
}

// The standard decoder refuses a GIF without any frames, which is still a
// valid, if pointless, animation. image/gif exports no sentinel for this so
// the message is matched instead.
const errMissingImageData = "gif: missing image data"

func emptyGIF(b []byte, err error) bool {
	if err.Error() != errMissingImageData {
		return false
	}
	_, err = gif.DecodeConfig(bytes.NewReader(b))
	return err == nil
}

func (l gifLoader) Load(name, path string, width, height int) (Loaded, error) {
	b, err := readFile(path, ErrAnimationDecode)
	if err != nil {
		return Loaded{}, err
	}

	key := l.key(b, KindGIF, width, height)
	frames, err := l.lookup(path, key)
	if err != nil {
		return Loaded{}, err
	}

	if frames == nil {
		g, err := gif.DecodeAll(bytes.NewReader(b))
		if err != nil {
			if !emptyGIF(b, err) {
				return Loaded{}, newError(ErrAnimationDecode, path, err)
			}
			g = &gif.GIF{}
		}

		expanded := pixel.Frames(g)
		frames = make([][]uint32, 0, len(expanded))
		for _, m := range expanded {
			frames = append(frames, l.encode(m, width, height))
		}

		if err := l.store(key, frames); err != nil {
			return Loaded{}, err
		}
	}

	images := make([]codegen.Image, 0, len(frames))
	for i, pixels := range frames {
		images = append(images, codegen.Image{Name: frameName(name, i), Pixels: pixels})
	}

	a := codegen.NewAnimatedImage(name, images)
	return Loaded{Animation: &a}, nil
}

type directoryLoader struct {
	static staticLoader
}

// listFrames returns the regular files in dir sorted by path. Entries that
// can't be inspected are ignored.
func listFrames(dir string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, newError(ErrIO, dir, err)
	}
	defer d.Close()

	entries, err := d.ReadDir(-1)
	if err != nil {
		return nil, newError(ErrIO, dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		// Ignore anything that isn't a normal file
		if !info.Mode().IsRegular() {
			continue
		}

		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)

	return paths, nil
}

func (l directoryLoader) Load(name, path string, width, height int) (Loaded, error) {
	paths, err := listFrames(path)
	if err != nil {
		return Loaded{}, err
	}

	images := make([]codegen.Image, 0, len(paths))
	for i, file := range paths {
		frame, err := l.static.frame(frameName(name, i), file, width, height)
		if err != nil {
			return Loaded{}, err
		}
		images = append(images, frame)
	}

	a := codegen.NewAnimatedImage(name, images)
	return Loaded{Animation: &a}, nil
}

func (c *Converter) loader(kind Kind, colors int) Loader {
	o := options{
		cache:  c.cache,
		logger: c.logger,
		colors: colors,
	}
	switch kind {
	case KindGIF:
		return gifLoader{o}
	case KindDirectory:
		return directoryLoader{staticLoader{o}}
	default:
		return staticLoader{o}
	}
}
