package ledheader

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// DefaultManifest is the manifest filename used when none is given.
const DefaultManifest = "manifest.toml"

// Asset is a single named entry from the manifest.
type Asset struct {
	Name string
	Path string
}

// Manifest describes the images to convert and the dimensions of the LED
// matrix they are converted for.
type Manifest struct {
	Width   int
	Height  int
	DataPin int
	// Colors limits each frame to that many distinct colors, zero leaves
	// them untouched
	Colors int
	// Images in the order they appear in the manifest
	Images []Asset
}

// MaxPixels is the largest number of pixels allowed in a single frame.
const MaxPixels = 1 << 24

type tomlManifest struct {
	Width   uint32            `toml:"width"`
	Height  uint32            `toml:"height"`
	DataPin uint32            `toml:"data_pin"`
	Colors  int               `toml:"colors"`
	Images  map[string]string `toml:"images"`
}

var requiredKeys = []string{"width", "height", "data_pin", "images"}

// ParseManifest parses and validates a TOML manifest.
func ParseManifest(b []byte) (*Manifest, error) {
	var raw tomlManifest
	md, err := toml.Decode(string(b), &raw)
	if err != nil {
		return nil, newError(ErrManifestParse, "", err)
	}

	for _, key := range requiredKeys {
		if !md.IsDefined(key) {
			return nil, newError(ErrManifestParse, "", fmt.Errorf("missing field `%s`", key))
		}
	}

	switch {
	case raw.Width == 0:
		return nil, newError(ErrManifestParse, "", errors.New("width must be positive"))
	case raw.Height == 0:
		return nil, newError(ErrManifestParse, "", errors.New("height must be positive"))
	case uint64(raw.Width)*uint64(raw.Height) > MaxPixels:
		return nil, newError(ErrManifestParse, "", fmt.Errorf("width * height must not exceed %d pixels", MaxPixels))
	case raw.Colors < 0:
		return nil, newError(ErrManifestParse, "", errors.New("colors must not be negative"))
	}

	m := &Manifest{
		Width:   int(raw.Width),
		Height:  int(raw.Height),
		DataPin: int(raw.DataPin),
		Colors:  raw.Colors,
		Images:  make([]Asset, 0, len(raw.Images)),
	}

	// The decoded map loses ordering so recover it from the keys in the
	// order they were defined
	seen := make(map[string]struct{}, len(raw.Images))
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != "images" {
			continue
		}
		path, ok := raw.Images[key[1]]
		if !ok {
			continue
		}
		if _, ok := seen[key[1]]; ok {
			continue
		}
		seen[key[1]] = struct{}{}
		m.Images = append(m.Images, Asset{Name: key[1], Path: path})
	}

	if len(m.Images) != len(raw.Images) {
		var rest []string
		for name := range raw.Images {
			if _, ok := seen[name]; !ok {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		for _, name := range rest {
			m.Images = append(m.Images, Asset{Name: name, Path: raw.Images[name]})
		}
	}

	return m, nil
}

// LoadManifest reads and parses the manifest at file.
func LoadManifest(file string) (*Manifest, error) {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil, newError(ErrManifestNotFound, file, err)
		}
		return nil, newError(ErrIO, file, err)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, newError(ErrIO, file, err)
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, newError(ErrIO, file, err)
	}

	return ParseManifest(b)
}
