package ledheader

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind is the category of a manifest asset which decides how it is loaded.
type Kind int

const (
	// KindStatic is a single still image
	KindStatic Kind = iota
	// KindGIF is an animated GIF
	KindGIF
	// KindDirectory is a directory of still images, one per frame
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindGIF:
		return "gif"
	case KindDirectory:
		return "directory"
	default:
		return "static"
	}
}

// extension returns the extension of path without the leading dot. A file
// name made of a leading dot and nothing else, like ".gif", has none.
func extension(path string) (string, bool) {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}

// Classify decides which loader handles path. Directories take precedence
// over the extension, which is compared case-sensitively.
func Classify(path string) (Kind, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return KindDirectory, nil
	}

	ext, ok := extension(path)
	if !ok {
		return KindStatic, newError(ErrMissingExtension, path, nil)
	}

	if ext == "gif" {
		return KindGIF, nil
	}

	return KindStatic, nil
}
