package ledheader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures that can abort a conversion.
type ErrorKind int

const (
	// ErrManifestNotFound means the manifest file does not exist.
	ErrManifestNotFound ErrorKind = iota + 1
	// ErrManifestParse means the manifest is malformed or fails validation.
	ErrManifestParse
	// ErrImageDecode means a still image could not be opened or decoded.
	ErrImageDecode
	// ErrAnimationDecode means a GIF could not be opened or one of its
	// frames could not be decoded.
	ErrAnimationDecode
	// ErrMissingExtension means a file asset has no extension to classify
	// it by.
	ErrMissingExtension
	// ErrCodeGen means rendering the header template failed.
	ErrCodeGen
	// ErrIO is any other filesystem failure.
	ErrIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrManifestNotFound:
		return "manifest not found"
	case ErrManifestParse:
		return "failed to parse manifest"
	case ErrImageDecode:
		return "image error"
	case ErrAnimationDecode:
		return "animation error"
	case ErrMissingExtension:
		return "missing extension"
	case ErrCodeGen:
		return "codegen error"
	case ErrIO:
		return "io error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error records a failure along with the path it relates to, if any.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrManifestNotFound:
		return fmt.Sprintf("`%s` was not found", e.Path)
	case e.Kind == ErrMissingExtension:
		return fmt.Sprintf("`%s` has no file extension", e.Path)
	case e.Path == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Err == nil:
		return fmt.Sprintf("%s `%s`", e.Kind, e.Path)
	default:
		return fmt.Sprintf("%s `%s`: %v", e.Kind, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err, or any error it wraps, is an *Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind ErrorKind, path string, err error) error {
	return &Error{
		Kind: kind,
		Path: path,
		Err:  err,
	}
}
