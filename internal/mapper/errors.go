package mapper

import (
	"errors"
	"fmt"
)

// Error kinds returned by the mapping pipeline. Every failure wraps exactly
// one of ErrPalette, ErrLookup, ErrAlgorithm or ErrCodec so callers can
// classify it with errors.Is.
var (
	// ErrPalette is returned for empty or malformed palettes.
	ErrPalette = errors.New("palette error")

	// ErrLookup is returned when a built-in scheme does not exist.
	ErrLookup = errors.New("scheme lookup error")

	// ErrAlgorithm is returned for unrecognised or unimplemented metric names.
	ErrAlgorithm = errors.New("algorithm error")

	// ErrCodec is returned when the image codec fails.
	ErrCodec = errors.New("codec error")

	// ErrDecode is a codec failure while reading the input image.
	ErrDecode = fmt.Errorf("%w: decode", ErrCodec)

	// ErrEncode is a codec failure while writing the output image.
	ErrEncode = fmt.Errorf("%w: encode", ErrCodec)
)
