package image

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmylchreest/palettemap/internal/compression"
)

const (
	// DefaultMaxInputBytes caps the decompressed size of a loaded file.
	DefaultMaxInputBytes = 256 << 20

	// DefaultMaxPixels caps the declared pixel count of a decoded image.
	DefaultMaxPixels = 1 << 26
)

// ErrTooLarge is returned when an image declares more pixels than allowed.
var ErrTooLarge = errors.New("image too large")

// FileLoader loads images from the local filesystem, transparently
// decompressing .gz, .xz, .bz2 and .zip inputs.
type FileLoader struct {
	// MaxBytes limits the decompressed size. Zero or less means no limit.
	MaxBytes int64
}

// NewFileLoader creates a FileLoader with the given size limit.
// Values below 1 use DefaultMaxInputBytes.
func NewFileLoader(maxBytes int64) *FileLoader {
	if maxBytes < 1 {
		maxBytes = DefaultMaxInputBytes
	}
	return &FileLoader{MaxBytes: maxBytes}
}

// Load reads the file at path. The bytes are not decoded; the returned name
// is the base name of the image with any compression suffix removed.
func (l *FileLoader) Load(path string) ([]byte, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("image path cannot be empty")
	}

	data, name, err := compression.ReadFile(path, l.MaxBytes)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load image: %w", err)
	}
	return data, name, nil
}

// ValidateImage checks that data looks like a supported image of at most
// maxPixels pixels without decoding its pixels. A maxPixels below 1 disables
// the size check. It returns the detected format.
func ValidateImage(data []byte, maxPixels int64) (string, error) {
	cfg, format, err := DecodeConfig(data)
	if err != nil {
		return "", fmt.Errorf("unsupported or invalid image format (supported: %s): %w",
			strings.Join(SupportedFormats(), ", "), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("%w: image has invalid dimensions %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); maxPixels > 0 && pixels > maxPixels {
		return "", fmt.Errorf("%w: %s image is %dx%d (%d pixels, limit %d)",
			ErrTooLarge, format, cfg.Width, cfg.Height, pixels, maxPixels)
	}
	return format, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// IsImageFile checks if a file has a supported image extension, ignoring
// any compression suffix.
func IsImageFile(path string) bool {
	_, inner := compression.DetectFormat(path)
	ext := strings.ToLower(filepath.Ext(inner))
	return slices.Contains(SupportedImageExtensions(), ext)
}
