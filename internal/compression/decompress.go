// Package compression transparently decompresses input files by extension.
package compression

import (
	"archive/zip"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/palettemap/internal/security"
	"github.com/ulikunitz/xz"
)

// Format identifies a compression wrapper.
type Format string

const (
	// None means the data is used as-is.
	None Format = ""
	// Gzip is a single gzip stream (.gz).
	Gzip Format = "gzip"
	// Xz is a single xz stream (.xz).
	Xz Format = "xz"
	// Bzip2 is a single bzip2 stream (.bz2).
	Bzip2 Format = "bzip2"
	// Zip is a zip archive whose first regular file is used (.zip).
	Zip Format = "zip"
)

// DetectFormat returns the compression format of name and the name with
// the compression suffix removed.
func DetectFormat(name string) (Format, string) {
	lower := strings.ToLower(name)
	for _, s := range []struct {
		ext    string
		format Format
	}{
		{".gz", Gzip},
		{".xz", Xz},
		{".bz2", Bzip2},
		{".zip", Zip},
	} {
		if strings.HasSuffix(lower, s.ext) {
			return s.format, name[:len(name)-len(s.ext)]
		}
	}
	return None, name
}

// Decompress unwraps data according to the extension of name.
// It returns the decompressed bytes and the inner file name. Output larger
// than maxBytes fails with security.ErrSizeLimit; maxBytes <= 0 disables the limit.
func Decompress(data []byte, name string, maxBytes int64) ([]byte, string, error) {
	format, inner := DetectFormat(name)

	var r io.Reader
	switch format {
	case None:
		if maxBytes > 0 && int64(len(data)) > maxBytes {
			return nil, "", fmt.Errorf("%w: %s is %d bytes, limit %d", security.ErrSizeLimit, name, len(data), maxBytes)
		}
		return data, name, nil

	case Gzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr

	case Xz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr

	case Bzip2:
		r = bzip2.NewReader(bytes.NewReader(data))

	case Zip:
		return unzipFirst(data, maxBytes)
	}

	out, err := security.ReadAll(r, maxBytes)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress %s (%s): %w", name, format, err)
	}
	return out, inner, nil
}

// unzipFirst returns the contents of the first regular file in a zip archive.
func unzipFirst(data []byte, maxBytes int64) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open zip archive: %w", err)
	}

	for _, f := range zr.File {
		if !f.Mode().IsRegular() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in zip: %w", f.Name, err)
		}
		out, err := security.ReadAll(rc, maxBytes)
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to extract %s from zip: %w", f.Name, err)
		}
		return out, path.Base(f.Name), nil
	}

	return nil, "", fmt.Errorf("zip archive contains no files")
}

// ReadFile reads the file at filename and decompresses it by extension.
// The returned name is the base name of the (inner) file.
func ReadFile(filename string, maxBytes int64) ([]byte, string, error) {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("file not found: %s", filename)
		}
		return nil, "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("path is a directory, not a file: %s", filename)
	}

	f, err := os.Open(filename) // #nosec G304 - User-specified input path, intended to be read
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Compressed files are bounded again after decompression.
	data, err := security.ReadAll(f, maxBytes)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", filename, err)
	}

	out, name, err := Decompress(data, filepath.Base(filename), maxBytes)
	if err != nil {
		return nil, "", err
	}
	return out, name, nil
}
