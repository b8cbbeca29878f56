// Package image provides the codec boundary of the mapper: decoding image
// bytes into a Raster, encoding a Raster as PNG and loading files for the CLI.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	"image/png"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format
	"golang.org/x/image/draw"   // Format conversion
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

var (
	// ErrDecode is returned when image bytes cannot be decoded.
	ErrDecode = errors.New("failed to decode image")

	// ErrEncode is returned when a raster cannot be encoded.
	ErrEncode = errors.New("failed to encode image")
)

// SupportedFormats returns the names of the decodable image formats.
func SupportedFormats() []string {
	return []string{"png", "jpeg", "gif", "bmp", "tiff", "webp"}
}

// Decode decodes image bytes in any supported format into a raster.
// It returns the detected format name alongside the raster.
func Decode(data []byte) (*Raster, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	r, err := FromImage(img)
	if err != nil {
		return nil, "", fmt.Errorf("%w (format: %s): %w", ErrDecode, format, err)
	}
	return r, format, nil
}

// DecodeConfig returns the format and dimensions of image bytes without
// decoding the pixel data.
func DecodeConfig(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return cfg, format, nil
}

// EncodePNG encodes a raster as a non-premultiplied RGBA PNG.
func EncodePNG(r *Raster, level png.CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{
		CompressionLevel: level,
		BufferPool:       pngPool,
	}
	if err := enc.Encode(&buf, r.NRGBA()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// toNRGBA returns img as an *image.NRGBA whose origin is img.Bounds().Min.
// NRGBA sources are viewed without copying.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok {
		return &image.NRGBA{
			Pix:    n.Pix[n.PixOffset(b.Min.X, b.Min.Y):],
			Stride: n.Stride,
			Rect:   image.Rect(0, 0, b.Dx(), b.Dy()),
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
