// Package mapper maps every pixel of an image onto its nearest palette colour.
//
// A mapping call validates the metric and palette, decodes the input, resolves
// each distinct source colour once (in parallel), rebuilds the raster from the
// resolved colours and encodes it as PNG. Calls share no mutable state.
package mapper

import (
	"fmt"
	"image/png"
	"time"

	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/image"
	"github.com/jmylchreest/palettemap/internal/palette"
)

// Step names a stage of the mapping pipeline.
type Step string

const (
	StepDecode  Step = "decode"
	StepResolve Step = "resolve"
	StepMap     Step = "map"
	StepEncode  Step = "encode"
)

// Event reports a completed pipeline step.
type Event struct {
	Step    Step
	Elapsed time.Duration

	// Set after StepDecode.
	Format string
	Width  int
	Height int

	// Set after StepResolve.
	DistinctColors int
}

// ProgressFunc receives pipeline events. It is called from the mapping goroutine.
type ProgressFunc func(Event)

type options struct {
	workers     int
	maxPixels   int64
	compression png.CompressionLevel
	progress    ProgressFunc
}

// Option configures a mapping call.
type Option func(*options)

// WithWorkers sets the number of goroutines used to resolve colours.
// Values below 1 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxPixels limits the pixel count an input image may declare. Images
// over the limit are rejected before their pixels are decoded. Values below 1
// disable the limit; the default is image.DefaultMaxPixels.
func WithMaxPixels(n int64) Option {
	return func(o *options) {
		o.maxPixels = n
	}
}

// WithPNGCompression sets the compression level of the output PNG.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(o *options) {
		o.compression = level
	}
}

// WithProgress registers a callback for pipeline step events.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		maxPixels:   image.DefaultMaxPixels,
		compression: png.DefaultCompression,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) report(ev Event, start time.Time) {
	if o.progress == nil {
		return
	}
	ev.Elapsed = time.Since(start)
	o.progress(ev)
}

// LookupPalette returns a built-in scheme, classifying failures as ErrLookup.
func LookupPalette(family, name string) (*palette.Palette, error) {
	f, err := palette.ParseFamily(family)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	p, err := palette.Builtin(f, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	return p, nil
}

// MapRaster returns a new raster of the same size in which every pixel has
// the RGB of its nearest palette entry and keeps its original alpha.
func MapRaster(r *image.Raster, p *palette.Palette, alg colour.Algorithm, opts ...Option) (*image.Raster, error) {
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrPalette, palette.ErrEmptyPalette)
	}
	if !colour.IsValidAlgorithm(alg) {
		// Non-canonical spellings parse but are not Algorithm values.
		_, err := colour.ParseAlgorithm(string(alg))
		if err == nil {
			err = fmt.Errorf("%w: %q", colour.ErrUnknownAlgorithm, alg)
		}
		return nil, fmt.Errorf("%w: %w", ErrAlgorithm, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: no raster", ErrDecode)
	}

	return mapRaster(r, p, alg, newOptions(opts)), nil
}

func mapRaster(r *image.Raster, p *palette.Palette, alg colour.Algorithm, o *options) *image.Raster {
	start := time.Now()
	distinct := DistinctColors(r)
	cache := Resolve(NewMatcher(p, alg), distinct, o.workers)
	o.report(Event{Step: StepResolve, DistinctColors: cache.Len()}, start)

	start = time.Now()
	out := &image.Raster{
		Width:  r.Width,
		Height: r.Height,
		Pix:    make([]colour.Color, len(r.Pix)),
	}
	for i, src := range r.Pix {
		dst, _ := cache.Get(src)
		out.Pix[i] = dst.WithAlpha(src.A)
	}
	o.report(Event{Step: StepMap}, start)

	return out
}

// MapImage decodes data, maps it onto p under the named algorithm and
// returns the result as PNG bytes. The algorithm and palette are validated
// before the image is decoded; no partial output is ever returned.
func MapImage(data []byte, p *palette.Palette, algorithm string, opts ...Option) ([]byte, error) {
	alg, err := colour.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlgorithm, err)
	}
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrPalette, palette.ErrEmptyPalette)
	}

	return mapImage(data, p, alg, newOptions(opts))
}

// MapImageSpec is MapImage with the palette given as JSON (see palette.Parse).
func MapImageSpec(data, paletteJSON []byte, algorithm string, opts ...Option) ([]byte, error) {
	alg, err := colour.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlgorithm, err)
	}
	p, err := palette.Parse(paletteJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPalette, err)
	}

	return mapImage(data, p, alg, newOptions(opts))
}

func mapImage(data []byte, p *palette.Palette, alg colour.Algorithm, o *options) ([]byte, error) {
	start := time.Now()
	if _, err := image.ValidateImage(data, o.maxPixels); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	src, format, err := image.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	o.report(Event{Step: StepDecode, Format: format, Width: src.Width, Height: src.Height}, start)

	out := mapRaster(src, p, alg, o)

	start = time.Now()
	encoded, err := image.EncodePNG(out, o.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	o.report(Event{Step: StepEncode}, start)

	return encoded, nil
}
