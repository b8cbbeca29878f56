package image

import (
	"fmt"
	"image"

	"github.com/jmylchreest/palettemap/internal/colour"
)

// Raster is a decoded image: a row-major buffer of Width*Height colours.
type Raster struct {
	Width  int
	Height int
	Pix    []colour.Color
}

// NewRaster creates a raster of the given size filled with transparent black.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", width, height)
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]colour.Color, width*height),
	}, nil
}

// At returns the colour at (x, y).
func (r *Raster) At(x, y int) colour.Color {
	return r.Pix[y*r.Width+x]
}

// Set sets the colour at (x, y).
func (r *Raster) Set(x, y int, c colour.Color) {
	r.Pix[y*r.Width+x] = c
}

// FromImage copies any image.Image into a raster.
func FromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	r, err := NewRaster(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	nrgba := toNRGBA(img)
	for y := 0; y < r.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+r.Width*4]
		for x := 0; x < r.Width; x++ {
			p := row[x*4 : x*4+4 : x*4+4]
			r.Pix[y*r.Width+x] = colour.Color{R: p[0], G: p[1], B: p[2], A: p[3]}
		}
	}
	return r, nil
}

// NRGBA converts the raster to an *image.NRGBA anchored at the origin.
func (r *Raster) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, c := range r.Pix {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return img
}
