// Package colour provides the colour model, colour space conversion and
// distance metrics used to match image colours against a palette.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit, non-premultiplied RGBA colour.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// RGB returns an opaque colour from its red, green and blue components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	switch v := c.(type) {
	case Color:
		return v
	case color.NRGBA:
		return Color{R: v.R, G: v.G, B: v.B, A: v.A}
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns the colour as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Opaque returns the colour with alpha forced to 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// WithAlpha returns the colour with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex returns the colour as "#rrggbb", or "#rrggbbaa" when it is not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns the colour in the format "rgba(r, g, b, a)".
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (case-insensitive, leading # required).
func ParseHex(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Color{}, fmt.Errorf("invalid hex colour %q: missing # prefix", s)
	}

	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex colour %q: expected #RRGGBB or #RRGGBBAA", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	if len(hex) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
