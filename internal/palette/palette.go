// Package palette provides the ordered colour palettes images are mapped onto,
// parsed from JSON or RIFF files or looked up among the built-in schemes.
package palette

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/palettemap/internal/colour"
)

var (
	// ErrInvalidPalette is returned when palette data is malformed.
	ErrInvalidPalette = errors.New("invalid palette")

	// ErrEmptyPalette is returned when a palette would contain no colours.
	// It wraps ErrInvalidPalette.
	ErrEmptyPalette = fmt.Errorf("%w: palette contains no colours", ErrInvalidPalette)
)

// Palette is an ordered, non-empty, immutable list of colours.
// Order is significant: when two entries are equally close to a colour the
// earlier one is chosen.
type Palette struct {
	id     string
	colors []colour.Color
}

// New creates a palette from colours, identified by a hash of its content.
// The slice is copied.
func New(colors []colour.Color) (*Palette, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}

	p := &Palette{colors: append([]colour.Color(nil), colors...)}
	p.id = contentID(p.colors)
	return p, nil
}

// contentID returns "sha256:" followed by the first 16 bytes of the hash of
// the colour bytes, in order.
func contentID(colors []colour.Color) string {
	h := sha256.New()
	for _, c := range colors {
		h.Write([]byte{c.R, c.G, c.B, c.A})
	}
	sum := h.Sum(nil)
	return fmt.Sprintf("sha256:%x", sum[:16])
}

// ID returns the palette identity: a scheme name or a content hash.
func (p *Palette) ID() string {
	return p.id
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.colors)
}

// At returns the colour at index i.
func (p *Palette) At(i int) colour.Color {
	return p.colors[i]
}

// Colors returns a copy of the palette colours.
func (p *Palette) Colors() []colour.Color {
	return append([]colour.Color(nil), p.colors...)
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, colour.Color) bool) {
	return func(yield func(int, colour.Color) bool) {
		for i, c := range p.colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Contains reports whether c is an entry of the palette.
func (p *Palette) Contains(c colour.Color) bool {
	for _, pc := range p.colors {
		if pc == c {
			return true
		}
	}
	return false
}

// Parse parses a JSON palette. Each entry is either an array of three
// ([r, g, b], alpha 255) or four ([r, g, b, a]) integers in [0, 255], or a
// hex string "#RRGGBB" / "#RRGGBBAA". Entry order is preserved and duplicates
// are kept.
func Parse(data []byte) (*Palette, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPalette, err)
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after palette array", ErrInvalidPalette)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidPalette)
	}

	colors := make([]colour.Color, 0, len(raw))
	for i, entry := range raw {
		c, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidPalette, i, err)
		}
		colors = append(colors, c)
	}

	return New(colors)
}

func parseEntry(entry json.RawMessage) (colour.Color, error) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return colour.Color{}, err
		}
		return colour.ParseHex(s)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var components []any
	if err := dec.Decode(&components); err != nil {
		return colour.Color{}, fmt.Errorf("expected an [r, g, b] or [r, g, b, a] array: %w", err)
	}
	if components == nil {
		return colour.Color{}, fmt.Errorf("expected an [r, g, b] or [r, g, b, a] array, got null")
	}
	if len(components) != 3 && len(components) != 4 {
		return colour.Color{}, fmt.Errorf("expected 3 (RGB) or 4 (RGBA) components, got %d", len(components))
	}

	var values [4]uint8
	values[3] = 255
	for i, component := range components {
		n, ok := component.(json.Number)
		if !ok {
			return colour.Color{}, fmt.Errorf("component %d: expected an integer, got %T", i, component)
		}
		v, err := parseComponent(n)
		if err != nil {
			return colour.Color{}, fmt.Errorf("component %d: %w", i, err)
		}
		values[i] = v
	}

	return colour.Color{R: values[0], G: values[1], B: values[2], A: values[3]}, nil
}

func parseComponent(n json.Number) (uint8, error) {
	if strings.ContainsAny(n.String(), ".eE") {
		return 0, fmt.Errorf("%s is not an integer", n)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%s is not an integer: %w", n, err)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%d is out of range [0, 255]", v)
	}
	return uint8(v), nil
}

// MarshalJSON encodes the palette as an array of hex strings.
func (p *Palette) MarshalJSON() ([]byte, error) {
	hexes := make([]string, len(p.colors))
	for i, c := range p.colors {
		hexes[i] = c.Hex()
	}
	return json.Marshal(hexes)
}

// JSON encodes the palette in the integer array wire format, omitting alpha
// for opaque colours.
func (p *Palette) JSON() []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, c := range p.colors {
		if i > 0 {
			buf.WriteByte(',')
		}
		if c.A == 255 {
			fmt.Fprintf(&buf, "[%d,%d,%d]", c.R, c.G, c.B)
		} else {
			fmt.Fprintf(&buf, "[%d,%d,%d,%d]", c.R, c.G, c.B, c.A)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// String returns a human-readable representation of the palette.
func (p *Palette) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette %s with %d colours:\n", p.id, len(p.colors))
	for i, c := range p.colors {
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return sb.String()
}
