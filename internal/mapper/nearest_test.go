package mapper

import (
	"testing"

	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/palette"
)

func mustPalette(t *testing.T, colors ...colour.Color) *palette.Palette {
	t.Helper()
	p, err := palette.New(colors)
	if err != nil {
		t.Fatalf("palette.New() failed: %v", err)
	}
	return p
}

// sampleColours is a fixed spread of colours used by property tests.
func sampleColours() []colour.Color {
	var out []colour.Color
	for _, r := range []uint8{0, 10, 64, 127, 128, 200, 255} {
		for _, g := range []uint8{0, 33, 128, 254} {
			for _, b := range []uint8{0, 90, 255} {
				out = append(out, colour.RGB(r, g, b))
			}
		}
	}
	return out
}

func TestNearestBlackWhite(t *testing.T) {
	p := mustPalette(t, colour.RGB(0, 0, 0), colour.RGB(255, 255, 255))

	tests := []struct {
		name string
		src  colour.Color
		want colour.Color
	}{
		{name: "near black", src: colour.RGB(10, 10, 10), want: colour.RGB(0, 0, 0)},
		{name: "near white", src: colour.RGB(240, 250, 245), want: colour.RGB(255, 255, 255)},
		{name: "exact black", src: colour.RGB(0, 0, 0), want: colour.RGB(0, 0, 0)},
	}

	for _, alg := range colour.Algorithms() {
		for _, tt := range tests {
			t.Run(string(alg)+"/"+tt.name, func(t *testing.T) {
				if got := Nearest(tt.src, p, alg); got != tt.want {
					t.Errorf("Nearest(%v) = %v, want %v", tt.src, got, tt.want)
				}
			})
		}
	}
}

func TestNearestIsPaletteMember(t *testing.T) {
	palettes := []*palette.Palette{
		mustPalette(t, colour.RGB(12, 200, 40)),
		mustPalette(t, colour.RGB(255, 0, 0), colour.RGB(0, 255, 0), colour.RGB(0, 0, 255)),
	}
	for _, name := range []string{"dracula", "solarized-light"} {
		p, err := palette.Builtin(palette.Base16, name)
		if err != nil {
			t.Fatalf("Builtin(%s) failed: %v", name, err)
		}
		palettes = append(palettes, p)
	}

	for _, p := range palettes {
		for _, alg := range colour.Algorithms() {
			for _, c := range sampleColours() {
				if got := Nearest(c, p, alg); !p.Contains(got) {
					t.Fatalf("Nearest(%v, %s, %s) = %v, not in palette", c, p.ID(), alg, got)
				}
			}
		}
	}
}

func TestNearestTieBreakFirstEntry(t *testing.T) {
	// Manhattan distance 30 to both entries.
	p := mustPalette(t, colour.RGB(0, 0, 0), colour.RGB(20, 20, 20))
	if got := Nearest(colour.RGB(10, 10, 10), p, colour.AlgorithmManhattan); got != colour.RGB(0, 0, 0) {
		t.Errorf("Nearest() = %v, want the first of two equidistant entries", got)
	}

	dup := mustPalette(t, colour.RGB(0, 0, 0), colour.RGB(0, 0, 0))
	for _, alg := range colour.Algorithms() {
		m := NewMatcher(dup, alg)
		for _, c := range sampleColours() {
			if idx, _ := m.Match(c); idx != 0 {
				t.Fatalf("%s: Match(%v) index = %d, want 0", alg, c, idx)
			}
		}
	}
}

func TestMatcherAgreesWithNearest(t *testing.T) {
	p, err := palette.Builtin(palette.Base24, "gruvbox-dark")
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}

	for _, alg := range colour.Algorithms() {
		m := NewMatcher(p, alg)
		if m.Algorithm() != alg || m.Palette() != p {
			t.Fatalf("NewMatcher() did not keep its inputs")
		}
		for _, c := range sampleColours() {
			idx, got := m.Match(c)
			if want := Nearest(c, p, alg); got != want {
				t.Errorf("%s: Match(%v) = %v, Nearest = %v", alg, c, got, want)
			}
			if p.At(idx) != got {
				t.Errorf("%s: Match(%v) index %d holds %v, returned %v", alg, c, idx, p.At(idx), got)
			}
		}
	}
}

func TestMatcherIgnoresAlpha(t *testing.T) {
	p := mustPalette(t, colour.RGB(0, 0, 0), colour.RGB(255, 255, 255))
	for _, alg := range colour.Algorithms() {
		m := NewMatcher(p, alg)
		_, opaque := m.Match(colour.RGB(200, 200, 200))
		_, transparent := m.Match(colour.Color{R: 200, G: 200, B: 200, A: 0})
		if opaque != transparent {
			t.Errorf("%s: alpha changed the match: %v vs %v", alg, opaque, transparent)
		}
	}
}
