package mapper

import (
	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/palette"
)

// Nearest returns the palette entry closest to c under alg.
// Ties resolve to the entry with the lowest palette index.
func Nearest(c colour.Color, p *palette.Palette, alg colour.Algorithm) colour.Color {
	best := p.At(0)
	bestDist := colour.Distance(alg, c, best)
	for i := 1; i < p.Len(); i++ {
		candidate := p.At(i)
		if d := colour.Distance(alg, c, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Matcher finds nearest palette entries for one palette and metric.
// Palette L*a*b* values are computed once, when the metric needs them.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	palette *palette.Palette
	alg     colour.Algorithm
	colors  []colour.Color
	labs    []colour.Lab
}

// NewMatcher prepares a matcher. alg must be an implemented algorithm.
func NewMatcher(p *palette.Palette, alg colour.Algorithm) *Matcher {
	m := &Matcher{
		palette: p,
		alg:     alg,
		colors:  p.Colors(),
	}
	if alg.NeedsLab() {
		m.labs = make([]colour.Lab, len(m.colors))
		for i, c := range m.colors {
			m.labs[i] = colour.ToLab(c)
		}
	}
	return m
}

// Palette returns the palette being matched against.
func (m *Matcher) Palette() *palette.Palette {
	return m.palette
}

// Algorithm returns the metric in use.
func (m *Matcher) Algorithm() colour.Algorithm {
	return m.alg
}

// Match returns the index and colour of the palette entry nearest to c.
func (m *Matcher) Match(c colour.Color) (int, colour.Color) {
	var lab colour.Lab
	if m.labs != nil {
		lab = colour.ToLab(c)
	}

	best := 0
	bestDist := m.distance(c, lab, 0)
	for i := 1; i < len(m.colors); i++ {
		if d := m.distance(c, lab, i); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, m.colors[best]
}

func (m *Matcher) distance(c colour.Color, lab colour.Lab, i int) float64 {
	if m.labs == nil {
		return colour.Distance(m.alg, c, m.colors[i])
	}
	return colour.DistanceLab(m.alg, c, lab, m.colors[i], m.labs[i])
}
