package mapper

import (
	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/image"
	"github.com/jmylchreest/palettemap/internal/parallel"
)

// cacheKey identifies one resolved source colour. Alpha is dropped because
// no metric examines it.
type cacheKey struct {
	palette string
	alg     colour.Algorithm
	color   colour.Color
}

// MatchCache memoises nearest-match results for a single mapping call.
// It is not safe for concurrent writes; Resolve fills it from one goroutine.
type MatchCache struct {
	paletteID string
	alg       colour.Algorithm
	entries   map[cacheKey]colour.Color
}

// NewMatchCache creates an empty cache bound to the matcher's palette and metric.
func NewMatchCache(m *Matcher) *MatchCache {
	return &MatchCache{
		paletteID: m.Palette().ID(),
		alg:       m.Algorithm(),
		entries:   make(map[cacheKey]colour.Color),
	}
}

func (c *MatchCache) key(src colour.Color) cacheKey {
	return cacheKey{palette: c.paletteID, alg: c.alg, color: src.Opaque()}
}

// Get returns the palette colour resolved for src.
func (c *MatchCache) Get(src colour.Color) (colour.Color, bool) {
	dst, ok := c.entries[c.key(src)]
	return dst, ok
}

// Put records the palette colour resolved for src.
func (c *MatchCache) Put(src, dst colour.Color) {
	c.entries[c.key(src)] = dst
}

// Len returns the number of distinct source colours in the cache.
func (c *MatchCache) Len() int {
	return len(c.entries)
}

// DistinctColors returns the opaque form of every distinct colour in r,
// in order of first appearance.
func DistinctColors(r *image.Raster) []colour.Color {
	seen := make(map[colour.Color]struct{})
	var distinct []colour.Color
	for _, c := range r.Pix {
		c = c.Opaque()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}
	return distinct
}

// Resolve matches every colour in distinct exactly once, spreading contiguous
// index ranges over workers, and returns the filled cache. Workers write only
// their own result slots; the cache itself is filled afterwards in index order.
func Resolve(m *Matcher, distinct []colour.Color, workers int) *MatchCache {
	results := make([]colour.Color, len(distinct))
	parallel.For(len(distinct), workers, func(r parallel.Range) {
		for i := r.Start; i < r.End; i++ {
			_, results[i] = m.Match(distinct[i])
		}
	})

	cache := NewMatchCache(m)
	for i, src := range distinct {
		cache.Put(src, results[i])
	}
	return cache
}
