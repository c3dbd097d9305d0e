package garden

import (
	"github.com/san-kum/glyphgarden/internal/layout"
	"github.com/san-kum/glyphgarden/internal/noise"
	"github.com/san-kum/glyphgarden/internal/seed"
)

const (
	// LowerTenths is the share of elements, in tenths, placed in the bottom half.
	LowerTenths = 7
	// GrowthCap bounds spawned growth relative to the target density.
	GrowthCap = 1.6
)

// Registry owns the ordered element collection. Oldest elements come first.
type Registry struct {
	theme    *Theme
	rng      seed.Source
	sampler  *layout.Sampler
	viewport Viewport
	still    bool
	elements []*Element
	nextID   uint64
}

// NewRegistry creates an empty registry. Call Regenerate to populate it.
func NewRegistry(theme *Theme, rng seed.Source, vp Viewport) *Registry {
	return &Registry{
		theme:    theme,
		rng:      rng,
		sampler:  layout.NewSampler(rng),
		viewport: vp,
		elements: make([]*Element, 0, theme.Density()),
	}
}

// SetStill makes every element created from now on non-rotating.
func (r *Registry) SetStill(still bool) { r.still = still }

// Regenerate discards all elements and lays out the target density afresh:
// 70% in the lower half, the rest in the upper half, each half sampled
// independently.
func (r *Registry) Regenerate() {
	density := r.theme.Density()
	r.elements = make([]*Element, 0, density)

	lowerCount := density * LowerTenths / 10
	upperCount := density - lowerCount
	w, h := r.viewport.W, r.viewport.H

	lower := r.sampler.Sample(lowerCount, layout.Rect{X: 0, Y: h / 2, W: w, H: h / 2})
	upper := r.sampler.Sample(upperCount, layout.Rect{X: 0, Y: 0, W: w, H: h / 2})

	for _, p := range append(lower, upper...) {
		r.create(p.X, p.Y)
	}
}

// SpawnAt appends one element at (x, y). When the collection grows past
// GrowthCap times the density the oldest element is evicted and returned.
func (r *Registry) SpawnAt(x, y float64) (evicted *Element) {
	r.create(x, y)
	if float64(len(r.elements)) > float64(r.theme.Density())*GrowthCap {
		evicted = r.elements[0]
		r.elements[0] = nil
		r.elements = r.elements[1:]
	}
	return evicted
}

// Resize records the new viewport and lays out a fresh garden; existing
// positions are not rescaled.
func (r *Registry) Resize(w, h float64) {
	r.viewport = Viewport{W: w, H: h}
	r.Regenerate()
}

// Step moves every element one tick.
func (r *Registry) Step(field noise.Field) {
	for _, e := range r.elements {
		e.Step(field, r.viewport)
	}
}

func (r *Registry) Elements() []*Element { return r.elements }
func (r *Registry) Len() int             { return len(r.elements) }
func (r *Registry) Viewport() Viewport   { return r.viewport }

func (r *Registry) create(x, y float64) *Element {
	r.nextID++
	e := newElement(r.rng, r.nextID, x, y, r.theme.Palette(), r.still)
	r.elements = append(r.elements, e)
	return e
}
