// Package layout places elements so they are well spread within a region.
package layout

import "math"

// DefaultCandidates is the number of random candidates tried per point.
const DefaultCandidates = 15

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned region with origin at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Rand is the uniform stream the sampler draws from.
type Rand interface {
	Float64() float64
}

// Sampler implements greedy best-candidate placement, a cheap approximation
// of Poisson-disc sampling. Each call is O(count² · candidates), which is
// fine for the tens of elements a garden holds. The zero value has no
// stream; build one with NewSampler.
type Sampler struct {
	rng        Rand
	candidates int
}

func NewSampler(rng Rand) *Sampler {
	return NewSamplerK(rng, DefaultCandidates)
}

// NewSamplerK tries k candidates per point; k below 1 means 1.
func NewSamplerK(rng Rand, k int) *Sampler {
	if k < 1 {
		k = 1
	}
	return &Sampler{rng: rng, candidates: k}
}

// Sample returns count points inside region. Points repel earlier points of
// the same call only.
func (s *Sampler) Sample(count int, region Rect) []Point {
	if count <= 0 {
		return []Point{}
	}
	k := s.candidates

	pts := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		var best Point
		bestDist := -1.0
		for c := 0; c < k; c++ {
			cand := s.randomIn(region)
			d := nearest(cand, pts)
			// strict comparison keeps the first maximum
			if d > bestDist {
				bestDist = d
				best = cand
			}
		}
		pts = append(pts, best)
	}
	return pts
}

func (s *Sampler) randomIn(r Rect) Point {
	x := r.X + s.rng.Float64()*r.W
	y := r.Y + s.rng.Float64()*r.H
	return Point{X: x, Y: y}
}

// nearest is the distance from p to the closest of pts, +Inf for none.
func nearest(p Point, pts []Point) float64 {
	d := math.Inf(1)
	for _, q := range pts {
		d = math.Min(d, math.Hypot(p.X-q.X, p.Y-q.Y))
	}
	return d
}
