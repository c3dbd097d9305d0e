package layout

import "math"

// Uniform draws count independent uniform points, the baseline the
// best-candidate sampler is compared against.
func Uniform(rng Rand, count int, region Rect) []Point {
	if count <= 0 {
		return []Point{}
	}
	pts := make([]Point, count)
	for i := range pts {
		pts[i] = Point{
			X: region.X + rng.Float64()*region.W,
			Y: region.Y + rng.Float64()*region.H,
		}
	}
	return pts
}

// MinPairwise returns the smallest distance between any two points, or 0
// when fewer than two are given.
func MinPairwise(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	d := math.Inf(1)
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d = math.Min(d, math.Hypot(pts[i].X-pts[j].X, pts[i].Y-pts[j].Y))
		}
	}
	return d
}

// SpreadReport holds per-run minimum pairwise distances for both methods.
type SpreadReport struct {
	BestCandidate []float64
	Uniform       []float64
}

// Means returns the average of each series.
func (r SpreadReport) Means() (best, uniform float64) {
	return mean(r.BestCandidate), mean(r.Uniform)
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
