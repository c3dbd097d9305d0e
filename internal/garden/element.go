package garden

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/glyphgarden/internal/noise"
	"github.com/san-kum/glyphgarden/internal/seed"
)

// MotifKind tags the shape an element is drawn as.
type MotifKind int

const (
	Flower MotifKind = iota
	Grass
	Leaf

	motifKinds = 3
)

func (k MotifKind) String() string {
	switch k {
	case Flower:
		return "flower"
	case Grass:
		return "grass"
	case Leaf:
		return "leaf"
	}
	return "unknown"
}

// Motion constants.
const (
	PhaseStep  = 0.002
	NoiseScale = 0.001
	// Turns is how many full turns the noise range maps onto.
	Turns      = 2
	WrapMargin = 40.0

	MinSize  = 30.0
	MaxSize  = 80.0
	MaxSpin  = 0.004
	MinDrift = 0.08
	MaxDrift = 0.35
	MaxPhase = 1000.0
)

// Element is one motif instance.
type Element struct {
	ID    uint64
	X, Y  float64
	Kind  MotifKind
	Color colorful.Color
	Size  float64
	Angle float64
	Spin  float64
	Phase float64
	Drift float64
}

// Viewport is the drawable area elements wrap around.
type Viewport struct {
	W, H float64
}

func newElement(rng seed.Source, id uint64, x, y float64, palette []colorful.Color, still bool) *Element {
	e := &Element{ID: id, X: x, Y: y}
	e.Kind = MotifKind(rng.IntN(motifKinds))
	e.Color = palette[rng.IntN(len(palette))]
	e.Size = seed.Range(rng, MinSize, MaxSize)
	e.Angle = seed.Range(rng, 0, 2*math.Pi)
	e.Spin = seed.Range(rng, -MaxSpin, MaxSpin)
	e.Phase = seed.Range(rng, 0, MaxPhase)
	e.Drift = seed.Range(rng, MinDrift, MaxDrift)
	if still {
		e.Spin = 0
	}
	return e
}

// Step advances the element one tick through the noise field and wraps it
// around the viewport.
func (e *Element) Step(field noise.Field, vp Viewport) {
	e.Phase += PhaseStep
	a := field.At(e.X*NoiseScale, e.Y*NoiseScale, e.Phase) * 2 * math.Pi * Turns
	e.X += math.Cos(a) * e.Drift
	e.Y += math.Sin(a) * e.Drift
	e.Angle += e.Spin
	e.wrap(vp)
}

func (e *Element) wrap(vp Viewport) {
	m := WrapMargin
	if e.X < -m {
		e.X = vp.W + m
	}
	if e.X > vp.W+m {
		e.X = -m
	}
	if e.Y < -m {
		e.Y = vp.H + m
	}
	if e.Y > vp.H+m {
		e.Y = -m
	}
}
