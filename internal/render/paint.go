package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/glyphgarden/internal/garden"
)

var (
	// Background is the paper color the trail fades towards.
	Background = colorful.Color{R: 240.0 / 255, G: 240.0 / 255, B: 240.0 / 255}
	// Pollen fills the flower centers.
	Pollen = colorful.Color{R: 241.0 / 255, G: 196.0 / 255, B: 15.0 / 255}
)

const (
	// TrailAlpha is the per-frame opacity of the background wash.
	TrailAlpha  = 20.0 / 255
	pollenAlpha = 200.0 / 255

	petals      = 6
	grassBlades = 3
	maxSway     = 0.35
	curveSteps  = 8
)

// Jitter supplies the random sway of grass blades. It is kept apart from the
// engine's stream so drawing never shifts the day's motion.
type Jitter interface {
	Float64() float64
}

// Paint washes the surface with the trail color and draws every element
// with the current glyph.
func Paint(s Surface, elements []*garden.Element, glyph rune, jitter Jitter) {
	s.Fade(Background, TrailAlpha)
	for _, e := range elements {
		DrawElement(s, e, glyph, jitter)
	}
}

// Clear paints the background fully opaque.
func Clear(s Surface) { s.Fade(Background, 1) }

// DrawElement draws one motif at the element's position and rotation.
func DrawElement(s Surface, e *garden.Element, glyph rune, jitter Jitter) {
	s.Push()
	defer s.Pop()

	s.Translate(e.X, e.Y)
	s.Rotate(e.Angle)
	s.Fill(e.Color, 1)

	switch e.Kind {
	case garden.Flower:
		drawFlower(s, e.Size, glyph)
	case garden.Grass:
		drawGrass(s, e.Size, glyph, jitter)
	case garden.Leaf:
		drawLeaf(s, e.Size, glyph)
	}
}

func drawFlower(s Surface, size float64, glyph rune) {
	for i := 0; i < petals; i++ {
		s.Push()
		s.Rotate(2 * math.Pi / petals * float64(i))
		s.Translate(0, -size/3.5)
		s.Text(glyph, size/3)
		s.Pop()
	}
	s.Fill(Pollen, pollenAlpha)
	s.Polygon(Ellipse(size/4, size/4, 12))
}

func drawGrass(s Surface, size float64, glyph rune, jitter Jitter) {
	for i := 0; i < grassBlades; i++ {
		s.Push()
		s.Translate(0, -size/2.8*float64(i)*0.5)
		s.Rotate(-maxSway + jitter.Float64()*2*maxSway)
		s.Text(glyph, size/3)
		s.Pop()
	}
}

func drawLeaf(s Surface, size float64, glyph rune) {
	outline := CatmullRom(LeafOutline(size), curveSteps)
	for i := 0; i < 2; i++ {
		s.Push()
		if i == 1 {
			s.Scale(1, -1)
		}
		s.Polygon(outline)
		s.Pop()
	}
	s.Push()
	s.Translate(size/4, 0)
	s.Text(glyph, size/5)
	s.Pop()
}

// LeafOutline returns the control points of one half of a leaf, with
// doubled endpoints so the flattened curve meets the stem and the tip.
func LeafOutline(size float64) []Point {
	return []Point{
		{0, 0},
		{0, 0},
		{size / 3.8, -size / 3.8},
		{size / 1.8, -size / 8},
		{size / 1.5, 0},
		{size / 1.5, 0},
	}
}
