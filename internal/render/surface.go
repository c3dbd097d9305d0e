// Package render is the drawing boundary between the garden core and the
// front ends. Surfaces implement a small immediate-mode API with a
// transform stack; the motif routines are written once against it.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a position in the current user space.
type Point struct {
	X, Y float64
}

// Surface is a 2D drawing context.
type Surface interface {
	// Size is the drawable area in world units.
	Size() (w, h float64)
	// Fade covers the whole surface with bg at the given opacity.
	Fade(bg colorful.Color, alpha float64)

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	Fill(c colorful.Color, alpha float64)
	// Text draws one glyph of the given size centered at the origin.
	Text(glyph rune, size float64)
	// Polygon fills a closed outline.
	Polygon(pts []Point)
}

// Matrix is a 2x3 affine transform:
//
//	| A C E |
//	| B D F |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{A: 1, D: 1}

// Mul returns m·n, applying n first.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply maps a point through m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Stack is the transform and fill state shared by every surface
// implementation. Embed it and read Current when drawing.
type Stack struct {
	cur   state
	saved []state
}

type state struct {
	m     Matrix
	color colorful.Color
	alpha float64
}

func NewStack() Stack {
	return Stack{cur: state{m: Identity, alpha: 1}}
}

func (s *Stack) Push() { s.saved = append(s.saved, s.cur) }

// Pop restores the last pushed state; unbalanced pops reset to identity.
func (s *Stack) Pop() {
	if len(s.saved) == 0 {
		s.cur = state{m: Identity, alpha: 1}
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *Stack) Translate(x, y float64) {
	s.cur.m = s.cur.m.Mul(Matrix{A: 1, D: 1, E: x, F: y})
}

func (s *Stack) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	s.cur.m = s.cur.m.Mul(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

func (s *Stack) Scale(sx, sy float64) {
	s.cur.m = s.cur.m.Mul(Matrix{A: sx, D: sy})
}

func (s *Stack) Fill(c colorful.Color, alpha float64) {
	s.cur.color = c
	s.cur.alpha = alpha
}

// Current returns the active transform.
func (s *Stack) Current() Matrix { return s.cur.m }

// FillColor returns the active fill color and opacity.
func (s *Stack) FillColor() (colorful.Color, float64) { return s.cur.color, s.cur.alpha }

// Project maps user-space points to device space.
func (s *Stack) Project(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = s.cur.m.Apply(p.X, p.Y)
	}
	return out
}
