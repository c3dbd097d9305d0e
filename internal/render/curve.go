package render

import "math"

// CatmullRom flattens a curve through pts into line segments. As with
// curveVertex-style APIs, the first and last points only steer the tangents;
// repeat an endpoint to make the curve pass through it.
func CatmullRom(pts []Point, steps int) []Point {
	if len(pts) < 4 || steps < 1 {
		return append([]Point(nil), pts...)
	}
	out := make([]Point, 0, (len(pts)-3)*steps+1)
	for i := 1; i+2 < len(pts); i++ {
		p0, p1, p2, p3 := pts[i-1], pts[i], pts[i+1], pts[i+2]
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			out = append(out, catmull(p0, p1, p2, p3, t))
		}
	}
	return append(out, pts[len(pts)-2])
}

func catmull(p0, p1, p2, p3 Point, t float64) Point {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (-a+c)*t + (2*a-5*b+4*c-d)*t2 + (-a+3*b-3*c+d)*t3)
	}
	return Point{X: f(p0.X, p1.X, p2.X, p3.X), Y: f(p0.Y, p1.Y, p2.Y, p3.Y)}
}

// Ellipse approximates an ellipse centered at the origin.
func Ellipse(w, h float64, segments int) []Point {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{X: math.Cos(a) * w / 2, Y: math.Sin(a) * h / 2}
	}
	return pts
}
