package export

import (
	"fmt"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/render"
)

const fontFamily = "monospace"

// SVGSurface draws onto an SVG document. Polygons are projected to device
// space and rounded to whole pixels; glyphs keep their exact transform.
type SVGSurface struct {
	render.Stack
	canvas *svg.SVG
	w, h   float64
}

// NewSVGSurface starts a document of the given size on w. Call End when
// done drawing.
func NewSVGSurface(w io.Writer, width, height float64) *SVGSurface {
	s := &SVGSurface{
		Stack:  render.NewStack(),
		canvas: svg.New(w),
		w:      width,
		h:      height,
	}
	s.canvas.Start(px(width), px(height))
	s.canvas.Title("glyph garden")
	return s
}

func (s *SVGSurface) Size() (float64, float64) { return s.w, s.h }

func (s *SVGSurface) Fade(bg colorful.Color, alpha float64) {
	s.canvas.Rect(0, 0, px(s.w), px(s.h), fill(bg, alpha))
}

func (s *SVGSurface) Text(glyph rune, size float64) {
	m := s.Current()
	c, alpha := s.FillColor()
	s.canvas.Gtransform(fmt.Sprintf("matrix(%.4f %.4f %.4f %.4f %.2f %.2f)", m.A, m.B, m.C, m.D, m.E, m.F))
	s.canvas.Text(0, 0, string(glyph), fmt.Sprintf(
		"%s;font-size:%.1fpx;font-family:%s;text-anchor:middle;dominant-baseline:central",
		fill(c, alpha), size, fontFamily))
	s.canvas.Gend()
}

func (s *SVGSurface) Polygon(pts []render.Point) {
	if len(pts) < 3 {
		return
	}
	dev := s.Project(pts)
	xs := make([]int, len(dev))
	ys := make([]int, len(dev))
	for i, p := range dev {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	c, alpha := s.FillColor()
	s.canvas.Polygon(xs, ys, fill(c, alpha))
}

func (s *SVGSurface) End() { s.canvas.End() }

func fill(c colorful.Color, alpha float64) string {
	if alpha >= 1 {
		return "fill:" + c.Clamped().Hex()
	}
	return fmt.Sprintf("fill:%s;fill-opacity:%.3f", c.Clamped().Hex(), alpha)
}

func px(v float64) int { return int(math.Round(v)) }

// WriteSVG renders the engine's current frame on a clean background.
func WriteSVG(w io.Writer, eng *garden.Engine, jitter render.Jitter) error {
	ew := &errWriter{w: w}
	vp := eng.Viewport()
	s := NewSVGSurface(ew, vp.W, vp.H)
	render.Clear(s)
	for _, e := range eng.Elements() {
		render.DrawElement(s, e, eng.Glyph(), jitter)
	}
	s.End()
	return ew.err
}

func ExportSVG(path string, eng *garden.Engine, jitter render.Jitter) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteSVG(file, eng, jitter)
}

// errWriter keeps the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
