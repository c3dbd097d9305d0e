//go:build ebiten

package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/glyphgarden/internal/render"
	"golang.org/x/image/font/basicfont"
)

// basicfont cell metrics
const (
	faceW      = 7
	faceH      = 13
	faceAscent = 11
)

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Surface draws onto an offscreen image that survives between frames, so
// the translucent wash leaves trails.
type Surface struct {
	render.Stack
	img  *ebiten.Image
	w, h float64

	vs []ebiten.Vertex
	is []uint16
}

func NewSurface(w, h int) *Surface {
	return &Surface{
		Stack: render.NewStack(),
		img:   ebiten.NewImage(w, h),
		w:     float64(w),
		h:     float64(h),
	}
}

func (s *Surface) Image() *ebiten.Image { return s.img }

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) Fade(bg colorful.Color, alpha float64) {
	vector.DrawFilledRect(s.img, 0, 0, float32(s.w), float32(s.h), nrgba(bg, alpha), false)
}

func (s *Surface) Text(glyph rune, size float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-faceW/2.0, faceAscent-faceH/2.0)
	op.GeoM.Scale(size/faceH, size/faceH)
	op.GeoM.Concat(geoM(s.Current()))
	c, alpha := s.FillColor()
	op.ColorScale.ScaleWithColor(nrgba(c, 1))
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	text.DrawWithOptions(s.img, string(glyph), basicfont.Face7x13, op)
}

func (s *Surface) Polygon(pts []render.Point) {
	if len(pts) < 3 {
		return
	}
	dev := s.Project(pts)

	var path vector.Path
	path.MoveTo(float32(dev[0].X), float32(dev[0].Y))
	for _, p := range dev[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	c, alpha := s.FillColor()
	c = c.Clamped()
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1, 1
		s.vs[i].ColorR = float32(c.R)
		s.vs[i].ColorG = float32(c.G)
		s.vs[i].ColorB = float32(c.B)
		s.vs[i].ColorA = float32(alpha)
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.FillRule = ebiten.EvenOdd
	op.AntiAlias = true
	s.img.DrawTriangles(s.vs, s.is, whitePixel, op)
}

func geoM(m render.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.C)
	g.SetElement(0, 2, m.E)
	g.SetElement(1, 0, m.B)
	g.SetElement(1, 1, m.D)
	g.SetElement(1, 2, m.F)
	return g
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
