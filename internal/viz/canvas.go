package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/san-kum/glyphgarden/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	// cells fainter than this are wiped
	inkFloor = 0.08
)

// Cell is one terminal character of the canvas.
type Cell struct {
	Glyph rune
	Dots  rune
	Color colorful.Color
	Ink   float64
}

func (c Cell) empty() bool { return c.Ink <= 0 }

// Canvas is a terminal cell grid implementing render.Surface. Glyphs land
// in whole cells; polygons are rasterized onto braille sub-cells. Every
// cell carries an ink level that Fade decays, which produces the trail.
type Canvas struct {
	render.Stack
	Cols, Rows   int
	CellW, CellH float64
	cells        []Cell
	bg           colorful.Color
	styles       map[string]lipgloss.Style
}

func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Canvas{
		Stack:  render.NewStack(),
		Cols:   cols,
		Rows:   rows,
		CellW:  cellW,
		CellH:  cellH,
		cells:  make([]Cell, cols*rows),
		bg:     render.Background,
		styles: make(map[string]lipgloss.Style),
	}
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.Cols) * c.CellW, float64(c.Rows) * c.CellH
}

// Fade decays every cell's ink by alpha; a full-opacity fade clears.
func (c *Canvas) Fade(bg colorful.Color, alpha float64) {
	c.bg = bg
	keep := 1 - alpha
	for i := range c.cells {
		cell := &c.cells[i]
		if cell.empty() {
			continue
		}
		cell.Ink *= keep
		if cell.Ink < inkFloor {
			*cell = Cell{}
		}
	}
}

// Text stamps the glyph into the cell under the current origin.
func (c *Canvas) Text(glyph rune, size float64) {
	x, y := c.Current().Apply(0, 0)
	col, row, ok := c.cellAt(x, y)
	if !ok {
		return
	}
	color, alpha := c.FillColor()
	c.cells[row*c.Cols+col] = Cell{Glyph: glyph, Color: color, Ink: alpha}
}

// Polygon fills the outline on the braille sub-cell grid.
func (c *Canvas) Polygon(pts []render.Point) {
	if len(pts) < 3 {
		return
	}
	dev := c.Project(pts)
	minX, minY, maxX, maxY := bounds(dev)

	subW, subH := c.CellW/2, c.CellH/4
	x0 := int(math.Max(0, math.Floor(minX/subW)))
	y0 := int(math.Max(0, math.Floor(minY/subH)))
	x1 := int(math.Min(float64(c.Cols*2-1), math.Ceil(maxX/subW)))
	y1 := int(math.Min(float64(c.Rows*4-1), math.Ceil(maxY/subH)))

	color, alpha := c.FillColor()
	for sy := y0; sy <= y1; sy++ {
		for sx := x0; sx <= x1; sx++ {
			px := (float64(sx) + 0.5) * subW
			py := (float64(sy) + 0.5) * subH
			if !inside(dev, px, py) {
				continue
			}
			cell := &c.cells[(sy/4)*c.Cols+sx/2]
			if cell.Glyph != 0 {
				*cell = Cell{}
			}
			cell.Dots |= pixelMap[sy%4][sx%2]
			cell.Color = color
			cell.Ink = alpha
		}
	}
}

// At returns the cell at col, row.
func (c *Canvas) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return Cell{}
	}
	return c.cells[row*c.Cols+col]
}

// ToWorld maps a terminal cell to the world position of its center.
func (c *Canvas) ToWorld(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.CellW, (float64(row) + 0.5) * c.CellH
}

// String renders the canvas with ink blended towards the background.
func (c *Canvas) String() string {
	var b strings.Builder
	bgHex := c.bg.Hex()
	for row := 0; row < c.Rows; row++ {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(c.style(runHex, bgHex).Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < c.Cols; col++ {
			cell := c.cells[row*c.Cols+col]
			hex := bgHex
			if !cell.empty() {
				hex = c.bg.BlendRgb(cell.Color, math.Min(1, cell.Ink)).Clamped().Hex()
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			r, w := c.runeAt(col, row)
			run.WriteRune(r)
			col += w - 1
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

// runeAt returns the printable rune of a cell and how many columns it takes.
// A wide glyph that would overflow the row is replaced by a blank.
func (c *Canvas) runeAt(col, row int) (rune, int) {
	cell := c.cells[row*c.Cols+col]
	switch {
	case cell.empty():
		return ' ', 1
	case cell.Glyph != 0:
		w := runewidth.RuneWidth(cell.Glyph)
		if w < 1 {
			return ' ', 1
		}
		if col+w > c.Cols {
			return ' ', 1
		}
		return cell.Glyph, w
	default:
		return brailleBase | cell.Dots, 1
	}
}

func (c *Canvas) style(fg, bg string) lipgloss.Style {
	key := fg + bg
	st, ok := c.styles[key]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
		c.styles[key] = st
	}
	return st
}

func (c *Canvas) cellAt(x, y float64) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col := int(x / c.CellW)
	row := int(y / c.CellH)
	if col >= c.Cols || row >= c.Rows {
		return 0, 0, false
	}
	return col, row, true
}

func bounds(pts []render.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

// inside is the even-odd point-in-polygon test.
func inside(pts []render.Point, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
		j = i
	}
	return in
}
