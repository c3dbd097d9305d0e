//go:build ebiten

package window

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/render"
	"github.com/san-kum/glyphgarden/internal/theme"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/basicfont"
)

const bannerSeconds = 2.5

var sectionKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Game adapts a garden engine to the ebiten.Game interface.
type Game struct {
	engine   *garden.Engine
	observer *theme.Observer
	surface  *Surface
	jitter   *rand.Rand
	opts     Options

	pendingW, pendingH int

	banner      *gween.Tween
	bannerText  string
	bannerAlpha float32
}

// New constructs a Game drawing the engine at its current viewport size.
func New(eng *garden.Engine, observer *theme.Observer, opts Options) *Game {
	vp := eng.Viewport()
	g := &Game{
		engine:   eng,
		observer: observer,
		surface:  NewSurface(int(vp.W), int(vp.H)),
		jitter:   rand.New(rand.NewPCG(opts.JitterSeed, 1)),
		opts:     opts,
	}
	render.Clear(g.surface)
	return g
}

// Update handles input and advances the engine one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.applyResize()

	g.engine.SetHidden(!ebiten.IsFocused())
	g.engine.SetSoftFrozen(ebiten.IsKeyPressed(ebiten.KeyShift))

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.engine.TogglePause() {
			g.show("paused")
		} else {
			g.show("growing")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		render.Clear(g.surface)
		g.engine.Regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.snapshot()
	}
	if g.observer != nil {
		g.sectionKeys()
	}
	g.pointer()

	if g.engine.Tick() {
		render.Paint(g.surface, g.engine.Elements(), g.engine.Glyph(), g.jitter)
	}

	if g.banner != nil {
		alpha, done := g.banner.Update(1 / float32(ebiten.TPS()))
		g.bannerAlpha = alpha
		if done {
			g.banner = nil
		}
	}
	return nil
}

func (g *Game) sectionKeys() {
	var err error
	moved := false
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab) && ebiten.IsKeyPressed(ebiten.KeyShift):
		err, moved = g.observer.Prev(), true
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		err, moved = g.observer.Next(), true
	default:
		for i, k := range sectionKeys {
			if inpututil.IsKeyJustPressed(k) {
				err, moved = g.observer.Jump(i), true
				break
			}
		}
	}
	if !moved {
		return
	}
	if err != nil {
		g.show("theme partly rejected")
		return
	}
	if s, ok := g.observer.Current(); ok {
		g.show(s.String())
	}
}

func (g *Game) pointer() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawn(x, y)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.spawn(x, y)
	}
}

func (g *Game) spawn(x, y int) {
	if ev := g.engine.SpawnAt(float64(x), float64(y)); ev != nil {
		log.Printf("window: growth cap reached, evicted element %d", ev.ID)
	}
}

func (g *Game) snapshot() {
	if g.opts.Snapshot == nil {
		return
	}
	where, err := g.opts.Snapshot(g.engine)
	if err != nil {
		log.Printf("window: snapshot failed: %v", err)
		g.show("snapshot failed")
		return
	}
	g.show("saved " + where)
}

func (g *Game) show(msg string) {
	g.bannerText = msg
	g.bannerAlpha = 1
	g.banner = gween.New(1, 0, bannerSeconds, ease.InQuad)
}

func (g *Game) applyResize() {
	if g.pendingW <= 0 || g.pendingH <= 0 {
		return
	}
	w, h := g.pendingW, g.pendingH
	g.pendingW, g.pendingH = 0, 0
	if cw, ch := g.surface.Size(); int(cw) == w && int(ch) == h {
		return
	}
	g.surface.Image().Deallocate()
	g.surface = NewSurface(w, h)
	render.Clear(g.surface)
	g.engine.Resize(float64(w), float64(h))
}

// Draw copies the persistent surface and overlays the banner.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.surface.Image(), nil)
	if g.banner == nil || g.bannerText == "" {
		return
	}
	a := uint8(g.bannerAlpha * 255)
	text.Draw(screen, g.bannerText, basicfont.Face7x13, 12, 24, color.NRGBA{R: 40, G: 40, B: 48, A: a})
	if g.engine.Paused() {
		text.Draw(screen, fmt.Sprintf("tick %d", g.engine.Ticks()), basicfont.Face7x13, 12, 40, color.NRGBA{R: 90, G: 90, B: 100, A: a})
	}
}

// Layout follows the window size; the change is applied on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(eng *garden.Engine, observer *theme.Observer, opts Options) error {
	vp := eng.Viewport()
	ebiten.SetWindowSize(int(vp.W), int(vp.H))
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(eng.FPS())
	ebiten.SetScreenClearedEveryFrame(true)
	return ebiten.RunGame(New(eng, observer, opts))
}
