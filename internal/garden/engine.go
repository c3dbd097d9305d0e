package garden

import (
	"math"
	"time"

	"github.com/san-kum/glyphgarden/internal/noise"
	"github.com/san-kum/glyphgarden/internal/seed"
)

const (
	DefaultFPS           = 30
	ReducedFPS           = 12
	DefaultGlyphInterval = 1500 * time.Millisecond
)

// Options configures an Engine.
type Options struct {
	Seeds         seed.Seeds
	Noise         string
	Width, Height float64
	// Theme is copied; nil selects DefaultTheme.
	Theme         *Theme
	ReducedMotion bool
	FPS           int
	GlyphInterval time.Duration
}

// Engine is the garden's single context object. It owns the theme, the
// registry, the freeze flags and the random streams. It is not safe for
// concurrent use; front ends drive it from one goroutine.
type Engine struct {
	rng    seed.Source
	field  noise.Field
	theme  *Theme
	reg    *Registry
	freeze Freeze

	seeds      seed.Seeds
	reduced    bool
	fps        int
	glyphEvery int
	sinceGlyph int
	glyph      rune
	ticks      uint64
}

// New seeds the streams from opts.Seeds and builds the engine.
func New(opts Options) (*Engine, error) {
	rng, field, err := opts.Seeds.Build(opts.Noise)
	if err != nil {
		return nil, err
	}
	return NewWithSources(rng, field, opts), nil
}

// NewWithSources builds the engine on injected streams, bypassing seeding.
func NewWithSources(rng seed.Source, field noise.Field, opts Options) *Engine {
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = opts.Theme.Clone()
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	if opts.ReducedMotion {
		fps = ReducedFPS
	}
	interval := opts.GlyphInterval
	if interval <= 0 {
		interval = DefaultGlyphInterval
	}
	every := int(math.Round(interval.Seconds() * float64(fps)))
	if every < 1 {
		every = 1
	}

	e := &Engine{
		rng:        rng,
		field:      field,
		theme:      theme,
		seeds:      opts.Seeds,
		reduced:    opts.ReducedMotion,
		fps:        fps,
		glyphEvery: every,
	}
	e.reg = NewRegistry(theme, rng, Viewport{W: opts.Width, H: opts.Height})
	e.reg.SetStill(opts.ReducedMotion)

	e.glyph = e.pickGlyph()
	e.reg.Regenerate()
	return e
}

// Tick runs one frame of the loop. It returns false, changing nothing,
// while paused. While soft-frozen the glyph keeps cycling but no element
// moves.
func (e *Engine) Tick() bool {
	if e.freeze.Paused() {
		return false
	}
	e.ticks++
	e.sinceGlyph++
	if e.sinceGlyph >= e.glyphEvery {
		e.glyph = e.pickGlyph()
		e.sinceGlyph = 0
	}
	if !e.freeze.SoftFrozen() {
		e.reg.Step(e.field)
	}
	return true
}

// ApplyTheme merges an external theme change. A density change regenerates
// the registry before returning. Palette changes only reach elements created
// afterwards; a new character pool takes effect on the next draw of every
// element. Rejected parts are reported and the previous values kept.
func (e *Engine) ApplyTheme(u ThemeUpdate) error {
	before := e.theme.CharString()
	changed, err := e.theme.apply(u)
	if e.theme.CharString() != before {
		e.glyph = e.pickGlyph()
		e.sinceGlyph = 0
	}
	if changed {
		e.reg.Regenerate()
	}
	return err
}

func (e *Engine) Regenerate()         { e.reg.Regenerate() }
func (e *Engine) Resize(w, h float64) { e.reg.Resize(w, h) }

// SpawnAt seeds one element at (x, y) and returns the evicted one, if any.
func (e *Engine) SpawnAt(x, y float64) *Element { return e.reg.SpawnAt(x, y) }

func (e *Engine) TogglePause() bool       { return e.freeze.TogglePause() }
func (e *Engine) SetHidden(hidden bool)   { e.freeze.SetHidden(hidden) }
func (e *Engine) SetSoftFrozen(held bool) { e.freeze.SetSoft(held) }
func (e *Engine) Paused() bool            { return e.freeze.Paused() }
func (e *Engine) SoftFrozen() bool        { return e.freeze.SoftFrozen() }
func (e *Engine) Freeze() Freeze          { return e.freeze }

// Glyph is the character every motif is currently drawn with.
func (e *Engine) Glyph() rune { return e.glyph }

func (e *Engine) Elements() []*Element { return e.reg.Elements() }
func (e *Engine) Viewport() Viewport   { return e.reg.Viewport() }
func (e *Engine) Theme() *Theme        { return e.theme }
func (e *Engine) Seeds() seed.Seeds    { return e.seeds }
func (e *Engine) Ticks() uint64        { return e.ticks }
func (e *Engine) FPS() int             { return e.fps }
func (e *Engine) ReducedMotion() bool  { return e.reduced }

// TickInterval is the wall-clock period front ends should tick at.
func (e *Engine) TickInterval() time.Duration {
	return time.Second / time.Duration(e.fps)
}

func (e *Engine) pickGlyph() rune {
	pool := e.theme.Chars()
	return pool[e.rng.IntN(len(pool))]
}
