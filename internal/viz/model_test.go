package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/seed"
	"github.com/san-kum/glyphgarden/internal/theme"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	w, h := ViewportFor(width, height, 6, 12)
	eng, err := garden.New(garden.Options{
		Seeds:  seed.Fixed(7),
		Width:  w,
		Height: h,
	})
	if err != nil {
		t.Fatal(err)
	}
	obs := theme.NewObserver(eng, []theme.Section{
		{Name: "one", Chars: "AB", Density: "5"},
		{Name: "two", Chars: "XY", Density: "8"},
	})
	return NewModel(eng, obs, opts)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelTickPaints(t *testing.T) {
	m := newTestModel(t, Options{})
	m, cmd := update(m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if m.frames != 1 {
		t.Errorf("frames = %d, want 1", m.frames)
	}
	if m.engine.Ticks() != 1 {
		t.Errorf("engine ticks = %d, want 1", m.engine.Ticks())
	}
}

func TestModelPauseSkipsPaint(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	if !m.engine.Paused() {
		t.Fatal("space should pause")
	}
	m, cmd := update(m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("paused model should keep ticking")
	}
	if m.frames != 0 {
		t.Errorf("frames = %d while paused", m.frames)
	}
}

func TestModelFocus(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(m, tea.BlurMsg{})
	if !m.engine.Freeze().Hidden() {
		t.Fatal("blur should hide")
	}
	m, _ = update(m, tea.FocusMsg{})
	if m.engine.Paused() {
		t.Error("focus should resume")
	}
}

func TestModelSoftFreezeRelease(t *testing.T) {
	m := newTestModel(t, Options{})
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}
	m, cmd := update(m, key)
	if cmd == nil || !m.engine.SoftFrozen() {
		t.Fatal("f should freeze and schedule a release")
	}
	stale := releaseMsg{seq: m.holdSeq}
	m, _ = update(m, key)

	m, _ = update(m, stale)
	if !m.engine.SoftFrozen() {
		t.Error("stale release ended a held freeze")
	}
	m, _ = update(m, releaseMsg{seq: m.holdSeq})
	if m.engine.SoftFrozen() {
		t.Error("freeze not released")
	}
}

func TestModelClickSpawns(t *testing.T) {
	m := newTestModel(t, Options{})
	before := len(m.engine.Elements())
	m, _ = update(m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	els := m.engine.Elements()
	if len(els) != before+1 {
		t.Fatalf("elements = %d, want %d", len(els), before+1)
	}
	last := els[len(els)-1]
	if last.X != 21 || last.Y != 54 {
		t.Errorf("spawned at (%v,%v), want (21,54)", last.X, last.Y)
	}

	m, _ = update(m, tea.MouseMsg{X: 3, Y: height - 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(m.engine.Elements()) != before+1 {
		t.Error("click on the status bar spawned")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 42})
	if m.canvas.Cols != 100 || m.canvas.Rows != 40 {
		t.Fatalf("canvas = %dx%d", m.canvas.Cols, m.canvas.Rows)
	}
	vp := m.engine.Viewport()
	if vp.W != 600 || vp.H != 480 {
		t.Errorf("viewport = %+v", vp)
	}
}

func TestModelSections(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if got := m.engine.Theme().CharString(); got != "XY" {
		t.Errorf("chars = %q, want XY", got)
	}
	if got := len(m.engine.Elements()); got != 8 {
		t.Errorf("elements = %d, want 8", got)
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.engine.Theme().CharString(); got != "AB" {
		t.Errorf("tab should wrap to the first section, chars = %q", got)
	}
}

func TestModelSnapshot(t *testing.T) {
	calls := 0
	m := newTestModel(t, Options{Snapshot: func(*garden.Engine) (string, error) {
		calls++
		return "snap-1", nil
	}})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if calls != 1 || m.status != "saved snap-1" {
		t.Errorf("calls = %d, status = %q", calls, m.status)
	}

	m.opts.Snapshot = func(*garden.Engine) (string, error) { return "", errors.New("disk full") }
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.status != "snapshot failed" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
}

func TestModelHUDPauseReason(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(m, tea.BlurMsg{})
	if hud := m.hud(); !strings.Contains(hud, "AWAY") || strings.Contains(hud, "PAUSED") {
		t.Errorf("hidden garden should read AWAY: %q", hud)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m, _ = update(m, tea.FocusMsg{})
	if hud := m.hud(); !strings.Contains(hud, "PAUSED") {
		t.Errorf("manual pause should survive focus: %q", hud)
	}
}

func TestModelHUDReducedMotion(t *testing.T) {
	eng, err := garden.New(garden.Options{Seeds: seed.Fixed(7), Width: 480, Height: 264, ReducedMotion: true})
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(eng, nil, Options{})
	if !strings.Contains(m.hud(), "reduced motion") {
		t.Error("HUD should flag reduced motion")
	}
}

func TestHoldWindowOutlastsRepeatDelay(t *testing.T) {
	// X11 waits 660ms before the first autorepeat.
	if HoldWindow <= 660*time.Millisecond {
		t.Errorf("HoldWindow %v releases before the first repeat", HoldWindow)
	}
}
