package viz

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/render"
	"github.com/san-kum/glyphgarden/internal/theme"
)

const (
	width     = 80
	height    = 24
	hudLines  = 2
	gaugeSize = 16
	// HoldWindow is how long a soft freeze outlives the last key repeat.
	HoldWindow = 700 * time.Millisecond
)

type TickMsg time.Time

type releaseMsg struct{ seq int }

// SnapshotFunc saves the current frame and returns where it went.
type SnapshotFunc func(*garden.Engine) (string, error)

// Options configures the terminal front end.
type Options struct {
	CellW, CellH float64
	Snapshot     SnapshotFunc
	JitterSeed   uint64
}

// Model contains the engine, the canvas and the HUD state.
type Model struct {
	engine   *garden.Engine
	observer *theme.Observer
	canvas   *Canvas
	jitter   *rand.Rand
	opts     Options

	width, height int
	holdSeq       int
	status        string
	showHelp      bool
	frames        int

	spring   harmonica.Spring
	gauge    float64
	gaugeVel float64
}

// NewModel wraps an engine; observer may be nil when there are no sections.
func NewModel(eng *garden.Engine, observer *theme.Observer, opts Options) Model {
	if opts.CellW <= 0 || opts.CellH <= 0 {
		opts.CellW, opts.CellH = 6, 12
	}
	m := Model{
		engine:   eng,
		observer: observer,
		jitter:   rand.New(rand.NewPCG(opts.JitterSeed, 1)),
		opts:     opts,
		width:    width,
		height:   height,
		spring:   harmonica.NewSpring(harmonica.FPS(eng.FPS()), 6.0, 0.8),
		gauge:    float64(len(eng.Elements())),
	}
	m.canvas = NewCanvas(width, height-hudLines, opts.CellW, opts.CellH)
	render.Clear(m.canvas)
	return m
}

// ViewportFor returns the world size of a terminal of cols by rows cells.
func ViewportFor(cols, rows int, cellW, cellH float64) (float64, float64) {
	rows -= hudLines
	if rows < 1 {
		rows = 1
	}
	return float64(cols) * cellW, float64(rows) * cellH
}

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.engine.TickInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update maps terminal events onto the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.spawn(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		m.engine.SetHidden(false)
	case tea.BlurMsg:
		m.engine.SetHidden(true)
	case releaseMsg:
		if msg.seq == m.holdSeq {
			m.engine.SetSoftFrozen(false)
		}
	case TickMsg:
		if m.engine.Tick() {
			render.Paint(m.canvas, m.engine.Elements(), m.engine.Glyph(), m.jitter)
			m.frames++
		}
		m.gauge, m.gaugeVel = m.spring.Update(m.gauge, m.gaugeVel, float64(len(m.engine.Elements())))
		return m, m.nextTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.engine.TogglePause() {
			m.status = "paused"
		} else {
			m.status = ""
		}
	case "f", "F":
		m.engine.SetSoftFrozen(true)
		m.holdSeq++
		seq := m.holdSeq
		return m, tea.Tick(HoldWindow, func(time.Time) tea.Msg { return releaseMsg{seq: seq} })
	case "r", "R":
		render.Clear(m.canvas)
		m.engine.Regenerate()
		log.Printf("viz: regenerated %d elements", len(m.engine.Elements()))
	case "s", "S":
		m.snapshot()
	case "tab":
		m.section(m.observer.Next)
	case "shift+tab":
		m.section(m.observer.Prev)
	case "?":
		m.showHelp = !m.showHelp
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			m.section(func() error { return m.observer.Jump(i) })
		}
	}
	return m, nil
}

func (m *Model) spawn(col, row int) {
	if row >= m.canvas.Rows {
		return
	}
	x, y := m.canvas.ToWorld(col, row)
	if ev := m.engine.SpawnAt(x, y); ev != nil {
		log.Printf("viz: growth cap reached, evicted element %d", ev.ID)
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	rows := h - hudLines
	if rows < 1 {
		rows = 1
	}
	m.canvas = NewCanvas(w, rows, m.opts.CellW, m.opts.CellH)
	render.Clear(m.canvas)
	vw, vh := m.canvas.Size()
	m.engine.Resize(vw, vh)
}

func (m *Model) snapshot() {
	if m.opts.Snapshot == nil {
		m.status = "snapshots disabled"
		return
	}
	where, err := m.opts.Snapshot(m.engine)
	if err != nil {
		log.Printf("viz: snapshot failed: %v", err)
		m.status = "snapshot failed"
		return
	}
	m.status = "saved " + where
}

func (m *Model) section(move func() error) {
	if m.observer == nil {
		return
	}
	if err := move(); err != nil {
		m.status = "theme partly rejected"
		return
	}
	m.status = ""
	if s, ok := m.observer.Current(); ok {
		m.status = "section " + s.String()
	}
}

func (m Model) View() string {
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpPanel.Render(helpText))
	}
	var b strings.Builder
	b.WriteString(m.canvas.String())
	b.WriteString(m.hud())
	return b.String()
}

func (m Model) hud() string {
	var state string
	fr := m.engine.Freeze()
	switch {
	case fr.ManuallyPaused():
		state = StatusPaused.Render("PAUSED")
	case fr.Hidden():
		state = StatusPaused.Render("AWAY")
	case fr.SoftFrozen():
		state = StatusFrozen.Render("FROZEN")
	default:
		state = StatusRunning.Render("GROWING")
	}
	if m.engine.ReducedMotion() {
		state += MetricLabel.Render(" reduced motion")
	}

	th := m.engine.Theme()
	ratio := 0.0
	if th.Density() > 0 {
		ratio = m.gauge / float64(th.Density())
	}

	line := fmt.Sprintf("%s  %s %s  %s %s  %s %s %s  %s",
		state,
		MetricLabel.Render("glyph"), MetricValue.Render(string(m.engine.Glyph())),
		MetricLabel.Render("density"), MetricValue.Render(fmt.Sprintf("%d/%d", len(m.engine.Elements()), th.Density())),
		ProgressBar(ratio, gaugeSize), MetricLabel.Render("palette"), Swatch(th.PaletteHex()),
		KeyHint.Render(m.status),
	)
	return line + "\n" + KeyHint.Render("space pause · f hold freeze · r regenerate · s snapshot · tab section · ? help · q quit")
}

const helpText = `glyph garden

space      pause / resume
f (hold)   soft freeze
r          regenerate layout
s          save snapshot
tab / 1-9  change section
click      seed a motif
?          close help
q          quit`

// Run starts the full-screen program.
func Run(eng *garden.Engine, observer *theme.Observer, opts Options) error {
	p := tea.NewProgram(NewModel(eng, observer, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
