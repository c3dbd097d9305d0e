package theme

import (
	"fmt"
	"log"

	"github.com/san-kum/glyphgarden/internal/garden"
)

// DefaultThreshold is the visible fraction at which a section takes over.
const DefaultThreshold = 0.5

// Target receives theme updates.
type Target interface {
	ApplyTheme(u garden.ThemeUpdate) error
}

// Observer tracks which section dominates the view, like an intersection
// observer with a single threshold, and applies it to the target.
type Observer struct {
	target    Target
	sections  []Section
	Threshold float64
	current   int
}

func NewObserver(target Target, sections []Section) *Observer {
	return &Observer{
		target:    target,
		sections:  sections,
		Threshold: DefaultThreshold,
		current:   -1,
	}
}

// Start applies the first section, matching the page's initial state.
func (o *Observer) Start() error {
	if len(o.sections) == 0 {
		return nil
	}
	return o.activate(0)
}

// Observe reports a section's visible fraction. Crossing the threshold makes
// it dominant; re-observing the dominant section is a no-op.
func (o *Observer) Observe(index int, ratio float64) error {
	if index < 0 || index >= len(o.sections) {
		return fmt.Errorf("section index %d out of range [0,%d)", index, len(o.sections))
	}
	if ratio < o.Threshold || index == o.current {
		return nil
	}
	return o.activate(index)
}

// Jump scrolls a section fully into view.
func (o *Observer) Jump(index int) error { return o.Observe(index, 1) }

// Next and Prev scroll to the neighbouring section, wrapping around.
func (o *Observer) Next() error { return o.step(1) }
func (o *Observer) Prev() error { return o.step(-1) }

// Current returns the dominant section, if any.
func (o *Observer) Current() (Section, bool) {
	if o.current < 0 {
		return Section{}, false
	}
	return o.sections[o.current], true
}

func (o *Observer) Sections() []Section { return o.sections }

func (o *Observer) step(dir int) error {
	n := len(o.sections)
	if n == 0 {
		return nil
	}
	next := ((o.current+dir)%n + n) % n
	return o.Jump(next)
}

func (o *Observer) activate(index int) error {
	o.current = index
	s := o.sections[index]
	err := o.target.ApplyTheme(s.Update())
	if err != nil {
		log.Printf("theme: section %q partly rejected: %v", s, err)
		return fmt.Errorf("section %q: %w", s, err)
	}
	log.Printf("theme: applied section %q", s)
	return nil
}
