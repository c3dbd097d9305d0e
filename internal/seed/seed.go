// Package seed derives the day's random streams.
//
// A calendar day maps to two seeds: one for the uniform RNG that drives
// placement and element attributes, and one for the coherent noise field
// that drives drift. The same day always yields the same garden.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/san-kum/glyphgarden/internal/noise"
)

const dayLayout = "2006-01-02"

// Day is a calendar date with a 1-based month.
type Day struct {
	Year, Month, Day int
}

// DayOf returns the local calendar day of t.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Today returns the local calendar day of the wall clock.
func Today() Day { return DayOf(time.Now()) }

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Seeds returns the day's uniform and noise seeds.
func (d Day) Seeds() Seeds {
	return Seeds{
		Uniform: int64(d.Year*10000 + d.Month*100 + d.Day),
		Noise:   int64(d.Year + d.Month + d.Day),
	}
}

// Seeds pairs the uniform RNG seed with the noise seed.
type Seeds struct {
	Uniform int64 `json:"uniform" yaml:"uniform"`
	Noise   int64 `json:"noise" yaml:"noise"`
}

// Fixed pins both streams to one value.
func Fixed(v int64) Seeds { return Seeds{Uniform: v, Noise: v} }

// Build initializes the uniform RNG and the named noise backend.
func (s Seeds) Build(backend string) (*RNG, noise.Field, error) {
	field, err := noise.New(backend, s.Noise)
	if err != nil {
		return nil, nil, err
	}
	return NewRNG(s.Uniform), field, nil
}

// Source is the uniform stream consumed by placement and element creation.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// RNG is a thin wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n); zero when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Range returns a value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 { return Range(r, lo, hi) }

// Range draws a value in [lo, hi) from src.
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
