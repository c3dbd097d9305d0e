package noise

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownBackend is returned by New for names not in the backend table.
var ErrUnknownBackend = errors.New("noise: unknown backend")

// Field is a smooth pseudo-random scalar function of space and time.
// At returns values in [0, 1).
type Field interface {
	At(x, y, z float64) float64
}

const (
	Simplex = "simplex"
	Perlin  = "perlin"

	DefaultBackend = Simplex
)

var backends = map[string]func(seed int64) Field{
	Simplex: func(seed int64) Field { return NewSimplex(seed) },
	Perlin:  func(seed int64) Field { return NewPerlin(seed) },
}

// New builds the named backend seeded with seed.
func New(name string, seed int64) (Field, error) {
	if name == "" {
		name = DefaultBackend
	}
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownBackend, name, Backends())
	}
	return fn(seed), nil
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SimplexField wraps a normalized OpenSimplex generator.
type SimplexField struct {
	noise opensimplex.Noise
}

func NewSimplex(seed int64) *SimplexField {
	return &SimplexField{noise: opensimplex.NewNormalized(seed)}
}

func (f *SimplexField) At(x, y, z float64) float64 {
	return unit(f.noise.Eval3(x, y, z))
}

// PerlinField maps classic Perlin noise from [-1, 1] onto [0, 1).
type PerlinField struct {
	noise *perlin.Perlin
}

const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 4
)

func NewPerlin(seed int64) *PerlinField {
	return &PerlinField{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

func (f *PerlinField) At(x, y, z float64) float64 {
	return unit((f.noise.Noise3D(x, y, z) + 1) / 2)
}

// unit clamps v into [0, 1).
func unit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
