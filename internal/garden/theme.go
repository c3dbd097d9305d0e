package garden

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultDensity = 48
)

// DefaultColors is the palette used until a section supplies one.
var DefaultColors = []string{"#3498db", "#e91e63", "#2ecc71", "#f1c40f", "#000000"}

// Theme holds the externally controllable style parameters. Pool and
// palette are never empty; rejected updates leave the previous values.
type Theme struct {
	chars   []rune
	palette []colorful.Color
	density int
}

// ThemeUpdate carries the optional parts of a theme change. Nil fields are
// left untouched.
type ThemeUpdate struct {
	Chars   *string
	Colors  []string
	Density *int
}

// DefaultTheme returns the built-in pool, palette and density.
func DefaultTheme() *Theme {
	t, _ := NewTheme(DefaultChars, DefaultColors, DefaultDensity)
	return t
}

// NewTheme validates and builds a theme.
func NewTheme(chars string, colors []string, density int) (*Theme, error) {
	pool := stripSpace(chars)
	if len(pool) == 0 {
		return nil, ErrEmptyChars
	}
	palette, err := parsePalette(colors)
	if err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if density < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDensity, density)
	}
	return &Theme{chars: pool, palette: palette, density: density}, nil
}

func (t *Theme) Chars() []rune             { return t.chars }
func (t *Theme) Palette() []colorful.Color { return t.palette }
func (t *Theme) Density() int              { return t.density }
func (t *Theme) CharString() string        { return string(t.chars) }

// PaletteHex returns the palette as #rrggbb strings.
func (t *Theme) PaletteHex() []string {
	out := make([]string, len(t.palette))
	for i, c := range t.palette {
		out[i] = c.Hex()
	}
	return out
}

// Clone returns an independent copy.
func (t *Theme) Clone() *Theme {
	c := &Theme{density: t.density}
	c.chars = append([]rune(nil), t.chars...)
	c.palette = append([]colorful.Color(nil), t.palette...)
	return c
}

// apply merges u into t and reports whether the density changed.
func (t *Theme) apply(u ThemeUpdate) (bool, error) {
	var errs []error

	if u.Chars != nil {
		if pool := stripSpace(*u.Chars); len(pool) > 0 {
			t.chars = pool
		} else {
			errs = append(errs, ErrEmptyChars)
		}
	}

	if u.Colors != nil {
		palette, err := parsePalette(u.Colors)
		if err != nil {
			errs = append(errs, err)
		}
		if len(palette) > 0 {
			t.palette = palette
		} else {
			errs = append(errs, ErrEmptyPalette)
		}
	}

	changed := false
	if u.Density != nil {
		switch d := *u.Density; {
		case d < 0:
			errs = append(errs, fmt.Errorf("%w: %d", ErrNegativeDensity, d))
		case d != t.density:
			t.density = d
			changed = true
		}
	}

	return changed, errors.Join(errs...)
}

func stripSpace(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}

// parsePalette keeps every entry that parses as a hex color and reports the rest.
func parsePalette(colors []string) ([]colorful.Color, error) {
	palette := make([]colorful.Color, 0, len(colors))
	var errs []error
	for _, raw := range colors {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		c, err := colorful.Hex(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrBadColor, s))
			continue
		}
		palette = append(palette, c)
	}
	return palette, errors.Join(errs...)
}

// SplitColors splits a comma-separated color list.
func SplitColors(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
