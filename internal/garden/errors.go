package garden

import "errors"

// Rejected theme inputs. The engine keeps its last-known-good values when
// one of these is reported.
var (
	// ErrEmptyChars indicates a character pool with no glyphs after stripping whitespace.
	ErrEmptyChars = errors.New("garden: empty character pool")

	// ErrEmptyPalette indicates a palette with no usable colors.
	ErrEmptyPalette = errors.New("garden: empty palette")

	// ErrBadColor indicates a palette entry that is not a hex color.
	ErrBadColor = errors.New("garden: invalid color")

	// ErrNegativeDensity indicates a target density below zero.
	ErrNegativeDensity = errors.New("garden: negative density")
)
