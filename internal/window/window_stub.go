//go:build !ebiten

package window

import (
	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/theme"
)

// Run always fails in the headless build.
func Run(*garden.Engine, *theme.Observer, Options) error {
	return ErrNoWindow
}
