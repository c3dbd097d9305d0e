// Package window is the desktop front end of the garden, drawn with ebiten.
// It is compiled only with the 'ebiten' build tag; without it Run reports
// ErrNoWindow.
package window

import (
	"errors"

	"github.com/san-kum/glyphgarden/internal/garden"
)

var ErrNoWindow = errors.New("window front end requires building with the 'ebiten' tag")

// Options configures the desktop front end.
type Options struct {
	Title      string
	Snapshot   func(*garden.Engine) (string, error)
	JitterSeed uint64
}
