package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/seed"
)

// ElementData is one element as written to JSON.
type ElementData struct {
	ID    uint64  `json:"id"`
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Angle float64 `json:"angle"`
	Spin  float64 `json:"spin"`
	Phase float64 `json:"phase"`
	Drift float64 `json:"drift"`
	Color string  `json:"color"`
}

// ExportData is the state of an engine at one tick.
type ExportData struct {
	Seeds    seed.Seeds    `json:"seeds"`
	Tick     uint64        `json:"tick"`
	Glyph    string        `json:"glyph"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Chars    string        `json:"chars"`
	Palette  []string      `json:"palette"`
	Density  int           `json:"density"`
	Paused   bool          `json:"paused"`
	Elements []ElementData `json:"elements"`
}

// Capture copies the engine state into an ExportData.
func Capture(eng *garden.Engine) ExportData {
	th := eng.Theme()
	vp := eng.Viewport()
	data := ExportData{
		Seeds:    eng.Seeds(),
		Tick:     eng.Ticks(),
		Glyph:    string(eng.Glyph()),
		Width:    vp.W,
		Height:   vp.H,
		Chars:    th.CharString(),
		Palette:  th.PaletteHex(),
		Density:  th.Density(),
		Paused:   eng.Paused(),
		Elements: make([]ElementData, len(eng.Elements())),
	}
	for i, e := range eng.Elements() {
		data.Elements[i] = ElementData{
			ID:    e.ID,
			Kind:  e.Kind.String(),
			X:     e.X,
			Y:     e.Y,
			Size:  e.Size,
			Angle: e.Angle,
			Spin:  e.Spin,
			Phase: e.Phase,
			Drift: e.Drift,
			Color: e.Color.Hex(),
		}
	}
	return data
}

func WriteJSON(w io.Writer, eng *garden.Engine) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Capture(eng))
}

func ExportJSON(path string, eng *garden.Engine) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, eng)
}
