// Package garden implements the layout and motion core of the glyph garden.
//
//   - [Element]: one drifting motif with its own noise phase
//   - [Registry]: ordered element collection with regeneration and a soft growth cap
//   - [Theme]: character pool, palette and density with last-known-good fallback
//   - [Freeze]: manual pause, hidden-page pause and soft freeze
//   - [Engine]: the context object tying them to the day's random streams
//
// # Example
//
//	eng, _ := garden.New(garden.Options{
//		Seeds: seed.Today().Seeds(),
//		Width: 1280, Height: 800,
//	})
//	for eng.Tick() {
//		render.Paint(surface, eng.Elements(), eng.Glyph(), jitter)
//	}
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Every mutation is expected to come
// from the single loop that also calls [Engine.Tick].
package garden
