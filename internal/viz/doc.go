// Package viz is the terminal front end of the garden.
//
// The package implements a full-screen TUI using the Bubble Tea framework:
//
//   - [Model]: drives the engine at its tick rate and maps terminal input to it
//   - [Canvas]: cell grid surface; glyphs fill whole cells, shapes use Braille dots
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	F (hold)  - Soft freeze: motion stops, drawing continues
//	R         - Regenerate the layout
//	S         - Save a snapshot
//	Tab/1-9   - Scroll to another section
//	Click     - Seed a new motif
//	?         - Show help overlay
//
// Terminals report no key releases, so the soft freeze is held by key
// repeat and released shortly after the repeats stop.
package viz
