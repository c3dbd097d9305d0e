// Package noise provides the coherent noise fields that steer element drift.
//
// Two backends are available:
//
//   - [SimplexField]: OpenSimplex, the default
//   - [PerlinField]: classic multi-octave Perlin noise
//
// Both are deterministic for a given seed and map their output into [0, 1),
// so callers can turn a sample straight into an angle.
package noise
