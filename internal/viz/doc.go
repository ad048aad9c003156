// Package viz defines the closed request vocabulary for a visualization run.
//
// Key types:
//   - Kind: which visualization(s) to render (waveform, spectrum, both)
//   - Position: symbolic or explicit placement anchor
//   - Request: the fully-resolved per-file conversion request
//
// Parsing helpers accept the user-facing spellings and fail on anything
// else so every downstream switch over these types can be exhaustive.
package viz
