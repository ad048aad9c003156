// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no vizcast-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, format name)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result cover the two questions vizcast asks of a source
// file: how long is the audio, and does the container carry an attached
// picture usable as cover art.
package ffprobe
