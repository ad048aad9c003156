// Package cover extracts embedded cover art from audio containers.
//
// Extraction tries a native metadata parse first (ID3v2, MP4 atoms, FLAC
// pictures via audiometa) and falls back to probing the container with
// ffprobe and pulling the attached picture, or a first video frame, through
// ffmpeg. Absence of art is a normal outcome, not an error; only unreadable
// input surfaces as ErrMetadataRead.
package cover
