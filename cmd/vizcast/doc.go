// Command vizcast renders audio files into videos with a waveform or
// spectrum visualization, using ffmpeg for the heavy lifting.
package main
