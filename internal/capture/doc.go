// Package capture turns screen recordings into lazy frame sequences.
//
// A Source is anything that can produce the image shown at a given time:
// a video file read through ffmpeg, or a directory of numbered screenshots.
// Sample walks a Source at a fixed step and hands out stitch.Frame values one
// at a time, so a long recording is never decoded all at once.
package capture
