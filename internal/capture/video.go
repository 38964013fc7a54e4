package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Default executable names, resolved through PATH.
const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"
)

// VideoOptions locates the ffmpeg tools.
type VideoOptions struct {
	FFmpeg  string
	FFprobe string
}

// VideoSource reads frames from a video file with ffmpeg, one process per
// frame.
type VideoSource struct {
	path     string
	duration float64
	opts     VideoOptions
}

var _ Source = (*VideoSource)(nil)

// OpenVideo probes path for its duration and returns a source over it.
func OpenVideo(ctx context.Context, path string, opts VideoOptions) (*VideoSource, error) {
	if opts.FFmpeg == "" {
		opts.FFmpeg = DefaultFFmpeg
	}
	if opts.FFprobe == "" {
		opts.FFprobe = DefaultFFprobe
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}

	cmd := exec.CommandContext(ctx, opts.FFprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w, output: %s", err, output)
	}

	duration, err := parseDuration(string(output))
	if err != nil {
		return nil, err
	}

	return &VideoSource{path: path, duration: duration, opts: opts}, nil
}

// parseDuration reads the single value ffprobe prints for format=duration.
func parseDuration(output string) (float64, error) {
	value := strings.TrimSpace(output)
	if value == "" || value == "N/A" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	d, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}

// Path returns the video file.
func (v *VideoSource) Path() string {
	return v.path
}

// Duration returns the probed length in seconds.
func (v *VideoSource) Duration() float64 {
	return v.duration
}

// CaptureFrame decodes the frame shown at t. Seeking at or past the last
// frame makes ffmpeg write nothing, which is reported as ErrNoFrame.
func (v *VideoSource) CaptureFrame(ctx context.Context, t float64) (image.Image, error) {
	cmd := exec.CommandContext(ctx, v.opts.FFmpeg,
		"-v", "error",
		"-ss", strconv.FormatFloat(t, 'f', 3, 64),
		"-i", v.path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w, output: %s", err, stderr.Bytes())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: %.3fs", ErrNoFrame, t)
	}

	img, err := imaging.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame at %.3fs: %w", t, err)
	}
	return img, nil
}
