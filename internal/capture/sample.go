package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/ironsheep/long-screenshot-mcp/internal/stitch"
)

// DefaultStep is the sampling interval in seconds.
const DefaultStep = 0.5

// timeEpsilon absorbs float rounding when the last sample lands on the
// duration itself.
const timeEpsilon = 1e-9

// ErrNoFrame is returned by a Source when nothing can be decoded at the
// requested time, typically a seek to the very end of a video.
var ErrNoFrame = errors.New("no frame at requested time")

// Source produces the image visible at a point in time.
type Source interface {
	// Duration is the length of the capture in seconds.
	Duration() float64

	// CaptureFrame returns the image shown at t seconds.
	CaptureFrame(ctx context.Context, t float64) (image.Image, error)
}

// Sequence is a finite, lazy, non-restartable walk over a Source. Each call
// to Next captures exactly one frame.
type Sequence struct {
	src   Source
	step  float64
	index int
	err   error
}

var _ stitch.FrameSource = (*Sequence)(nil)

// Sample returns a sequence visiting t = 0, step, 2*step, ... up to and
// including the source duration. A non-positive step selects DefaultStep.
func Sample(src Source, step float64) *Sequence {
	if step <= 0 {
		step = DefaultStep
	}
	return &Sequence{src: src, step: step}
}

// Step returns the sampling interval in seconds.
func (s *Sequence) Step() float64 {
	return s.step
}

// Next captures the next frame. It returns io.EOF once the duration has been
// passed, and keeps returning the first error it hit after that.
//
// A Source reporting ErrNoFrame ends the sequence.
func (s *Sequence) Next(ctx context.Context) (*stitch.Frame, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Multiplying avoids drift from repeated addition.
	t := float64(s.index) * s.step
	if t > s.src.Duration()+timeEpsilon {
		s.err = io.EOF
		return nil, s.err
	}

	img, err := s.src.CaptureFrame(ctx, t)
	if errors.Is(err, ErrNoFrame) {
		s.err = io.EOF
		return nil, s.err
	}
	if err != nil {
		s.err = fmt.Errorf("capture at %.3fs: %w", t, err)
		return nil, s.err
	}

	frame, err := stitch.NewFrame(img, s.index, t)
	if err != nil {
		s.err = fmt.Errorf("capture at %.3fs: %w", t, err)
		return nil, s.err
	}

	s.index++
	return frame, nil
}
