package stitch

import "errors"

var (
	// ErrInvalidInput reports a precondition violation: a nil or zero-sized
	// frame, frames of different widths, or an offset list that does not
	// have exactly one entry per consecutive frame pair.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPipelineStalled reports that an offloaded pair alignment did not
	// complete, because the context ended first, the worker was closed or
	// the worker failed.
	ErrPipelineStalled = errors.New("pipeline stalled")
)
