package stitch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
)

// Options configures a Pipeline.
type Options struct {
	Composite CompositeOptions

	// Logger receives one line per aligned pair. Nil disables logging.
	Logger *log.Logger
}

// FrameSource yields frames in capture order and io.EOF after the last one.
type FrameSource interface {
	Next(ctx context.Context) (*Frame, error)
}

// Result is a finished stitch.
type Result struct {
	Image      *image.NRGBA
	Offsets    []OffsetInfo
	Placements []Placement
	Seams      []Seam
	Frames     int
}

// Pipeline aligns consecutive frames and composites them.
type Pipeline struct {
	cache   *ShapeCache
	aligner PairAligner
	opts    Options
}

// NewPipeline creates a pipeline. Shapes are looked up in, and stored back
// to, cache; pairs are aligned by aligner.
func NewPipeline(cache *ShapeCache, aligner PairAligner, opts Options) *Pipeline {
	return &Pipeline{cache: cache, aligner: aligner, opts: opts}
}

// Align returns one OffsetInfo per consecutive pair of frames, in order.
// A single frame yields an empty list.
func (p *Pipeline) Align(ctx context.Context, frames []*Frame) ([]OffsetInfo, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrInvalidInput)
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("%w: frame %d is nil", ErrInvalidInput, i)
		}
	}

	offsets := make([]OffsetInfo, 0, len(frames)-1)
	for i := 0; i+1 < len(frames); i++ {
		o, err := p.alignPair(ctx, frames[i], frames[i+1])
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, o)
	}
	return offsets, nil
}

// alignPair aligns a and b through the aligner, reusing and refreshing
// cached shapes.
func (p *Pipeline) alignPair(ctx context.Context, a, b *Frame) (OffsetInfo, error) {
	req := PairRequest{A: a.Image, B: b.Image}
	if s, ok := p.cache.Lookup(a.ID); ok {
		req.ShapesA = s
	}
	if s, ok := p.cache.Lookup(b.ID); ok {
		req.ShapesB = s
	}

	res, err := p.aligner.AlignPair(ctx, req)
	if err != nil {
		return OffsetInfo{}, fmt.Errorf("failed to align frames %d and %d: %w", a.Index, b.Index, err)
	}

	p.cache.Store(a.ID, res.ShapesA)
	p.cache.Store(b.ID, res.ShapesB)

	p.logf("frames %d-%d: %d/%d shapes, %d matches, dominant %g, offset %s",
		a.Index, b.Index, len(res.ShapesA), len(res.ShapesB),
		len(res.Matches.Matches), res.Matches.Dominant, res.Offset)

	return res.Offset, nil
}

// Run aligns and composites frames.
func (p *Pipeline) Run(ctx context.Context, frames []*Frame) (*Result, error) {
	offsets, err := p.Align(ctx, frames)
	if err != nil {
		return nil, err
	}
	return p.finish(frames, offsets)
}

// RunSource pulls frames from src until io.EOF, aligning each new frame with
// the previous one as soon as it arrives, then composites them all.
func (p *Pipeline) RunSource(ctx context.Context, src FrameSource) (*Result, error) {
	var (
		frames  []*Frame
		offsets []OffsetInfo
	)

	for {
		f, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %d: %w", len(frames), err)
		}

		if n := len(frames); n > 0 {
			o, err := p.alignPair(ctx, frames[n-1], f)
			if err != nil {
				return nil, err
			}
			offsets = append(offsets, o)

			// The frame before last will not be aligned again.
			if n > 1 {
				p.cache.Forget(frames[n-2].ID)
			}
		}
		frames = append(frames, f)
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: source produced no frames", ErrInvalidInput)
	}
	return p.finish(frames, offsets)
}

func (p *Pipeline) finish(frames []*Frame, offsets []OffsetInfo) (*Result, error) {
	size, placements, err := Layout(frames, offsets, p.opts.Composite)
	if err != nil {
		return nil, err
	}
	img := render(frames, size, placements)

	p.logf("composite %dx%d from %d frames", img.Bounds().Dx(), img.Bounds().Dy(), len(frames))

	return &Result{
		Image:      img,
		Offsets:    offsets,
		Placements: placements,
		Seams:      MeasureSeams(frames, offsets),
		Frames:     len(frames),
	}, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.opts.Logger != nil {
		p.opts.Logger.Printf(format, args...)
	}
}
