package stitch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// CompositeOptions controls how unmatched pairs are rendered.
type CompositeOptions struct {
	// StackUnmatched places the lower frame of a pair resolved as
	// VerdictNoConsensus in full, directly below the upper frame. When
	// false such frames add nothing to the output.
	StackUnmatched bool
}

// Placement is where one frame lands on the canvas. Rows [SrcY, bottom) of
// the frame are drawn starting at canvas row DstY.
type Placement struct {
	Index int `json:"index"`
	SrcY  int `json:"src_y"`
	DstY  int `json:"dst_y"`
}

// Layout computes the canvas size and the placement of every drawn frame.
// The first frame is always placed at the top. Frames that contribute
// nothing have no placement.
func Layout(frames []*Frame, offsets []OffsetInfo, opts CompositeOptions) (image.Point, []Placement, error) {
	if len(frames) == 0 {
		return image.Point{}, nil, fmt.Errorf("%w: no frames", ErrInvalidInput)
	}
	if len(offsets) != len(frames)-1 {
		return image.Point{}, nil, fmt.Errorf("%w: %d offsets for %d frames", ErrInvalidInput, len(offsets), len(frames))
	}
	for i, f := range frames {
		if f == nil || f.Image == nil || f.Image.Bounds().Empty() {
			return image.Point{}, nil, fmt.Errorf("%w: frame %d is empty", ErrInvalidInput, i)
		}
		if f.Width() != frames[0].Width() {
			return image.Point{}, nil, fmt.Errorf("%w: frame %d is %d px wide, frame 0 is %d px",
				ErrInvalidInput, i, f.Width(), frames[0].Width())
		}
	}

	placements := []Placement{{Index: 0}}

	// offset is the sum of Y2-Y1 so far; stacking a frame lowers it by the
	// height of the frame above.
	offset := 0.0
	for i, o := range offsets {
		next := i + 1

		if opts.StackUnmatched && o.Verdict == VerdictNoConsensus {
			offset -= float64(frames[i].Height())
			placements = append(placements, Placement{
				Index: next,
				DstY:  int(math.Round(-offset)),
			})
			continue
		}

		offsetY := o.OffsetY()
		offset += offsetY
		if offsetY == 0 {
			continue
		}
		placements = append(placements, Placement{
			Index: next,
			SrcY:  int(math.Round(o.Y2)),
			DstY:  int(math.Round(o.Y2 - offset)),
		})
	}

	height := int(math.Round(float64(frames[0].Height()) - offset))
	if height <= 0 {
		return image.Point{}, nil, fmt.Errorf("%w: canvas height %d", ErrInvalidInput, height)
	}

	return image.Pt(frames[0].Width(), height), placements, nil
}

// Composite paints frames onto a new canvas following offsets, which must
// hold exactly one entry per consecutive pair. A single frame yields a copy
// of that frame.
func Composite(frames []*Frame, offsets []OffsetInfo, opts CompositeOptions) (*image.NRGBA, error) {
	size, placements, err := Layout(frames, offsets, opts)
	if err != nil {
		return nil, err
	}
	return render(frames, size, placements), nil
}

func render(frames []*Frame, size image.Point, placements []Placement) *image.NRGBA {
	canvas := imaging.New(size.X, size.Y, color.Transparent)
	for _, p := range placements {
		src := frames[p.Index].Image
		b := src.Bounds()
		dst := image.Rect(0, p.DstY, b.Dx(), p.DstY+b.Dy()-p.SrcY)
		draw.Draw(canvas, dst, src, image.Pt(b.Min.X, b.Min.Y+p.SrcY), draw.Src)
	}
	return canvas
}
