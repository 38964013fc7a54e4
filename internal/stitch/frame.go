package stitch

import (
	"fmt"
	"image"

	"github.com/google/uuid"
)

// Frame is one capture of the scrolled content. It is not modified after
// construction.
type Frame struct {
	// ID keys the frame in a ShapeCache.
	ID uuid.UUID

	// Index is the position of the frame in its sequence.
	Index int

	// Timestamp is the capture time in seconds.
	Timestamp float64

	// Image holds the pixels.
	Image image.Image
}

// NewFrame wraps img in a Frame with a fresh ID.
func NewFrame(img image.Image, index int, timestamp float64) (*Frame, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: zero-sized image %v", ErrInvalidInput, img.Bounds())
	}

	return &Frame{
		ID:        uuid.New(),
		Index:     index,
		Timestamp: timestamp,
		Image:     img,
	}, nil
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.Image.Bounds().Dx()
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.Image.Bounds().Dy()
}
