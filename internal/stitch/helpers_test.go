package stitch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"
	"sync"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/long-screenshot-mcp/internal/shapes"
)

// fakeExtractor returns preset shapes per image and counts calls.
type fakeExtractor struct {
	mu     sync.Mutex
	shapes map[image.Image][]shapes.Shape
	calls  int
	err    error
	block  chan struct{}
	panics bool
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{shapes: make(map[image.Image][]shapes.Shape)}
}

func (f *fakeExtractor) Extract(img image.Image) ([]shapes.Shape, error) {
	if f.block != nil {
		<-f.block
	}
	if f.panics {
		panic("extractor exploded")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.shapes[img], nil
}

func (f *fakeExtractor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// shapeAt builds a shape whose key is determined by w.
func shapeAt(w, y float64) shapes.Shape {
	return shapes.Shape{
		Center: shapes.Point{X: 50, Y: y},
		Size:   shapes.Size{Width: w, Height: 10},
	}
}

// createSolidImage creates an opaque image filled with c.
func createSolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// mustFrame wraps img in a Frame or fails the test.
func mustFrame(t *testing.T, img image.Image, index int) *Frame {
	t.Helper()
	f, err := NewFrame(img, index, float64(index)*0.5)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

// createDocument paints lines of text of distinct lengths, one every 30 px.
func createDocument(width, height int) *image.RGBA {
	img := createSolidImage(width, height, color.White)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for i := 0; 20+i*30 < height-10; i++ {
		d.Dot = fixed.P(10, 20+i*30)
		d.DrawString(fmt.Sprintf("row %02d %s", i, strings.Repeat("=", i+1)))
	}
	return img
}

// scrollFrames cuts frames of the given height from doc, starting at each
// scroll position.
func scrollFrames(t *testing.T, doc *image.RGBA, height int, positions ...int) []*Frame {
	t.Helper()
	frames := make([]*Frame, len(positions))
	for i, y := range positions {
		sub := doc.SubImage(image.Rect(0, y, doc.Bounds().Dx(), y+height))
		cropped := image.NewRGBA(image.Rect(0, 0, sub.Bounds().Dx(), sub.Bounds().Dy()))
		draw.Draw(cropped, cropped.Bounds(), sub, sub.Bounds().Min, draw.Src)
		frames[i] = mustFrame(t, cropped, i)
	}
	return frames
}

// sliceSource serves frames from memory.
type sliceSource struct {
	frames []*Frame
	next   int
}

func (s *sliceSource) Next(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}
