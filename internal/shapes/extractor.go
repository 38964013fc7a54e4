package shapes

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// Backend names accepted by NewExtractor.
const (
	BackendBild = "bild"
	BackendGocv = "gocv"
)

var (
	// ErrInvalidImage is returned for nil or zero-sized images.
	ErrInvalidImage = errors.New("invalid image")

	// ErrBackendUnavailable is returned when a backend is unknown or was not
	// compiled into the binary.
	ErrBackendUnavailable = errors.New("extraction backend unavailable")
)

// Extractor computes the shape descriptors of a frame.
//
// Implementations must be deterministic: the same pixels always produce the
// same shapes in the same order.
type Extractor interface {
	Extract(img image.Image) ([]Shape, error)
}

// Options tunes the preprocessing pipeline.
type Options struct {
	// DilateSize is the side of the square dilation window.
	DilateSize int

	// ErodeSize is the side of the square erosion window.
	ErodeSize int

	// CannyLow and CannyHigh are the hysteresis thresholds (0-255 scale).
	CannyLow  float64
	CannyHigh float64

	// MinContourPoints drops contours with fewer edge pixels.
	MinContourPoints int
}

// DefaultOptions returns the pipeline constants used for screen captures.
func DefaultOptions() Options {
	return Options{
		DilateSize:       10,
		ErodeSize:        5,
		CannyLow:         10,
		CannyHigh:        10,
		MinContourPoints: 1,
	}
}

// NewExtractor returns the extractor for the named backend. An empty name
// selects the bild backend.
func NewExtractor(backend string, opts Options) (Extractor, error) {
	switch backend {
	case "", BackendBild:
		return NewBildExtractor(opts), nil
	case BackendGocv:
		return newGocvExtractor(opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBackendUnavailable, backend)
	}
}

// BildExtractor is the pure Go extractor.
type BildExtractor struct {
	opts Options
}

// NewBildExtractor creates a pure Go extractor.
func NewBildExtractor(opts Options) *BildExtractor {
	return &BildExtractor{opts: opts}
}

// Extract runs the full pipeline and returns one shape per contour, in
// raster order of each contour's first pixel.
func (e *BildExtractor) Extract(img image.Image) ([]Shape, error) {
	edges, err := e.edges(img)
	if err != nil {
		return nil, err
	}

	contours := findContours(edges, e.opts.MinContourPoints)
	shapes := make([]Shape, 0, len(contours))
	offset := img.Bounds().Min
	for _, contour := range contours {
		for i := range contour {
			contour[i] = contour[i].Add(offset)
		}
		shapes = append(shapes, MinAreaRect(contour))
	}

	return shapes, nil
}

// EdgeMap returns the Canny output of the pipeline as a white-on-black image,
// which is what contours are traced on.
func (e *BildExtractor) EdgeMap(img image.Image) (*image.Gray, error) {
	edges, err := e.edges(img)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y, row := range edges {
		for x, on := range row {
			if on {
				out.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return out, nil
}

// edges runs the raster stages of the pipeline.
func (e *BildExtractor) edges(img image.Image) ([][]bool, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidImage
	}

	closed := e.preprocess(img)
	return cannyEdges(closed, e.opts.CannyLow, e.opts.CannyHigh), nil
}

// preprocess produces the binary mask of horizontal-gradient regions.
func (e *BildExtractor) preprocess(img image.Image) *image.Gray {
	bounds := img.Bounds()

	// Transparent pixels would come out of the threshold white, so flatten first.
	opaque := imaging.Overlay(imaging.New(bounds.Dx(), bounds.Dy(), color.Black), img, image.Pt(0, 0), 1.0)
	gray := effect.Grayscale(opaque)

	sobelX := &convolution.Kernel{
		Matrix: []float64{
			-1, 0, 1,
			-2, 0, 2,
			-1, 0, 1,
		},
		Width:  3,
		Height: 3,
	}
	gradient := convolution.Convolve(gray, sobelX, &convolution.Options{KeepAlpha: true})

	level := otsuLevel(histogram.NewRGBAHistogram(gradient).R.Bins)
	binary := thresholdMask(gradient, level)

	return erodeMask(dilateMask(binary, e.opts.DilateSize), e.opts.ErodeSize)
}

// otsuLevel returns the threshold that maximises the between-class variance
// of a 256-bin histogram, where class 0 holds the values <= level. A
// histogram with a single populated bin yields 0.
func otsuLevel(bins []int) uint8 {
	var total, sumAll float64
	for i, n := range bins {
		total += float64(n)
		sumAll += float64(i) * float64(n)
	}

	var (
		w0, sum0  float64
		bestSigma float64
		best      int
	)
	for i, n := range bins {
		w0 += float64(n)
		sum0 += float64(i) * float64(n)
		w1 := total - w0
		if w0 == 0 || w1 == 0 {
			continue
		}

		m0 := sum0 / w0
		m1 := (sumAll - sum0) / w1
		sigma := w0 * w1 * (m0 - m1) * (m0 - m1)
		if sigma > bestSigma {
			bestSigma = sigma
			best = i
		}
	}

	return uint8(best)
}
