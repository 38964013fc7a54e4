//go:build gocv

package shapes

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// GocvExtractor runs the pipeline with OpenCV.
type GocvExtractor struct {
	opts Options
}

func newGocvExtractor(opts Options) (Extractor, error) {
	return &GocvExtractor{opts: opts}, nil
}

// Extract converts img to an OpenCV matrix and runs the pipeline on it.
func (e *GocvExtractor) Extract(img image.Image) ([]Shape, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidImage
	}

	rgba := toRGBA(img)
	src, err := gocv.NewMatFromBytes(rgba.Rect.Dy(), rgba.Rect.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBAToGray)

	gradient := gocv.NewMat()
	defer gradient.Close()
	gocv.Sobel(gray, &gradient, gocv.MatTypeCV8U, 1, 0, 3, 1, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gradient, &binary, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	dilateKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(e.opts.DilateSize, e.opts.DilateSize))
	defer dilateKernel.Close()
	erodeKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(e.opts.ErodeSize, e.opts.ErodeSize))
	defer erodeKernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.Dilate(binary, &closed, dilateKernel)
	gocv.Erode(closed, &closed, erodeKernel)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(closed, &edges, float32(e.opts.CannyLow), float32(e.opts.CannyHigh))

	contours := gocv.FindContours(edges, gocv.RetrievalCComp, gocv.ChainApproxSimple)
	defer contours.Close()

	offset := img.Bounds().Min
	shapes := make([]Shape, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		points := contours.At(i).ToPoints()
		if len(points) < e.opts.MinContourPoints {
			continue
		}
		for j := range points {
			points[j] = points[j].Add(offset)
		}
		shapes = append(shapes, MinAreaRect(points))
	}

	return shapes, nil
}

// toRGBA returns img as a tightly packed, zero-origin RGBA image.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			rgba.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return rgba
}
