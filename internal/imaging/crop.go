package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropBand cuts rows [y1, y2) out of img and scales the result. It is used to
// show the content on both sides of a splice line.
func CropBand(img image.Image, y1, y2 int, scale float64) (*EncodedImage, error) {
	bounds := img.Bounds()

	if y1 < 0 || y2 > bounds.Dy() {
		return nil, fmt.Errorf("band rows %d-%d outside image height %d", y1, y2, bounds.Dy())
	}
	if y1 >= y2 {
		return nil, fmt.Errorf("invalid band: y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y+y1, bounds.Max.X, bounds.Min.Y+y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return EncodePNG(cropped)
}

// SpliceBands returns the rows around a splice line in the upper and lower
// frame, radius rows above and below, clipped to each frame.
func SpliceBands(upper, lower image.Image, y1, y2, radius int, scale float64) (*EncodedImage, *EncodedImage, error) {
	a, err := CropBand(upper, max(0, y1-radius), min(upper.Bounds().Dy(), y1+radius), scale)
	if err != nil {
		return nil, nil, fmt.Errorf("upper frame: %w", err)
	}
	b, err := CropBand(lower, max(0, y2-radius), min(lower.Bounds().Dy(), y2+radius), scale)
	if err != nil {
		return nil, nil, fmt.Errorf("lower frame: %w", err)
	}
	return a, b, nil
}
