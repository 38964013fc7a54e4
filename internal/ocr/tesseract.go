package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// ErrEmptyRegion is returned when the requested region does not overlap the
// image.
var ErrEmptyRegion = errors.New("empty OCR region")

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion is a recognised word with its location and OCR confidence.
type TextRegion struct {
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the text read from an image.
type OCRResult struct {
	// FullText is all recognised text with Tesseract's spacing and newlines.
	FullText string `json:"full_text"`

	// Regions holds individual words. It may be empty when Tesseract cannot
	// produce word boxes; FullText is still filled in.
	Regions []TextRegion `json:"regions"`
}

// ExtractText runs Tesseract over a whole in-memory image, typically a
// finished long screenshot.
//
// The image is handed to Tesseract as PNG bytes, so no temporary file is
// written. language is a Tesseract code such as "eng"; an empty string
// selects DefaultLanguage.
func ExtractText(img image.Image, language string) (*OCRResult, error) {
	if img == nil {
		return nil, ErrEmptyRegion
	}
	return ExtractTextFromRegion(img, img.Bounds(), language)
}

// ExtractTextFromRegion runs Tesseract over one rectangle of img.
//
// Word bounds are reported in the coordinates of img, not of the crop. A
// region that does not overlap the image yields ErrEmptyRegion.
func ExtractTextFromRegion(img image.Image, region image.Rectangle, language string) (*OCRResult, error) {
	if img == nil {
		return nil, ErrEmptyRegion
	}
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, ErrEmptyRegion
	}
	if language == "" {
		language = DefaultLanguage
	}

	// imaging.Crop returns an image anchored at (0, 0).
	cropped := imaging.Crop(img, region)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode OCR input: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{
			FullText: text,
			Regions:  []TextRegion{},
		}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X + region.Min.X,
				Y1: box.Box.Min.Y + region.Min.Y,
				X2: box.Box.Max.X + region.Min.X,
				Y2: box.Box.Max.Y + region.Min.Y,
			},
		})
	}

	return &OCRResult{
		FullText: text,
		Regions:  regions,
	}, nil
}
