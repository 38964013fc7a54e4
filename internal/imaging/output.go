package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// DefaultOutputPrefix names composites written without an explicit prefix.
const DefaultOutputPrefix = "longScreenCapture"

// EncodedImage is a PNG ready to be returned in a tool result.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EncodePreview encodes img as base64 PNG, shrinking it first so it is at
// most maxHeight pixels tall. A maxHeight of 0 keeps the full size.
func EncodePreview(img image.Image, maxHeight int) (*EncodedImage, error) {
	if maxHeight > 0 && img.Bounds().Dy() > maxHeight {
		img = imaging.Resize(img, 0, maxHeight, imaging.Lanczos)
	}
	return EncodePNG(img)
}

// OutputName returns "<prefix>_<unix milliseconds>.png".
func OutputName(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultOutputPrefix
	}
	return fmt.Sprintf("%s_%d.png", prefix, now.UnixMilli())
}

// SavePNG writes img to dir under a timestamped name and returns the path.
// The directory is created if needed.
func SavePNG(img image.Image, dir, prefix string, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, OutputName(prefix, now))
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}
