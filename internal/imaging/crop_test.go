package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"
)

func TestCropBand(t *testing.T) {
	img := createStripedImage(40, 100, 10, color.White, color.Black)

	result, err := CropBand(img, 10, 30, 1.0)
	if err != nil {
		t.Fatalf("CropBand failed: %v", err)
	}

	if result.Width != 40 || result.Height != 20 {
		t.Errorf("size = %dx%d, want 40x20", result.Width, result.Height)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	// Rows 10-19 of the source are black, 20-29 white.
	if r, _, _, _ := decoded.At(5, 0).RGBA(); r != 0 {
		t.Errorf("first band row is not black")
	}
	if r, _, _, _ := decoded.At(5, 15).RGBA(); r != 0xffff {
		t.Errorf("second band row is not white")
	}
}

func TestCropBand_Scale(t *testing.T) {
	img := createStripedImage(40, 100, 10, color.White, color.Black)

	result, err := CropBand(img, 0, 50, 0.5)
	if err != nil {
		t.Fatalf("CropBand failed: %v", err)
	}
	if result.Width != 20 || result.Height != 25 {
		t.Errorf("size = %dx%d, want 20x25", result.Width, result.Height)
	}
}

func TestCropBand_Invalid(t *testing.T) {
	img := createStripedImage(40, 100, 10, color.White, color.Black)

	tests := []struct {
		name   string
		y1, y2 int
	}{
		{"negative start", -1, 10},
		{"past bottom", 90, 101},
		{"empty", 20, 20},
		{"reversed", 30, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CropBand(img, tt.y1, tt.y2, 1.0); err == nil {
				t.Error("CropBand should fail")
			}
		})
	}
}

func TestSpliceBands(t *testing.T) {
	upper := createStripedImage(40, 100, 10, color.White, color.Black)
	lower := createStripedImage(40, 100, 10, color.White, color.Black)

	a, b, err := SpliceBands(upper, lower, 95, 3, 8, 1.0)
	if err != nil {
		t.Fatalf("SpliceBands failed: %v", err)
	}

	// Clipped at the bottom of the upper frame and the top of the lower one.
	if a.Height != 13 {
		t.Errorf("upper band height = %d, want 13", a.Height)
	}
	if b.Height != 11 {
		t.Errorf("lower band height = %d, want 11", b.Height)
	}
}
