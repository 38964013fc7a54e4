package ocr

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText draws text onto an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createTextImage renders lines of text on white, scaled up so Tesseract has
// enough pixels per glyph.
func createTextImage(lines []string, scale int) *image.RGBA {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	small := image.NewRGBA(image.Rect(0, 0, maxLen*7+40, len(lines)*16+30))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	for i, line := range lines {
		drawText(small, 20, 20+i*16, line, color.Black)
	}

	w, h := small.Bounds().Dx(), small.Bounds().Dy()
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := small.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

// skipIfNoTesseract skips the test when the error comes from a missing
// Tesseract installation.
func skipIfNoTesseract(t *testing.T, err error) {
	t.Helper()
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "tesseract") || strings.Contains(msg, "library") || strings.Contains(msg, "language") {
		t.Skipf("Tesseract not available: %v", err)
	}
}

func TestExtractText(t *testing.T) {
	img := createTextImage([]string{"HELLO WORLD"}, 4)

	result, err := ExtractText(img, "eng")
	if err != nil {
		skipIfNoTesseract(t, err)
		t.Fatalf("ExtractText failed: %v", err)
	}

	if result == nil {
		t.Fatal("ExtractText returned nil result")
	}
	if !strings.Contains(strings.ToUpper(result.FullText), "HELLO") {
		t.Logf("OCR text %q did not contain HELLO; Tesseract output varies by version", result.FullText)
	}
}

func TestExtractText_DefaultLanguage(t *testing.T) {
	img := createTextImage([]string{"STITCH"}, 4)

	result, err := ExtractText(img, "")
	if err != nil {
		skipIfNoTesseract(t, err)
		t.Fatalf("ExtractText failed: %v", err)
	}
	if result.Regions == nil {
		t.Error("Regions should never be nil")
	}
}

func TestExtractText_NilImage(t *testing.T) {
	_, err := ExtractText(nil, "eng")
	if !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("expected ErrEmptyRegion, got %v", err)
	}
}

func TestExtractTextFromRegion_Empty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	tests := []struct {
		name   string
		region image.Rectangle
	}{
		{"zero", image.Rectangle{}},
		{"outside", image.Rect(200, 200, 300, 300)},
		{"inverted", image.Rect(50, 50, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTextFromRegion(img, tt.region, "eng")
			if !errors.Is(err, ErrEmptyRegion) {
				t.Errorf("expected ErrEmptyRegion, got %v", err)
			}
		})
	}
}

func TestExtractTextFromRegion_BoundsOffset(t *testing.T) {
	text := createTextImage([]string{"OFFSET"}, 4)

	// Place the text in the lower half of a taller canvas.
	img := image.NewRGBA(image.Rect(0, 0, text.Bounds().Dx(), text.Bounds().Dy()*2))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	top := text.Bounds().Dy()
	draw.Draw(img, image.Rect(0, top, img.Bounds().Dx(), img.Bounds().Dy()), text, image.Point{}, draw.Src)

	region := image.Rect(0, top, img.Bounds().Dx(), img.Bounds().Dy())
	result, err := ExtractTextFromRegion(img, region, "eng")
	if err != nil {
		skipIfNoTesseract(t, err)
		t.Fatalf("ExtractTextFromRegion failed: %v", err)
	}

	for _, r := range result.Regions {
		if r.Bounds.Y1 < top {
			t.Errorf("region %q at y=%d should be offset into the lower half (>= %d)", r.Text, r.Bounds.Y1, top)
		}
	}
}

func TestExtractText_InvalidLanguage(t *testing.T) {
	img := createTextImage([]string{"TEXT"}, 2)

	_, err := ExtractText(img, "invalid_language_code_xyz")
	if err == nil {
		// Some Tesseract installations are lenient with language codes
		t.Log("ExtractText did not fail for invalid language")
	}
}
