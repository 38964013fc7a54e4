package shapes

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// createBlankImage creates an opaque solid image.
func createBlankImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// createTextImage paints a few lines of text starting at top.
func createTextImage(width, height, top int) *image.RGBA {
	img := createBlankImage(width, height, color.White)
	lines := []string{
		"Long screenshot stitching",
		"  matches shapes between frames",
		"Offset 42 px",
		"    the quick brown fox",
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		d.Dot = fixed.P(12, top+13+i*22)
		d.DrawString(line)
	}
	return img
}

func TestExtract_BlankImage(t *testing.T) {
	e := NewBildExtractor(DefaultOptions())

	shapes, err := e.Extract(createBlankImage(120, 80, color.White))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(shapes) != 0 {
		t.Errorf("Extract() found %d shapes on a blank image, want 0", len(shapes))
	}
}

func TestExtract_InvalidImage(t *testing.T) {
	e := NewBildExtractor(DefaultOptions())

	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil", nil},
		{"zero size", image.NewRGBA(image.Rect(0, 0, 0, 10))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Extract(tt.img); !errors.Is(err, ErrInvalidImage) {
				t.Errorf("Extract() error = %v, want ErrInvalidImage", err)
			}
		})
	}
}

func TestExtract_FindsText(t *testing.T) {
	e := NewBildExtractor(DefaultOptions())

	shapes, err := e.Extract(createTextImage(300, 160, 30))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(shapes) == 0 {
		t.Fatal("Extract() found no shapes in an image with text")
	}

	for _, s := range shapes {
		if s.Center.X < 0 || s.Center.X > 300 || s.Center.Y < 0 || s.Center.Y > 160 {
			t.Errorf("shape center %+v outside the image", s.Center)
		}
		if s.Angle < 0 || s.Angle >= 90 {
			t.Errorf("shape angle %v outside [0, 90)", s.Angle)
		}
	}
}

func TestExtract_Translation(t *testing.T) {
	e := NewBildExtractor(DefaultOptions())
	const shift = 37

	a, err := e.Extract(createTextImage(300, 200, 30))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	b, err := e.Extract(createTextImage(300, 200, 30+shift))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("shape counts = %d and %d, want equal and non-zero", len(a), len(b))
	}
	for i := range a {
		if a[i].Key() != b[i].Key() {
			t.Errorf("shape %d: key %v != %v", i, a[i].Key(), b[i].Key())
		}
		if d := b[i].Center.Y - a[i].Center.Y; d != shift {
			t.Errorf("shape %d: moved by %v, want %d", i, d, shift)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := NewBildExtractor(DefaultOptions())
	img := createTextImage(300, 160, 20)

	first, err := e.Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := e.Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("shape counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("shape %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestExtract_SubImageOffset(t *testing.T) {
	e := NewBildExtractor(DefaultOptions())
	full := createTextImage(300, 260, 100)

	whole, err := e.Extract(createTextImage(300, 160, 30))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	sub := full.SubImage(image.Rect(0, 70, 300, 230))
	part, err := e.Extract(sub)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(whole) != len(part) {
		t.Fatalf("shape counts differ: %d vs %d", len(whole), len(part))
	}
	for i := range whole {
		if d := part[i].Center.Y - whole[i].Center.Y; d != 70 {
			t.Errorf("shape %d: sub-image shape at offset %v, want 70", i, d)
		}
	}
}

func TestEdgeMap(t *testing.T) {
	e := NewBildExtractor(DefaultOptions())

	edges, err := e.EdgeMap(createTextImage(300, 160, 30))
	if err != nil {
		t.Fatalf("EdgeMap failed: %v", err)
	}
	if edges.Bounds().Dx() != 300 || edges.Bounds().Dy() != 160 {
		t.Errorf("EdgeMap size = %v, want 300x160", edges.Bounds())
	}

	lit := 0
	for _, v := range edges.Pix {
		if v == 0xFF {
			lit++
		}
	}
	if lit == 0 {
		t.Error("EdgeMap has no edge pixels")
	}
}

func TestNewExtractor(t *testing.T) {
	for _, name := range []string{"", BackendBild} {
		e, err := NewExtractor(name, DefaultOptions())
		if err != nil {
			t.Fatalf("NewExtractor(%q) failed: %v", name, err)
		}
		if _, ok := e.(*BildExtractor); !ok {
			t.Errorf("NewExtractor(%q) = %T, want *BildExtractor", name, e)
		}
	}

	if _, err := NewExtractor("hough", DefaultOptions()); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("NewExtractor(hough) error = %v, want ErrBackendUnavailable", err)
	}
}

func TestOtsuLevel(t *testing.T) {
	bins := make([]int, 256)
	bins[10] = 500
	bins[200] = 100

	level := otsuLevel(bins)
	if level < 10 || level >= 200 {
		t.Errorf("otsuLevel() = %d, want in [10, 200)", level)
	}

	uniform := make([]int, 256)
	uniform[0] = 1000
	if got := otsuLevel(uniform); got != 0 {
		t.Errorf("otsuLevel(single bin) = %d, want 0", got)
	}
}

func TestFindContours(t *testing.T) {
	edges := make([][]bool, 10)
	for y := range edges {
		edges[y] = make([]bool, 10)
	}
	// Two separate diagonal strokes.
	for i := 0; i < 4; i++ {
		edges[1+i][1+i] = true
		edges[1+i][8] = true
	}

	contours := findContours(edges, 1)
	if len(contours) != 2 {
		t.Fatalf("found %d contours, want 2", len(contours))
	}
	for i, c := range contours {
		if len(c) != 4 {
			t.Errorf("contour %d has %d points, want 4", i, len(c))
		}
	}

	if got := findContours(edges, 5); len(got) != 0 {
		t.Errorf("found %d contours with minPoints 5, want 0", len(got))
	}
}
