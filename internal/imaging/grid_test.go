package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestSeamOverlay(t *testing.T) {
	img := createStripedImage(100, 100, 100, color.White, color.Black)

	result := SeamOverlay(img, []SeamMark{{Y: 40}, {Y: 70, Label: "pair 1"}, {Y: 500}}, "#00FF00")

	if result.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", result.Bounds(), img.Bounds())
	}

	r, g, b, _ := result.At(50, 40).RGBA()
	if r != 0 || g != 0xffff || b != 0 {
		t.Errorf("seam row colour = (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}

	// The rest of the image is untouched.
	if r, _, _, _ := result.At(50, 41).RGBA(); r != 0xffff {
		t.Error("row below the seam was modified")
	}
	if r, _, _, _ := img.At(50, 40).RGBA(); r != 0xffff {
		t.Error("source image was modified")
	}

	// The label paints dark pixels near the left end of the second line.
	dark := 0
	for y := 72; y < 72+13; y++ {
		for x := 2; x < 40; x++ {
			if r, _, _, _ := result.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("label background not drawn")
	}
}

func TestSeamOverlay_Translucent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	tests := []struct {
		name  string
		color string
		want  uint32
	}{
		{"half alpha", "#FF000080", 128},
		{"default colour", "bad", 160},
		{"opaque", "#FF0000", 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SeamOverlay(img, []SeamMark{{Y: 5}}, tt.color)
			r, _, _, _ := result.At(5, 5).RGBA()
			if got := r >> 8; got+2 < tt.want || got > tt.want+2 {
				t.Errorf("red over black = %d, want about %d", got, tt.want)
			}
		})
	}
}

func TestSeamOverlay_InvalidColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	result := SeamOverlay(img, []SeamMark{{Y: 5}}, "not-a-color")

	_, _, _, a := result.At(5, 5).RGBA()
	if a == 0 {
		t.Error("fallback colour not drawn")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"00ff00", color.NRGBA{0, 255, 0, 255}, false},
		{"#0000FF80", color.NRGBA{0, 0, 255, 128}, false},
		{"", color.NRGBA{}, true},
		{"#FFF", color.NRGBA{}, true},
		{"#GGGGGG", color.NRGBA{}, true},
		{"#FF0000ZZ", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
