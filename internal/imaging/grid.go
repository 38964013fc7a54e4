package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultSeamColor is used when no valid overlay colour is given.
var DefaultSeamColor = color.NRGBA{255, 0, 0, 160}

// SeamMark is a horizontal line to draw on a composite.
type SeamMark struct {
	// Y is the canvas row of the line.
	Y int

	// Label is printed at the left end of the line. May be empty.
	Label string
}

// SeamOverlay returns a copy of img with a line across every mark, to check
// splice positions by eye. An invalid colour falls back to DefaultSeamColor.
func SeamOverlay(img image.Image, marks []SeamMark, colorHex string) *image.NRGBA {
	lineColor, err := parseHexColor(colorHex)
	if err != nil {
		lineColor = DefaultSeamColor
	}

	result := imaging.Clone(img)
	bounds := result.Bounds()
	line := image.NewUniform(lineColor)

	for _, m := range marks {
		if m.Y < bounds.Min.Y || m.Y >= bounds.Max.Y {
			continue
		}
		draw.Draw(result, image.Rect(bounds.Min.X, m.Y, bounds.Max.X, m.Y+1), line, image.Point{}, draw.Over)

		if m.Label != "" {
			drawLabel(result, bounds.Min.X+2, m.Y+2, m.Label, color.White, color.NRGBA{0, 0, 0, 180})
		}
	}

	return result
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA". The alpha is straight, not
// premultiplied.
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	var alpha uint8 = 255
	switch len(hex) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, err
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// drawLabel prints text with the top-left corner at (x, y) on a filled
// background box.
func drawLabel(img draw.Image, x, y int, text string, fg, bg color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	box := image.Rect(x-1, y-1, x+width+1, y+face.Height+1)
	draw.Draw(img, box.Intersect(img.Bounds()), image.NewUniform(bg), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}
