package stitch

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// seamRows is the number of rows compared below each splice line.
	seamRows = 4

	// seamStride is the horizontal sampling step.
	seamStride = 2
)

// Seam reports how well the two frames of a matched pair agree at their
// splice line.
type Seam struct {
	Pair int `json:"pair"`
	Y1   int `json:"y1"`
	Y2   int `json:"y2"`

	// Difference is the mean CIE Lab distance between the rows starting at
	// Y1 in the upper frame and at Y2 in the lower frame. A correct splice
	// of unchanged content scores 0.
	Difference float64 `json:"difference"`
}

// MeasureSeams returns one Seam per pair with a non-zero offset. Pairs that
// do not line up with frames, or whose rows fall outside a frame, are
// skipped.
func MeasureSeams(frames []*Frame, offsets []OffsetInfo) []Seam {
	seams := make([]Seam, 0)
	for i, o := range offsets {
		if i+1 >= len(frames) || o.OffsetY() == 0 {
			continue
		}
		a, b := frames[i], frames[i+1]
		y1, y2 := int(math.Round(o.Y1)), int(math.Round(o.Y2))

		rows := min(seamRows, a.Height()-y1, b.Height()-y2)
		if y1 < 0 || y2 < 0 || rows <= 0 {
			continue
		}

		seams = append(seams, Seam{
			Pair:       i,
			Y1:         y1,
			Y2:         y2,
			Difference: rowDifference(a, b, y1, y2, rows),
		})
	}
	return seams
}

// rowDifference averages the Lab distance over sampled pixels that are
// opaque in both frames.
func rowDifference(a, b *Frame, y1, y2, rows int) float64 {
	ab, bb := a.Image.Bounds(), b.Image.Bounds()
	width := min(ab.Dx(), bb.Dx())

	var sum float64
	n := 0
	for k := 0; k < rows; k++ {
		for x := 0; x < width; x += seamStride {
			ca, okA := colorful.MakeColor(a.Image.At(ab.Min.X+x, ab.Min.Y+y1+k))
			cb, okB := colorful.MakeColor(b.Image.At(bb.Min.X+x, bb.Min.Y+y2+k))
			if !okA || !okB {
				continue
			}
			sum += ca.DistanceLab(cb)
			n++
		}
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
