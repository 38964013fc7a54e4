package shapes

import (
	"fmt"
	"math"
)

// gridScale is the number of snapping steps per pixel.
const gridScale = 256

// Point is a sub-pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the extent of a rotated rectangle along its own axes.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shape is the rotated bounding rectangle of one contour.
type Shape struct {
	// Center is the rectangle center in frame coordinates.
	Center Point `json:"center"`

	// Size holds the side lengths. Width runs along the direction given by Angle.
	Size Size `json:"size"`

	// Angle is the rotation of the Width side from the X axis, in degrees,
	// normalised to [0, 90).
	Angle float64 `json:"angle"`
}

// Key identifies a shape independently of its vertical position.
//
// Two shapes with equal keys are candidates for being the same piece of
// content seen at different scroll offsets.
type Key struct {
	Width   float64
	Height  float64
	Angle   float64
	CenterX float64
}

// Key returns the position-y-independent identity of s.
func (s Shape) Key() Key {
	return Key{
		Width:   s.Size.Width,
		Height:  s.Size.Height,
		Angle:   s.Angle,
		CenterX: s.Center.X,
	}
}

// String formats the key the way it appears in debug logs.
func (k Key) String() string {
	return fmt.Sprintf("%g_%g_%g_%g", k.CenterX, k.Width, k.Height, k.Angle)
}

// snap rounds v to the nearest multiple of 1/gridScale.
func snap(v float64) float64 {
	return math.Round(v*gridScale) / gridScale
}
