package shapes

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinAreaRect returns the minimum-area rotated rectangle enclosing points.
//
// The computation is done relative to the top-left corner of the points'
// bounding box and translated back at the end. Because that corner is an
// integer position, two translated copies of the same point set produce
// identical sizes, angles and X coordinates, and centers whose Y values differ
// by exactly the translation.
//
// # Algorithm
//
//  1. Convex hull (Andrew's monotone chain)
//  2. Rotating calipers: for each hull edge, project every hull vertex onto
//     the edge direction and its normal and keep the smallest box
//  3. Normalise the angle of the Width side into [0, 90), swapping Width and
//     Height when the box is turned by a quarter
//
// Degenerate inputs are handled: a single point yields a zero-sized shape,
// collinear points yield a zero-height shape along the line.
func MinAreaRect(points []image.Point) Shape {
	if len(points) == 0 {
		return Shape{}
	}

	origin := points[0]
	for _, p := range points[1:] {
		if p.X < origin.X {
			origin.X = p.X
		}
		if p.Y < origin.Y {
			origin.Y = p.Y
		}
	}

	hull := convexHull(points, origin)

	var shape Shape
	switch len(hull) {
	case 1:
		shape = Shape{Center: Point{X: hull[0].X, Y: hull[0].Y}}
	default:
		shape = rotatingCalipers(hull)
	}

	return Shape{
		Center: Point{
			X: snap(shape.Center.X) + float64(origin.X),
			Y: snap(shape.Center.Y) + float64(origin.Y),
		},
		Size: Size{
			Width:  snap(shape.Size.Width),
			Height: snap(shape.Size.Height),
		},
		Angle: snap(shape.Angle),
	}
}

// convexHull returns the hull vertices of points, shifted by -origin, in
// counter-clockwise order without repeated or collinear vertices.
func convexHull(points []image.Point, origin image.Point) []r2.Vec {
	pts := make([]r2.Vec, len(points))
	for i, p := range points {
		pts[i] = r2.Vec{X: float64(p.X - origin.X), Y: float64(p.Y - origin.Y)}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// Remove duplicates
	uniq := pts[:1]
	for _, p := range pts[1:] {
		if p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return uniq
	}

	turn := func(o, a, b r2.Vec) float64 {
		return r2.Cross(r2.Sub(a, o), r2.Sub(b, o))
	}

	hull := make([]r2.Vec, 0, 2*len(uniq))
	for _, p := range uniq {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// The last vertex repeats the first one.
	return hull[:len(hull)-1]
}

// rotatingCalipers finds the smallest enclosing box of a hull with at least
// two vertices. Ties keep the first edge examined.
func rotatingCalipers(hull []r2.Vec) Shape {
	bestArea := math.Inf(1)
	var best Shape

	for i := range hull {
		edge := r2.Sub(hull[(i+1)%len(hull)], hull[i])
		if r2.Norm(edge) == 0 {
			continue
		}
		u := r2.Unit(edge)
		v := r2.Vec{X: -u.Y, Y: u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu := r2.Dot(p, u)
			pv := r2.Dot(p, v)
			minU = math.Min(minU, pu)
			maxU = math.Max(maxU, pu)
			minV = math.Min(minV, pv)
			maxV = math.Max(maxV, pv)
		}

		width := maxU - minU
		height := maxV - minV
		area := width * height
		if area >= bestArea {
			continue
		}
		bestArea = area

		center := r2.Add(r2.Scale((minU+maxU)/2, u), r2.Scale((minV+maxV)/2, v))
		angle, width, height := normaliseAngle(snap(math.Atan2(u.Y, u.X)*180/math.Pi), width, height)

		best = Shape{
			Center: Point{X: center.X, Y: center.Y},
			Size:   Size{Width: width, Height: height},
			Angle:  angle,
		}
	}

	return best
}

// normaliseAngle maps an edge direction in degrees into [0, 90). A rectangle
// turned by a quarter is the same rectangle with its sides swapped.
func normaliseAngle(angle, width, height float64) (float64, float64, float64) {
	for angle < 0 {
		angle += 180
	}
	for angle >= 180 {
		angle -= 180
	}
	if angle >= 90 {
		angle -= 90
		width, height = height, width
	}
	return angle, width, height
}
