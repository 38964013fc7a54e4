package shapes

import (
	"image"
	"math"
)

// cannyEdges performs Canny edge detection on an 8-bit intensity image.
//
// Unlike a general-purpose edge detector there is no Gaussian pre-blur: the
// input is the output of a morphological closing and is already binary, so
// blurring would only move the edges.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators for X and Y,
//     magnitude = |Gx| + |Gy|, direction = atan2(Gy, Gx)
//  2. Non-maximum suppression along the gradient direction
//  3. Hysteresis: pixels above high are strong edges; pixels above low are
//     kept when 8-connected to a strong edge, transitively
//
// Thresholds are on the 0-255 intensity scale. Border pixels are never edges.
func cannyEdges(src image.Image, low, high float64) [][]bool {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = float64(intensity(src, x+bounds.Min.X, y+bounds.Min.Y))
		}
	}

	sobelX := [][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Abs(gx) + math.Abs(gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]
			if mag == 0 {
				continue
			}

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			}

			// Strict on one side so plateaus yield a single line.
			if mag > n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
	}

	// Hysteresis, grown from strong seeds.
	stack := make([]image.Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] > high && !edges[y][x] {
				edges[y][x] = true
				stack = append(stack, image.Point{X: x, Y: y})
			}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || nx >= width || ny < 0 || ny >= height || edges[ny][nx] {
							continue
						}
						if suppressed[ny][nx] > low {
							edges[ny][nx] = true
							stack = append(stack, image.Point{X: nx, Y: ny})
						}
					}
				}
			}
		}
	}

	return edges
}

// intensity returns the 8-bit gray level of a pixel using ITU-R BT.601 weights.
func intensity(img image.Image, x, y int) uint8 {
	if g, ok := img.(*image.Gray); ok {
		return g.GrayAt(x, y).Y
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
