package shapes

import "image"

// findContours groups edge pixels into 8-connected components.
//
// Components are discovered in raster order (top to bottom, left to right),
// which makes the output order deterministic for a given edge map. Components
// smaller than minPoints are discarded.
func findContours(edges [][]bool, minPoints int) [][]image.Point {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([][]image.Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := floodFill(edges, visited, x, y, width, height)
				if len(contour) >= minPoints {
					contours = append(contours, contour)
				}
			}
		}
	}

	return contours
}

// floodFill collects every edge pixel reachable from (startX, startY) and
// marks them visited.
func floodFill(edges, visited [][]bool, startX, startY, width, height int) []image.Point {
	contour := make([]image.Point, 0)
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return contour
}
