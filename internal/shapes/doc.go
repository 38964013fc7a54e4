// Package shapes turns a raster frame into a set of geometric descriptors.
//
// Each descriptor is the minimum-area rotated rectangle enclosing one contour
// found in the frame. Two frames of the same scrolled content produce the same
// descriptors, shifted vertically by the scroll distance, which is what the
// stitching matcher relies on.
//
// # Pipeline
//
// The default backend ("bild") runs entirely in Go:
//
//  1. Grayscale conversion
//  2. Horizontal Sobel derivative (3x3), saturated to 8 bits
//  3. Binary threshold at the Otsu level of the gradient histogram
//  4. Dilation (10x10) followed by erosion (5x5)
//  5. Canny edge detection (low = high = 10)
//  6. 8-connected contour grouping
//  7. Convex hull and rotating calipers for the minimum-area rectangle
//
// The "gocv" backend performs the same steps with OpenCV. It is compiled only
// with the gocv build tag:
//
//	go build -tags gocv ./...
//
// # Geometry
//
// Coordinates follow the image convention: origin at the top-left, X grows
// rightward, Y grows downward. Shape geometry is snapped to a 1/256 pixel grid
// so that the same contour at two vertical positions yields bit-identical
// widths, heights, angles and X coordinates, and an exact Y difference.
//
// # Errors
//
// An image without contours yields an empty slice, not an error. Extract
// fails only for nil or zero-sized images and, for the gocv backend, for
// OpenCV conversion failures.
package shapes
