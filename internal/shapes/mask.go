package shapes

import "image"

// thresholdMask sets the pixels whose gradient, read from the red channel,
// is strictly above level. The gradient is grey, so one channel is enough.
func thresholdMask(gradient *image.RGBA, level uint8) *image.Gray {
	bounds := gradient.Bounds()
	mask := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		src := gradient.Pix[y*gradient.Stride:]
		dst := mask.Pix[y*mask.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			if src[x*4] > level {
				dst[x] = 0xFF
			}
		}
	}
	return mask
}

// dilateMask sets every pixel whose size x size window holds a set pixel.
func dilateMask(mask *image.Gray, size int) *image.Gray {
	return morphMask(mask, size, false)
}

// erodeMask keeps the pixels whose size x size window is fully set.
func erodeMask(mask *image.Gray, size int) *image.Gray {
	return morphMask(mask, size, true)
}

// morphMask applies a square window as a row pass followed by a column pass.
// The window spans x-size/2 .. x+(size-1)/2 and is clipped at the borders,
// which gives the same result as replicating the edge pixels.
func morphMask(mask *image.Gray, size int, erode bool) *image.Gray {
	width, height := mask.Rect.Dx(), mask.Rect.Dy()
	if size <= 1 {
		out := image.NewGray(mask.Rect)
		copy(out.Pix, mask.Pix)
		return out
	}
	lo, hi := size/2, (size-1)/2

	rows := image.NewGray(mask.Rect)
	for y := 0; y < height; y++ {
		morphLine(mask.Pix, rows.Pix, y*mask.Stride, 1, width, lo, hi, erode)
	}

	out := image.NewGray(mask.Rect)
	for x := 0; x < width; x++ {
		morphLine(rows.Pix, out.Pix, x, mask.Stride, height, lo, hi, erode)
	}
	return out
}

// morphLine runs a sliding window over n pixels of src, starting at start
// and step bytes apart, keeping a count of the set pixels inside it.
func morphLine(src, dst []uint8, start, step, n, lo, hi int, erode bool) {
	count := 0
	for j := 0; j <= hi && j < n; j++ {
		if src[start+j*step] != 0 {
			count++
		}
	}

	for i := 0; i < n; i++ {
		on := count > 0
		if erode {
			first, last := max(i-lo, 0), min(i+hi, n-1)
			on = count == last-first+1
		}
		if on {
			dst[start+i*step] = 0xFF
		} else {
			dst[start+i*step] = 0
		}

		if j := i - lo; j >= 0 && src[start+j*step] != 0 {
			count--
		}
		if j := i + hi + 1; j < n && src[start+j*step] != 0 {
			count++
		}
	}
}
