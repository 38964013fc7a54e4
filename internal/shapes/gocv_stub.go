//go:build !gocv

package shapes

import "fmt"

func newGocvExtractor(Options) (Extractor, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags gocv", ErrBackendUnavailable)
}
