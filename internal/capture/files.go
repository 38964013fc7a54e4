package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/ironsheep/long-screenshot-mcp/internal/imaging"
)

// ErrNoImages is returned when a file source would contain no frames.
var ErrNoImages = errors.New("no supported images")

// FileSource plays a list of screenshots as a recording: file i is shown
// from i*interval seconds on.
type FileSource struct {
	paths    []string
	interval float64
	cache    *imaging.ImageCache
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a source over paths in the given order. Images are
// decoded through cache on demand. A non-positive interval selects
// DefaultStep.
func NewFileSource(paths []string, interval float64, cache *imaging.ImageCache) (*FileSource, error) {
	if len(paths) == 0 {
		return nil, ErrNoImages
	}
	if interval <= 0 {
		interval = DefaultStep
	}
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &FileSource{paths: paths, interval: interval, cache: cache}, nil
}

// NewDirSource creates a source over the supported image files of dir,
// sorted by name. Subdirectories and other files are ignored.
func NewDirSource(dir string, interval float64, cache *imaging.ImageCache) (*FileSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !imaging.IsSupported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}
	return NewFileSource(paths, interval, cache)
}

// Paths returns the files in playback order.
func (s *FileSource) Paths() []string {
	return s.paths
}

// Interval returns the time each file is shown for.
func (s *FileSource) Interval() float64 {
	return s.interval
}

// Duration is the time at which the last file appears.
func (s *FileSource) Duration() float64 {
	return float64(len(s.paths)-1) * s.interval
}

// CaptureFrame returns the file on screen at t.
func (s *FileSource) CaptureFrame(ctx context.Context, t float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t < 0 || t > s.Duration()+timeEpsilon {
		return nil, ErrNoFrame
	}

	i := int(math.Floor(t/s.interval + timeEpsilon))
	if i >= len(s.paths) {
		i = len(s.paths) - 1
	}
	return s.cache.Load(s.paths[i])
}
