package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// formats maps lower-case file extensions to the format names reported in
// FrameInfo.
var formats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// IsSupported reports whether path has the extension of a decodable format.
func IsSupported(path string) bool {
	_, ok := formats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ImageCache provides thread-safe caching of decoded frames to avoid
// redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once
// an image is loaded, subsequent Load() calls for the same path return the
// cached copy without disk I/O. This matters when one operation reads the
// same file twice, for its metadata and for its pixels.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Screen captures are large; callers stitching many files should
// evict them once the composite is written.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/capture-001.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/capture-001.png")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF orientation
// tags are applied, so phone screenshots come out upright.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) will result in separate cache
// entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid image in a supported format
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadAll loads every path in order. It stops at the first failure.
func (c *ImageCache) LoadAll(paths []string) ([]image.Image, error) {
	images := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		img, err := c.Load(p)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// FrameInfo describes a frame file.
type FrameInfo struct {
	// Path is the file the frame was loaded from.
	Path string `json:"path"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is derived from the file extension, or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadFrameInfo loads an image through cache and describes it.
func LoadFrameInfo(cache *ImageCache, path string) (*FrameInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		format = "unknown"
	}

	bounds := img.Bounds()
	return &FrameInfo{
		Path:          path,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
