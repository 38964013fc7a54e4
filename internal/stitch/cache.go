package stitch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/long-screenshot-mcp/internal/shapes"
)

// ShapeCache remembers the shapes extracted from each frame, keyed by frame
// ID. Frames themselves are never modified.
//
// The cache is safe for concurrent use. It does not deduplicate concurrent
// first requests for the same frame; the pipeline never issues them.
type ShapeCache struct {
	extractor shapes.Extractor

	mu       sync.RWMutex
	entries  map[uuid.UUID][]shapes.Shape
	computed int
}

// NewShapeCache creates an empty cache that extracts with e.
func NewShapeCache(e shapes.Extractor) *ShapeCache {
	return &ShapeCache{
		extractor: e,
		entries:   make(map[uuid.UUID][]shapes.Shape),
	}
}

// Shapes returns the shapes of f, extracting them on the first request.
// Extraction errors are returned and nothing is cached for that frame.
func (c *ShapeCache) Shapes(f *Frame) ([]shapes.Shape, error) {
	if s, ok := c.Lookup(f.ID); ok {
		return s, nil
	}

	s, err := c.extractor.Extract(f.Image)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = []shapes.Shape{}
	}

	c.mu.Lock()
	c.computed++
	c.entries[f.ID] = s
	c.mu.Unlock()

	return s, nil
}

// Lookup returns the cached shapes of a frame, if any.
func (c *ShapeCache) Lookup(id uuid.UUID) ([]shapes.Shape, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[id]
	return s, ok
}

// Store records shapes computed elsewhere, such as by a Worker. An existing
// entry is kept: extraction is deterministic, so both are equal.
func (c *ShapeCache) Store(id uuid.UUID, s []shapes.Shape) {
	if s == nil {
		s = []shapes.Shape{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; !ok {
		c.entries[id] = s
	}
}

// Forget drops the entry of a frame that will not be aligned again.
func (c *ShapeCache) Forget(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len returns the number of cached frames.
func (c *ShapeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Computed returns how many extractions Shapes has performed.
func (c *ShapeCache) Computed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.computed
}

// Extractor returns the extractor used on cache misses.
func (c *ShapeCache) Extractor() shapes.Extractor {
	return c.extractor
}
