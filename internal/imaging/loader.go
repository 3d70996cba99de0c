package imaging

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ImageCache provides thread-safe caching of decoded sketch files to avoid
// redundant decoding of files that have not changed.
//
// Entries are keyed by path and remember the file size and modification time
// seen when the file was read. Every Load stats the file and reuses the
// cached image only when both still match, so a sketch redrawn in place is
// decoded again. Cached RawImages are shared and must be treated as
// read-only.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// The cache holds at most maxEntries images. When a new path would exceed
// that, the path loaded least recently is dropped.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(16, 50_000_000)
//	raw, err := cache.Load("/path/to/sketch.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
type ImageCache struct {
	mu         sync.Mutex
	maxEntries int
	maxPixels  int
	entries    map[string]*cacheEntry
	order      []string // least recently loaded first
}

type cacheEntry struct {
	size    int64
	modTime time.Time
	raw     *RawImage
}

// NewImageCache creates an empty cache holding at most maxEntries images.
// maxPixels is passed to DecodeBytes for every file read.
func NewImageCache(maxEntries, maxPixels int) *ImageCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &ImageCache{
		maxEntries: maxEntries,
		maxPixels:  maxPixels,
		entries:    make(map[string]*cacheEntry),
	}
}

// Load returns the decoded sketch at path, reading the file only when it is
// not cached or has changed since it was cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Any format accepted
//     by DecodeBytes is supported.
//
// Returns:
//   - *RawImage: The decoded, alpha-flattened image.
//   - error: Non-nil if the file cannot be read, or *DecodeError if it cannot
//     be decoded.
//
// The image is cached using the exact path string provided. Different paths to the
// same file (e.g., relative vs absolute) will result in separate cache entries.
func (c *ImageCache) Load(path string) (*RawImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	c.mu.Lock()
	if e, ok := c.entries[path]; ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) {
		c.touch(path)
		c.mu.Unlock()
		return e.raw, nil
	}
	c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	raw, err := DecodeBytes(data, c.maxPixels)
	if err != nil {
		c.mu.Lock()
		c.remove(path)
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.entries[path]; !ok && len(c.entries) >= c.maxEntries {
		c.remove(c.order[0])
	}
	c.entries[path] = &cacheEntry{size: info.Size(), modTime: info.ModTime(), raw: raw}
	c.touch(path)
	c.mu.Unlock()

	return raw, nil
}

// touch moves path to the most recently loaded end of the order.
// The caller must hold c.mu.
func (c *ImageCache) touch(path string) {
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, path)
}

// remove drops path from the cache. The caller must hold c.mu.
func (c *ImageCache) remove(path string) {
	if _, ok := c.entries[path]; !ok {
		return
	}
	delete(c.entries, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
