package raster

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"
)

// PageCache provides thread-safe caching of decoded pages to avoid
// redundant disk reads when the same drawing is queried by several tools.
//
// Pages remain cached until Evict() or Clear(). The cache keys on the
// exact path string, so relative and absolute paths to the same file
// occupy separate entries.
type PageCache struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

// NewPageCache creates an empty cache ready for concurrent use.
func NewPageCache() *PageCache {
	return &PageCache{
		pages: make(map[string]*Page),
	}
}

// Load returns the cached page for path, decoding and validating it on
// first use. Supported formats are PNG, JPEG, and GIF.
func (c *PageCache) Load(path string) (*Page, error) {
	c.mu.RLock()
	if p, ok := c.pages[path]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}

	page, err := FromImage(img)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pages[path] = page
	c.mu.Unlock()

	return page, nil
}

// Clear removes all pages from the cache.
func (c *PageCache) Clear() {
	c.mu.Lock()
	c.pages = make(map[string]*Page)
	c.mu.Unlock()
}

// Evict removes a single page from the cache by its path.
func (c *PageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.pages, path)
	c.mu.Unlock()
}

// PageInfo contains metadata about a loaded drawing page.
type PageInfo struct {
	// Width is the page width in pixels.
	Width int `json:"width"`

	// Height is the page height in pixels.
	Height int `json:"height"`

	// Channels is the channel count of the pixel layout (1, 3, or 4).
	Channels int `json:"channels"`

	// Format is the detected file format: "png", "jpeg", "gif", or
	// "unknown". Detection is by file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadPageInfo loads a page through the cache and reports its metadata.
func LoadPageInfo(cache *PageCache, path string) (*PageInfo, error) {
	page, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	return &PageInfo{
		Width:         page.Width(),
		Height:        page.Height(),
		Channels:      page.Channels(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
