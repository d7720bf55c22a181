package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"
)

// createTestPage writes a flat PNG to a temp file and returns its path.
func createTestPage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp(t.TempDir(), "test-page-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode page: %v", err)
	}

	return tmpFile.Name()
}

func TestPageCache_Load(t *testing.T) {
	path := createTestPage(t, 100, 80, color.White)

	cache := NewPageCache()
	page, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if page.Width() != 100 || page.Height() != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", page.Width(), page.Height())
	}
}

func TestPageCache_LoadCached(t *testing.T) {
	path := createTestPage(t, 10, 10, color.White)

	cache := NewPageCache()
	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if first != second {
		t.Error("expected cached page on second load, got a new decode")
	}
}

func TestPageCache_LoadMissing(t *testing.T) {
	cache := NewPageCache()
	if _, err := cache.Load("/nonexistent/page.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPageCache_LoadNotAnImage(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "not-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString("this is not a PNG"); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	cache := NewPageCache()
	if _, err := cache.Load(tmpFile.Name()); err == nil {
		t.Fatal("expected error for non-image file")
	}
}

func TestPageCache_Evict(t *testing.T) {
	path := createTestPage(t, 10, 10, color.White)

	cache := NewPageCache()
	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(path)

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh decode after Evict")
	}
}

func TestPageCache_Clear(t *testing.T) {
	path := createTestPage(t, 10, 10, color.White)

	cache := NewPageCache()
	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load after Clear failed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh decode after Clear")
	}
}

func TestPageCache_ConcurrentLoad(t *testing.T) {
	path := createTestPage(t, 20, 20, color.White)
	cache := NewPageCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestLoadPageInfo(t *testing.T) {
	path := createTestPage(t, 120, 90, color.White)

	cache := NewPageCache()
	info, err := LoadPageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadPageInfo failed: %v", err)
	}

	if info.Width != 120 || info.Height != 90 {
		t.Errorf("dimensions: got %dx%d, want 120x90", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.Channels != 4 {
		t.Errorf("channels: got %d, want 4", info.Channels)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}
