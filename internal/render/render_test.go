package render

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/sitewise/orientation-mcp/internal/detect"
	"github.com/sitewise/orientation-mcp/internal/preprocess"
	"github.com/sitewise/orientation-mcp/internal/raster"
)

// createTestImage creates a uniform RGBA image.
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// decodeResult decodes an ImageResult back into pixels.
func decodeResult(t *testing.T, result *ImageResult) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("invalid PNG payload: %v", err)
	}
	return img
}

func TestEdgeMapImage(t *testing.T) {
	img := createTestImage(60, 60, color.White)
	for x := 10; x < 50; x++ {
		img.Set(x, 30, color.Black)
		img.Set(x, 31, color.Black)
		img.Set(x, 32, color.Black)
	}
	page, err := raster.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	edges := preprocess.BuildEdgeMap(page, 50, 150)

	result, err := EdgeMapImage(edges)
	if err != nil {
		t.Fatalf("EdgeMapImage failed: %v", err)
	}
	if result.Width != 60 || result.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want 60x60", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("mime type: got %s", result.MimeType)
	}

	decoded := decodeResult(t, result)
	if decoded.Bounds().Dx() != 60 || decoded.Bounds().Dy() != 60 {
		t.Errorf("decoded dimensions: got %v", decoded.Bounds())
	}
}

func TestMaskImage(t *testing.T) {
	img := createTestImage(50, 50, color.White)
	for y := 15; y < 35; y++ {
		for x := 15; x < 35; x++ {
			img.Set(x, y, color.Black)
		}
	}
	page, err := raster.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	mask := preprocess.BuildBinaryMask(page)

	result, err := MaskImage(mask)
	if err != nil {
		t.Fatalf("MaskImage failed: %v", err)
	}

	decoded := decodeResult(t, result)
	r, _, _, _ := decoded.At(25, 25).RGBA()
	if r>>8 != 255 {
		t.Error("foreground should render white")
	}
	r, _, _, _ = decoded.At(2, 2).RGBA()
	if r>>8 != 0 {
		t.Error("background should render black")
	}
}

func TestOverlay(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	walls := []detect.WallSegment{
		{
			WallEdge: detect.WallEdge{Position: "top-center", Angle: 0, Perpendicular: 90},
			Start:    detect.Point{X: 10, Y: 20},
			End:      detect.Point{X: 90, Y: 20},
			Length:   80,
		},
		{
			WallEdge: detect.WallEdge{Position: "center-left", Angle: 90, Perpendicular: 180},
			Start:    detect.Point{X: 20, Y: 10},
			End:      detect.Point{X: 20, Y: 90},
			Length:   80,
		},
	}
	angle := 0.0
	north := &detect.Detection{
		Angle:      &angle,
		Confidence: detect.ConfidenceHigh,
		Debug:      detect.NorthDebug{Quadrant: detect.QuadrantBottomRight},
	}

	result, err := Overlay(img, walls, north, 25)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}

	decoded := decodeResult(t, result)

	// The wall stroke must appear over the white page.
	r, g, b, _ := decoded.At(50, 20).RGBA()
	if r>>8 == 255 && g>>8 == 255 && b>>8 == 255 {
		t.Error("expected a wall stroke at (50,20)")
	}

	// The grid line must appear too.
	r, g, b, _ = decoded.At(25, 5).RGBA()
	if r>>8 != 128 || g>>8 != 128 || b>>8 != 128 {
		t.Errorf("expected a gray grid pixel at (25,5), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestOverlay_NoDetections(t *testing.T) {
	img := createTestImage(40, 40, color.White)

	result, err := Overlay(img, nil, nil, 0)
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if result.Width != 40 || result.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 40x40", result.Width, result.Height)
	}
}

func TestWallPalette_DistinctColors(t *testing.T) {
	palette := wallPalette(8)
	if len(palette) != 8 {
		t.Fatalf("palette size: got %d, want 8", len(palette))
	}

	seen := make(map[color.RGBA]bool)
	for _, c := range palette {
		if seen[c] {
			t.Errorf("duplicate palette color %v", c)
		}
		seen[c] = true
	}
}
