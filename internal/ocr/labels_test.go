package ocr

import (
	"image"
	"testing"
)

// OCR itself needs a Tesseract install, so tests stick to the region
// validation that runs before the engine is touched.

func TestReadRegion_OutOfBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	if _, err := ReadRegion(img, 0, 0, 60, 40, "eng"); err == nil {
		t.Error("expected error for region beyond the right edge")
	}
	if _, err := ReadRegion(img, -5, 0, 40, 40, "eng"); err == nil {
		t.Error("expected error for negative origin")
	}
}

func TestReadRegion_DegenerateRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	if _, err := ReadRegion(img, 20, 10, 20, 40, "eng"); err == nil {
		t.Error("expected error for zero-width region")
	}
	if _, err := ReadRegion(img, 10, 40, 40, 10, "eng"); err == nil {
		t.Error("expected error for inverted region")
	}
}
