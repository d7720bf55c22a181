package render

import (
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createTestImage(100, 80, color.White)

	result, err := Crop(img, 10, 10, 60, 40, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 50 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 50x30", result.Width, result.Height)
	}
}

func TestCrop_Scaled(t *testing.T) {
	img := createTestImage(100, 100, color.White)

	result, err := Crop(img, 0, 0, 50, 50, 2.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("scaled dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := createTestImage(50, 50, color.White)

	if _, err := Crop(img, 0, 0, 60, 40, 1.0); err == nil {
		t.Error("expected error for region beyond the right edge")
	}
	if _, err := Crop(img, -5, 0, 40, 40, 1.0); err == nil {
		t.Error("expected error for negative origin")
	}
}

func TestCrop_InvertedRegion(t *testing.T) {
	img := createTestImage(50, 50, color.White)

	if _, err := Crop(img, 40, 10, 10, 40, 1.0); err == nil {
		t.Error("expected error for x1 >= x2")
	}
	if _, err := Crop(img, 10, 40, 40, 10, 1.0); err == nil {
		t.Error("expected error for y1 >= y2")
	}
}

func TestCropRegion(t *testing.T) {
	img := createTestImage(100, 80, color.White)

	tests := []struct {
		region        string
		width, height int
	}{
		{"top-left", 50, 40},
		{"top-right", 50, 40},
		{"bottom-left", 50, 40},
		{"bottom-right", 50, 40},
		{"top-half", 100, 40},
		{"bottom-half", 100, 40},
		{"left-half", 50, 80},
		{"right-half", 50, 80},
		{"center", 50, 40},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			result, err := CropRegion(img, tt.region, 1.0)
			if err != nil {
				t.Fatalf("CropRegion failed: %v", err)
			}
			if result.Width != tt.width || result.Height != tt.height {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					result.Width, result.Height, tt.width, tt.height)
			}
		})
	}
}

func TestCropRegion_Unknown(t *testing.T) {
	img := createTestImage(50, 50, color.White)

	if _, err := CropRegion(img, "middle-ish", 1.0); err == nil {
		t.Error("expected error for unknown region name")
	}
}
