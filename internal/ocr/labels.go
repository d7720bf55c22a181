// Package ocr reads text labels off a drawing page using Tesseract
// (via gosseract). It backs the server's label-reading tool so the
// reasoning client can check title-block text or the letter next to a
// detected marker. The deterministic detection engine never calls it.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Bounds is a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Label is one recognized word with its location and confidence.
type Label struct {
	// Text is the recognized content.
	Text string `json:"text"`

	// Confidence is the recognition confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds locates the word within the requested region, in page
	// coordinates.
	Bounds Bounds `json:"bounds"`
}

// RegionText is the result of reading one page region.
type RegionText struct {
	// FullText is all recognized text with original spacing.
	FullText string `json:"full_text"`

	// Labels lists the individual words.
	Labels []Label `json:"labels"`

	// Count is the number of words recognized.
	Count int `json:"count"`
}

// ReadRegion runs OCR over a rectangular region of the page.
func ReadRegion(img image.Image, x1, y1, x2, y2 int, language string) (*RegionText, error) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y || x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid OCR region (%d,%d)-(%d,%d)", x1, y1, x2, y2)
	}

	region := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	var buf bytes.Buffer
	if err := png.Encode(&buf, region); err != nil {
		return nil, fmt.Errorf("failed to encode OCR region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return nil, fmt.Errorf("failed to set OCR language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to load OCR region: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	labels := make([]Label, 0, len(boxes))
	for _, box := range boxes {
		labels = append(labels, Label{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X + x1,
				Y1: box.Box.Min.Y + y1,
				X2: box.Box.Max.X + x1,
				Y2: box.Box.Max.Y + y1,
			},
		})
	}

	return &RegionText{
		FullText: text,
		Labels:   labels,
		Count:    len(labels),
	}, nil
}
