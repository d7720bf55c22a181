package raster

import (
	"fmt"
	"image"
)

// InvalidInputError reports a page that cannot be processed at all:
// zero area or a channel layout the engine does not understand.
// It is the only error kind that crosses the engine boundary.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input page: %s", e.Reason)
}

// Page is a validated raster page ready for detection.
//
// A Page is immutable once constructed and carries no state beyond the
// decoded pixels: every detection call derives its own working buffers
// from it. FromImage is the only constructor, so a Page in hand is
// always non-degenerate.
type Page struct {
	img      image.Image
	width    int
	height   int
	channels int
}

// FromImage validates a decoded image and wraps it as a Page.
//
// Returns *InvalidInputError if the image has zero area or a channel
// layout outside the supported set (grayscale, RGB-like, RGBA-like).
func FromImage(img image.Image) (*Page, error) {
	if img == nil {
		return nil, &InvalidInputError{Reason: "nil image"}
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("zero-area page (%dx%d)", width, height)}
	}

	channels, err := channelCount(img)
	if err != nil {
		return nil, err
	}

	return &Page{
		img:      img,
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// channelCount maps the concrete image type to a channel count.
// Layouts without a sensible luminance interpretation are rejected.
func channelCount(img image.Image) (int, error) {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1, nil
	case *image.YCbCr, *image.Paletted:
		return 3, nil
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return 4, nil
	default:
		return 0, &InvalidInputError{Reason: fmt.Sprintf("unsupported channel layout %T", img)}
	}
}

// Width returns the page width in pixels.
func (p *Page) Width() int { return p.width }

// Height returns the page height in pixels.
func (p *Page) Height() int { return p.height }

// Channels returns the channel count of the underlying pixel layout.
func (p *Page) Channels() int { return p.channels }

// Image returns the underlying decoded image. Callers must not mutate it.
func (p *Page) Image() image.Image { return p.img }

// GrayAt returns the luminance of the pixel at (x, y) in page-local
// coordinates using ITU-R BT.601 weights, matching the grayscale
// conversion used throughout the detection pipeline.
func (p *Page) GrayAt(x, y int) uint8 {
	bounds := p.img.Bounds()
	r, g, b, _ := p.img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}
