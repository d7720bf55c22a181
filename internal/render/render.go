// Package render produces the inspection images the server surface
// hands back to the reasoning client: derived-representation renders,
// annotated overlays, and region crops. Nothing here feeds back into
// detection.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/sitewise/orientation-mcp/internal/detect"
	"github.com/sitewise/orientation-mcp/internal/preprocess"
)

// ImageResult carries a rendered image as base64 PNG.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EdgeMapImage renders the edge map as a grayscale image, edges white.
func EdgeMapImage(edges *preprocess.EdgeMap) (*ImageResult, error) {
	out := image.NewGray(image.Rect(0, 0, edges.Width, edges.Height))
	for y := 0; y < edges.Height; y++ {
		for x := 0; x < edges.Width; x++ {
			if edges.At(x, y) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return encode(out)
}

// MaskImage renders the binary mask as a grayscale image, foreground
// ink white.
func MaskImage(mask *preprocess.BinaryMask) (*ImageResult, error) {
	out := image.NewGray(image.Rect(0, 0, mask.Width, mask.Height))
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(x, y) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return encode(out)
}

// Overlay draws the detected wall segments and north indicator over
// the page, with an optional coordinate grid. Wall colors come from a
// fixed HCL palette so the same detection always renders identically.
func Overlay(page image.Image, walls []detect.WallSegment, north *detect.Detection, gridSpacing int) (*ImageResult, error) {
	bounds := page.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), page, bounds.Min, draw.Src)

	if gridSpacing > 0 {
		drawGrid(out, gridSpacing)
	}

	palette := wallPalette(len(walls))
	for i, w := range walls {
		drawSegment(out, w.Start, w.End, palette[i])
	}

	if north != nil && north.Angle != nil {
		drawNorthRay(out, *north.Angle, north.Debug.Quadrant)
	}

	return encode(out)
}

// wallPalette generates n visually distinct colors by spacing hues
// evenly in HCL space.
func wallPalette(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	for i := range palette {
		hue := float64(i) * 360 / float64(n)
		r, g, b := colorful.Hcl(hue, 0.6, 0.5).Clamped().RGB255()
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return palette
}

// drawGrid overlays thin gray rulers every spacing pixels.
func drawGrid(img *image.RGBA, spacing int) {
	bounds := img.Bounds()
	gridColor := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for x := spacing; x < bounds.Dx(); x += spacing {
		for y := 0; y < bounds.Dy(); y++ {
			img.SetRGBA(x, y, gridColor)
		}
	}
	for y := spacing; y < bounds.Dy(); y += spacing {
		for x := 0; x < bounds.Dx(); x++ {
			img.SetRGBA(x, y, gridColor)
		}
	}
}

// drawSegment draws a 3px line between two points (Bresenham on the
// major axis with a perpendicular dab for thickness).
func drawSegment(img *image.RGBA, start, end detect.Point, c color.RGBA) {
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		setThick(img, start.X, start.Y, c)
		return
	}
	for i := 0.0; i <= steps; i++ {
		x := int(math.Round(float64(start.X) + dx*i/steps))
		y := int(math.Round(float64(start.Y) + dy*i/steps))
		setThick(img, x, y, c)
	}
}

func setThick(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

// drawNorthRay draws a red ray from the center of the quadrant the
// marker was found in, pointing along the detected bearing.
func drawNorthRay(img *image.RGBA, bearing float64, quadrant string) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	cx, cy := w/2, h/2
	switch quadrant {
	case detect.QuadrantTopLeft:
		cx, cy = w/4, h/4
	case detect.QuadrantTopRight:
		cx, cy = 3*w/4, h/4
	case detect.QuadrantBottomLeft:
		cx, cy = w/4, 3*h/4
	case detect.QuadrantBottomRight:
		cx, cy = 3*w/4, 3*h/4
	}

	length := float64(min(w, h)) * 0.15
	rad := bearing * math.Pi / 180
	// Bearing 0 is up on the page, so dy is the negated cosine.
	end := detect.Point{
		X: cx + int(math.Round(math.Sin(rad)*length)),
		Y: cy - int(math.Round(math.Cos(rad)*length)),
	}
	drawSegment(img, detect.Point{X: cx, Y: cy}, end, color.RGBA{R: 220, G: 30, B: 30, A: 255})
}

func encode(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
