// Package preprocess derives the two working representations every
// detector consumes from a raster page: a binary edge map for line
// detection and a binary foreground mask for contour detection.
//
// Both derivations are pure functions of the input pixels. The edge map
// uses fixed gradient thresholds; the mask threshold is chosen from the
// page's own histogram (Otsu), so it adapts to page brightness but is
// still fully determined by the input.
package preprocess

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/sitewise/orientation-mcp/internal/raster"
)

// blurRadius is the Gaussian blur applied before gradient computation,
// enough to suppress scan noise without eroding thin wall lines.
const blurRadius = 1.4

// bitGrid is a packed binary raster shared by EdgeMap and BinaryMask.
type bitGrid struct {
	Width  int
	Height int
	bits   []bool
}

func newBitGrid(width, height int) bitGrid {
	return bitGrid{Width: width, Height: height, bits: make([]bool, width*height)}
}

// At reports whether the bit at (x, y) is set. Out-of-range
// coordinates read as false.
func (g *bitGrid) At(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.bits[y*g.Width+x]
}

func (g *bitGrid) set(x, y int) {
	g.bits[y*g.Width+x] = true
}

// Count returns the number of set bits.
func (g *bitGrid) Count() int {
	n := 0
	for _, b := range g.bits {
		if b {
			n++
		}
	}
	return n
}

// EdgeMap marks pixels where intensity changes sharply. Same
// dimensions as the source page; true means edge.
type EdgeMap struct {
	bitGrid
}

// BinaryMask marks foreground (ink) pixels after thresholding. Same
// dimensions as the source page; true means foreground.
type BinaryMask struct {
	bitGrid
}

// Bounds returns the grid extent as an image.Rectangle anchored at the
// origin, for region-restricted detection passes.
func (g *bitGrid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// BuildEdgeMap extracts a Canny-style edge map from the page.
//
// Pipeline: grayscale, Gaussian blur, Sobel gradients, non-maximum
// suppression, hysteresis thresholding. thresholdLow and thresholdHigh
// are in the 0-255 gradient-magnitude range and are fixed per call, not
// adapted to the page.
func BuildEdgeMap(page *raster.Page, thresholdLow, thresholdHigh int) *EdgeMap {
	width := page.Width()
	height := page.Height()

	gray := grayGrid(page)
	blurred := gaussianSmooth(gray, width, height)

	// Sobel gradients
	magnitude := make([][]float64, height)
	direction := make([][]float64, height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += blurred[py][px] * sobelX[ky+1][kx+1]
					gy += blurred[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: thin ridges to one pixel across the
	// gradient direction.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Hysteresis: strong edges always kept, weak edges kept when
	// adjacent to a strong edge.
	edges := &EdgeMap{bitGrid: newBitGrid(width, height)}
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				edges.set(x, y)
			} else if val >= lowThresh {
				hasStrongNeighbor := false
				for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
					for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							hasStrongNeighbor = true
						}
					}
				}
				if hasStrongNeighbor {
					edges.set(x, y)
				}
			}
		}
	}

	return edges
}

// BuildBinaryMask thresholds the page into foreground ink and
// background paper. The threshold level is chosen by Otsu's method on
// the grayscale histogram, so the split adapts to page brightness while
// remaining deterministic for a given input. Foreground is the dark
// side of the split.
func BuildBinaryMask(page *raster.Page) *BinaryMask {
	width := page.Width()
	height := page.Height()

	gray := imaging.Grayscale(page.Image())
	smoothed := blur.Gaussian(gray, blurRadius)

	var hist [256]int
	bounds := smoothed.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Grayscale input, so the red channel is the luminance.
			hist[smoothed.RGBAAt(x, y).R]++
		}
	}

	level := otsuLevel(hist, width*height)
	binary := segment.Threshold(smoothed, level)

	mask := &BinaryMask{bitGrid: newBitGrid(width, height)}
	bb := binary.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if binary.GrayAt(x+bb.Min.X, y+bb.Min.Y).Y == 0 {
				mask.set(x, y)
			}
		}
	}

	return mask
}

// otsuLevel picks the threshold maximizing between-class variance.
// Ties resolve to the lowest level so the choice is reproducible.
func otsuLevel(hist [256]int, total int) uint8 {
	var sum float64
	for t := 0; t < 256; t++ {
		sum += float64(t) * float64(hist[t])
	}

	var sumB, wB float64
	var best float64
	level := uint8(0)

	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])

		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			level = uint8(t)
		}
	}

	return level
}

// grayGrid converts the page to a float luminance grid in [0,1].
func grayGrid(page *raster.Page) [][]float64 {
	width := page.Width()
	height := page.Height()
	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = float64(page.GrayAt(x, y)) / 255.0
		}
	}
	return gray
}

// gaussianSmooth applies a 5x5 Gaussian kernel (sigma ~= 1.4) with
// clamped borders.
func gaussianSmooth(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
