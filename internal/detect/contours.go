package detect

import (
	"image"
	"math"

	"github.com/sitewise/orientation-mcp/internal/preprocess"
)

// Contour is a connected component of foreground pixels, in the
// deterministic order flood-fill visited them.
type Contour []Point

// FindContours groups connected foreground pixels of a mask region
// into contours using iterative flood-fill with 8-connectivity.
// Components smaller than minSize pixels are discarded as noise.
// Scan order and neighbor order are fixed, so the contour list is
// identical across invocations.
func FindContours(mask *preprocess.BinaryMask, region image.Rectangle, minSize int) []Contour {
	region = region.Intersect(mask.Bounds())
	width := region.Dx()
	height := region.Dy()
	if width <= 0 || height <= 0 {
		return nil
	}

	visited := make([]bool, width*height)
	contours := make([]Contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask.At(x+region.Min.X, y+region.Min.Y) || visited[y*width+x] {
				continue
			}

			contour := make(Contour, 0)
			stack := []Point{{X: x, Y: y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
					continue
				}
				if visited[p.Y*width+p.X] || !mask.At(p.X+region.Min.X, p.Y+region.Min.Y) {
					continue
				}

				visited[p.Y*width+p.X] = true
				contour = append(contour, Point{X: p.X + region.Min.X, Y: p.Y + region.Min.Y})

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
					}
				}
			}

			if len(contour) >= minSize {
				contours = append(contours, contour)
			}
		}
	}

	return contours
}

// blobAxis summarizes the mass distribution of a contour: centroid,
// principal axis from second-order image moments, elongation (major to
// minor variance ratio) and skewness of mass along the axis.
type blobAxis struct {
	centroidX  float64
	centroidY  float64
	angleRad   float64 // principal axis in pixel coords, ambiguous mod pi
	elongation float64
	skew       float64
	minT       float64 // extent along the axis relative to centroid
	maxT       float64
}

// contourAxis computes the principal-axis statistics of a contour.
// Returns false for degenerate blobs (too few points or near-zero
// variance) so callers can skip them instead of dividing by zero.
func contourAxis(c Contour) (blobAxis, bool) {
	n := float64(len(c))
	if len(c) < 8 {
		return blobAxis{}, false
	}

	var sumX, sumY float64
	for _, p := range c {
		sumX += float64(p.X)
		sumY += float64(p.Y)
	}
	cx := sumX / n
	cy := sumY / n

	var mxx, myy, mxy float64
	for _, p := range c {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		mxx += dx * dx
		myy += dy * dy
		mxy += dx * dy
	}
	mxx /= n
	myy /= n
	mxy /= n

	// Principal axis and eigenvalues of the covariance matrix.
	angle := 0.5 * math.Atan2(2*mxy, mxx-myy)
	common := (mxx + myy) / 2
	diff := math.Sqrt(((mxx-myy)/2)*((mxx-myy)/2) + mxy*mxy)
	major := common + diff
	minor := common - diff
	if major < 1e-9 {
		return blobAxis{}, false
	}
	if minor < 1e-3 {
		minor = 1e-3
	}

	// Mass distribution along the axis.
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	var sum2, sum3 float64
	minT := math.MaxFloat64
	maxT := -math.MaxFloat64
	for _, p := range c {
		t := (float64(p.X)-cx)*cosA + (float64(p.Y)-cy)*sinA
		sum2 += t * t
		sum3 += t * t * t
		if t < minT {
			minT = t
		}
		if t > maxT {
			maxT = t
		}
	}
	variance := sum2 / n
	if variance < 1e-9 {
		return blobAxis{}, false
	}
	sigma := math.Sqrt(variance)

	return blobAxis{
		centroidX:  cx,
		centroidY:  cy,
		angleRad:   angle,
		elongation: major / minor,
		skew:       (sum3 / n) / (sigma * sigma * sigma),
		minT:       minT,
		maxT:       maxT,
	}, true
}

// arrowScore rates how arrow-like a blob is: asymmetric mass along a
// distinctly elongated axis. Circles and rectangles score near zero,
// solid triangles and arrow glyphs score well above it.
func arrowScore(a blobAxis) float64 {
	return math.Abs(a.skew) * (1 - 1/math.Max(a.elongation, 1.01))
}

// tipDirection resolves which end of the principal axis the blob
// points toward, returning a unit direction in pixel coordinates.
//
// The width profile along the axis distinguishes the tip: walking in
// from the apex of a triangle the cross-section grows quickly, while
// walking in from a base or a shaft it stays flat. The end with the
// larger near-to-far growth ratio is the tip; a tie falls back to the
// upper end, since north markers overwhelmingly point up-ish.
func tipDirection(c Contour, a blobAxis) (float64, float64) {
	cosA := math.Cos(a.angleRad)
	sinA := math.Sin(a.angleRad)

	extent := a.maxT - a.minT
	const bins = 16
	if extent >= bins {
		counts := [bins]int{}
		ySum := [bins]float64{}
		for _, p := range c {
			t := (float64(p.X)-a.centroidX)*cosA + (float64(p.Y)-a.centroidY)*sinA
			idx := int((t - a.minT) / extent * bins)
			if idx < 0 {
				idx = 0
			}
			if idx >= bins {
				idx = bins - 1
			}
			counts[idx]++
			ySum[idx] += float64(p.Y)
		}

		growthLow := growthRatio(counts[0]+counts[1], counts[2]+counts[3])
		growthHigh := growthRatio(counts[bins-1]+counts[bins-2], counts[bins-3]+counts[bins-4])

		if math.Abs(growthLow-growthHigh) > 0.25 {
			if growthLow > growthHigh {
				return -cosA, -sinA
			}
			return cosA, sinA
		}

		// Ambiguous taper: point toward the end sitting higher on
		// the page.
		meanYLow := ySum[0] / math.Max(float64(counts[0]), 1)
		meanYHigh := ySum[bins-1] / math.Max(float64(counts[bins-1]), 1)
		if meanYLow <= meanYHigh {
			return -cosA, -sinA
		}
		return cosA, sinA
	}

	// Blob too small to profile; prefer the upward axis end.
	if sinA > 0 {
		return -cosA, -sinA
	}
	return cosA, sinA
}

func growthRatio(near, far int) float64 {
	if near < 1 {
		near = 1
	}
	return float64(far) / float64(near)
}
