package detect

import (
	"image"
	"math"
	"sort"

	"github.com/sitewise/orientation-mcp/internal/preprocess"
)

// maxLines caps the number of segments returned per region; peaks
// beyond this are noise on any drawing this engine targets.
const maxLines = 50

// HoughLines finds straight segments in a region of the edge map using
// the Hough transform. Segments shorter than minLength are discarded.
//
// The returned order is deterministic: peaks are ranked by vote count
// with rho/theta tie-breaks, so identical inputs always produce the
// identical segment list.
func HoughLines(edges *preprocess.EdgeMap, region image.Rectangle, minLength int) []LineSegment {
	region = region.Intersect(edges.Bounds())
	width := region.Dx()
	height := region.Dy()
	if width <= 0 || height <= 0 || minLength <= 0 {
		return nil
	}

	// Edge points in region-local coordinates, in scan order.
	points := make([]Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.At(x+region.Min.X, y+region.Min.Y) {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	if len(points) < minLength {
		return nil
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for _, p := range points {
		for theta := 0; theta < numAngles; theta++ {
			angle := float64(theta) * math.Pi / 180.0
			rho := float64(p.X)*math.Cos(angle) + float64(p.Y)*math.Sin(angle)
			rhoIdx := int(rho) + maxDist
			if rhoIdx >= 0 && rhoIdx < maxDist*2 {
				accumulator[rhoIdx][theta]++
			}
		}
	}

	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)
	threshold := minLength / 2
	if threshold < 2 {
		threshold = 2
	}

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > accumulator[rhoIdx][theta] {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: accumulator[rhoIdx][theta]})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].rho != peaks[j].rho {
			return peaks[i].rho < peaks[j].rho
		}
		return peaks[i].theta < peaks[j].theta
	})

	lines := make([]LineSegment, 0)
	consumed := make([]bool, len(points))
	for _, pk := range peaks {
		if len(lines) >= maxLines {
			break
		}

		angle := float64(pk.theta) * math.Pi / 180.0
		rho := float64(pk.rho)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Gather the unclaimed points within the tolerance band of this
		// line and find the extremes along the line direction
		// (-sin, cos). A thick stroke votes for a fan of nearby
		// rho/theta peaks; claiming each accepted line's supporting
		// points keeps the weaker peaks of the fan from re-emitting the
		// same physical edge as skewed near-duplicates.
		var startX, startY, endX, endY int
		minT := math.MaxFloat64
		maxT := -math.MaxFloat64
		support := make([]int, 0)
		for i, p := range points {
			if consumed[i] {
				continue
			}
			dist := math.Abs(float64(p.X)*cosA + float64(p.Y)*sinA - rho)
			if dist >= 2.0 {
				continue
			}
			support = append(support, i)
			t := -float64(p.X)*sinA + float64(p.Y)*cosA
			if t < minT {
				minT = t
				startX, startY = p.X, p.Y
			}
			if t > maxT {
				maxT = t
				endX, endY = p.X, p.Y
			}
		}
		if len(support) < minLength {
			continue
		}

		dx := float64(endX - startX)
		dy := float64(endY - startY)
		length := math.Sqrt(dx*dx + dy*dy)
		if length < float64(minLength) {
			continue
		}

		for _, i := range support {
			consumed[i] = true
		}

		lines = append(lines, LineSegment{
			Start:    Point{X: startX + region.Min.X, Y: startY + region.Min.Y},
			End:      Point{X: endX + region.Min.X, Y: endY + region.Min.Y},
			Length:   length,
			AngleDeg: math.Atan2(dy, dx) * 180 / math.Pi,
		})
	}

	return lines
}

// hasArrowHead checks for arrowhead wings at the (endX, endY) end of a
// segment: edge pixels along the two directions rotated 45 degrees off
// the shaft, folding back from the endpoint.
func hasArrowHead(edges *preprocess.EdgeMap, endX, endY, otherX, otherY int) bool {
	dx := float64(endX - otherX)
	dy := float64(endY - otherY)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return false
	}
	dx /= length
	dy /= length

	const checkDist = 10
	cos45 := math.Cos(math.Pi / 4)
	sin45 := math.Sin(math.Pi / 4)

	leftX := dx*cos45 - dy*sin45
	leftY := dx*sin45 + dy*cos45
	rightX := dx*cos45 + dy*sin45
	rightY := -dx*sin45 + dy*cos45

	leftCount := 0
	rightCount := 0
	for d := 1; d <= checkDist; d++ {
		px := endX - int(float64(d)*leftX)
		py := endY - int(float64(d)*leftY)
		if edges.At(px, py) {
			leftCount++
		}

		px = endX - int(float64(d)*rightX)
		py = endY - int(float64(d)*rightY)
		if edges.At(px, py) {
			rightCount++
		}
	}

	return leftCount >= 3 && rightCount >= 3
}
