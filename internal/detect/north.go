package detect

import (
	"image"

	"github.com/sitewise/orientation-mcp/internal/preprocess"
)

// Quadrant names, matching the page regions the search walks.
const (
	QuadrantBottomRight = "bottom-right"
	QuadrantBottomLeft  = "bottom-left"
	QuadrantTopRight    = "top-right"
	QuadrantTopLeft     = "top-left"
)

// DefaultQuadrantOrder reflects where north markers conventionally sit
// on architectural sheets: the lower corners first. This is a corpus
// heuristic, not a geometric law, hence configurable.
func DefaultQuadrantOrder() []string {
	return []string{QuadrantBottomRight, QuadrantBottomLeft, QuadrantTopRight, QuadrantTopLeft}
}

// NorthParams are the tunables of the north-indicator search.
type NorthParams struct {
	// QuadrantOrder is the priority order of page quadrants.
	QuadrantOrder []string

	// AgreementWindowDeg is the maximum circular difference at which
	// the two methods are considered to corroborate each other.
	AgreementWindowDeg float64

	// MinShaftFrac scales the minimum shaft length by the short side
	// of the quadrant being searched.
	MinShaftFrac float64

	// MinTipArea is the smallest contour (in pixels) considered as a
	// marker tip candidate.
	MinTipArea int

	// MinTipScore is the arrow-likeness score a contour must reach.
	MinTipScore float64
}

// DetectNorthIndicator searches the page for a directional marker and
// reports its pointing angle as a compass bearing.
//
// Quadrants are searched in priority order. In each, the shaft method
// takes the longest detected line and the tip method takes the most
// arrow-like contour's oriented principal axis. Agreement within the
// window fuses to a high-confidence mean; a single succeeding method
// yields medium confidence; if every quadrant comes up empty the
// result is confidence "none" with no angle. The first high-confidence
// quadrant wins; otherwise the first usable quadrant in priority order
// is reported.
func DetectNorthIndicator(edges *preprocess.EdgeMap, mask *preprocess.BinaryMask, params NorthParams) Detection {
	order := params.QuadrantOrder
	if len(order) == 0 {
		order = DefaultQuadrantOrder()
	}

	var fallback *Detection

	for _, name := range order {
		rect, ok := quadrantRect(name, edges.Width, edges.Height)
		if !ok {
			continue
		}

		shaft, shaftOK := detectShaft(edges, rect, params)
		tip, tipOK := detectTip(mask, rect, params)

		switch {
		case shaftOK && tipOK:
			diff := circularDiff(shaft.bearing, tip.bearing)
			if diff <= params.AgreementWindowDeg {
				return Detection{
					Angle:      float64Ptr(circularMean(shaft.bearing, tip.bearing)),
					Confidence: ConfidenceHigh,
					Method:     stringPtr(MethodBoth),
					Debug: NorthDebug{
						Quadrant:    name,
						ShaftAngle:  float64Ptr(shaft.bearing),
						ShaftLength: float64Ptr(shaft.length),
						TipAngle:    float64Ptr(tip.bearing),
						TipScore:    float64Ptr(tip.score),
					},
				}
			}
			// The methods disagree. The tip carries direction
			// intrinsically, so prefer it, cap confidence, and
			// record both raw angles for the consumer.
			if fallback == nil {
				fallback = &Detection{
					Angle:      float64Ptr(tip.bearing),
					Confidence: ConfidenceMedium,
					Method:     stringPtr(MethodContours),
					Debug: NorthDebug{
						Quadrant:        name,
						ShaftAngle:      float64Ptr(shaft.bearing),
						ShaftLength:     float64Ptr(shaft.length),
						TipAngle:        float64Ptr(tip.bearing),
						TipScore:        float64Ptr(tip.score),
						DisagreementDeg: float64Ptr(diff),
					},
				}
			}

		case shaftOK:
			if fallback == nil {
				fallback = &Detection{
					Angle:      float64Ptr(shaft.bearing),
					Confidence: ConfidenceMedium,
					Method:     stringPtr(MethodLines),
					Debug: NorthDebug{
						Quadrant:    name,
						ShaftAngle:  float64Ptr(shaft.bearing),
						ShaftLength: float64Ptr(shaft.length),
					},
				}
			}

		case tipOK:
			if fallback == nil {
				fallback = &Detection{
					Angle:      float64Ptr(tip.bearing),
					Confidence: ConfidenceMedium,
					Method:     stringPtr(MethodContours),
					Debug: NorthDebug{
						Quadrant: name,
						TipAngle: float64Ptr(tip.bearing),
						TipScore: float64Ptr(tip.score),
					},
				}
			}
		}
	}

	if fallback != nil {
		return *fallback
	}
	return Detection{Confidence: ConfidenceNone}
}

type shaftResult struct {
	bearing float64
	length  float64
}

// detectShaft finds the longest line in the quadrant and orients it.
// An arrowhead at either endpoint decides the pointing direction;
// failing that the upper endpoint is assumed to be the tip.
func detectShaft(edges *preprocess.EdgeMap, rect image.Rectangle, params NorthParams) (shaftResult, bool) {
	short := rect.Dx()
	if rect.Dy() < short {
		short = rect.Dy()
	}
	minLen := int(params.MinShaftFrac * float64(short))
	if minLen < 8 {
		minLen = 8
	}

	lines := HoughLines(edges, rect, minLen)
	if len(lines) == 0 {
		return shaftResult{}, false
	}

	best := lines[0]
	for _, l := range lines[1:] {
		if l.Length > best.Length {
			best = l
		}
	}

	tip, other := best.End, best.Start
	switch {
	case hasArrowHead(edges, best.End.X, best.End.Y, best.Start.X, best.Start.Y):
		tip, other = best.End, best.Start
	case hasArrowHead(edges, best.Start.X, best.Start.Y, best.End.X, best.End.Y):
		tip, other = best.Start, best.End
	case best.Start.Y < best.End.Y:
		tip, other = best.Start, best.End
	}

	bearing := bearingFromVector(float64(tip.X-other.X), float64(tip.Y-other.Y))
	return shaftResult{bearing: bearing, length: best.Length}, true
}

type tipResult struct {
	bearing float64
	score   float64
}

// detectTip finds the most arrow-like contour in the quadrant and
// derives a bearing from its oriented principal axis.
func detectTip(mask *preprocess.BinaryMask, rect image.Rectangle, params NorthParams) (tipResult, bool) {
	minArea := params.MinTipArea
	if minArea < 8 {
		minArea = 8
	}

	contours := FindContours(mask, rect, minArea)

	bestScore := 0.0
	var bestContour Contour
	var bestAxis blobAxis
	for _, c := range contours {
		axis, ok := contourAxis(c)
		if !ok {
			continue
		}
		if score := arrowScore(axis); score > bestScore {
			bestScore = score
			bestContour = c
			bestAxis = axis
		}
	}

	if bestContour == nil || bestScore < params.MinTipScore {
		return tipResult{}, false
	}

	dx, dy := tipDirection(bestContour, bestAxis)
	return tipResult{bearing: bearingFromVector(dx, dy), score: bestScore}, true
}

// quadrantRect maps a quadrant name to its page region.
func quadrantRect(name string, width, height int) (image.Rectangle, bool) {
	midX := width / 2
	midY := height / 2
	switch name {
	case QuadrantTopLeft:
		return image.Rect(0, 0, midX, midY), true
	case QuadrantTopRight:
		return image.Rect(midX, 0, width, midY), true
	case QuadrantBottomLeft:
		return image.Rect(0, midY, midX, height), true
	case QuadrantBottomRight:
		return image.Rect(midX, midY, width, height), true
	default:
		return image.Rectangle{}, false
	}
}
