package detect

import "math"

// Confidence is an ordered qualitative result-quality tier.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// rank orders tiers: none < low < medium < high.
func (c Confidence) rank() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether c is at or above the given tier.
func (c Confidence) AtLeast(other Confidence) bool {
	return c.rank() >= other.rank()
}

// Method names which inference path produced a detection.
const (
	MethodLines    = "lines"
	MethodContours = "contours"
	MethodBoth     = "both"
)

// Point is a 2D pixel coordinate, origin top-left, y increasing down.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LineSegment is a detected straight run of edge pixels. AngleDeg is
// the raw atan2 angle of End-Start in pixel coordinates, un-normalized.
type LineSegment struct {
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	Length   float64 `json:"length"`
	AngleDeg float64 `json:"angle_deg"`
}

// NorthDebug is the structured provenance record attached to a north
// indicator detection. Absent fields stay nil rather than zero so the
// serialized record distinguishes "not attempted" from "measured zero".
type NorthDebug struct {
	// Quadrant is the page quadrant the reported detection came from.
	Quadrant string `json:"quadrant,omitempty"`

	// ShaftAngle is the raw compass bearing from the line method.
	ShaftAngle *float64 `json:"shaft_angle,omitempty"`

	// ShaftLength is the pixel length of the detected shaft.
	ShaftLength *float64 `json:"shaft_length,omitempty"`

	// TipAngle is the raw compass bearing from the contour method.
	TipAngle *float64 `json:"tip_angle,omitempty"`

	// TipScore is the arrow-likeness score of the winning contour.
	TipScore *float64 `json:"tip_score,omitempty"`

	// DisagreementDeg is the circular difference between the two
	// methods when both produced an angle.
	DisagreementDeg *float64 `json:"disagreement_deg,omitempty"`
}

// Detection is the fused output of the north-indicator search for a
// whole page. Angle is a compass bearing in [0,360) and is nil exactly
// when Confidence is "none".
type Detection struct {
	Angle      *float64   `json:"angle"`
	Confidence Confidence `json:"confidence"`
	Method     *string    `json:"method"`
	Debug      NorthDebug `json:"debug"`
}

// WallEdge is a labeled candidate exterior wall. Angle is normalized to
// [0,180) since a wall at theta and theta+180 is the same physical
// edge; Perpendicular is the best-effort outward-normal bearing.
type WallEdge struct {
	Position      string  `json:"position"`
	Angle         float64 `json:"angle"`
	Perpendicular float64 `json:"perpendicular"`
}

// WallSegment pairs a WallEdge with the geometry the rotation
// estimator needs. Only the embedded WallEdge is serialized.
type WallSegment struct {
	WallEdge
	Start  Point   `json:"-"`
	End    Point   `json:"-"`
	Length float64 `json:"-"`
}

// RotationEstimate is the inferred dominant building orientation.
// Angle is in [0,180) and nil when Confidence is "none". ClusterStd is
// the angular standard deviation of the dominant cluster.
type RotationEstimate struct {
	Angle      *float64   `json:"angle"`
	Confidence Confidence `json:"confidence"`
	ClusterStd *float64   `json:"cluster_std"`
}

// bearingFromVector converts a pixel-space direction (y down) to a
// compass bearing: 0 = north/up, 90 = east/right. The vertical
// component is negated to move from raster to geometric coordinates,
// then bearing = (90 - angle) mod 360.
func bearingFromVector(dx, dy float64) float64 {
	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	bearing := math.Mod(90-angle, 360)
	if bearing < 0 {
		bearing += 360
	}
	return bearing
}

// normalizeAxial folds an angle in degrees into [0,180). Direction is
// irrelevant for an axis: theta and theta+180 normalize identically.
func normalizeAxial(angleDeg float64) float64 {
	a := math.Mod(angleDeg, 180)
	if a < 0 {
		a += 180
	}
	return a
}

// circularDiff returns the absolute angular difference between two
// bearings, in [0,180].
func circularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// circularMean averages two bearings along the shorter arc.
func circularMean(a, b float64) float64 {
	ar := a * math.Pi / 180
	br := b * math.Pi / 180
	m := math.Atan2(math.Sin(ar)+math.Sin(br), math.Cos(ar)+math.Cos(br)) * 180 / math.Pi
	m = math.Mod(m, 360)
	if m < 0 {
		m += 360
	}
	return m
}

func float64Ptr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
