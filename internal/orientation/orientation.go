// Package orientation assembles the full geometric-sensing pipeline:
// preprocessing, the three detectors, and the serializable result the
// downstream reasoning consumer receives as ground truth.
//
// Analyze is a pure function of its pixel input: identical input bytes
// yield byte-identical serialized results on every invocation, with no
// shared state between calls. Callers may invoke it concurrently
// across independent pages without synchronization.
package orientation

import (
	"image"
	"math"

	"github.com/sitewise/orientation-mcp/internal/detect"
	"github.com/sitewise/orientation-mcp/internal/preprocess"
	"github.com/sitewise/orientation-mcp/internal/raster"
)

// Result is the sole contract with the downstream semantic-reasoning
// consumer. Every numeric field is a native float64; absent angles are
// nil, never sentinel values. Absence of a confident detection is a
// valid outcome, not an error.
type Result struct {
	NorthArrow       detect.Detection       `json:"north_arrow"`
	WallEdges        []detect.WallEdge      `json:"wall_edges"`
	BuildingRotation detect.RotationEstimate `json:"building_rotation"`
}

// Analyze runs the full pipeline over a decoded page image.
//
// The only error it returns is *raster.InvalidInputError for a
// zero-area page or an unsupported channel layout; every downstream
// outcome, including a page with no detectable geometry at all, is
// expressed as confidence tiers in the Result.
func Analyze(img image.Image, cfg Config) (*Result, error) {
	page, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}

	edges := preprocess.BuildEdgeMap(page, cfg.EdgeThresholdLow, cfg.EdgeThresholdHigh)
	mask := preprocess.BuildBinaryMask(page)

	north := detect.DetectNorthIndicator(edges, mask, northParams(cfg))
	walls := detect.DetectWallEdges(edges, wallParams(cfg))
	rotation := detect.EstimateRotation(walls, cfg.ClusterSpreadMaxDeg)

	return assemble(north, walls, rotation), nil
}

// DetectNorth runs only the preprocessing and north-indicator stages.
func DetectNorth(img image.Image, cfg Config) (*detect.Detection, error) {
	page, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	edges := preprocess.BuildEdgeMap(page, cfg.EdgeThresholdLow, cfg.EdgeThresholdHigh)
	mask := preprocess.BuildBinaryMask(page)
	north := detect.DetectNorthIndicator(edges, mask, northParams(cfg))
	rounded := roundDetection(north)
	return &rounded, nil
}

// DetectWalls runs only the preprocessing and wall-edge stages. It
// returns the full segments so callers (overlay rendering, rotation
// estimation) keep the endpoint geometry.
func DetectWalls(img image.Image, cfg Config) ([]detect.WallSegment, error) {
	page, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	edges := preprocess.BuildEdgeMap(page, cfg.EdgeThresholdLow, cfg.EdgeThresholdHigh)
	return detect.DetectWallEdges(edges, wallParams(cfg)), nil
}

// EstimateRotation runs preprocessing, wall extraction, and rotation
// clustering.
func EstimateRotation(img image.Image, cfg Config) (*detect.RotationEstimate, error) {
	walls, err := DetectWalls(img, cfg)
	if err != nil {
		return nil, err
	}
	rotation := roundRotation(detect.EstimateRotation(walls, cfg.ClusterSpreadMaxDeg))
	return &rotation, nil
}

func northParams(cfg Config) detect.NorthParams {
	return detect.NorthParams{
		QuadrantOrder:      cfg.QuadrantOrder,
		AgreementWindowDeg: cfg.AgreementWindowDeg,
		MinShaftFrac:       cfg.MinShaftLengthFrac,
		MinTipArea:         cfg.MinTipArea,
		MinTipScore:        cfg.MinTipScore,
	}
}

func wallParams(cfg Config) detect.WallParams {
	return detect.WallParams{
		MinLengthFrac: cfg.MinWallLengthFrac,
		MinLengthPx:   cfg.MinWallLengthPx,
	}
}

// assemble merges the detector outputs into the output structure,
// rounding every angle to 0.1 degree. Rounding keeps the serialized
// form stable and keeps library-native precision artifacts out of the
// contract.
func assemble(north detect.Detection, walls []detect.WallSegment, rotation detect.RotationEstimate) *Result {
	return &Result{
		NorthArrow:       roundDetection(north),
		WallEdges:        WallEdges(walls),
		BuildingRotation: roundRotation(rotation),
	}
}

// WallEdges strips segments down to their serializable form with
// rounded angles. The result is never nil, so an empty detection
// serializes as [] rather than null.
func WallEdges(walls []detect.WallSegment) []detect.WallEdge {
	edges := make([]detect.WallEdge, 0, len(walls))
	for _, w := range walls {
		edges = append(edges, detect.WallEdge{
			Position:      w.Position,
			Angle:         roundAxial(w.Angle),
			Perpendicular: round1(w.Perpendicular),
		})
	}
	return edges
}

func roundDetection(d detect.Detection) detect.Detection {
	d.Angle = roundBearingPtr(d.Angle)
	d.Debug.ShaftAngle = roundBearingPtr(d.Debug.ShaftAngle)
	d.Debug.TipAngle = roundBearingPtr(d.Debug.TipAngle)
	d.Debug.ShaftLength = roundPtr(d.Debug.ShaftLength)
	d.Debug.DisagreementDeg = roundPtr(d.Debug.DisagreementDeg)
	if d.Debug.TipScore != nil {
		v := math.Round(*d.Debug.TipScore*1000) / 1000
		d.Debug.TipScore = &v
	}
	return d
}

func roundRotation(r detect.RotationEstimate) detect.RotationEstimate {
	if r.Angle != nil {
		v := roundAxial(*r.Angle)
		r.Angle = &v
	}
	r.ClusterStd = roundPtr(r.ClusterStd)
	return r
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundAxial rounds a [0,180) angle without letting 179.96 escape the
// range as 180.0.
func roundAxial(v float64) float64 {
	r := round1(v)
	if r >= 180 {
		r = 0
	}
	return r
}

// roundBearing rounds a [0,360) bearing, folding 360.0 back to 0.
func roundBearing(v float64) float64 {
	r := round1(v)
	if r >= 360 {
		r = 0
	}
	return r
}

func roundBearingPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := roundBearing(*v)
	return &r
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round1(*v)
	return &r
}
