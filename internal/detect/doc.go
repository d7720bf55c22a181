// Package detect implements the geometric inference passes of the
// orientation engine: line detection, contour analysis, the
// north-indicator search, wall-edge extraction, and rotation
// clustering.
//
// # Pipeline
//
// Detectors consume the derived representations produced by the
// preprocess package (edge map for lines, binary mask for contours)
// and emit plain result values:
//
//   - HoughLines: straight segments via the Hough line transform
//   - FindContours: connected foreground components via flood-fill
//   - DetectNorthIndicator: quadrant-priority marker search fusing a
//     line-based shaft method and a contour-based tip method
//   - DetectWallEdges: long segments with axial angles and 3x3 grid
//     position labels
//   - EstimateRotation: length-weighted 2-means over wall angles
//
// # Coordinate System
//
// All pixel coordinates use the standard image convention: origin
// top-left, x rightward, y downward. Compass bearings negate the
// vertical component first, so 0 degrees is up (north) and 90 degrees
// is right (east), clockwise.
//
// # Determinism
//
// Every function in this package is a pure function of its inputs.
// Candidate enumeration follows fixed scan orders, sorts carry full
// tie-breaks, and clustering is seeded from the input itself, so a
// given page always produces a byte-identical result list.
//
// # Degenerate Geometry
//
// Numerically degenerate cases (clustering with fewer than two
// angles, zero-variance blobs, zero-length vectors) degrade to
// explicit "none"-confidence values or skipped candidates. No input
// reachable through the public API causes a panic.
package detect
