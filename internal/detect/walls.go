package detect

import (
	"fmt"
	"math"

	"github.com/sitewise/orientation-mcp/internal/preprocess"
)

// WallParams are the tunables of the wall-edge extraction.
type WallParams struct {
	// MinLengthFrac scales the minimum segment length by the short
	// side of the page, filtering noise and interior detail.
	MinLengthFrac float64

	// MinLengthPx, when positive, overrides the fractional minimum
	// with an absolute pixel length (a caller-supplied hint).
	MinLengthPx int
}

// DetectWallEdges extracts candidate exterior wall segments from the
// edge map. Each retained segment gets its angle folded into [0,180),
// a 3x3 grid position label from its midpoint, and a best-effort
// outward-normal bearing. The returned order is detection order; an
// empty result is valid and means no walls were found.
func DetectWallEdges(edges *preprocess.EdgeMap, params WallParams) []WallSegment {
	short := edges.Width
	if edges.Height < short {
		short = edges.Height
	}

	minLen := params.MinLengthPx
	if minLen <= 0 {
		minLen = int(params.MinLengthFrac * float64(short))
	}
	if minLen < 8 {
		minLen = 8
	}

	lines := HoughLines(edges, edges.Bounds(), minLen)

	walls := make([]WallSegment, 0, len(lines))
	for _, l := range lines {
		angle := normalizeAxial(l.AngleDeg)
		perpendicular := math.Mod(angle+90, 360)

		midX := (l.Start.X + l.End.X) / 2
		midY := (l.Start.Y + l.End.Y) / 2

		walls = append(walls, WallSegment{
			WallEdge: WallEdge{
				Position:      positionLabel(midX, midY, edges.Width, edges.Height),
				Angle:         angle,
				Perpendicular: perpendicular,
			},
			Start:  l.Start,
			End:    l.End,
			Length: l.Length,
		})
	}

	return walls
}

// positionLabel names the cell of a 3x3 grid over the page that the
// point falls into, as "<row>-<col>".
func positionLabel(x, y, width, height int) string {
	col := "center"
	switch {
	case x < width/3:
		col = "left"
	case x >= 2*width/3:
		col = "right"
	}

	row := "center"
	switch {
	case y < height/3:
		row = "top"
	case y >= 2*height/3:
		row = "bottom"
	}

	return fmt.Sprintf("%s-%s", row, col)
}
