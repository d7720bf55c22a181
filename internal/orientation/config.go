package orientation

import (
	"os"
	"strconv"
	"strings"

	"github.com/sitewise/orientation-mcp/internal/detect"
)

// Config carries every empirically chosen threshold of the engine as a
// named, overridable parameter. The defaults were tuned on scanned
// architectural sheets; none of them is derived from a model, so
// callers with a different corpus are expected to adjust them.
type Config struct {
	// EdgeThresholdLow and EdgeThresholdHigh are the fixed hysteresis
	// thresholds (0-255) of the edge-map extraction.
	EdgeThresholdLow  int
	EdgeThresholdHigh int

	// AgreementWindowDeg is the maximum difference at which the two
	// north-indicator methods corroborate each other.
	AgreementWindowDeg float64

	// MinShaftLengthFrac scales the minimum marker-shaft length by
	// the short side of the searched quadrant.
	MinShaftLengthFrac float64

	// MinTipArea and MinTipScore gate marker-tip contour candidates.
	MinTipArea  int
	MinTipScore float64

	// MinWallLengthFrac scales the minimum wall-segment length by the
	// short side of the page.
	MinWallLengthFrac float64

	// MinWallLengthPx, when positive, overrides MinWallLengthFrac
	// with an absolute pixel length (per-call hint).
	MinWallLengthPx int

	// ClusterSpreadMaxDeg is the dominant-cluster standard deviation
	// below which the rotation estimate is high confidence.
	ClusterSpreadMaxDeg float64

	// QuadrantOrder is the north-indicator search priority.
	QuadrantOrder []string
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		EdgeThresholdLow:    50,
		EdgeThresholdHigh:   150,
		AgreementWindowDeg:  20,
		MinShaftLengthFrac:  0.15,
		MinTipArea:          30,
		MinTipScore:         0.08,
		MinWallLengthFrac:   0.12,
		ClusterSpreadMaxDeg: 5,
		QuadrantOrder:       detect.DefaultQuadrantOrder(),
	}
}

// FromEnv overlays ORIENT_MCP_* environment variables onto a config.
// Unset or unparsable variables leave the base value untouched.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := envInt("ORIENT_MCP_EDGE_THRESHOLD_LOW"); ok {
		cfg.EdgeThresholdLow = v
	}
	if v, ok := envInt("ORIENT_MCP_EDGE_THRESHOLD_HIGH"); ok {
		cfg.EdgeThresholdHigh = v
	}
	if v, ok := envFloat("ORIENT_MCP_AGREEMENT_WINDOW_DEG"); ok {
		cfg.AgreementWindowDeg = v
	}
	if v, ok := envFloat("ORIENT_MCP_MIN_SHAFT_LENGTH_FRAC"); ok {
		cfg.MinShaftLengthFrac = v
	}
	if v, ok := envInt("ORIENT_MCP_MIN_TIP_AREA"); ok {
		cfg.MinTipArea = v
	}
	if v, ok := envFloat("ORIENT_MCP_MIN_TIP_SCORE"); ok {
		cfg.MinTipScore = v
	}
	if v, ok := envFloat("ORIENT_MCP_MIN_WALL_LENGTH_FRAC"); ok {
		cfg.MinWallLengthFrac = v
	}
	if v, ok := envFloat("ORIENT_MCP_CLUSTER_SPREAD_MAX_DEG"); ok {
		cfg.ClusterSpreadMaxDeg = v
	}
	if v := os.Getenv("ORIENT_MCP_QUADRANT_ORDER"); v != "" {
		order := make([]string, 0, 4)
		for _, q := range strings.Split(v, ",") {
			order = append(order, strings.TrimSpace(q))
		}
		cfg.QuadrantOrder = order
	}
	return cfg
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envFloat(name string) (float64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
