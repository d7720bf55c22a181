package orientation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitewise/orientation-mcp/internal/detect"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 50, cfg.EdgeThresholdLow)
	assert.Equal(t, 150, cfg.EdgeThresholdHigh)
	assert.Equal(t, 20.0, cfg.AgreementWindowDeg)
	assert.Equal(t, 5.0, cfg.ClusterSpreadMaxDeg)
	assert.Equal(t, detect.DefaultQuadrantOrder(), cfg.QuadrantOrder)
	assert.Zero(t, cfg.MinWallLengthPx, "the absolute wall length is a per-call hint, off by default")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ORIENT_MCP_EDGE_THRESHOLD_LOW", "30")
	t.Setenv("ORIENT_MCP_EDGE_THRESHOLD_HIGH", "120")
	t.Setenv("ORIENT_MCP_AGREEMENT_WINDOW_DEG", "15.5")
	t.Setenv("ORIENT_MCP_CLUSTER_SPREAD_MAX_DEG", "3")
	t.Setenv("ORIENT_MCP_QUADRANT_ORDER", "top-left, bottom-right")

	cfg := FromEnv(DefaultConfig())

	assert.Equal(t, 30, cfg.EdgeThresholdLow)
	assert.Equal(t, 120, cfg.EdgeThresholdHigh)
	assert.Equal(t, 15.5, cfg.AgreementWindowDeg)
	assert.Equal(t, 3.0, cfg.ClusterSpreadMaxDeg)
	assert.Equal(t, []string{"top-left", "bottom-right"}, cfg.QuadrantOrder)
}

func TestFromEnv_UnsetLeavesDefaults(t *testing.T) {
	cfg := FromEnv(DefaultConfig())
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFromEnv_UnparsableIgnored(t *testing.T) {
	t.Setenv("ORIENT_MCP_EDGE_THRESHOLD_LOW", "not-a-number")
	t.Setenv("ORIENT_MCP_AGREEMENT_WINDOW_DEG", "wide")

	cfg := FromEnv(DefaultConfig())
	assert.Equal(t, 50, cfg.EdgeThresholdLow)
	assert.Equal(t, 20.0, cfg.AgreementWindowDeg)
}
