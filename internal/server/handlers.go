package server

import (
	"encoding/json"
	"fmt"

	"github.com/sitewise/orientation-mcp/internal/detect"
	"github.com/sitewise/orientation-mcp/internal/ocr"
	"github.com/sitewise/orientation-mcp/internal/orientation"
	"github.com/sitewise/orientation-mcp/internal/preprocess"
	"github.com/sitewise/orientation-mcp/internal/raster"
	"github.com/sitewise/orientation-mcp/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plan_load", "plan_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Page Information
	case "plan_load":
		return s.handlePlanLoad(args)
	case "plan_dimensions":
		return s.handlePlanDimensions(args)

	// Region Operations
	case "plan_crop":
		return s.handlePlanCrop(args)
	case "plan_crop_region":
		return s.handlePlanCropRegion(args)

	// Derived Representations
	case "plan_edge_map":
		return s.handlePlanEdgeMap(args)
	case "plan_binary_mask":
		return s.handlePlanBinaryMask(args)

	// Geometric Detection
	case "plan_detect_north":
		return s.handlePlanDetectNorth(args)
	case "plan_detect_walls":
		return s.handlePlanDetectWalls(args)
	case "plan_estimate_rotation":
		return s.handlePlanEstimateRotation(args)
	case "plan_analyze":
		return s.handlePlanAnalyze(args)

	// Inspection Helpers
	case "plan_overlay":
		return s.handlePlanOverlay(args)
	case "plan_read_labels":
		return s.handlePlanReadLabels(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Page Information Handlers ===

type planLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePlanLoad(args json.RawMessage) (interface{}, error) {
	var a planLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadPageInfo(s.cache, a.Path)
}

// DimensionsResult contains just the page extent.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handlePlanDimensions(args json.RawMessage) (interface{}, error) {
	var a planLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: page.Width(), Height: page.Height()}, nil
}

// === Region Operation Handlers ===

type planCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handlePlanCrop(args json.RawMessage) (interface{}, error) {
	var a planCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return render.Crop(page.Image(), a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type planCropRegionArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handlePlanCropRegion(args json.RawMessage) (interface{}, error) {
	var a planCropRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return render.CropRegion(page.Image(), a.Region, a.Scale)
}

// === Derived Representation Handlers ===

type planEdgeMapArgs struct {
	Path          string `json:"path"`
	ThresholdLow  int    `json:"threshold_low"`
	ThresholdHigh int    `json:"threshold_high"`
}

func (s *Server) handlePlanEdgeMap(args json.RawMessage) (interface{}, error) {
	var a planEdgeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = s.cfg.EdgeThresholdLow
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = s.cfg.EdgeThresholdHigh
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	edges := preprocess.BuildEdgeMap(page, a.ThresholdLow, a.ThresholdHigh)
	return render.EdgeMapImage(edges)
}

func (s *Server) handlePlanBinaryMask(args json.RawMessage) (interface{}, error) {
	var a planLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	mask := preprocess.BuildBinaryMask(page)
	return render.MaskImage(mask)
}

// === Geometric Detection Handlers ===

type planDetectNorthArgs struct {
	Path          string   `json:"path"`
	QuadrantOrder []string `json:"quadrant_order"`
}

func (s *Server) handlePlanDetectNorth(args json.RawMessage) (interface{}, error) {
	var a planDetectNorthArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cfg := s.cfg
	if len(a.QuadrantOrder) > 0 {
		cfg.QuadrantOrder = a.QuadrantOrder
	}
	return orientation.DetectNorth(page.Image(), cfg)
}

type planDetectWallsArgs struct {
	Path      string `json:"path"`
	MinLength int    `json:"min_length"`
}

// WallsResult lists the detected wall edges.
type WallsResult struct {
	Walls []detect.WallEdge `json:"walls"`
	Count int               `json:"count"`
}

func (s *Server) handlePlanDetectWalls(args json.RawMessage) (interface{}, error) {
	var a planDetectWallsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cfg := s.cfg
	if a.MinLength > 0 {
		cfg.MinWallLengthPx = a.MinLength
	}
	segments, err := orientation.DetectWalls(page.Image(), cfg)
	if err != nil {
		return nil, err
	}
	edges := orientation.WallEdges(segments)
	return &WallsResult{Walls: edges, Count: len(edges)}, nil
}

func (s *Server) handlePlanEstimateRotation(args json.RawMessage) (interface{}, error) {
	var a planLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return orientation.EstimateRotation(page.Image(), s.cfg)
}

type planAnalyzeArgs struct {
	Path          string   `json:"path"`
	QuadrantOrder []string `json:"quadrant_order"`
	MinWallLength int      `json:"min_wall_length"`
}

func (s *Server) handlePlanAnalyze(args json.RawMessage) (interface{}, error) {
	var a planAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cfg := s.cfg
	if len(a.QuadrantOrder) > 0 {
		cfg.QuadrantOrder = a.QuadrantOrder
	}
	if a.MinWallLength > 0 {
		cfg.MinWallLengthPx = a.MinWallLength
	}
	return orientation.Analyze(page.Image(), cfg)
}

// === Inspection Helper Handlers ===

type planOverlayArgs struct {
	Path        string `json:"path"`
	GridSpacing int    `json:"grid_spacing"`
}

func (s *Server) handlePlanOverlay(args json.RawMessage) (interface{}, error) {
	var a planOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	segments, err := orientation.DetectWalls(page.Image(), s.cfg)
	if err != nil {
		return nil, err
	}
	north, err := orientation.DetectNorth(page.Image(), s.cfg)
	if err != nil {
		return nil, err
	}

	return render.Overlay(page.Image(), segments, north, a.GridSpacing)
}

type planReadLabelsArgs struct {
	Path     string `json:"path"`
	X1       int    `json:"x1"`
	Y1       int    `json:"y1"`
	X2       int    `json:"x2"`
	Y2       int    `json:"y2"`
	Language string `json:"language"`
}

func (s *Server) handlePlanReadLabels(args json.RawMessage) (interface{}, error) {
	var a planReadLabelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = "eng"
	}
	page, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return ocr.ReadRegion(page.Image(), a.X1, a.Y1, a.X2, a.Y2, a.Language)
}
