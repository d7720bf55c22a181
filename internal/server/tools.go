package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool: the page
// to operate on.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the rasterized drawing page (PNG, JPEG, or GIF)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Page Information
		{
			Name:        "plan_load",
			Description: "Load a drawing page and return its dimensions, channel layout, and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_dimensions",
			Description: "Get the width and height of a drawing page.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "plan_crop",
			Description: "Crop a rectangular region from the page and return it as base64 PNG. Use this to zoom into a marker or title block.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   map[string]interface{}{"type": "integer", "description": "Left edge X (0-based)"},
					"y1":   map[string]interface{}{"type": "integer", "description": "Top edge Y (0-based)"},
					"x2":   map[string]interface{}{"type": "integer", "description": "Right edge X (exclusive)"},
					"y2":   map[string]interface{}{"type": "integer", "description": "Bottom edge Y (exclusive)"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "plan_crop_region",
			Description: "Crop a named region of the page (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "region"},
			},
		},

		// Derived Representations
		{
			Name:        "plan_edge_map",
			Description: "Return the binary edge map the line detectors consume, as base64 PNG (edges white).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Low hysteresis threshold override (0-255)",
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "High hysteresis threshold override (0-255)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_binary_mask",
			Description: "Return the Otsu-thresholded foreground mask the contour detector consumes, as base64 PNG (ink white).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Geometric Detection
		{
			Name:        "plan_detect_north",
			Description: "Locate the north indicator on the page and report its compass bearing with confidence tier, method, and debug provenance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"quadrant_order": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Optional quadrant search priority override",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_detect_walls",
			Description: "Extract candidate exterior wall segments: angle in [0,180), 3x3 grid position label, and outward-normal bearing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"min_length": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum segment length in pixels (overrides the page-relative default)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_estimate_rotation",
			Description: "Infer the dominant building rotation by clustering wall angles, with confidence tier and cluster spread.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_analyze",
			Description: "Run the full orientation pipeline (north indicator, wall edges, building rotation) and return the merged result. Deterministic: the same page always yields the identical result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"quadrant_order": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Optional quadrant search priority override",
					},
					"min_wall_length": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum wall segment length in pixels (overrides the page-relative default)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Inspection Helpers
		{
			Name:        "plan_overlay",
			Description: "Return the page with detected walls and the north bearing drawn over it, optionally with a coordinate grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines; 0 disables the grid (default 0)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_read_labels",
			Description: "OCR a rectangular region of the page (title block text, the letter beside a marker).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   map[string]interface{}{"type": "integer"},
					"y1":   map[string]interface{}{"type": "integer"},
					"x2":   map[string]interface{}{"type": "integer"},
					"y2":   map[string]interface{}{"type": "integer"},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "OCR language hint (default 'eng')",
						"default":     "eng",
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
