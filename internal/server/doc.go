// Package server implements the MCP (Model Context Protocol) server for
// drawing-orientation analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the geometric
// sensing engine through the MCP protocol, so a semantic-reasoning client
// can query a rasterized architectural drawing and receive precise,
// reproducible geometry instead of eyeballing pixels.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 12 tools organized into categories:
//
// Page Information:
//   - plan_load: Load a drawing page and get metadata
//   - plan_dimensions: Get width and height
//
// Region Operations:
//   - plan_crop: Extract rectangular region
//   - plan_crop_region: Extract named region (top-left, center, etc.)
//
// Derived Representations:
//   - plan_edge_map: Render the edge map the line detectors consume
//   - plan_binary_mask: Render the Otsu foreground mask
//
// Geometric Detection:
//   - plan_detect_north: Locate the north indicator and its bearing
//   - plan_detect_walls: Extract candidate exterior wall segments
//   - plan_estimate_rotation: Cluster wall angles into a building rotation
//   - plan_analyze: Run the full pipeline and return the merged result
//
// Inspection Helpers:
//   - plan_overlay: Draw detections back onto the page
//   - plan_read_labels: OCR a region (title block, marker letters)
//
// # Page Caching
//
// The server maintains an in-memory cache of loaded pages. Pages are
// cached by path and reused across multiple tool calls, avoiding
// redundant disk I/O. The cache persists for the lifetime of the server
// process.
//
// # Determinism
//
// The detection tools are pure functions of their pixel input: calling
// plan_analyze twice on the same page yields byte-identical results.
// The cache only skips decoding; it never changes tool output.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A page with no detectable geometry is not an error: the detection
// tools report it as a "none" confidence tier in their normal result.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
