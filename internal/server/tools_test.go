package server

import (
	"strings"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	if len(tools) != 12 {
		t.Fatalf("tool count: got %d, want 12", len(tools))
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("tool with empty name")
		}
		if !strings.HasPrefix(tool.Name, "plan_") {
			t.Errorf("tool %s missing plan_ prefix", tool.Name)
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
}

func TestGetToolDefinitions_EveryToolRequiresPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		required, ok := tool.InputSchema["required"].([]string)
		if !ok {
			t.Errorf("tool %s has no required list", tool.Name)
			continue
		}

		hasPath := false
		for _, name := range required {
			if name == "path" {
				hasPath = true
			}
		}
		if !hasPath {
			t.Errorf("tool %s does not require path", tool.Name)
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok || props["path"] == nil {
			t.Errorf("tool %s is missing the path property", tool.Name)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("unexpected tools type %T", result["tools"])
	}
	if len(tools) != 12 {
		t.Errorf("tool count: got %d, want 12", len(tools))
	}
}
