// Package tools implements the MCP tool handlers exposed by the server.
//
// Upstream failures are reported inside the tool result rather than as
// protocol errors, so the calling model can read them as data: operations
// returning a collection produce a single-element list holding an error
// object, operations returning an object produce the error object itself.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// jsonResult marshals v into a single text content block.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(msg string) (*mcp.CallToolResult, any, error) {
	return jsonResult(map[string]string{"error": msg})
}

func errorListResult(msg string) (*mcp.CallToolResult, any, error) {
	return jsonResult([]map[string]string{{"error": msg}})
}
