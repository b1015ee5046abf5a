package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Context holds per-server defaults applied to later tool calls.
type Context struct {
	Namespace string `json:"namespace,omitempty"`
}

// SetContextInput represents the MCP tool input for setting context.
type SetContextInput struct {
	Namespace string `json:"namespace" jsonschema:"clock namespace used when a clock tool omits one"`
}

// SetContextResult represents the MCP tool output for setting context.
type SetContextResult struct {
	Context Context `json:"context" jsonschema:"current context"`
}

// SetContextTool defines the MCP tool schema for setting context.
func SetContextTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_context",
		Description: "Sets the default clock namespace for subsequent tool calls",
	}
}

// SetContextHandler stores the default namespace.
func SetContextHandler(setContext func(Context), getContext func() Context) mcp.ToolHandlerFor[SetContextInput, SetContextResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SetContextInput) (*mcp.CallToolResult, SetContextResult, error) {
		namespace := strings.TrimSpace(input.Namespace)
		if namespace == "" {
			return nil, SetContextResult{}, fmt.Errorf("namespace is required")
		}
		setContext(Context{Namespace: namespace})
		return nil, SetContextResult{Context: getContext()}, nil
	}
}

// ContextResource defines the readable current context.
func ContextResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "context",
		Title:       "Current context",
		Description: "Default namespace applied to clock tools",
		MIMEType:    "application/json",
		URI:         "context://current",
	}
}

// ContextResourceHandler returns the current context as JSON.
func ContextResourceHandler(getContext func() Context) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := "context://current"
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		data, err := json.MarshalIndent(getContext(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal context: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: uri, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	}
}

// resolveNamespace prefers the explicit namespace over the stored default.
func resolveNamespace(explicit string, getContext func() Context) (string, error) {
	if namespace := strings.TrimSpace(explicit); namespace != "" {
		return namespace, nil
	}
	if getContext != nil {
		if namespace := strings.TrimSpace(getContext().Namespace); namespace != "" {
			return namespace, nil
		}
	}
	return "", fmt.Errorf("namespace is required; pass namespace or call set_context first")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
