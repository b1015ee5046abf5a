package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ClockResult is the MCP view of a progress clock.
type ClockResult struct {
	Namespace string `json:"namespace" jsonschema:"owning namespace"`
	Name      string `json:"name" jsonschema:"clock name"`
	Title     string `json:"title" jsonschema:"display title"`
	Segments  int    `json:"segments" jsonschema:"total segments"`
	Filled    int    `json:"filled" jsonschema:"filled segments"`
	Complete  bool   `json:"complete" jsonschema:"whether every segment is filled"`
	Ephemeral bool   `json:"ephemeral" jsonschema:"whether the clock expires after a day"`
	Color     string `json:"color,omitempty" jsonschema:"fill color"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 creation time"`
}

// ClockAddInput represents the MCP tool input for creating a clock.
type ClockAddInput struct {
	Namespace string `json:"namespace,omitempty" jsonschema:"owning namespace; defaults to the context namespace"`
	Name      string `json:"name" jsonschema:"clock name"`
	Segments  int    `json:"segments" jsonschema:"total segments (1-255)"`
	Filled    int    `json:"filled,omitempty" jsonschema:"segments already filled"`
	Ephemeral bool   `json:"ephemeral,omitempty" jsonschema:"delete the clock after 24 hours"`
	Color     string `json:"color,omitempty" jsonschema:"html color name or hex code"`
}

// ClockBumpInput represents the MCP tool input for moving a clock.
type ClockBumpInput struct {
	Namespace string `json:"namespace,omitempty" jsonschema:"owning namespace; defaults to the context namespace"`
	Name      string `json:"name" jsonschema:"clock name"`
	Amount    *int   `json:"amount,omitempty" jsonschema:"segments to add; negative values unfill; defaults to 1"`
}

// ClockRefInput identifies one clock.
type ClockRefInput struct {
	Namespace string `json:"namespace,omitempty" jsonschema:"owning namespace; defaults to the context namespace"`
	Name      string `json:"name" jsonschema:"clock name"`
}

// ClockShowResult carries a clock and its SVG drawing.
type ClockShowResult struct {
	Clock ClockResult `json:"clock" jsonschema:"the clock"`
	Svg   string      `json:"svg" jsonschema:"SVG document"`
}

// ClockRemoveResult confirms a deletion.
type ClockRemoveResult struct {
	Namespace string `json:"namespace" jsonschema:"owning namespace"`
	Name      string `json:"name" jsonschema:"removed clock name"`
}

// ClockListInput represents the MCP tool input for listing clocks.
type ClockListInput struct {
	Namespace  string `json:"namespace,omitempty" jsonschema:"owning namespace; defaults to the context namespace"`
	PageSize   int    `json:"page_size,omitempty" jsonschema:"maximum clocks to return"`
	PageToken  string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	Filter     string `json:"filter,omitempty" jsonschema:"AIP-160 filter over name, segments, filled, ephemeral, color, created_at"`
	NamePrefix string `json:"name_prefix,omitempty" jsonschema:"only clocks whose name starts with this prefix"`
}

// ClockListResult represents one page of clocks.
type ClockListResult struct {
	Clocks        []ClockResult `json:"clocks" jsonschema:"clocks ordered by name"`
	NextPageToken string        `json:"next_page_token,omitempty" jsonschema:"token for the next page"`
}

// ClockAddTool defines the MCP tool schema for creating clocks.
func ClockAddTool() *mcp.Tool {
	return &mcp.Tool{Name: "clock_add", Description: "Creates a progress clock"}
}

// ClockBumpTool defines the MCP tool schema for bumping clocks.
func ClockBumpTool() *mcp.Tool {
	return &mcp.Tool{Name: "clock_bump", Description: "Fills or unfills segments of a progress clock"}
}

// ClockRemoveTool defines the MCP tool schema for deleting clocks.
func ClockRemoveTool() *mcp.Tool {
	return &mcp.Tool{Name: "clock_remove", Description: "Deletes a progress clock"}
}

// ClockShowTool defines the MCP tool schema for drawing clocks.
func ClockShowTool() *mcp.Tool {
	return &mcp.Tool{Name: "clock_show", Description: "Shows a progress clock and its SVG drawing"}
}

// ClockListTool defines the MCP tool schema for listing clocks.
func ClockListTool() *mcp.Tool {
	return &mcp.Tool{Name: "clock_list", Description: "Lists progress clocks in a namespace"}
}

// ClockAddHandler creates a clock.
func ClockAddHandler(client rollerv1.ClockServiceClient, getContext func() Context, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClockAddInput, ClockResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClockAddInput) (*mcp.CallToolResult, ClockResult, error) {
		if client == nil {
			return nil, ClockResult{}, fmt.Errorf("clock client is not configured")
		}
		namespace, err := resolveNamespace(input.Namespace, getContext)
		if err != nil {
			return nil, ClockResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.CreateClock(runCtx, &rollerv1.CreateClockRequest{
			Namespace: namespace,
			Name:      input.Name,
			Segments:  input.Segments,
			Filled:    input.Filled,
			Ephemeral: input.Ephemeral,
			Color:     input.Color,
		})
		if err != nil {
			return nil, ClockResult{}, callError("create clock failed", err)
		}
		if response == nil || response.Clock == nil {
			return nil, ClockResult{}, fmt.Errorf("create clock response is missing")
		}
		result := clockResultFromProto(response.Clock)
		notifyClock(ctx, notify, result)
		return textResult(clockSummary(result)), result, nil
	}
}

// ClockBumpHandler moves a clock.
func ClockBumpHandler(client rollerv1.ClockServiceClient, getContext func() Context, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClockBumpInput, ClockResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClockBumpInput) (*mcp.CallToolResult, ClockResult, error) {
		if client == nil {
			return nil, ClockResult{}, fmt.Errorf("clock client is not configured")
		}
		namespace, err := resolveNamespace(input.Namespace, getContext)
		if err != nil {
			return nil, ClockResult{}, err
		}
		amount := 1
		if input.Amount != nil {
			amount = *input.Amount
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.BumpClock(runCtx, &rollerv1.BumpClockRequest{
			Namespace: namespace,
			Name:      input.Name,
			Amount:    amount,
		})
		if err != nil {
			return nil, ClockResult{}, callError("bump clock failed", err)
		}
		if response == nil || response.Clock == nil {
			return nil, ClockResult{}, fmt.Errorf("bump clock response is missing")
		}
		result := clockResultFromProto(response.Clock)
		notifyClock(ctx, notify, result)
		return textResult(clockSummary(result)), result, nil
	}
}

// ClockRemoveHandler deletes a clock.
func ClockRemoveHandler(client rollerv1.ClockServiceClient, getContext func() Context, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClockRefInput, ClockRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClockRefInput) (*mcp.CallToolResult, ClockRemoveResult, error) {
		if client == nil {
			return nil, ClockRemoveResult{}, fmt.Errorf("clock client is not configured")
		}
		namespace, err := resolveNamespace(input.Namespace, getContext)
		if err != nil {
			return nil, ClockRemoveResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		if _, err := client.DeleteClock(runCtx, &rollerv1.DeleteClockRequest{Namespace: namespace, Name: input.Name}); err != nil {
			return nil, ClockRemoveResult{}, callError("delete clock failed", err)
		}
		result := ClockRemoveResult{Namespace: namespace, Name: strings.TrimSpace(input.Name)}
		notifyClock(ctx, notify, ClockResult{Namespace: result.Namespace, Name: result.Name})
		return textResult(fmt.Sprintf("Removed %s", result.Name)), result, nil
	}
}

// ClockShowHandler returns a clock and its SVG drawing.
func ClockShowHandler(client rollerv1.ClockServiceClient, getContext func() Context) mcp.ToolHandlerFor[ClockRefInput, ClockShowResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClockRefInput) (*mcp.CallToolResult, ClockShowResult, error) {
		if client == nil {
			return nil, ClockShowResult{}, fmt.Errorf("clock client is not configured")
		}
		namespace, err := resolveNamespace(input.Namespace, getContext)
		if err != nil {
			return nil, ClockShowResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.RenderClock(runCtx, &rollerv1.RenderClockRequest{Namespace: namespace, Name: input.Name})
		if err != nil {
			return nil, ClockShowResult{}, callError("show clock failed", err)
		}
		if response == nil || response.Clock == nil {
			return nil, ClockShowResult{}, fmt.Errorf("show clock response is missing")
		}
		result := ClockShowResult{Clock: clockResultFromProto(response.Clock), Svg: response.Svg}
		return textResult(clockSummary(result.Clock)), result, nil
	}
}

// ClockListHandler lists clocks in a namespace.
func ClockListHandler(client rollerv1.ClockServiceClient, getContext func() Context) mcp.ToolHandlerFor[ClockListInput, ClockListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClockListInput) (*mcp.CallToolResult, ClockListResult, error) {
		if client == nil {
			return nil, ClockListResult{}, fmt.Errorf("clock client is not configured")
		}
		namespace, err := resolveNamespace(input.Namespace, getContext)
		if err != nil {
			return nil, ClockListResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.ListClocks(runCtx, &rollerv1.ListClocksRequest{
			Namespace:  namespace,
			PageSize:   int32(input.PageSize),
			PageToken:  input.PageToken,
			Filter:     input.Filter,
			NamePrefix: input.NamePrefix,
		})
		if err != nil {
			return nil, ClockListResult{}, callError("list clocks failed", err)
		}
		if response == nil {
			return nil, ClockListResult{}, fmt.Errorf("list clocks response is missing")
		}

		result := ClockListResult{
			Clocks:        make([]ClockResult, 0, len(response.Clocks)),
			NextPageToken: response.NextPageToken,
		}
		lines := make([]string, 0, len(response.Clocks))
		for _, c := range response.Clocks {
			entry := clockResultFromProto(c)
			result.Clocks = append(result.Clocks, entry)
			lines = append(lines, clockSummary(entry))
		}
		text := strings.Join(lines, "\n")
		if text == "" {
			text = "No clocks"
		}
		return textResult(text), result, nil
	}
}

// ClockResourceTemplate defines the readable SVG form of a clock.
func ClockResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "clock",
		Title:       "Progress clock",
		Description: "SVG drawing of a progress clock. URI format: clock://{namespace}/{name}",
		MIMEType:    "image/svg+xml",
		URITemplate: "clock://{namespace}/{name}",
	}
}

// ClockResourceHandler returns a clock drawing as an SVG resource.
func ClockResourceHandler(client rollerv1.ClockServiceClient) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if client == nil {
			return nil, fmt.Errorf("clock client is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("clock URI is required; use clock://{namespace}/{name}")
		}
		uri := req.Params.URI
		namespace, name, err := parseClockURI(uri)
		if err != nil {
			return nil, err
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.RenderClock(runCtx, &rollerv1.RenderClockRequest{Namespace: namespace, Name: name})
		if err != nil {
			return nil, callError("read clock failed", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: uri, MIMEType: "image/svg+xml", Text: response.Svg},
			},
		}, nil
	}
}

// ClockURI builds the resource URI for a clock.
func ClockURI(namespace, name string) string {
	return "clock://" + url.PathEscape(namespace) + "/" + url.PathEscape(name)
}

func parseClockURI(uri string) (string, string, error) {
	rest, ok := strings.CutPrefix(uri, "clock://")
	if !ok {
		return "", "", fmt.Errorf("URI must start with clock://")
	}
	rawNamespace, rawName, ok := strings.Cut(rest, "/")
	if !ok || rawNamespace == "" || rawName == "" || strings.ContainsAny(rawName, "/?#") {
		return "", "", fmt.Errorf("URI must have the form clock://{namespace}/{name}")
	}
	namespace, err := url.PathUnescape(rawNamespace)
	if err != nil {
		return "", "", fmt.Errorf("parse clock namespace: %w", err)
	}
	name, err := url.PathUnescape(rawName)
	if err != nil {
		return "", "", fmt.Errorf("parse clock name: %w", err)
	}
	return namespace, name, nil
}

func notifyClock(ctx context.Context, notify ResourceUpdateNotifier, c ClockResult) {
	if notify == nil {
		return
	}
	notify(ctx, ClockURI(c.Namespace, c.Name))
}

func clockResultFromProto(c *rollerv1.Clock) ClockResult {
	return ClockResult{
		Namespace: c.Namespace,
		Name:      c.Name,
		Title:     c.Title,
		Segments:  c.Segments,
		Filled:    c.Filled,
		Complete:  c.Complete,
		Ephemeral: c.Ephemeral,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
}

func clockSummary(c ClockResult) string {
	summary := fmt.Sprintf("%s: %d/%d", c.Title, c.Filled, c.Segments)
	if c.Complete {
		summary += " (complete)"
	}
	return summary
}
