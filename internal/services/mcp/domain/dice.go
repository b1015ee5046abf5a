package domain

import (
	"context"
	"fmt"
	"strings"

	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RngRequest represents optional seeding for a roll.
type RngRequest struct {
	Seed     string `json:"seed,omitempty" jsonschema:"decimal seed to replay a previous roll"`
	RollMode string `json:"roll_mode,omitempty" jsonschema:"LIVE or REPLAY"`
}

// RngResult reports how a roll was seeded.
type RngResult struct {
	SeedUsed   string `json:"seed_used" jsonschema:"seed used for the roll"`
	RngAlgo    string `json:"rng_algo" jsonschema:"random number generator algorithm"`
	SeedSource string `json:"seed_source" jsonschema:"SERVER or CLIENT"`
	RollMode   string `json:"roll_mode" jsonschema:"LIVE or REPLAY"`
}

// RollInput represents the MCP tool input for rolling dice.
type RollInput struct {
	Dice string      `json:"dice" jsonschema:"dice notation such as 'attack: 1d20 + 5, damage: 2d6'"`
	Rng  *RngRequest `json:"rng,omitempty" jsonschema:"optional rng configuration"`
}

// RollEntry is one labelled result.
type RollEntry struct {
	Name  string `json:"name" jsonschema:"label or Roll n"`
	Value string `json:"value" jsonschema:"rendered trace ending in => total"`
	Total int64  `json:"total" jsonschema:"numeric total"`
}

// RollResult represents the MCP tool output for rolling dice.
type RollResult struct {
	Results    []RollEntry `json:"results" jsonschema:"results in request order"`
	Normalized string      `json:"normalized" jsonschema:"canonical form of the request"`
	Rng        *RngResult  `json:"rng,omitempty" jsonschema:"rng details"`
}

// RollTool defines the MCP tool schema for rolling dice.
func RollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll",
		Description: "Rolls dice notation: NdM terms, h/l keep filters, + - * /, parentheses and comma-separated labelled rolls",
	}
}

// RollHandler evaluates dice notation through the dice service.
func RollHandler(client rollerv1.DiceServiceClient) mcp.ToolHandlerFor[RollInput, RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollInput) (*mcp.CallToolResult, RollResult, error) {
		if client == nil {
			return nil, RollResult{}, fmt.Errorf("dice client is not configured")
		}
		if strings.TrimSpace(input.Dice) == "" {
			return nil, RollResult{}, fmt.Errorf("dice is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		req := &rollerv1.RollRequest{Dice: input.Dice}
		if input.Rng != nil {
			req.Rng = &rollerv1.RngRequest{Seed: input.Rng.Seed, RollMode: input.Rng.RollMode}
		}
		response, err := client.Roll(runCtx, req)
		if err != nil {
			return nil, RollResult{}, callError("dice roll failed", err)
		}
		if response == nil {
			return nil, RollResult{}, fmt.Errorf("dice roll response is missing")
		}

		result := RollResult{
			Results:    make([]RollEntry, 0, len(response.Results)),
			Normalized: response.Normalized,
		}
		lines := make([]string, 0, len(response.Results))
		for _, entry := range response.Results {
			result.Results = append(result.Results, RollEntry{Name: entry.Name, Value: entry.Value, Total: entry.Total})
			lines = append(lines, entry.Name+": "+entry.Value)
		}
		if rng := response.Rng; rng != nil {
			result.Rng = &RngResult{
				SeedUsed:   rng.SeedUsed,
				RngAlgo:    rng.RngAlgo,
				SeedSource: rng.SeedSource,
				RollMode:   rng.RollMode,
			}
		}
		return textResult(strings.Join(lines, "\n")), result, nil
	}
}
