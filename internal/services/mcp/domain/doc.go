// Package domain translates MCP tool calls into roller gRPC requests.
//
// Each tool maps to one DiceService or ClockService call and returns both a
// structured result and a short text rendering suitable for chat clients.
package domain
