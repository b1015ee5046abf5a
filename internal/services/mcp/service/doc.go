// Package service wires MCP transports to the domain tool handlers.
//
// It runs MCP over stdio or streamable HTTP and holds the gRPC connection to
// the roller server shared by every handler.
package service
