// Package timeouts holds the durations shared by the troller binaries.
package timeouts

import "time"

const (
	// GRPCDial bounds connecting to the roller server and seeing it healthy.
	GRPCDial = 2 * time.Second
	// GRPCRequest bounds one roller call made by the CLI or the MCP bridge.
	GRPCRequest = 2 * time.Second
	// ReadHeader bounds reading HTTP request headers on the MCP transport.
	ReadHeader = 5 * time.Second
	// Shutdown bounds draining in-flight requests.
	Shutdown = 5 * time.Second
	// ClockPurge is the default interval between expired clock sweeps.
	ClockPurge = 10 * time.Minute
)
