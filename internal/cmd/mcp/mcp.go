// Package mcp configures the MCP bridge between agents and the roller server.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/troller/internal/platform/cmd"
	"github.com/louisbranch/troller/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr      string `env:"TROLLER_SERVER_ADDR"   envDefault:"localhost:8080"`
	HTTPAddr  string `env:"TROLLER_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"TROLLER_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig reads the environment, then flags, and checks the transport.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := entrypoint.Load(fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "roller server address")
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "bind address for the http transport")
		fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "stdio or http")
	})
	if err != nil {
		return Config{}, err
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	switch service.TransportKind(cfg.Transport) {
	case service.TransportStdio, service.TransportHTTP:
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// Run serves MCP until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.Run(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			GRPCAddr:  cfg.Addr,
			HTTPAddr:  cfg.HTTPAddr,
			Transport: service.TransportKind(cfg.Transport),
		})
	})
}
