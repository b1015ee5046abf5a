// Package server parses roller server flags and launches the service.
package server

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/troller/internal/platform/cmd"
	rollerserver "github.com/louisbranch/troller/internal/services/roller/app"
)

// Config holds server command configuration.
type Config struct {
	Port int `env:"TROLLER_SERVER_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.Load(fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.IntVar(&cfg.Port, "port", cfg.Port, "The roller gRPC server port")
	})
}

// Run starts the roller gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.Run(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		return rollerserver.Run(ctx, cfg.Port)
	})
}
