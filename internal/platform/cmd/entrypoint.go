// Package cmd holds the startup steps shared by the troller binaries.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/troller/internal/platform/config"
	"github.com/louisbranch/troller/internal/platform/otel"
)

// Service names reported as the OTel service.name.
const (
	ServiceServer = "troller-server"
	ServiceMCP    = "troller-mcp"
	ServiceCLI    = "troller"
)

// flushTimeout bounds the final span export after the service returns.
const flushTimeout = 5 * time.Second

// Load reads T from the environment, lets bind register flags defaulting to
// those values, and parses args. Flags win over the environment.
func Load[T any](fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) (T, error) {
	var zero T
	if fs == nil {
		return zero, errors.New("flag set is required")
	}
	cfg, err := config.Load[T]()
	if err != nil {
		return zero, err
	}
	if bind != nil {
		bind(fs, &cfg)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return zero, err
	}
	return cfg, nil
}

// Run installs tracing for service, calls run, then flushes spans.
func Run(ctx context.Context, service string, run func(context.Context) error) error {
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s: flush traces: %v", service, err)
		}
	}()
	return run(ctx)
}
