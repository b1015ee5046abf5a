// Command mcp starts the MCP bridge over stdio or HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/louisbranch/troller/internal/cmd/mcp"
	"github.com/louisbranch/troller/internal/platform/config"
)

func main() {
	log.SetPrefix("[MCP] ")
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = mcpcmd.Run(ctx, cfg)
	stop()
	config.Exit(err)
}
