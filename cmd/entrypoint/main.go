// Package main runs the roller server and MCP bridge in one container.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/troller/internal/cmd/supervisor"
	"github.com/louisbranch/troller/internal/platform/config"
)

func main() {
	cfg, err := supervisor.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ENTRYPOINT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := supervisor.Run(ctx, cfg); err != nil {
		stop()
		config.Exit(err)
	}
}
