// Command server starts the roller gRPC server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	servercmd "github.com/louisbranch/troller/internal/cmd/server"
	"github.com/louisbranch/troller/internal/platform/config"
)

func main() {
	log.SetPrefix("[SERVER] ")
	cfg, err := servercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = servercmd.Run(ctx, cfg)
	stop()
	config.Exit(err)
}
