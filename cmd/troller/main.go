// Package main runs the troller command-line client.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	trollercmd "github.com/louisbranch/troller/internal/cmd/troller"
	"github.com/louisbranch/troller/internal/platform/config"
)

func main() {
	log.SetPrefix("[TROLLER] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trollercmd.NewApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		stop()
		config.Exit(err)
	}
}
