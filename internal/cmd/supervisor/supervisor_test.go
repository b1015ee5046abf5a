package supervisor

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/louisbranch/troller/internal/platform/config"
)

const helperEnv = "TROLLER_SUPERVISOR_HELPER"

// TestMain lets the test binary stand in for the child processes.
func TestMain(m *testing.M) {
	switch os.Getenv(helperEnv) {
	case "exit3":
		os.Exit(3)
	case "block":
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGTERM)
		<-sig
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func helperConfig() Config {
	return Config{
		ServerBin:       os.Args[0],
		MCPBin:          os.Args[0],
		ServerPort:      18080,
		MCPHTTPAddr:     "127.0.0.1:18081",
		ShutdownTimeout: 5 * time.Second,
	}
}

func TestRunReportsChildExit(t *testing.T) {
	t.Setenv(helperEnv, "exit3")

	err := Run(context.Background(), helperConfig())
	if err == nil {
		t.Fatal("expected child exit error")
	}
	if code := config.ExitCode(err); code != 3 {
		t.Fatalf("exit code = %d, want 3 (%v)", code, err)
	}
}

func TestRunStopsChildrenOnCancel(t *testing.T) {
	t.Setenv(helperEnv, "block")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, helperConfig()) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for children to stop")
	}
}

func TestRunMissingBinary(t *testing.T) {
	cfg := helperConfig()
	cfg.ServerBin = "/nonexistent/troller-server"
	err := Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "start roller-server") {
		t.Fatalf("expected start error, got %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	t.Setenv("TROLLER_MCP_BIN", "/opt/mcp")
	fs := flag.NewFlagSet("entrypoint", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9000"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ServerBin != "/app/server" || cfg.MCPBin != "/opt/mcp" {
		t.Fatalf("unexpected binaries %q %q", cfg.ServerBin, cfg.MCPBin)
	}
	if cfg.ServerPort != 9000 || cfg.MCPHTTPAddr != "0.0.0.0:8081" {
		t.Fatalf("unexpected wiring %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout = %s", cfg.ShutdownTimeout)
	}
}
