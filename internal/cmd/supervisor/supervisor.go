// Package supervisor runs the roller server and the MCP bridge as child
// processes of a single container entrypoint.
package supervisor

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"

	entrypoint "github.com/louisbranch/troller/internal/platform/cmd"
)

// Config selects the child binaries and how they are wired together.
type Config struct {
	ServerBin       string        `env:"TROLLER_SERVER_BIN"       envDefault:"/app/server"`
	MCPBin          string        `env:"TROLLER_MCP_BIN"          envDefault:"/app/mcp"`
	ServerPort      int           `env:"TROLLER_SERVER_PORT"      envDefault:"8080"`
	MCPHTTPAddr     string        `env:"TROLLER_MCP_HTTP_ADDR"    envDefault:"0.0.0.0:8081"`
	ShutdownTimeout time.Duration `env:"TROLLER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseConfig loads the environment defaults and then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.Load(fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.ServerBin, "server-bin", cfg.ServerBin, "path to the roller server binary")
		fs.StringVar(&cfg.MCPBin, "mcp-bin", cfg.MCPBin, "path to the MCP bridge binary")
		fs.IntVar(&cfg.ServerPort, "port", cfg.ServerPort, "roller server port")
		fs.StringVar(&cfg.MCPHTTPAddr, "http-addr", cfg.MCPHTTPAddr, "MCP HTTP bind address")
	})
}

// group is a set of child processes sharing one exit channel.
type group struct {
	procs map[string]*os.Process
	exits chan childExit
	alive int
}

type childExit struct {
	name string
	err  error
}

func newGroup() *group {
	return &group{procs: map[string]*os.Process{}, exits: make(chan childExit, 2)}
}

// start launches bin with the supervisor's stdio and watches for its exit.
func (g *group) start(name, bin string, args ...string) error {
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	g.procs[name] = cmd.Process
	g.alive++
	go func() {
		g.exits <- childExit{name: name, err: cmd.Wait()}
	}()
	return nil
}

// stop sends SIGTERM to every child and waits for the live ones, killing
// whatever remains after timeout.
func (g *group) stop(timeout time.Duration) {
	for _, p := range g.procs {
		_ = p.Signal(syscall.SIGTERM)
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for g.alive > 0 {
		select {
		case <-g.exits:
			g.alive--
		case <-deadline.C:
			log.Printf("children still running after %s; killing", timeout)
			for _, p := range g.procs {
				_ = p.Kill()
			}
			return
		}
	}
}

// Run starts both children and blocks until ctx ends or one of them exits.
// Either way the others are stopped. A child exiting on its own is an error
// carrying its exit status.
func Run(ctx context.Context, cfg Config) error {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	port := strconv.Itoa(cfg.ServerPort)

	children := newGroup()
	if err := children.start("roller-server", cfg.ServerBin, "-port="+port); err != nil {
		return err
	}
	if err := children.start("mcp", cfg.MCPBin,
		"-transport=http",
		"-http-addr="+cfg.MCPHTTPAddr,
		"-addr=127.0.0.1:"+port,
	); err != nil {
		children.stop(timeout)
		return err
	}

	select {
	case <-ctx.Done():
		log.Printf("shutting down")
		children.stop(timeout)
		return nil
	case exit := <-children.exits:
		children.alive--
		log.Printf("%s exited: %v", exit.name, exit.err)
		children.stop(timeout)
		if exit.err == nil {
			return fmt.Errorf("%s exited unexpectedly", exit.name)
		}
		return fmt.Errorf("%s: %w", exit.name, exit.err)
	}
}
