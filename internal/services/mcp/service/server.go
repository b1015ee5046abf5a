package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	platformgrpc "github.com/louisbranch/troller/internal/platform/grpc"
	"github.com/louisbranch/troller/internal/platform/timeouts"
	"github.com/louisbranch/troller/internal/services/mcp/domain"
	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	serverName    = "troller"
	serverVersion = "0.1.0"

	defaultHTTPAddr     = "localhost:8081"
	healthCheckInterval = 30 * time.Second
)

// rollerServices must be serving before tools are exposed.
var rollerServices = []string{rollerv1.DiceService_ServiceName, rollerv1.ClockService_ServiceName}

// TransportKind names an MCP transport.
type TransportKind string

const (
	TransportStdio TransportKind = "stdio"
	TransportHTTP  TransportKind = "http" // Streamable HTTP at /mcp.
)

// Config configures the MCP bridge.
type Config struct {
	GRPCAddr  string
	Transport TransportKind // Defaults to stdio.
	HTTPAddr  string        // Defaults to localhost:8081.
}

// Server exposes the roller server as MCP tools and resources.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
	session   sessionContext
}

// sessionContext is the namespace and clock set by set_context, shared by
// every tool call.
type sessionContext struct {
	mu  sync.RWMutex
	val domain.Context
}

func (c *sessionContext) get() domain.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

func (c *sessionContext) set(v domain.Context) {
	c.mu.Lock()
	c.val = v
	c.mu.Unlock()
}

// Run dials the roller server and serves MCP on cfg.Transport until ctx is
// done.
func Run(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "":
		cfg.Transport = TransportStdio
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
	if cfg.Transport == TransportStdio {
		return serveOn(ctx, cfg.GRPCAddr, &mcp.StdioTransport{})
	}

	conn, err := dialRollerGRPC(ctx, cfg.GRPCAddr)
	if err != nil {
		return err
	}
	server := newServer(conn)
	defer server.Close()

	// HTTP sessions outlive any single roller outage; log and keep serving.
	healthCtx, stopHealth := context.WithCancel(ctx)
	defer stopHealth()
	go server.monitorHealth(healthCtx)

	addr := cfg.HTTPAddr
	if addr == "" {
		addr = defaultHTTPAddr
	}
	return NewHTTPTransport(addr, server.mcpServer).Start(ctx)
}

// serveOn dials grpcAddr and serves one MCP session on transport.
func serveOn(ctx context.Context, grpcAddr string, transport mcp.Transport) error {
	conn, err := dialRollerGRPC(ctx, grpcAddr)
	if err != nil {
		return err
	}
	server := newServer(conn)

	err = server.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	return errors.Join(wrapErr("serve MCP", err), wrapErr("close roller connection", server.Close()))
}

func wrapErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// newServer registers every tool and resource against conn.
func newServer(conn *grpc.ClientConn) *Server {
	server := &Server{conn: conn}
	server.mcpServer = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		SubscribeHandler: func(_ context.Context, req *mcp.SubscribeRequest) error {
			if req == nil || req.Params == nil {
				return requireURI("")
			}
			return requireURI(req.Params.URI)
		},
		UnsubscribeHandler: func(_ context.Context, req *mcp.UnsubscribeRequest) error {
			if req == nil || req.Params == nil {
				return requireURI("")
			}
			return requireURI(req.Params.URI)
		},
	})

	server.register(conn)
	return server
}

// notify tells subscribers that the resource at uri changed.
func (s *Server) notify(ctx context.Context, uri string) {
	if strings.TrimSpace(uri) == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
		log.Printf("notify %s: %v", uri, err)
	}
}

func requireURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return errors.New("resource uri is required")
	}
	return nil
}

// monitorHealth logs roller health failures every healthCheckInterval.
func (s *Server) monitorHealth(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn == nil {
				continue
			}
			if err := platformgrpc.CheckHealth(ctx, s.conn, rollerServices); err != nil && ctx.Err() == nil {
				log.Printf("roller health: %v", err)
			}
		}
	}
}

// Close releases the roller connection. It is safe to call more than once.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	return conn.Close()
}

func dialRollerGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("roller address is required")
	}
	conn, err := platformgrpc.Dial(ctx, platformgrpc.DialConfig{
		Addr:     addr,
		Timeout:  timeouts.GRPCDial,
		Services: rollerServices,
		Logf: func(format string, args ...any) {
			log.Printf("roller "+format, args...)
		},
	})
	var dialErr *platformgrpc.DialError
	if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
		return nil, fmt.Errorf("connect to roller server at %s: %w", addr, dialErr.Err)
	}
	return conn, err
}
