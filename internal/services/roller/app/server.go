// Package server wires the roller runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/troller/internal/clock/storage/sqlite"
	"github.com/louisbranch/troller/internal/dice"
	"github.com/louisbranch/troller/internal/platform/config"
	"github.com/louisbranch/troller/internal/platform/timeouts"
	"github.com/louisbranch/troller/internal/services/roller/api/grpc/clocks"
	diceservice "github.com/louisbranch/troller/internal/services/roller/api/grpc/dice"
	"github.com/louisbranch/troller/internal/services/roller/api/grpc/interceptors"
	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath         string        `env:"TROLLER_DB_PATH"`
	MaxDice        int64         `env:"TROLLER_MAX_DICE" envDefault:"1000"`
	MaxInputLength int           `env:"TROLLER_MAX_INPUT_LENGTH" envDefault:"4096"`
	AllowReplay    bool          `env:"TROLLER_ALLOW_REPLAY" envDefault:"true"`
	PurgeInterval  time.Duration `env:"TROLLER_CLOCK_PURGE_INTERVAL"`
}

func loadServerEnv() (serverEnv, error) {
	cfg, err := config.Load[serverEnv]()
	if err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "troller.db")
	}
	if cfg.PurgeInterval <= 0 {
		cfg.PurgeInterval = timeouts.ClockPurge
	}
	return cfg, nil
}

// Server hosts the dice and clock gRPC APIs and owns the clock store.
type Server struct {
	listener      net.Listener
	grpcServer    *grpc.Server
	health        *health.Server
	store         *sqlite.Store
	clocks        *clocks.Service
	purgeInterval time.Duration
}

// New listens on port on every interface. See NewWithAddr.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr reads the server environment, opens the clock store and
// listens on addr. Nothing is served until Serve.
func NewWithAddr(addr string) (*Server, error) {
	env, err := loadServerEnv()
	if err != nil {
		return nil, err
	}
	store, err := openClockStore(env.DBPath)
	if err != nil {
		return nil, err
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	s := &Server{
		listener:      listener,
		store:         store,
		health:        health.NewServer(),
		clocks:        clocks.NewService(store),
		purgeInterval: env.PurgeInterval,
	}
	s.grpcServer = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(interceptors.LoggingInterceptor(nil)),
	)
	rollerv1.RegisterDiceServiceServer(s.grpcServer, diceservice.NewService(dice.Engine{
		MaxDice:        env.MaxDice,
		MaxInputLength: env.MaxInputLength,
	}, env.AllowReplay))
	rollerv1.RegisterClockServiceServer(s.grpcServer, s.clocks)
	grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
	for _, service := range []string{"", rollerv1.DiceService_ServiceName, rollerv1.ClockService_ServiceName} {
		s.health.SetServingStatus(service, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return s, nil
}

// Addr is the bound listener address, useful after listening on port 0.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run serves on port until ctx is done.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve blocks until ctx is done or the gRPC server fails, then drains
// in-flight calls and releases every resource.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	go s.purgeLoop(ctx)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		s.drain()
	}()

	log.Printf("roller server listening at %v", s.listener.Addr())
	err := s.grpcServer.Serve(s.listener)
	cancel()
	<-drained
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}
	return nil
}

// drain marks every service NOT_SERVING and stops gracefully, forcing the
// stop after timeouts.Shutdown.
func (s *Server) drain() {
	s.health.Shutdown()
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeouts.Shutdown):
		log.Printf("graceful stop timed out after %s; forcing", timeouts.Shutdown)
		s.grpcServer.Stop()
	}
}

// purgeLoop deletes expired ephemeral clocks every purgeInterval.
func (s *Server) purgeLoop(ctx context.Context) {
	if s.purgeInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		n, err := s.clocks.PurgeExpired(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			log.Printf("purge expired clocks: %v", err)
		case n > 0:
			log.Printf("purged %d expired clocks", n)
		}
	}
}

// Close stops serving and closes the store. Serve calls it on return.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.health.Shutdown()
	s.grpcServer.Stop()
	_ = s.listener.Close()
	if err := s.store.Close(); err != nil {
		log.Printf("close clock store: %v", err)
	}
}

// openClockStore opens the SQLite store at path, creating its directory.
func openClockStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clock store: %w", err)
	}
	return store, nil
}
