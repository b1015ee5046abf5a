package grpc

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const testService = "troller.v1.DiceService"

func startHealthServer(t *testing.T) (string, *health.Server) {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := gogrpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)
	return listener.Addr().String(), healthServer
}

func TestDialWaitsForServices(t *testing.T) {
	addr, healthServer := startHealthServer(t)
	healthServer.SetServingStatus(testService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	go func() {
		time.Sleep(300 * time.Millisecond)
		healthServer.SetServingStatus(testService, grpc_health_v1.HealthCheckResponse_SERVING)
	}()

	var logged []string
	conn, err := Dial(context.Background(), DialConfig{
		Addr:     addr,
		Timeout:  5 * time.Second,
		Services: []string{testService},
		Logf:     func(format string, args ...any) { logged = append(logged, format) },
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if len(logged) < 2 {
		t.Fatalf("expected waiting and serving logs, got %v", logged)
	}
}

func TestDialHealthTimeout(t *testing.T) {
	addr, healthServer := startHealthServer(t)
	healthServer.SetServingStatus(testService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	_, err := Dial(context.Background(), DialConfig{
		Addr:     addr,
		Timeout:  400 * time.Millisecond,
		Services: []string{testService},
	})
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %v", err)
	}
	if dialErr.Stage != DialStageHealth {
		t.Fatalf("stage = %s, want health", dialErr.Stage)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDialRequiresAddr(t *testing.T) {
	_, err := Dial(context.Background(), DialConfig{Addr: "  "})
	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageConnect {
		t.Fatalf("expected connect stage error, got %v", err)
	}
}

func TestCheckHealthReportsService(t *testing.T) {
	addr, healthServer := startHealthServer(t)
	healthServer.SetServingStatus(testService, grpc_health_v1.HealthCheckResponse_SERVING)

	conn, err := gogrpc.NewClient(addr, DefaultClientDialOptions()...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer conn.Close()

	if err := CheckHealth(context.Background(), conn, []string{"", testService}); err != nil {
		t.Fatalf("check health: %v", err)
	}
	err = CheckHealth(context.Background(), conn, []string{"troller.v1.Missing"})
	if err == nil || !strings.Contains(err.Error(), "troller.v1.Missing") {
		t.Fatalf("expected missing service error, got %v", err)
	}
}

func TestCheckHealthNilConn(t *testing.T) {
	if err := CheckHealth(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for nil conn")
	}
	if err := WaitForHealth(context.Background(), nil, nil, nil); err == nil {
		t.Fatal("expected error for nil conn")
	}
}

func TestDialErrorNil(t *testing.T) {
	var err *DialError
	if err.Error() != "gRPC dial error" || err.Unwrap() != nil {
		t.Fatal("expected nil-safe DialError")
	}
}
