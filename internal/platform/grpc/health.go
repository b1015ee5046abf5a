package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthProbeTimeout = time.Second
	minHealthBackoff   = 100 * time.Millisecond
	maxHealthBackoff   = time.Second
)

// CheckHealth probes each service once and fails on the first one that is
// not SERVING.
func CheckHealth(ctx context.Context, conn *gogrpc.ClientConn, services []string) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if len(services) == 0 {
		services = []string{""}
	}
	client := grpc_health_v1.NewHealthClient(conn)
	for _, service := range services {
		probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
		resp, err := client.Check(probeCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		if err != nil {
			return fmt.Errorf("health %q: %w", service, err)
		}
		if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
			return fmt.Errorf("health %q: %s", service, resp.GetStatus())
		}
	}
	return nil
}

// WaitForHealth retries CheckHealth with backoff until it passes or ctx ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, services []string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	backoff := minHealthBackoff
	for {
		err := CheckHealth(ctx, conn, services)
		if err == nil {
			if logf != nil {
				logf("gRPC health is SERVING")
			}
			return nil
		}
		if logf != nil {
			logf("waiting for gRPC health: %v", err)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("wait for gRPC health: %w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}
		backoff = min(backoff*2, maxHealthBackoff)
	}
}
