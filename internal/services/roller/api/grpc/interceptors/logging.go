// Package interceptors holds gRPC middleware for the roller service.
package interceptors

import (
	"context"
	"log"
	"strings"
	"time"

	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Logf matches log.Printf.
type Logf func(format string, args ...any)

// LoggingInterceptor logs one line per unary call with its method, status
// code, duration and trace id. A nil logf uses log.Printf.
func LoggingInterceptor(logf Logf) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := codes.OK
		if err != nil {
			code = status.Code(err)
		}
		traceID := "-"
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			traceID = sc.TraceID().String()
		}
		namespace := extractNamespace(req)
		if namespace == "" {
			namespace = "-"
		}

		logf("grpc %s kind=%s ns=%s code=%s duration=%s trace=%s",
			info.FullMethod,
			classifyMethodKind(info.FullMethod),
			namespace,
			code,
			time.Since(start).Round(time.Microsecond),
			traceID,
		)
		return resp, err
	}
}

// namespaceGetter matches typed clock requests. On the wire the handler sees
// *structpb.Struct instead.
type namespaceGetter interface {
	GetNamespace() string
}

func extractNamespace(req any) string {
	switch r := req.(type) {
	case *structpb.Struct:
		return strings.TrimSpace(r.GetFields()["namespace"].GetStringValue())
	case namespaceGetter:
		return strings.TrimSpace(r.GetNamespace())
	default:
		return ""
	}
}

func classifyMethodKind(fullMethod string) string {
	switch fullMethod {
	case rollerv1.ClockService_GetClock_FullMethodName,
		rollerv1.ClockService_ListClocks_FullMethodName,
		rollerv1.ClockService_RenderClock_FullMethodName,
		rollerv1.DiceService_Roll_FullMethodName:
		return "read"
	default:
		return "write"
	}
}
