// Package otel installs the OTLP trace pipeline shared by the troller
// services.
package otel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects where spans go. A zero Config disables tracing.
type Config struct {
	Endpoint    string
	Disabled    bool
	SampleRatio float64
}

// Enabled reports whether spans should be exported.
func (c Config) Enabled() bool {
	return !c.Disabled && strings.TrimSpace(c.Endpoint) != ""
}

// ConfigFromEnv reads TROLLER_OTEL_ENDPOINT, TROLLER_OTEL_ENABLED and
// TROLLER_OTEL_SAMPLE_RATIO. The ratio defaults to 1 and is clamped to [0, 1].
// Each call sees the current environment.
func ConfigFromEnv() Config {
	env.Load()
	cfg := Config{
		Endpoint:    strings.TrimSpace(env.Str("TROLLER_OTEL_ENDPOINT")),
		Disabled:    strings.EqualFold(strings.TrimSpace(env.Str("TROLLER_OTEL_ENABLED")), "false"),
		SampleRatio: 1,
	}
	if raw := strings.TrimSpace(env.Str("TROLLER_OTEL_SAMPLE_RATIO")); raw != "" {
		if ratio, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.SampleRatio = min(max(ratio, 0), 1)
		}
	}
	return cfg
}

// Setup installs tracing from the environment. See SetupWithConfig.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	return SetupWithConfig(ctx, serviceName, ConfigFromEnv())
}

// SetupWithConfig registers a global tracer provider and W3C propagators for
// serviceName. When cfg is not enabled nothing is registered. The returned
// function flushes pending spans.
func SetupWithConfig(ctx context.Context, serviceName string, cfg Config) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return provider.Shutdown, nil
}
