// Package telemetry provides OpenTelemetry metrics and tracing for the synchronization server.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/synclab/metasync/internal/config"
	"github.com/synclab/metasync/internal/logger"
)

// DefaultServiceName is the service name reported with metrics and traces
const DefaultServiceName = "metasync"

// Telemetry owns the meter and tracer providers and handles their lifecycle
type Telemetry struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	metricsHandler http.Handler
}

// Option is a function that configures the telemetry setup
type Option func(*telemetryConfig)

type telemetryConfig struct {
	metrics        *config.MetricsConfig
	tracing        *config.TracingConfig
	serviceVersion string
}

// WithMetrics sets the metrics configuration
func WithMetrics(cfg *config.MetricsConfig) Option {
	return func(tc *telemetryConfig) {
		tc.metrics = cfg
	}
}

// WithTracing sets the tracing configuration
func WithTracing(cfg *config.TracingConfig) Option {
	return func(tc *telemetryConfig) {
		tc.tracing = cfg
	}
}

// WithServiceVersion sets the version reported with metrics and traces
func WithServiceVersion(version string) Option {
	return func(tc *telemetryConfig) {
		tc.serviceVersion = version
	}
}

// New creates the telemetry providers. No-op providers are used for disabled signals.
// The caller is responsible for calling Shutdown when the application exits.
func New(ctx context.Context, opts ...Option) (*Telemetry, error) {
	cfg := &telemetryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	meterOpts := []MeterProviderOption{
		WithMeterServiceName(DefaultServiceName),
		WithMetricsConfig(cfg.metrics),
	}
	tracerOpts := []TracerProviderOption{
		WithTracerServiceName(DefaultServiceName),
		WithTracingConfig(cfg.tracing),
	}
	if cfg.serviceVersion != "" {
		meterOpts = append(meterOpts, WithMeterServiceVersion(cfg.serviceVersion))
		tracerOpts = append(tracerOpts, WithTracerServiceVersion(cfg.serviceVersion))
	}

	var metricsHandler http.Handler
	if cfg.metrics != nil && cfg.metrics.Prometheus {
		registry := prometheus.NewRegistry()
		meterOpts = append(meterOpts, WithPrometheusRegistry(registry))
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	meterProvider, err := NewMeterProvider(ctx, meterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create meter provider: %w", err)
	}

	tracerProvider, err := NewTracerProvider(ctx, tracerOpts...)
	if err != nil {
		if mp, ok := meterProvider.(*sdkmetric.MeterProvider); ok {
			_ = mp.Shutdown(ctx)
		}
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	return &Telemetry{
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
		metricsHandler: metricsHandler,
	}, nil
}

// MeterProvider returns the configured meter provider
func (t *Telemetry) MeterProvider() metric.MeterProvider {
	return t.meterProvider
}

// MetricsHandler returns the Prometheus scrape handler, nil when Prometheus is disabled
func (t *Telemetry) MetricsHandler() http.Handler {
	return t.metricsHandler
}

// TracerProvider returns the configured tracer provider
func (t *Telemetry) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

// Shutdown flushes pending metrics and spans
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if tp, ok := t.tracerProvider.(*sdktrace.TracerProvider); ok {
		logger.Info("Shutting down tracer provider")
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer provider: %w", err))
		}
	}
	if mp, ok := t.meterProvider.(*sdkmetric.MeterProvider); ok {
		logger.Info("Shutting down meter provider")
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
