package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/synclab/metasync/internal/config"
)

func TestNewMeterProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cfg        *config.MetricsConfig
		expectNoOp bool
	}{
		{name: "nil config", expectNoOp: true},
		{name: "disabled", cfg: &config.MetricsConfig{Enabled: false}, expectNoOp: true},
		{name: "enabled", cfg: &config.MetricsConfig{Enabled: true, Insecure: true, Endpoint: "localhost:14318"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			mp, err := NewMeterProvider(ctx, WithMetricsConfig(tt.cfg))
			require.NoError(t, err)

			if tt.expectNoOp {
				_, ok := mp.(noop.MeterProvider)
				assert.True(t, ok, "expected no-op meter provider")
				return
			}

			sdkMP, ok := mp.(*sdkmetric.MeterProvider)
			require.True(t, ok, "expected SDK meter provider")
			// no collector is listening: flushing on shutdown fails
			_ = sdkMP.Shutdown(ctx)
		})
	}
}

func TestMeterProviderOptions(t *testing.T) {
	t.Parallel()

	cfg := &meterProviderConfig{}
	metrics := &config.MetricsConfig{Enabled: true}
	WithMeterServiceName("sync")(cfg)
	WithMeterServiceVersion("1.2.0")(cfg)
	WithMetricsConfig(metrics)(cfg)

	assert.Equal(t, "sync", cfg.serviceName)
	assert.Equal(t, "1.2.0", cfg.serviceVersion)
	assert.Same(t, metrics, cfg.metricsConfig)
}

func TestTelemetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tel, err := New(ctx, WithServiceVersion("1.0.0"))
	require.NoError(t, err)
	_, ok := tel.MeterProvider().(noop.MeterProvider)
	assert.True(t, ok)
	_, ok = tel.TracerProvider().(tracenoop.TracerProvider)
	assert.True(t, ok)
	require.NoError(t, tel.Shutdown(ctx))
	require.NoError(t, tel.Shutdown(ctx))
}

func TestTelemetry_Prometheus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tel, err := New(ctx, WithMetrics(&config.MetricsConfig{Prometheus: true}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(ctx) })

	require.NotNil(t, tel.MetricsHandler())
	_, ok := tel.MeterProvider().(*sdkmetric.MeterProvider)
	require.True(t, ok)

	metrics, err := NewSyncMetrics(tel.MeterProvider())
	require.NoError(t, err)
	metrics.RecordResult(ctx, "metadata", "inst1", "OK")

	rr := httptest.NewRecorder()
	tel.MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "metasync_sync_results_total")
	assert.Contains(t, rr.Body.String(), `instance="inst1"`)
}

func TestTelemetry_NoMetricsHandlerByDefault(t *testing.T) {
	t.Parallel()

	tel, err := New(context.Background(), WithMetrics(&config.MetricsConfig{}))
	require.NoError(t, err)
	assert.Nil(t, tel.MetricsHandler())
}
