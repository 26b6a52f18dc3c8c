package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader, scopeName string) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != scopeName {
			continue
		}
		for _, m := range scope.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestNewSyncMetrics_NilProvider(t *testing.T) {
	t.Parallel()

	metrics, err := NewSyncMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, metrics)

	// nil metrics are no-ops
	metrics.RecordSyncDuration(context.Background(), "metadata", time.Second, true)
	metrics.RecordResult(context.Background(), "metadata", "i1", "OK")
	metrics.RecordPayloadObjects(context.Background(), "metadata", 3)
}

func TestSyncMetrics_Record(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewSyncMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordSyncDuration(ctx, "metadata", 2*time.Second, true)
	metrics.RecordResult(ctx, "metadata", "i1", "OK")
	metrics.RecordResult(ctx, "metadata", "i2", "ERROR")
	metrics.RecordPayloadObjects(ctx, "metadata", 5)
	metrics.RecordPayloadObjects(ctx, "metadata", 0)

	data := collect(t, reader, SyncMetricsMeterName)

	hist, ok := data["metasync_sync_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.InDelta(t, 2.0, hist.DataPoints[0].Sum, 0.001)

	results, ok := data["metasync_sync_results_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, results.DataPoints, 2)

	objects, ok := data["metasync_sync_objects_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, objects.DataPoints, 1)
	assert.Equal(t, int64(5), objects.DataPoints[0].Value)
}
