package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SyncMetricsMeterName is the name used for the synchronization metrics meter
const SyncMetricsMeterName = "github.com/synclab/metasync/sync"

// SyncMetrics holds the OpenTelemetry instruments of synchronization runs
type SyncMetrics struct {
	syncDuration metric.Float64Histogram
	resultsTotal metric.Int64Counter
	objectsTotal metric.Int64Counter
}

// NewSyncMetrics creates the synchronization instruments.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	syncDuration, err := meter.Float64Histogram(
		"metasync_sync_duration_seconds",
		metric.WithDescription("Duration of synchronization runs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 900),
	)
	if err != nil {
		return nil, err
	}

	resultsTotal, err := meter.Int64Counter(
		"metasync_sync_results_total",
		metric.WithDescription("Number of synchronization results per target instance"),
		metric.WithUnit("{result}"),
	)
	if err != nil {
		return nil, err
	}

	objectsTotal, err := meter.Int64Counter(
		"metasync_sync_objects_total",
		metric.WithDescription("Number of objects in built synchronization payloads"),
		metric.WithUnit("{object}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		syncDuration: syncDuration,
		resultsTotal: resultsTotal,
		objectsTotal: objectsTotal,
	}, nil
}

// RecordSyncDuration records the duration of a synchronization run
func (m *SyncMetrics) RecordSyncDuration(ctx context.Context, syncType string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	m.syncDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("type", syncType),
		attribute.Bool("success", success),
	))
}

// RecordResult counts the result of a synchronization on one instance
func (m *SyncMetrics) RecordResult(ctx context.Context, syncType, instanceID, status string) {
	if m == nil {
		return
	}
	m.resultsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", syncType),
		attribute.String("instance", instanceID),
		attribute.String("status", status),
	))
}

// RecordPayloadObjects counts the objects of a built payload
func (m *SyncMetrics) RecordPayloadObjects(ctx context.Context, syncType string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.objectsTotal.Add(ctx, int64(count), metric.WithAttributes(attribute.String("type", syncType)))
}
