package sync

import (
	"context"
	"fmt"
	stdsync "sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/syncrule"
	"github.com/synclab/metasync/internal/telemetry"
)

//go:generate mockgen -destination=mocks/mock_synchronizer.go -package=mocks -source=synchronizer.go Synchronizer

// Payload is the content sent to target instances, grouped by collection
type Payload = metadata.Package

// DataStats summarizes the data of a data synchronization payload
type DataStats struct {
	DataValues int `json:"dataValues,omitempty"`
	Events     int `json:"events,omitempty"`
}

// Synchronizer builds, translates and posts the payload of one synchronization type
type Synchronizer interface {
	// Type returns the synchronization type
	Type() syncrule.Type

	// BuildPayload reads the payload from the local instance. The payload is built
	// once per synchronizer and shared by every call.
	BuildPayload(ctx context.Context) (Payload, error)

	// MapPayload translates payload ids with the mapping dictionary of inst
	MapPayload(ctx context.Context, inst instance.Instance, payload Payload) (Payload, error)

	// PostPayload sends the mapped payload to inst and returns the import results
	PostPayload(ctx context.Context, inst instance.Instance) ([]report.SynchronizationResult, error)

	// BuildDataStats summarizes the payload of data synchronizations, nil for metadata
	BuildDataStats(ctx context.Context) (*DataStats, error)
}

// Dependencies are the collaborators shared by synchronizers and executions
type Dependencies struct {
	// Local reads the payload from the local instance
	Local instance.Connection

	// Instances resolves target instances
	Instances instance.Repository

	// Connector opens connections to target instances
	Connector instance.Connector

	// Reports persists synchronization reports
	Reports report.Repository

	// Metrics is optional
	Metrics *telemetry.SyncMetrics

	// Tracer is optional
	Tracer trace.Tracer
}

// New creates the synchronizer of a type
func New(t syncrule.Type, builder syncrule.Builder, deps Dependencies) (Synchronizer, error) {
	base := &baseSync{builder: builder.Clone(), deps: deps}

	var s Synchronizer
	switch t {
	case syncrule.TypeMetadata:
		m := &metadataSync{baseSync: base}
		base.build = m.buildPayload
		s = m
	case syncrule.TypeAggregated:
		a := &aggregatedSync{baseSync: base}
		base.build = a.buildPayload
		s = a
	case syncrule.TypeEvents:
		e := &eventsSync{baseSync: base}
		base.build = e.buildPayload
		s = e
	case syncrule.TypeDeleted:
		d := &deletedSync{baseSync: base}
		base.build = func(context.Context) (Payload, error) { return Payload{}, nil }
		s = d
	default:
		return nil, fmt.Errorf("unknown synchronization type %q", t)
	}
	return s, nil
}

// baseSync holds what every synchronizer shares: the builder, the dependencies and the
// memoized payload
type baseSync struct {
	builder syncrule.Builder
	deps    Dependencies
	build   func(ctx context.Context) (Payload, error)

	once    stdsync.Once
	payload Payload
	err     error
}

// BuildPayload builds the payload on the first call and returns a copy of it
func (b *baseSync) BuildPayload(ctx context.Context) (Payload, error) {
	b.once.Do(func() {
		b.payload, b.err = b.build(ctx)
	})
	if b.err != nil {
		return nil, b.err
	}
	return b.payload.Clone(), nil
}

func (b *baseSync) connect(inst instance.Instance) (instance.Connection, error) {
	conn, err := b.deps.Connector.Connect(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to instance %s: %w", inst.Name, err)
	}
	return conn, nil
}

// mappedPayload builds, maps and returns the payload sent to inst
func (b *baseSync) mappedPayload(
	ctx context.Context, s Synchronizer, inst instance.Instance,
) (Payload, error) {
	payload, err := s.BuildPayload(ctx)
	if err != nil {
		return nil, err
	}
	return s.MapPayload(ctx, inst, payload)
}
