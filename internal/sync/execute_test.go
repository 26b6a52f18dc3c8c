package sync_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/sync"
	"github.com/synclab/metasync/internal/sync/mocks"
	"github.com/synclab/metasync/internal/syncrule"
)

type fixture struct {
	instances instance.Repository
	reports   report.Repository
	first     instance.Instance
	second    instance.Instance
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	instances := instance.NewRepository(store, instance.Instance{ID: "LOCAL", Name: "This instance", URL: "http://localhost"})

	first, err := instances.Save(ctx, instance.Instance{Name: "Training", URL: "http://training.example.org"})
	require.NoError(t, err)
	second, err := instances.Save(ctx, instance.Instance{Name: "Production", URL: "http://prod.example.org"})
	require.NoError(t, err)

	return fixture{
		instances: instances,
		reports:   report.NewRepository(store),
		first:     first,
		second:    second,
	}
}

func (f fixture) options(targets ...string) sync.Options {
	return sync.Options{
		Targets:   targets,
		Instances: f.instances,
		Reports:   f.reports,
		User:      "admin",
		SyncRule:  "rule1",
	}
}

func (f fixture) savedReports(t *testing.T) []report.SynchronizationReport {
	t.Helper()
	page, err := f.reports.List(context.Background(), storage.Filters{}, storage.Pagination{})
	require.NoError(t, err)
	return page.Objects
}

func expectIdentityMapping(s *mocks.MockSynchronizer) {
	s.EXPECT().MapPayload(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ instance.Instance, payload sync.Payload) (sync.Payload, error) {
			return payload, nil
		}).AnyTimes()
}

func TestExecute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	s := mocks.NewMockSynchronizer(ctrl)
	s.EXPECT().Type().Return(syncrule.TypeMetadata).AnyTimes()
	s.EXPECT().BuildPayload(gomock.Any()).Return(sync.Payload{metadata.DataElements: {{"id": "DE1"}}}, nil)
	s.EXPECT().BuildDataStats(gomock.Any()).Return(nil, nil)
	expectIdentityMapping(s)
	s.EXPECT().PostPayload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
			if inst.ID == f.second.ID {
				return nil, &url.Error{Op: "Post", URL: inst.URL, Err: errors.New("connection refused")}
			}
			return []report.SynchronizationResult{{Status: report.ResultOK, Instance: inst.Ref()}}, nil
		}).Times(2)

	var phases []sync.Phase
	var final *report.SynchronizationReport
	for progress, err := range sync.Execute(ctx, s, f.options(f.first.ID, "missing", f.second.ID)) {
		require.NoError(t, err)
		phases = append(phases, progress.Phase)
		if progress.Report != nil {
			final = progress.Report
		}
	}

	assert.Equal(t, []sync.Phase{
		sync.PhaseBuilding,
		sync.PhaseMapping, sync.PhasePosting,
		sync.PhaseMapping, sync.PhasePosting,
		sync.PhaseDone,
	}, phases)

	require.NotNil(t, final)
	assert.NotEmpty(t, final.ID)
	assert.Equal(t, report.StatusFailure, final.Status)
	assert.Equal(t, "admin", final.User)
	assert.Equal(t, "rule1", final.SyncRule)
	assert.Equal(t, []string{string(syncrule.TypeMetadata)}, final.SelectedTypes)

	require.Len(t, final.Results, 3)
	assert.Equal(t, f.second.ID, final.Results[0].Instance.ID)
	assert.Equal(t, report.ResultNetworkError, final.Results[0].Status)
	assert.Equal(t, "missing", final.Results[1].Instance.ID)
	assert.Equal(t, report.ResultError, final.Results[1].Status)
	assert.Equal(t, f.first.ID, final.Results[2].Instance.ID)
	assert.Equal(t, report.ResultOK, final.Results[2].Status)

	saved := f.savedReports(t)
	require.Len(t, saved, 1)
	assert.Equal(t, final.ID, saved[0].ID)
	assert.Equal(t, report.StatusFailure, saved[0].Status)
}

func TestExecute_AllSucceed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newFixture(t)

	s := mocks.NewMockSynchronizer(ctrl)
	s.EXPECT().Type().Return(syncrule.TypeAggregated).AnyTimes()
	s.EXPECT().BuildPayload(gomock.Any()).Return(sync.Payload{}, nil)
	s.EXPECT().BuildDataStats(gomock.Any()).Return(&sync.DataStats{DataValues: 4}, nil)
	expectIdentityMapping(s)
	s.EXPECT().PostPayload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
			return []report.SynchronizationResult{{Status: report.ResultOK, Instance: inst.Ref()}}, nil
		}).Times(2)

	var stats *sync.DataStats
	var final *report.SynchronizationReport
	for progress, err := range sync.Execute(context.Background(), s, f.options(f.first.ID, f.second.ID)) {
		require.NoError(t, err)
		if progress.DataStats != nil {
			stats = progress.DataStats
		}
		if progress.Report != nil {
			final = progress.Report
		}
	}

	assert.Equal(t, &sync.DataStats{DataValues: 4}, stats)
	require.NotNil(t, final)
	assert.Equal(t, report.StatusDone, final.Status)
	assert.Len(t, final.Results, 2)
}

func TestExecute_MapFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newFixture(t)

	s := mocks.NewMockSynchronizer(ctrl)
	s.EXPECT().Type().Return(syncrule.TypeMetadata).AnyTimes()
	s.EXPECT().BuildPayload(gomock.Any()).Return(sync.Payload{metadata.DataElements: {{"id": "DE1"}}}, nil)
	s.EXPECT().BuildDataStats(gomock.Any()).Return(nil, nil)
	s.EXPECT().MapPayload(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inst instance.Instance, payload sync.Payload) (sync.Payload, error) {
			if inst.ID == f.first.ID {
				return nil, errors.New("invalid mapping dictionary")
			}
			return payload, nil
		}).Times(2)
	s.EXPECT().PostPayload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
			assert.Equal(t, f.second.ID, inst.ID)
			return []report.SynchronizationResult{{Status: report.ResultOK, Instance: inst.Ref()}}, nil
		}).Times(1)

	var phases []sync.Phase
	var messages []string
	var final *report.SynchronizationReport
	for progress, err := range sync.Execute(context.Background(), s, f.options(f.first.ID, f.second.ID)) {
		require.NoError(t, err)
		phases = append(phases, progress.Phase)
		if progress.Phase == sync.PhasePosting {
			messages = append(messages, progress.Message)
		}
		if progress.Report != nil {
			final = progress.Report
		}
	}

	assert.Equal(t, []sync.Phase{
		sync.PhaseBuilding,
		sync.PhaseMapping,
		sync.PhaseMapping, sync.PhasePosting,
		sync.PhaseDone,
	}, phases)
	assert.Equal(t, []string{"Importing 1 objects in Production"}, messages)

	require.NotNil(t, final)
	assert.Equal(t, report.StatusFailure, final.Status)
	require.Len(t, final.Results, 2)
	assert.Equal(t, f.first.ID, final.Results[1].Instance.ID)
	assert.Equal(t, report.ResultError, final.Results[1].Status)
}

func TestExecute_BuildFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newFixture(t)
	buildErr := errors.New("local instance unavailable")

	s := mocks.NewMockSynchronizer(ctrl)
	s.EXPECT().Type().Return(syncrule.TypeMetadata).AnyTimes()
	s.EXPECT().BuildPayload(gomock.Any()).Return(nil, buildErr)

	var gotErr error
	for _, err := range sync.Execute(context.Background(), s, f.options(f.first.ID)) {
		if err != nil {
			gotErr = err
		}
	}

	require.Error(t, gotErr)
	assert.ErrorIs(t, gotErr, buildErr)
	var syncErr *sync.Error
	require.ErrorAs(t, gotErr, &syncErr)
	assert.Equal(t, sync.PhaseBuilding, syncErr.Phase)

	saved := f.savedReports(t)
	require.Len(t, saved, 1)
	assert.Equal(t, report.StatusFailure, saved[0].Status)
}

func TestExecute_BreakAbandonsRun(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newFixture(t)

	s := mocks.NewMockSynchronizer(ctrl)
	s.EXPECT().Type().Return(syncrule.TypeMetadata).AnyTimes()
	s.EXPECT().BuildPayload(gomock.Any()).Return(sync.Payload{}, nil)
	s.EXPECT().BuildDataStats(gomock.Any()).Return(nil, nil)

	for progress, err := range sync.Execute(context.Background(), s, f.options(f.first.ID, f.second.ID)) {
		require.NoError(t, err)
		assert.Equal(t, sync.PhaseBuilding, progress.Phase)
		break
	}

	saved := f.savedReports(t)
	require.Len(t, saved, 1)
	assert.Equal(t, report.StatusRunning, saved[0].Status)
	assert.Empty(t, saved[0].Results)
}

func TestRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	target := metadata.NewMemoryRepository(nil)

	rule := syncrule.New(syncrule.TypeMetadata).Update(func(r *syncrule.SyncRule) {
		r.ID = "rule1"
		r.Name = "Nightly"
		r.Builder.MetadataIDs = []string{"DE1"}
		r.Builder.UseDefaultIncludeExclude = true
		r.Builder.TargetInstances = []string{f.first.ID}
	})

	got, err := sync.Run(ctx, rule, sync.Dependencies{
		Local:     metadata.NewMemoryRepository(localMetadata()),
		Instances: f.instances,
		Connector: connectTo(target),
		Reports:   f.reports,
	}, "scheduler")
	require.NoError(t, err)

	assert.Equal(t, report.StatusDone, got.Status)
	assert.Equal(t, "scheduler", got.User)
	assert.Equal(t, "rule1", got.SyncRule)
	require.Len(t, got.Results, 1)
	assert.Equal(t, report.ResultOK, got.Results[0].Status)

	posted, err := target.Get(ctx, metadata.DataElements, metadata.Query{})
	require.NoError(t, err)
	assert.Len(t, posted, 1)
}

func TestExecute_Tracing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newFixture(t)

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s := mocks.NewMockSynchronizer(ctrl)
	s.EXPECT().Type().Return(syncrule.TypeMetadata).AnyTimes()
	s.EXPECT().BuildPayload(gomock.Any()).Return(sync.Payload{metadata.DataElements: {{"id": "DE1"}}}, nil)
	s.EXPECT().BuildDataStats(gomock.Any()).Return(nil, nil)
	expectIdentityMapping(s)
	s.EXPECT().PostPayload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
			if inst.ID == f.second.ID {
				return nil, errors.New("import rejected")
			}
			return []report.SynchronizationResult{{Status: report.ResultOK, Instance: inst.Ref()}}, nil
		}).Times(2)

	opts := f.options(f.first.ID, f.second.ID)
	opts.Tracer = tp.Tracer("sync-test")
	for _, err := range sync.Execute(context.Background(), s, opts) {
		require.NoError(t, err)
	}

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)

	assert.Equal(t, "sync.target", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "sync.target", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	execute := spans[2]
	assert.Equal(t, "sync.execute", execute.Name)
	assert.Equal(t, execute.SpanContext.SpanID(), spans[0].Parent.SpanID())

	attrs := map[string]string{}
	for _, attr := range execute.Attributes {
		attrs[string(attr.Key)] = attr.Value.Emit()
	}
	assert.Equal(t, "rule1", attrs["sync.rule"])
	assert.Equal(t, "2", attrs["sync.targets"])
	assert.Equal(t, "1", attrs["payload.objects"])
	assert.Equal(t, string(report.StatusFailure), attrs["sync.report.status"])
}
