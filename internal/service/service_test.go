package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/mapping"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/migrations"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/packages"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/service"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/sync"
	"github.com/synclab/metasync/internal/syncrule"
	syncrulemocks "github.com/synclab/metasync/internal/syncrule/mocks"
)

type listerFunc func(ctx context.Context, storeID string) ([]packages.Package, error)

func (f listerFunc) ListStorePackages(ctx context.Context, storeID string) ([]packages.Package, error) {
	return f(ctx, storeID)
}

type reloadCounter struct {
	calls int
}

func (r *reloadCounter) Reload(context.Context) error {
	r.calls++
	return nil
}

type fixture struct {
	svc      service.Service
	store    storage.DocumentStore
	target   *metadata.MemoryRepository
	reloader *reloadCounter
}

func newFixture(t *testing.T, opts ...service.ServiceOption) fixture {
	t.Helper()

	store := storage.NewMemoryStore()
	local := metadata.NewMemoryRepository(metadata.Package{
		metadata.DataElements: {
			{"id": "DE1", "code": "ANC1", "name": "ANC 1st visit"},
			{"id": "DE2", "code": "ANC2", "name": "ANC 2nd visit"},
		},
	})
	target := metadata.NewMemoryRepository(metadata.Package{
		metadata.DataElements: {
			{"id": "DE9", "code": "ANC1", "name": "First ANC visit"},
		},
	})

	instances := instance.NewRepository(store, instance.Instance{ID: "LOCAL", Name: "This instance", URL: "http://localhost"})
	reloader := &reloadCounter{}

	deps := service.Dependencies{
		Store:     store,
		Modules:   modules.NewRepository(store),
		Rules:     syncrule.NewRepository(store),
		Instances: instances,
		Reports:   report.NewRepository(store),
		Stores:    packages.NewStoreRepository(store),
		Packages: listerFunc(func(_ context.Context, storeID string) ([]packages.Package, error) {
			if storeID != "store1" {
				return nil, packages.ErrStoreNotFound
			}
			return []packages.Package{{ID: "p1", Name: "ANC"}}, nil
		}),
		Sync: sync.Dependencies{
			Local: local,
			Connector: instance.ConnectorFunc(func(instance.Instance) (instance.Connection, error) {
				return target, nil
			}),
		},
	}

	opts = append([]service.ServiceOption{service.WithReloader(reloader)}, opts...)
	return fixture{
		svc:      service.New(deps, opts...),
		store:    store,
		target:   target,
		reloader: reloader,
	}
}

func (f fixture) saveInstance(t *testing.T) instance.Instance {
	t.Helper()
	inst, err := f.svc.SaveInstance(context.Background(), instance.Instance{
		Name:     "Training",
		URL:      "http://training.example.org",
		Username: "admin",
		Password: "district",
	})
	require.NoError(t, err)
	return inst
}

func TestCheckReadiness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	err := f.svc.CheckReadiness(ctx)
	require.ErrorIs(t, err, service.ErrNotReady)

	_, err = migrations.Run(ctx, f.store, migrations.Tasks())
	require.NoError(t, err)
	require.NoError(t, f.svc.CheckReadiness(ctx))
}

func TestModules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SaveModule(ctx, modules.NewMetadataModule())
	require.ErrorIs(t, err, service.ErrInvalidInput)

	module := modules.NewMetadataModule().Update(func(m *modules.MetadataModule) {
		m.Name = "ANC"
		m.MetadataIDs = []string{"DE1"}
	})
	saved, err := f.svc.SaveModule(ctx, module)
	require.NoError(t, err)
	assert.False(t, saved.Created.IsZero())

	got, err := f.svc.GetModule(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "ANC", got.Name)

	page, err := f.svc.ListModules(ctx, service.WithSearch("anc"), service.WithPageSize(10))
	require.NoError(t, err)
	assert.Len(t, page.Objects, 1)

	_, err = f.svc.ListModules(ctx, service.WithPage(0))
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = f.svc.MoveModuleRules(ctx, saved.ID, service.RuleMove{Action: "toggle"})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	rule, err := f.svc.CreateRuleFromModule(ctx, saved.ID, []string{"TARGET"})
	require.NoError(t, err)
	assert.Equal(t, syncrule.TypeMetadata, rule.Type)
	assert.Equal(t, []string{"DE1"}, rule.Builder.MetadataIDs)
	assert.Equal(t, 1, f.reloader.calls)

	require.NoError(t, f.svc.DeleteModule(ctx, saved.ID))
	_, err = f.svc.GetModule(ctx, saved.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.ErrorIs(t, f.svc.DeleteModule(ctx, saved.ID), service.ErrNotFound)
}

func TestRules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	target := f.saveInstance(t)

	_, err := f.svc.SaveRule(ctx, syncrule.New(syncrule.TypeMetadata))
	require.ErrorIs(t, err, service.ErrInvalidInput)
	require.ErrorIs(t, err, syncrule.ErrInvalidRule)
	assert.Zero(t, f.reloader.calls)

	rule, err := f.svc.SaveRule(ctx, syncrule.New(syncrule.TypeMetadata).Update(func(r *syncrule.SyncRule) {
		r.Name = "Nightly"
		r.Builder.MetadataIDs = []string{"DE1"}
		r.Builder.TargetInstances = []string{target.ID}
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, f.reloader.calls)

	got, err := f.svc.RunRule(ctx, rule.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, report.StatusDone, got.Status)
	assert.Equal(t, "admin", got.User)
	require.Len(t, got.Results, 1)
	assert.Equal(t, report.ResultOK, got.Results[0].Status)

	executed, err := f.svc.GetRule(ctx, rule.ID)
	require.NoError(t, err)
	require.NotNil(t, executed.LastExecuted)

	reports, err := f.svc.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports.Objects, 1)
	assert.Equal(t, got.ID, reports.Objects[0].ID)

	_, err = f.svc.RunRule(ctx, "missing", "admin")
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, f.svc.DeleteRule(ctx, rule.ID))
	assert.Equal(t, 2, f.reloader.calls)

	require.NoError(t, f.svc.DeleteReport(ctx, got.ID))
	_, err = f.svc.GetReport(ctx, got.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestRules_ReloadFailureDoesNotFailSave(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	rules := syncrulemocks.NewMockRepository(ctrl)
	rules.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rule syncrule.SyncRule) (syncrule.SyncRule, error) { return rule, nil },
	)

	svc := service.New(service.Dependencies{Rules: rules}, service.WithReloader(failingReloader{}))
	_, err := svc.SaveRule(ctx, syncrule.New(syncrule.TypeMetadata).Update(func(r *syncrule.SyncRule) {
		r.Name = "Nightly"
		r.Builder.MetadataIDs = []string{"DE1"}
		r.Builder.TargetInstances = []string{"T1"}
	}))
	require.NoError(t, err)
}

type failingReloader struct{}

func (failingReloader) Reload(context.Context) error {
	return errors.New("cron stopped")
}

func TestInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SaveInstance(ctx, instance.Instance{Name: "No url"})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	saved := f.saveInstance(t)
	assert.Empty(t, saved.Password)

	updated, err := f.svc.SaveInstance(ctx, instance.Instance{
		ID:   saved.ID,
		Name: "Training 2",
		URL:  saved.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, "Training 2", updated.Name)

	_, err = f.svc.SetInstanceMapping(ctx, saved.ID, service.MappingRequest{
		Collection:    metadata.DataElements,
		MappingType:   mapping.AggregatedDataElements,
		SourceID:      "DE1",
		DestinationID: "DE9",
	})
	require.NoError(t, err)

	stored, found, err := instance.NewRepository(f.store, instance.Instance{ID: "LOCAL"}).Get(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "district", stored.Password)
	m, ok := stored.MetadataMapping.Lookup(mapping.AggregatedDataElements, "DE1")
	require.True(t, ok)
	assert.Equal(t, "DE9", m.MappedID)

	page, err := f.svc.ListInstances(ctx)
	require.NoError(t, err)
	require.Len(t, page.Objects, 1)
	assert.Empty(t, page.Objects[0].Password)

	require.ErrorIs(t, f.svc.DeleteInstance(ctx, "LOCAL"), instance.ErrLocalInstance)
	require.NoError(t, f.svc.DeleteInstance(ctx, saved.ID))
	_, err = f.svc.GetInstance(ctx, saved.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSetInstanceMapping_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	inst := f.saveInstance(t)

	tests := []struct {
		name    string
		id      string
		req     service.MappingRequest
		wantErr error
	}{
		{
			name:    "missing fields",
			id:      inst.ID,
			req:     service.MappingRequest{Collection: metadata.DataElements},
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "unknown instance",
			id:   "missing",
			req: service.MappingRequest{
				Collection: metadata.DataElements, SourceID: "DE1", DestinationID: "DE9",
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "unresolvable destination",
			id:   inst.ID,
			req: service.MappingRequest{
				Collection: metadata.DataElements, SourceID: "DE1", DestinationID: "NOPE",
			},
			wantErr: mapping.ErrUnresolvable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := f.svc.SetInstanceMapping(ctx, tt.id, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAutoMapInstance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	inst := f.saveInstance(t)

	got, err := f.svc.AutoMapInstance(ctx, inst.ID, service.AutoMapRequest{
		Collection: metadata.DataElements,
		Sources: []mapping.Item{
			{ID: "DE1", Code: "ANC1", Name: "ANC 1st visit"},
			{ID: "DE2", Code: "ANC2", Name: "ANC 2nd visit"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "DE9", got["DE1"].MappedID)
	assert.False(t, got["DE1"].Conflicts)
	assert.Equal(t, mapping.Disabled, got["DE2"].MappedID)
	assert.True(t, got["DE2"].Conflicts)

	restricted, err := f.svc.AutoMapInstance(ctx, inst.ID, service.AutoMapRequest{
		Collection:   metadata.DataElements,
		Sources:      []mapping.Item{{ID: "DE1", Code: "ANC1"}},
		Destinations: []mapping.Item{{ID: "OTHER"}},
	})
	require.NoError(t, err)
	assert.Equal(t, mapping.Disabled, restricted["DE1"].MappedID)

	_, err = f.svc.AutoMapInstance(ctx, inst.ID, service.AutoMapRequest{Collection: metadata.DataElements})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestStores(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SaveStore(ctx, packages.Store{Account: "org"})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	saved, err := f.svc.SaveStore(ctx, packages.Store{Account: "org", Repository: "modules", Token: "secret"})
	require.NoError(t, err)
	assert.Empty(t, saved.Token)
	assert.True(t, saved.Default)

	_, err = f.svc.SaveStore(ctx, packages.Store{ID: saved.ID, Account: "org", Repository: "renamed"})
	require.NoError(t, err)

	stored, err := packages.NewStoreRepository(f.store).Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", stored.Token)
	assert.Equal(t, "renamed", stored.Repository)

	stores, err := f.svc.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Empty(t, stores[0].Token)

	err = f.svc.SetDefaultStore(ctx, "missing")
	require.ErrorIs(t, err, service.ErrNotFound)
	require.ErrorIs(t, err, packages.ErrStoreNotFound)
	require.NoError(t, f.svc.SetDefaultStore(ctx, saved.ID))

	list, err := f.svc.ListStorePackages(ctx, "store1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = f.svc.ListStorePackages(ctx, "other")
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, f.svc.DeleteStore(ctx, saved.ID))
	require.ErrorIs(t, f.svc.DeleteStore(ctx, saved.ID), service.ErrNotFound)
}
