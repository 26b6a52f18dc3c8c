package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/storage/mocks"
)

func TestRun_Init(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()

	version, err := CurrentVersion(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	applied, err := Run(ctx, store, Tasks())
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "init", applied[0].Name)

	var cfg Config
	found, err := store.GetObject(ctx, storage.NamespaceConfig, &cfg)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, Config{Version: 1}, cfg)

	applied, err = Run(ctx, store, Tasks())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRun_AppliesPendingInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.SaveObject(ctx, storage.NamespaceConfig, Config{Version: 1}))

	var order []int
	task := func(v int) Task {
		return Task{Version: v, Name: "step", Migrate: func(context.Context, storage.DocumentStore) error {
			order = append(order, v)
			return nil
		}}
	}

	applied, err := Run(ctx, store, []Task{task(3), task(1), task(2)})
	require.NoError(t, err)
	assert.Len(t, applied, 2)
	assert.Equal(t, []int{2, 3}, order)

	version, err := CurrentVersion(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestRun_StopsOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	failing := errors.New("boom")

	applied, err := Run(ctx, store, []Task{
		{Version: 1, Name: "init", Migrate: initConfig},
		{Version: 2, Name: "broken", Migrate: func(context.Context, storage.DocumentStore) error { return failing }},
		{Version: 3, Name: "never", Migrate: func(context.Context, storage.DocumentStore) error {
			t.Fatal("ran after a failure")
			return nil
		}},
	})
	require.ErrorIs(t, err, failing)
	assert.Contains(t, err.Error(), "02.broken")
	assert.Len(t, applied, 1)

	version, err := CurrentVersion(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestCurrentVersion_StoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().GetObject(gomock.Any(), storage.NamespaceConfig, gomock.Any()).Return(false, errors.New("unavailable"))

	_, err := Run(context.Background(), store, Tasks())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}
