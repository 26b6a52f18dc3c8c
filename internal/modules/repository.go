package modules

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/synclab/metasync/internal/storage"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go Repository

// Repository persists metadata modules
type Repository interface {
	List(ctx context.Context, filters storage.Filters, pagination storage.Pagination) (storage.PaginatedObjects[MetadataModule], error)
	Get(ctx context.Context, id string) (MetadataModule, bool, error)
	Save(ctx context.Context, module MetadataModule) (MetadataModule, error)
	Delete(ctx context.Context, id string) error
}

type storeRepository struct {
	store storage.DocumentStore
	now   func() time.Time
}

// NewRepository creates a module repository on a document store
func NewRepository(store storage.DocumentStore) Repository {
	return &storeRepository{store: store, now: time.Now}
}

func (r *storeRepository) List(
	ctx context.Context, filters storage.Filters, pagination storage.Pagination,
) (storage.PaginatedObjects[MetadataModule], error) {
	return storage.GetPaginatedData[MetadataModule](ctx, r.store, storage.NamespaceModules, filters, pagination)
}

func (r *storeRepository) Get(ctx context.Context, id string) (MetadataModule, bool, error) {
	var module MetadataModule
	found, err := r.store.GetData(ctx, storage.NamespaceModules, id, &module)
	if err != nil || !found {
		return MetadataModule{}, found, err
	}
	return module, true, nil
}

// Save validates and stores the module, stamping its creation and update times
func (r *storeRepository) Save(ctx context.Context, module MetadataModule) (MetadataModule, error) {
	if err := module.Validate(); err != nil {
		return module, fmt.Errorf("invalid module: %w", err)
	}

	now := r.now().UTC()
	saved := module.Update(func(m *MetadataModule) {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.Type == "" {
			m.Type = TypeMetadata
		}
		if m.Created.IsZero() {
			m.Created = now
		}
		m.LastUpdated = now
	})

	if err := r.store.SaveData(ctx, storage.NamespaceModules, saved.ID, saved); err != nil {
		return module, err
	}
	return saved, nil
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteData(ctx, storage.NamespaceModules, id)
}
