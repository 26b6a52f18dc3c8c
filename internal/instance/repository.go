package instance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/synclab/metasync/internal/storage"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go Repository

// ErrLocalInstance is returned when trying to modify the local instance
var ErrLocalInstance = errors.New("the local instance is read only")

// ErrInvalidInstance is returned when saving an instance that fails validation
var ErrInvalidInstance = errors.New("invalid instance")

// Repository persists target instances. The local instance is resolved from
// configuration and is never stored.
type Repository interface {
	GetLocal() Instance
	Get(ctx context.Context, id string) (Instance, bool, error)
	List(ctx context.Context, filters storage.Filters, pagination storage.Pagination) (storage.PaginatedObjects[Instance], error)
	Save(ctx context.Context, inst Instance) (Instance, error)
	Delete(ctx context.Context, id string) error
}

type storeRepository struct {
	store storage.DocumentStore
	local Instance
}

// NewRepository creates an instance repository on a document store
func NewRepository(store storage.DocumentStore, local Instance) Repository {
	return &storeRepository{store: store, local: local}
}

func (r *storeRepository) GetLocal() Instance {
	return r.local
}

func (r *storeRepository) Get(ctx context.Context, id string) (Instance, bool, error) {
	if id == r.local.ID {
		return r.local, true, nil
	}

	var inst Instance
	found, err := r.store.GetData(ctx, storage.NamespaceInstances, id, &inst)
	if err != nil || !found {
		return Instance{}, found, err
	}
	return inst, true, nil
}

func (r *storeRepository) List(
	ctx context.Context, filters storage.Filters, pagination storage.Pagination,
) (storage.PaginatedObjects[Instance], error) {
	if len(filters.SearchFields) == 0 {
		filters.SearchFields = []string{"name", "url"}
	}
	page, err := storage.GetPaginatedData[Instance](ctx, r.store, storage.NamespaceInstances, filters, pagination)
	if err != nil {
		return page, err
	}
	for i := range page.Objects {
		page.Objects[i] = page.Objects[i].Redacted()
	}
	return page, nil
}

func (r *storeRepository) Save(ctx context.Context, inst Instance) (Instance, error) {
	if inst.ID != "" && inst.ID == r.local.ID {
		return inst, ErrLocalInstance
	}
	if err := inst.Validate(); err != nil {
		return inst, fmt.Errorf("%w: %w", ErrInvalidInstance, err)
	}

	saved := inst
	saved.MetadataMapping = inst.MetadataMapping.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if err := r.store.SaveData(ctx, storage.NamespaceInstances, saved.ID, saved); err != nil {
		return inst, err
	}
	return saved, nil
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	if id == r.local.ID {
		return ErrLocalInstance
	}
	return r.store.DeleteData(ctx, storage.NamespaceInstances, id)
}
