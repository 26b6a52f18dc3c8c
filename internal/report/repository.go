package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/storage"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go Repository

// Repository persists synchronization reports
type Repository interface {
	Get(ctx context.Context, id string) (SynchronizationReport, bool, error)
	List(ctx context.Context, filters storage.Filters, pagination storage.Pagination) (storage.PaginatedObjects[SynchronizationReport], error)
	Save(ctx context.Context, syncReport SynchronizationReport) (SynchronizationReport, error)
	Delete(ctx context.Context, id string) error
}

type storeRepository struct {
	store storage.DocumentStore
}

// NewRepository creates a report repository on a document store
func NewRepository(store storage.DocumentStore) Repository {
	return &storeRepository{store: store}
}

func (r *storeRepository) Get(ctx context.Context, id string) (SynchronizationReport, bool, error) {
	var report SynchronizationReport
	found, err := r.store.GetData(ctx, storage.NamespaceNotifications, id, &report)
	if err != nil || !found {
		return SynchronizationReport{}, found, err
	}
	return Build(&report), true, nil
}

func (r *storeRepository) List(
	ctx context.Context, filters storage.Filters, pagination storage.Pagination,
) (storage.PaginatedObjects[SynchronizationReport], error) {
	if pagination.SortField == "" {
		pagination.SortField = "timestamp"
		pagination.SortOrder = storage.SortDesc
	}
	return storage.GetPaginatedData[SynchronizationReport](ctx, r.store, storage.NamespaceNotifications, filters, pagination)
}

// Save replaces the stored report, assigning an id to reports saved for the first time
func (r *storeRepository) Save(ctx context.Context, syncReport SynchronizationReport) (SynchronizationReport, error) {
	saved := Build(&syncReport)
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	} else if err := r.store.DeleteData(ctx, storage.NamespaceNotifications, saved.ID); err != nil {
		return syncReport, err
	}

	logger.Debugf("Saving synchronization report %s with status %s", saved.ID, saved.Status)
	if err := r.store.SaveData(ctx, storage.NamespaceNotifications, saved.ID, saved); err != nil {
		return syncReport, err
	}
	return saved, nil
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteData(ctx, storage.NamespaceNotifications, id)
}
