package syncrule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/synclab/metasync/internal/storage"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go Repository

// Repository persists synchronization rules
type Repository interface {
	Get(ctx context.Context, id string) (SyncRule, bool, error)
	List(ctx context.Context, filters storage.Filters, pagination storage.Pagination) (storage.PaginatedObjects[SyncRule], error)
	ListScheduled(ctx context.Context) ([]SyncRule, error)
	Save(ctx context.Context, rule SyncRule) (SyncRule, error)
	Delete(ctx context.Context, id string) error
}

type storeRepository struct {
	store storage.DocumentStore
	now   func() time.Time
}

// NewRepository creates a rule repository on a document store
func NewRepository(store storage.DocumentStore) Repository {
	return &storeRepository{store: store, now: time.Now}
}

func (r *storeRepository) Get(ctx context.Context, id string) (SyncRule, bool, error) {
	var rule SyncRule
	found, err := r.store.GetData(ctx, storage.NamespaceRules, id, &rule)
	if err != nil || !found {
		return SyncRule{}, found, err
	}
	return rule, true, nil
}

func (r *storeRepository) List(
	ctx context.Context, filters storage.Filters, pagination storage.Pagination,
) (storage.PaginatedObjects[SyncRule], error) {
	return storage.GetPaginatedData[SyncRule](ctx, r.store, storage.NamespaceRules, filters, pagination)
}

// ListScheduled returns the enabled rules that have a frequency
func (r *storeRepository) ListScheduled(ctx context.Context) ([]SyncRule, error) {
	documents, err := r.store.ListData(ctx, storage.NamespaceRules)
	if err != nil {
		return nil, err
	}

	var out []SyncRule
	for _, doc := range documents {
		if !gjson.GetBytes(doc, "enabled").Bool() {
			continue
		}
		var rule SyncRule
		if err := json.Unmarshal(doc, &rule); err != nil {
			return nil, fmt.Errorf("failed to decode rule: %w", err)
		}
		if rule.IsScheduled() {
			out = append(out, rule)
		}
	}
	return out, nil
}

// Save validates and stores the rule
func (r *storeRepository) Save(ctx context.Context, rule SyncRule) (SyncRule, error) {
	if err := rule.Validate(); err != nil {
		return rule, err
	}

	saved := rule.Update(func(out *SyncRule) {
		if out.ID == "" {
			out.ID = uuid.NewString()
		}
		if out.Created.IsZero() {
			out.Created = r.now().UTC()
		}
	})
	if err := r.store.SaveData(ctx, storage.NamespaceRules, saved.ID, saved); err != nil {
		return rule, err
	}
	return saved, nil
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteData(ctx, storage.NamespaceRules, id)
}
