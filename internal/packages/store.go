package packages

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/synclab/metasync/internal/git"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/storage"
)

// ErrStoreNotFound is returned for unknown store ids
var ErrStoreNotFound = errors.New("STORE_NOT_FOUND")

// Store is a git repository holding packages, one branch per user group
type Store struct {
	ID         string `json:"id"`
	Account    string `json:"account"`
	Repository string `json:"repository"`
	Token      string `json:"token,omitempty"`
	Default    bool   `json:"default"`

	// URL overrides the GitHub location derived from account and repository
	URL string `json:"url,omitempty"`
}

// Remote returns the git location of the store
func (s Store) Remote() git.Remote {
	url := s.URL
	if url == "" {
		url = fmt.Sprintf("https://github.com/%s/%s.git", s.Account, s.Repository)
	}
	return git.Remote{URL: url, Account: s.Account, Token: s.Token}
}

// Redacted returns the store without its token
func (s Store) Redacted() Store {
	s.Token = ""
	return s
}

// Validate checks the required fields of the store
func (s Store) Validate() error {
	return errors.Join(
		modules.HasText("account", s.Account),
		modules.HasText("repository", s.Repository),
	)
}

// StoreRepository persists the configured stores. At most one store is the default.
//
//go:generate mockgen -destination=mocks/mock_store_repository.go -package=mocks -source=store.go StoreRepository
type StoreRepository interface {
	List(ctx context.Context) ([]Store, error)
	Get(ctx context.Context, id string) (Store, error)
	GetDefault(ctx context.Context) (Store, bool, error)
	Save(ctx context.Context, store Store) (Store, error)
	SetDefault(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type storeRepository struct {
	store storage.DocumentStore
}

// NewStoreRepository creates a store repository on a document store
func NewStoreRepository(store storage.DocumentStore) StoreRepository {
	return &storeRepository{store: store}
}

func (r *storeRepository) List(ctx context.Context) ([]Store, error) {
	var stores []Store
	if _, err := r.store.GetObject(ctx, storage.NamespaceStores, &stores); err != nil {
		return nil, fmt.Errorf("failed to read stores: %w", err)
	}
	return stores, nil
}

func (r *storeRepository) Get(ctx context.Context, id string) (Store, error) {
	stores, err := r.List(ctx)
	if err != nil {
		return Store{}, err
	}
	idx := slices.IndexFunc(stores, func(s Store) bool { return s.ID == id })
	if idx < 0 {
		return Store{}, ErrStoreNotFound
	}
	return stores[idx], nil
}

func (r *storeRepository) GetDefault(ctx context.Context) (Store, bool, error) {
	stores, err := r.List(ctx)
	if err != nil {
		return Store{}, false, err
	}
	idx := slices.IndexFunc(stores, func(s Store) bool { return s.Default })
	if idx < 0 {
		return Store{}, false, nil
	}
	return stores[idx], true, nil
}

// Save creates or replaces a store. The first store becomes the default, and saving a
// default store clears the flag on the others.
func (r *storeRepository) Save(ctx context.Context, store Store) (Store, error) {
	if err := store.Validate(); err != nil {
		return store, fmt.Errorf("invalid store: %w", err)
	}

	stores, err := r.List(ctx)
	if err != nil {
		return store, err
	}

	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	if len(stores) == 0 {
		store.Default = true
	}

	idx := slices.IndexFunc(stores, func(s Store) bool { return s.ID == store.ID })
	if idx >= 0 {
		stores[idx] = store
	} else {
		stores = append(stores, store)
	}
	if store.Default {
		stores = withDefault(stores, store.ID)
	}

	if err := r.store.SaveObject(ctx, storage.NamespaceStores, stores); err != nil {
		return store, fmt.Errorf("failed to save stores: %w", err)
	}
	return store, nil
}

func (r *storeRepository) SetDefault(ctx context.Context, id string) error {
	stores, err := r.List(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(stores, func(s Store) bool { return s.ID == id }) {
		return ErrStoreNotFound
	}
	return r.store.SaveObject(ctx, storage.NamespaceStores, withDefault(stores, id))
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	stores, err := r.List(ctx)
	if err != nil {
		return err
	}
	remaining := slices.DeleteFunc(stores, func(s Store) bool { return s.ID == id })
	return r.store.SaveObject(ctx, storage.NamespaceStores, remaining)
}

func withDefault(stores []Store, id string) []Store {
	out := slices.Clone(stores)
	for i := range out {
		out[i].Default = out[i].ID == id
	}
	return out
}
