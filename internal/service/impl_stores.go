package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/synclab/metasync/internal/packages"
)

func (s *service) ListStores(ctx context.Context) ([]packages.Store, error) {
	stores, err := s.deps.Stores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]packages.Store, 0, len(stores))
	for _, store := range stores {
		out = append(out, store.Redacted())
	}
	return out, nil
}

// SaveStore keeps the token of an existing store when the request leaves it empty.
// A default store stays the default until another store is made the default.
func (s *service) SaveStore(ctx context.Context, store packages.Store) (packages.Store, error) {
	if err := store.Validate(); err != nil {
		return store, invalid(err)
	}

	if store.ID != "" {
		existing, err := s.deps.Stores.Get(ctx, store.ID)
		switch {
		case err == nil:
			if store.Token == "" {
				store.Token = existing.Token
			}
			store.Default = store.Default || existing.Default
		case !errors.Is(err, packages.ErrStoreNotFound):
			return store, err
		}
	}

	saved, err := s.deps.Stores.Save(ctx, store)
	if err != nil {
		return store, err
	}
	return saved.Redacted(), nil
}

func (s *service) DeleteStore(ctx context.Context, id string) error {
	if _, err := s.deps.Stores.Get(ctx, id); err != nil {
		return storeError(id, err)
	}
	return s.deps.Stores.Delete(ctx, id)
}

func (s *service) SetDefaultStore(ctx context.Context, id string) error {
	return storeError(id, s.deps.Stores.SetDefault(ctx, id))
}

func (s *service) ListStorePackages(ctx context.Context, storeID string) ([]packages.Package, error) {
	list, err := s.deps.Packages.ListStorePackages(ctx, storeID)
	if err != nil {
		return nil, storeError(storeID, err)
	}
	return list, nil
}

func storeError(id string, err error) error {
	if errors.Is(err, packages.ErrStoreNotFound) {
		return fmt.Errorf("%w: %w %s", ErrNotFound, err, id)
	}
	return err
}
