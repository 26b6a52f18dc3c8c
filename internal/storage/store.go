// Package storage provides the key-value document store used to persist modules,
// synchronization rules, reports, stores and instances, with memory, file, database
// and redis backends.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go DocumentStore

// Namespaces of the documents kept by the application
const (
	NamespaceConfig        = "config"
	NamespaceModules       = "modules"
	NamespaceRules         = "rules"
	NamespaceNotifications = "notifications"
	NamespaceStores        = "stores"
	NamespaceInstances     = "instances"
)

// objectKey holds the single document of a namespace used as an object
const objectKey = "__object__"

// ErrInvalidKey is returned for empty namespaces or keys
var ErrInvalidKey = errors.New("invalid namespace or key")

// DocumentStore persists JSON documents grouped by namespace
type DocumentStore interface {
	// GetObject decodes the single document of namespace into out.
	// It reports false when the namespace holds no object.
	GetObject(ctx context.Context, namespace string, out any) (bool, error)

	// SaveObject replaces the single document of namespace
	SaveObject(ctx context.Context, namespace string, value any) error

	// GetData decodes the document stored under key into out.
	// It reports false when no such document exists.
	GetData(ctx context.Context, namespace, key string, out any) (bool, error)

	// SaveData creates or replaces the document stored under key
	SaveData(ctx context.Context, namespace, key string, value any) error

	// DeleteData removes the document stored under key. Missing documents are not an error.
	DeleteData(ctx context.Context, namespace, key string) error

	// ListData returns every keyed document of namespace ordered by key
	ListData(ctx context.Context, namespace string) ([]json.RawMessage, error)

	// Close releases the resources held by the store
	Close() error
}

// backend is the raw byte interface implemented by each storage type
type backend interface {
	get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	put(ctx context.Context, namespace, key string, data []byte) error
	remove(ctx context.Context, namespace, key string) error
	list(ctx context.Context, namespace string) ([][]byte, error)
	close() error
}

// documentStore adds JSON encoding and key validation on top of a backend
type documentStore struct {
	backend backend
}

func newDocumentStore(b backend) DocumentStore {
	return &documentStore{backend: b}
}

func (s *documentStore) GetObject(ctx context.Context, namespace string, out any) (bool, error) {
	return s.read(ctx, namespace, objectKey, out)
}

func (s *documentStore) SaveObject(ctx context.Context, namespace string, value any) error {
	return s.write(ctx, namespace, objectKey, value)
}

func (s *documentStore) GetData(ctx context.Context, namespace, key string, out any) (bool, error) {
	if err := validateKey(namespace, key); err != nil {
		return false, err
	}
	return s.read(ctx, namespace, key, out)
}

func (s *documentStore) SaveData(ctx context.Context, namespace, key string, value any) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}
	return s.write(ctx, namespace, key, value)
}

func (s *documentStore) DeleteData(ctx context.Context, namespace, key string) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}
	if err := s.backend.remove(ctx, namespace, key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *documentStore) ListData(ctx context.Context, namespace string) ([]json.RawMessage, error) {
	if namespace == "" {
		return nil, ErrInvalidKey
	}
	items, err := s.backend.list(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", namespace, err)
	}
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item))
	}
	return out, nil
}

func (s *documentStore) Close() error {
	return s.backend.close()
}

func (s *documentStore) read(ctx context.Context, namespace, key string, out any) (bool, error) {
	if namespace == "" {
		return false, ErrInvalidKey
	}
	data, found, err := s.backend.get(ctx, namespace, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

func (s *documentStore) write(ctx context.Context, namespace, key string, value any) error {
	if namespace == "" {
		return ErrInvalidKey
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", namespace, key, err)
	}
	if err := s.backend.put(ctx, namespace, key, data); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", namespace, key, err)
	}
	return nil
}

func validateKey(namespace, key string) error {
	if namespace == "" || key == "" || key == objectKey {
		return fmt.Errorf("%w: %q/%q", ErrInvalidKey, namespace, key)
	}
	return nil
}
