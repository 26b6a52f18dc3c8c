package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

const (
	documentExt = ".json"
	lockName    = ".lock"
)

// fileBackend stores each document as <basePath>/<namespace>/<key>.json.
// Writes go through a temporary file and an atomic rename, guarded by a lock file
// shared with other processes using the same directory.
type fileBackend struct {
	basePath string
	mu       sync.Mutex
	lock     *flock.Flock
}

// NewFileStore creates a DocumentStore persisting documents under basePath
func NewFileStore(basePath string) (DocumentStore, error) {
	if err := os.MkdirAll(basePath, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return newDocumentStore(&fileBackend{
		basePath: basePath,
		lock:     flock.New(filepath.Join(basePath, lockName)),
	}), nil
}

func (f *fileBackend) path(namespace, key string) string {
	return filepath.Join(f.basePath, url.PathEscape(namespace), url.PathEscape(key)+documentExt)
}

func (f *fileBackend) get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.RLock(); err != nil {
		return nil, false, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	// #nosec G304 -- path segments are escaped and rooted at basePath
	data, err := os.ReadFile(f.path(namespace, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (f *fileBackend) put(_ context.Context, namespace, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	filePath := f.path(namespace, key)
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create namespace directory: %w", err)
	}

	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename document file: %w", err)
	}
	return nil
}

func (f *fileBackend) remove(_ context.Context, namespace, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	if err := os.Remove(f.path(namespace, key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *fileBackend) list(_ context.Context, namespace string) ([][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	dir := filepath.Join(f.basePath, url.PathEscape(namespace))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	objectFile := url.PathEscape(objectKey) + documentExt
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, documentExt) || name == objectFile {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([][]byte, 0, len(names))
	for _, name := range names {
		// #nosec G304 -- name comes from reading the namespace directory
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func (f *fileBackend) close() error {
	return f.lock.Close()
}
