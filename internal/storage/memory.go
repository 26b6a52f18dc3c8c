package storage

import (
	"context"
	"slices"
	"sort"
	"sync"
)

type memoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryStore creates a DocumentStore kept in process memory
func NewMemoryStore() DocumentStore {
	return newDocumentStore(&memoryBackend{data: make(map[string]map[string][]byte)})
}

func (m *memoryBackend) get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[namespace][key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(data), true, nil
}

func (m *memoryBackend) put(_ context.Context, namespace, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[namespace] == nil {
		m.data[namespace] = make(map[string][]byte)
	}
	m.data[namespace][key] = slices.Clone(data)
	return nil
}

func (m *memoryBackend) remove(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[namespace], key)
	return nil
}

func (m *memoryBackend) list(_ context.Context, namespace string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data[namespace]))
	for key := range m.data[namespace] {
		if key != objectKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([][]byte, 0, len(keys))
	for _, key := range keys {
		out = append(out, slices.Clone(m.data[namespace][key]))
	}
	return out, nil
}

func (*memoryBackend) close() error { return nil }
