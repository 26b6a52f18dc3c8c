// Package migrations upgrades the documents kept in the store. The version applied
// last is recorded in the config namespace.
package migrations

import (
	"context"
	"fmt"
	"slices"

	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/storage"
)

// Config is the document of the config namespace
type Config struct {
	Version int `json:"version"`
}

// Task upgrades the store to Version
type Task struct {
	Version int
	Name    string
	Migrate func(ctx context.Context, store storage.DocumentStore) error
}

// Tasks returns the known migrations ordered by version
func Tasks() []Task {
	return []Task{
		{Version: 1, Name: "init", Migrate: initConfig},
	}
}

func initConfig(ctx context.Context, store storage.DocumentStore) error {
	return store.SaveObject(ctx, storage.NamespaceConfig, Config{Version: 1})
}

// CurrentVersion returns the version recorded in the store, 0 when none is
func CurrentVersion(ctx context.Context, store storage.DocumentStore) (int, error) {
	var cfg Config
	if _, err := store.GetObject(ctx, storage.NamespaceConfig, &cfg); err != nil {
		return 0, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg.Version, nil
}

// Pending returns the tasks newer than the version recorded in the store
func Pending(ctx context.Context, store storage.DocumentStore, tasks []Task) ([]Task, error) {
	current, err := CurrentVersion(ctx, store)
	if err != nil {
		return nil, err
	}

	var out []Task
	for _, task := range tasks {
		if task.Version > current {
			out = append(out, task)
		}
	}
	slices.SortFunc(out, func(a, b Task) int { return a.Version - b.Version })
	return out, nil
}

// Run applies the pending tasks in order, recording the version after each one.
// It returns the tasks applied.
func Run(ctx context.Context, store storage.DocumentStore, tasks []Task) ([]Task, error) {
	pending, err := Pending(ctx, store, tasks)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		logger.Debug("Store is up to date")
		return nil, nil
	}

	var applied []Task
	for _, task := range pending {
		logger.Infof("Applying migration %02d.%s", task.Version, task.Name)
		if err := task.Migrate(ctx, store); err != nil {
			return applied, fmt.Errorf("migration %02d.%s failed: %w", task.Version, task.Name, err)
		}
		if err := store.SaveObject(ctx, storage.NamespaceConfig, Config{Version: task.Version}); err != nil {
			return applied, fmt.Errorf("failed to record version %d: %w", task.Version, err)
		}
		applied = append(applied, task)
	}
	return applied, nil
}
