package service

import (
	"context"
	"fmt"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/migrations"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/packages"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/sync"
	"github.com/synclab/metasync/internal/syncrule"
)

// PackageLister lists the packages published in a store
type PackageLister interface {
	ListStorePackages(ctx context.Context, storeID string) ([]packages.Package, error)
}

// Reloader reloads the scheduled rules after a rule changes
type Reloader interface {
	Reload(ctx context.Context) error
}

// Dependencies are the repositories and collaborators of the service
type Dependencies struct {
	Store     storage.DocumentStore
	Modules   modules.Repository
	Rules     syncrule.Repository
	Instances instance.Repository
	Reports   report.Repository
	Stores    packages.StoreRepository
	Packages  PackageLister

	// Sync carries the local connection, connector and metrics used to run rules.
	// Its Instances and Reports default to the repositories above.
	Sync sync.Dependencies
}

// ServiceOption configures the service
type ServiceOption func(*service)

// WithReloader reloads scheduled rules whenever a rule is saved or deleted
func WithReloader(r Reloader) ServiceOption {
	return func(s *service) {
		s.reloader = r
	}
}

// WithMigrations sets the migrations that must be applied before the service is ready
func WithMigrations(tasks []migrations.Task) ServiceOption {
	return func(s *service) {
		s.migrations = tasks
	}
}

type service struct {
	deps       Dependencies
	reloader   Reloader
	migrations []migrations.Task
}

// New creates the service over its dependencies
func New(deps Dependencies, opts ...ServiceOption) Service {
	if deps.Sync.Instances == nil {
		deps.Sync.Instances = deps.Instances
	}
	if deps.Sync.Reports == nil {
		deps.Sync.Reports = deps.Reports
	}

	s := &service{
		deps:       deps,
		migrations: migrations.Tasks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CheckReadiness(ctx context.Context) error {
	pending, err := migrations.Pending(ctx, s.deps.Store, s.migrations)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	if len(pending) > 0 {
		return fmt.Errorf("%w: %d migrations pending", ErrNotReady, len(pending))
	}
	return nil
}

func (s *service) reload(ctx context.Context) {
	if s.reloader == nil {
		return
	}
	if err := s.reloader.Reload(ctx); err != nil {
		logger.Warnf("Failed to reload scheduled rules: %v", err)
	}
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// get loads a document through a repository getter, mapping a miss to ErrNotFound
func get[T any](
	ctx context.Context, kind, id string, fn func(context.Context, string) (T, bool, error),
) (T, error) {
	v, found, err := fn(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s %s: %w", kind, id, err)
	}
	if !found {
		var zero T
		return zero, notFound(kind, id)
	}
	return v, nil
}
