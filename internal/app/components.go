package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/scheduler"
	"github.com/synclab/metasync/internal/service"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/sync"
	"github.com/synclab/metasync/internal/telemetry"
)

// Components groups the long lived collaborators of the application
type Components struct {
	// Store persists modules, rules, instances, reports and stores
	Store storage.DocumentStore

	// Service provides the business operations exposed over HTTP and the CLI
	Service service.Service

	// Scheduler runs scheduled rules, nil when the scheduler is disabled
	Scheduler scheduler.Scheduler

	// Local is the instance metadata is read from
	Local instance.Instance

	// Sync are the dependencies used to execute rules
	Sync sync.Dependencies

	telemetry *telemetry.Telemetry
}

// Close flushes metrics and releases the document store
func (c *Components) Close(ctx context.Context) error {
	var errs []error
	if c.telemetry != nil {
		if err := c.telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown telemetry: %w", err))
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close document store: %w", err))
		}
	}
	return errors.Join(errs...)
}
