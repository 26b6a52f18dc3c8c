// Package app provides application lifecycle management for the synchronization server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/synclab/metasync/internal/config"
	"github.com/synclab/metasync/internal/logger"
)

// App encapsulates all components needed to run the API server
// It provides lifecycle management and graceful shutdown capabilities
type App struct {
	config     *config.Config
	components *Components
	httpServer *http.Server

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start starts the scheduler in the background and serves HTTP requests.
// It blocks until the HTTP server stops or encounters an error.
func (app *App) Start() error {
	if s := app.components.Scheduler; s != nil {
		go func() {
			if err := s.Start(app.ctx); err != nil {
				logger.Errorf("Scheduler failed: %v", err)
			}
		}()
	}

	logger.Infof("Server listening on %s", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the application with the given timeout.
// Running synchronizations finish before the HTTP server shuts down.
func (app *App) Stop(timeout time.Duration) error {
	logger.Info("Shutting down server...")

	if s := app.components.Scheduler; s != nil {
		if err := s.Stop(); err != nil {
			logger.Errorf("Failed to stop scheduler: %v", err)
		}
	}

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	serverErr := app.httpServer.Shutdown(shutdownCtx)
	if err := app.components.Close(shutdownCtx); err != nil {
		logger.Errorf("Failed to release resources: %v", err)
	}
	if serverErr != nil {
		return fmt.Errorf("server forced to shutdown: %w", serverErr)
	}

	logger.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *App) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server
func (app *App) GetHTTPServer() *http.Server {
	return app.httpServer
}

// GetComponents returns the application components
func (app *App) GetComponents() *Components {
	return app.components
}
