package app

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/synclab/metasync/internal/api"
	"github.com/synclab/metasync/internal/config"
	"github.com/synclab/metasync/internal/git"
	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/metadata/dhis"
	"github.com/synclab/metasync/internal/migrations"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/packages"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/scheduler"
	"github.com/synclab/metasync/internal/service"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/sync"
	"github.com/synclab/metasync/internal/syncrule"
	"github.com/synclab/metasync/internal/telemetry"
	"github.com/synclab/metasync/internal/versions"
)

const (
	defaultHTTPAddress = ":8080"
	defaultReadTimeout = 10 * time.Second
	defaultIdleTimeout = 60 * time.Second

	// Synchronizations run inside the request, so the write and request
	// timeouts leave room for slow instances
	defaultRequestTimeout = 10 * time.Minute
	defaultWriteTimeout   = defaultRequestTimeout + 15*time.Second
)

// AppOption is a function that configures the app builder
type AppOption func(*appConfig) error

// appConfig collects the options of the builder.
// Component overrides are used by tests and the CLI.
type appConfig struct {
	config *config.Config

	store       storage.DocumentStore
	connector   instance.Connector
	gitRepo     git.Repository
	autoMigrate bool

	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

func baseConfig(opts ...AppOption) (*appConfig, error) {
	cfg := &appConfig{
		address:        defaultHTTPAddress,
		autoMigrate:    true,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return cfg, nil
}

// NewApp builds the application: components, scheduler and HTTP server
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	components, err := buildComponents(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpServer, err := buildHTTPServer(cfg, components)
	if err != nil {
		_ = components.Close(ctx)
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)
	return &App{
		config:     cfg.config,
		components: components,
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// NewComponents builds the components without the HTTP server.
// The caller is responsible for calling Close.
func NewComponents(ctx context.Context, opts ...AppOption) (*Components, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	return buildComponents(ctx, cfg)
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) AppOption {
	return func(cfg *appConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address
func WithAddress(addr string) AppOption {
	return func(cfg *appConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		host, port, found := strings.Cut(addr, ":")
		if !found || port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		switch host {
		case "localhost":
			host = "127.0.0.1"
		case "":
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares replaces the default HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) AppOption {
	return func(cfg *appConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithDocumentStore uses the given store instead of the configured one
func WithDocumentStore(store storage.DocumentStore) AppOption {
	return func(cfg *appConfig) error {
		cfg.store = store
		return nil
	}
}

// WithConnector sets how connections to instances are opened
func WithConnector(c instance.Connector) AppOption {
	return func(cfg *appConfig) error {
		cfg.connector = c
		return nil
	}
}

// WithGitRepository sets the client used to read package stores
func WithGitRepository(repo git.Repository) AppOption {
	return func(cfg *appConfig) error {
		cfg.gitRepo = repo
		return nil
	}
}

// WithAutoMigrate controls whether pending migrations are applied on startup
func WithAutoMigrate(enabled bool) AppOption {
	return func(cfg *appConfig) error {
		cfg.autoMigrate = enabled
		return nil
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider instead of the configured one
func WithMeterProvider(mp metric.MeterProvider) AppOption {
	return func(cfg *appConfig) error {
		cfg.meterProvider = mp
		return nil
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider instead of the configured one
func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(cfg *appConfig) error {
		cfg.tracerProvider = tp
		return nil
	}
}

func buildComponents(ctx context.Context, b *appConfig) (_ *Components, err error) {
	logger.Info("Initializing components")

	components := &Components{Store: b.store}
	defer func() {
		if err != nil {
			_ = components.Close(ctx)
		}
	}()

	if components.Store == nil {
		components.Store, err = storage.NewDocumentStore(ctx, b.config)
		if err != nil {
			return nil, fmt.Errorf("failed to create document store: %w", err)
		}
	}

	if b.autoMigrate {
		applied, err := migrations.Run(ctx, components.Store, migrations.Tasks())
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		if len(applied) > 0 {
			logger.Infof("Applied %d migrations", len(applied))
		}
	}

	components.Local, err = instance.FromConfig(b.config)
	if err != nil {
		return nil, err
	}

	if b.connector == nil {
		b.connector = instance.NewConnector(
			dhis.WithTimeout(b.config.GetHTTPTimeout()),
			dhis.WithRetries(b.config.GetHTTPRetries()),
		)
	}
	local, err := b.connector.Connect(components.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local instance: %w", err)
	}

	if b.meterProvider == nil || b.tracerProvider == nil {
		components.telemetry, err = telemetry.New(ctx,
			telemetry.WithMetrics(b.config.Metrics),
			telemetry.WithTracing(b.config.Tracing),
			telemetry.WithServiceVersion(versions.Version),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		if b.meterProvider == nil {
			b.meterProvider = components.telemetry.MeterProvider()
		}
		if b.tracerProvider == nil {
			b.tracerProvider = components.telemetry.TracerProvider()
		}
	}
	syncMetrics, err := telemetry.NewSyncMetrics(b.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync metrics: %w", err)
	}

	store := components.Store
	rules := syncrule.NewRepository(store)
	instances := instance.NewRepository(store, components.Local)
	reports := report.NewRepository(store)
	stores := packages.NewStoreRepository(store)

	components.Sync = sync.Dependencies{
		Local:     local,
		Instances: instances,
		Connector: b.connector,
		Reports:   reports,
		Metrics:   syncMetrics,
		Tracer:    b.tracerProvider.Tracer(telemetry.SyncTracerName),
	}

	if b.gitRepo == nil {
		b.gitRepo = git.NewRepository()
	}

	var svcOpts []service.ServiceOption
	if b.config.IsSchedulerEnabled() {
		syncDeps := components.Sync
		components.Scheduler = scheduler.New(rules,
			func(ctx context.Context, rule syncrule.SyncRule) (report.SynchronizationReport, error) {
				return sync.Run(ctx, rule, syncDeps, scheduler.DefaultUser)
			})
		svcOpts = append(svcOpts, service.WithReloader(components.Scheduler))
		logger.Info("Scheduler enabled")
	}

	components.Service = service.New(service.Dependencies{
		Store:     store,
		Modules:   modules.NewRepository(store),
		Rules:     rules,
		Instances: instances,
		Reports:   reports,
		Stores:    stores,
		Packages:  packages.NewLister(stores, b.gitRepo, packages.InstanceUserGroups(local)),
		Sync:      components.Sync,
	}, svcOpts...)

	logger.Info("Components initialized successfully")
	return components, nil
}

// buildHTTPServer builds the HTTP server with router and middleware
func buildHTTPServer(b *appConfig, components *Components) (*http.Server, error) {
	logger.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	httpMetrics, err := telemetry.NewHTTPMetrics(b.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}
	// Tracing and metrics come first to observe requests rejected by later middlewares
	b.middlewares = append([]func(http.Handler) http.Handler{
		telemetry.TracingMiddleware(b.tracerProvider),
		httpMetrics.Middleware,
	}, b.middlewares...)

	serverOpts := []api.ServerOption{api.WithMiddlewares(b.middlewares...)}
	if components.telemetry != nil && components.telemetry.MetricsHandler() != nil {
		serverOpts = append(serverOpts, api.WithMetricsHandler(components.telemetry.MetricsHandler()))
	}
	router := api.NewServer(components.Service, serverOpts...)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	logger.Infof("HTTP server configured on %s", b.address)
	return server, nil
}
