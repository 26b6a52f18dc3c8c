// Package config provides configuration loading and management for the synchronization server.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables read by the application
const EnvPrefix = "METASYNC"

const (
	// StorageTypeMemory keeps documents in process memory
	StorageTypeMemory = "memory"

	// StorageTypeFile stores documents as JSON files on the local filesystem
	StorageTypeFile = "file"

	// StorageTypeDatabase stores documents in PostgreSQL
	StorageTypeDatabase = "database"

	// StorageTypeRedis stores documents in Redis
	StorageTypeRedis = "redis"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultHTTPRetries = 3

	// DefaultTracingSampling samples every trace. Synchronizations are rare
	// and long, so dropping any of them loses most of the signal.
	DefaultTracingSampling = 1.0
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// LocalInstance is the instance this server reads source metadata from
	LocalInstance InstanceConfig `yaml:"localInstance"`

	Storage   StorageConfig    `yaml:"storage"`
	Scheduler *SchedulerConfig `yaml:"scheduler,omitempty"`
	HTTP      *HTTPConfig      `yaml:"http,omitempty"`
	Metrics   *MetricsConfig   `yaml:"metrics,omitempty"`
	Tracing   *TracingConfig   `yaml:"tracing,omitempty"`
}

// InstanceConfig defines the connection to an instance of the platform
type InstanceConfig struct {
	ID       string `yaml:"id,omitempty"`
	Name     string `yaml:"name,omitempty"`
	URL      string `yaml:"url"`
	Username string `yaml:"username,omitempty"`

	// PasswordFile is the path to a file containing the password
	PasswordFile string `yaml:"passwordFile,omitempty"`
}

// StorageConfig selects and configures the document store
type StorageConfig struct {
	Type     string          `yaml:"type"`
	File     *FileConfig     `yaml:"file,omitempty"`
	Database *DatabaseConfig `yaml:"database,omitempty"`
	Redis    *RedisConfig    `yaml:"redis,omitempty"`
}

// FileConfig defines local file storage settings
type FileConfig struct {
	// Path is the base directory for stored documents
	Path string `yaml:"path"`
}

// RedisConfig defines Redis connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// SchedulerConfig controls background execution of synchronization rules
type SchedulerConfig struct {
	Enabled bool `yaml:"enabled"`
}

// HTTPConfig controls requests sent to instances
type HTTPConfig struct {
	Timeout string `yaml:"timeout,omitempty"`
	Retries int    `yaml:"retries,omitempty"`
}

// MetricsConfig controls metric export
type MetricsConfig struct {
	// Enabled pushes metrics to an OTLP HTTP collector
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Insecure bool   `yaml:"insecure,omitempty"`

	// Prometheus serves metrics on /metrics for scraping
	Prometheus bool `yaml:"prometheus,omitempty"`
}

// TracingConfig controls trace export
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Insecure bool   `yaml:"insecure,omitempty"`

	// Sampling is the ratio of traces kept, between 0 and 1
	Sampling float64 `yaml:"sampling,omitempty"`
}

// GetSampling returns the sampling ratio. 0 means unset and yields DefaultTracingSampling.
func (c *TracingConfig) GetSampling() float64 {
	if c == nil || c.Sampling == 0 {
		return DefaultTracingSampling
	}
	return c.Sampling
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password
	PasswordFile string `yaml:"passwordFile,omitempty"`

	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`
}

// GetPassword returns the instance password from PasswordFile, falling back to
// the METASYNC_INSTANCE_PASSWORD environment variable.
func (i *InstanceConfig) GetPassword() (string, error) {
	return readSecret(i.PasswordFile, EnvPrefix+"_INSTANCE_PASSWORD")
}

// GetPassword returns the database password from PasswordFile, falling back to
// the METASYNC_DATABASE_PASSWORD environment variable.
func (d *DatabaseConfig) GetPassword() (string, error) {
	return readSecret(d.PasswordFile, EnvPrefix+"_DATABASE_PASSWORD")
}

func readSecret(file, envVar string) (string, error) {
	if file != "" {
		cleanPath := filepath.Clean(file)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", file, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(envVar); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf("no password configured: set passwordFile or %s environment variable", envVar)
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	), nil
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.LocalInstance.URL == "" {
		return fmt.Errorf("localInstance.url is required")
	}
	if _, err := url.ParseRequestURI(c.LocalInstance.URL); err != nil {
		return fmt.Errorf("localInstance.url is invalid: %w", err)
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if c.HTTP != nil && c.HTTP.Timeout != "" {
		if _, err := time.ParseDuration(c.HTTP.Timeout); err != nil {
			return fmt.Errorf("http.timeout must be a valid duration (e.g., '30s'): %w", err)
		}
	}

	if c.Tracing != nil && (c.Tracing.Sampling < 0 || c.Tracing.Sampling > 1) {
		return fmt.Errorf("tracing.sampling must be between 0.0 and 1.0, got %f", c.Tracing.Sampling)
	}

	return nil
}

func (c *Config) validateStorage() error {
	switch c.GetStorageType() {
	case StorageTypeMemory:
		return nil
	case StorageTypeFile:
		if c.Storage.File == nil || c.Storage.File.Path == "" {
			return fmt.Errorf("storage.file.path is required for file storage")
		}
	case StorageTypeDatabase:
		db := c.Storage.Database
		if db == nil {
			return fmt.Errorf("storage.database is required for database storage")
		}
		if db.Host == "" || db.Database == "" || db.User == "" {
			return fmt.Errorf("storage.database requires host, database and user")
		}
	case StorageTypeRedis:
		if c.Storage.Redis == nil || c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for redis storage")
		}
	default:
		return fmt.Errorf("storage.type must be one of %s, %s, %s or %s, got %q",
			StorageTypeMemory, StorageTypeFile, StorageTypeDatabase, StorageTypeRedis, c.Storage.Type)
	}
	return nil
}

// GetStorageType returns the configured storage type, defaulting to memory
func (c *Config) GetStorageType() string {
	if c.Storage.Type == "" {
		return StorageTypeMemory
	}
	return c.Storage.Type
}

// GetHTTPTimeout returns the timeout for requests sent to instances
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTP == nil || c.HTTP.Timeout == "" {
		return defaultHTTPTimeout
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return defaultHTTPTimeout
	}
	return d
}

// GetHTTPRetries returns the number of attempts for requests sent to instances
func (c *Config) GetHTTPRetries() int {
	if c.HTTP == nil || c.HTTP.Retries <= 0 {
		return defaultHTTPRetries
	}
	return c.HTTP.Retries
}

// IsSchedulerEnabled reports whether sync rules should run in the background
func (c *Config) IsSchedulerEnabled() bool {
	return c.Scheduler != nil && c.Scheduler.Enabled
}

// GetLocalInstanceID returns the id of the local instance, "LOCAL" when not set
func (c *Config) GetLocalInstanceID() string {
	if c.LocalInstance.ID == "" {
		return "LOCAL"
	}
	return c.LocalInstance.ID
}
