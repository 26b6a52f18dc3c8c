package storage

import (
	"context"
	"fmt"

	"github.com/synclab/metasync/internal/config"
	"github.com/synclab/metasync/internal/logger"
)

// NewDocumentStore creates the document store selected by the configuration
func NewDocumentStore(ctx context.Context, cfg *config.Config) (DocumentStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	storageType := cfg.GetStorageType()
	logger.Infof("Using %s document storage", storageType)

	switch storageType {
	case config.StorageTypeMemory:
		return NewMemoryStore(), nil
	case config.StorageTypeFile:
		if cfg.Storage.File == nil {
			return nil, fmt.Errorf("file storage requires storage.file")
		}
		return NewFileStore(cfg.Storage.File.Path)
	case config.StorageTypeDatabase:
		if cfg.Storage.Database == nil {
			return nil, fmt.Errorf("database storage requires storage.database")
		}
		connString, err := cfg.Storage.Database.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to build database connection string: %w", err)
		}
		return OpenDatabaseStore(ctx, connString)
	case config.StorageTypeRedis:
		r := cfg.Storage.Redis
		if r == nil {
			return nil, fmt.Errorf("redis storage requires storage.redis")
		}
		return OpenRedisStore(ctx, r.Addr, r.Password, r.DB, r.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
