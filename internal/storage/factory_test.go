package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synclab/metasync/internal/config"
)

func TestNewDocumentStore(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "config cannot be nil"},
		{name: "memory by default", cfg: &config.Config{}},
		{
			name: "file",
			cfg: &config.Config{Storage: config.StorageConfig{
				Type: config.StorageTypeFile,
				File: &config.FileConfig{Path: t.TempDir()},
			}},
		},
		{
			name: "redis",
			cfg: &config.Config{Storage: config.StorageConfig{
				Type:  config.StorageTypeRedis,
				Redis: &config.RedisConfig{Addr: mr.Addr()},
			}},
		},
		{
			name:    "file without settings",
			cfg:     &config.Config{Storage: config.StorageConfig{Type: config.StorageTypeFile}},
			wantErr: "requires storage.file",
		},
		{
			name:    "unknown",
			cfg:     &config.Config{Storage: config.StorageConfig{Type: "s3"}},
			wantErr: "unknown storage type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, err := NewDocumentStore(context.Background(), tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, store)
			assert.NoError(t, store.Close())
		})
	}
}
