package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix prefixes the hash keys holding each namespace
const DefaultRedisPrefix = "metasync:"

// redisBackend keeps one hash per namespace, with document keys as hash fields
type redisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a DocumentStore using an existing client
func NewRedisStore(client *redis.Client, prefix string) DocumentStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return newDocumentStore(&redisBackend{client: client, prefix: prefix})
}

// OpenRedisStore connects to Redis and returns a DocumentStore
func OpenRedisStore(ctx context.Context, addr, password string, db int, prefix string) (DocumentStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisStore(client, prefix), nil
}

func (r *redisBackend) hash(namespace string) string {
	return r.prefix + namespace
}

func (r *redisBackend) get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	data, err := r.client.HGet(ctx, r.hash(namespace), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *redisBackend) put(ctx context.Context, namespace, key string, data []byte) error {
	return r.client.HSet(ctx, r.hash(namespace), key, data).Err()
}

func (r *redisBackend) remove(ctx context.Context, namespace, key string) error {
	return r.client.HDel(ctx, r.hash(namespace), key).Err()
}

func (r *redisBackend) list(ctx context.Context, namespace string) ([][]byte, error) {
	values, err := r.client.HGetAll(ctx, r.hash(namespace)).Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if key != objectKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([][]byte, 0, len(keys))
	for _, key := range keys {
		out = append(out, []byte(values[key]))
	}
	return out, nil
}

func (r *redisBackend) close() error {
	return r.client.Close()
}
