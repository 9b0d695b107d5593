package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the TTL key-value facade in front of the OpenWeatherMap fetches.
// Writes are best-effort at the call site; reads distinguish only hit and miss
// (errCacheMiss), with expiry handled inside the backend.
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Flush(ctx context.Context) error
}

// RedisCache backs the facade with Redis; entry expiry is delegated to the
// server via SET EX.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	p, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, p, expiration).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errCacheMiss
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (c *RedisCache) Flush(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

// fileCacheEnvelope wraps a cached payload with its expiry instant, so the
// Set-side TTL contract holds for plain files too.
type fileCacheEnvelope struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Payload   json.RawMessage `json:"payload"`
}

// FileCache backs the facade with one JSON file per key under a cache
// directory. This is the default backend of the CLI.
type FileCache struct {
	dir string
	now func() time.Time
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{
		dir: dir,
		now: time.Now,
	}
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	envelope, err := json.Marshal(fileCacheEnvelope{
		ExpiresAt: c.now().Add(expiration),
		Payload:   payload,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	return os.WriteFile(c.path(key), envelope, 0o644)
}

func (c *FileCache) Get(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", errCacheMiss
	}
	if err != nil {
		return "", err
	}

	var envelope fileCacheEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		// A corrupt entry reads as a miss; the next Set overwrites it.
		return "", errCacheMiss
	}
	if c.now().After(envelope.ExpiresAt) {
		return "", errCacheMiss
	}
	return string(envelope.Payload), nil
}

func (c *FileCache) Flush(ctx context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
