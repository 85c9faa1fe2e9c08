// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// document.go provides a Valkey-backed cache for document bodies served on
// the public read path. The restaurant site polls these files far more often
// than the admin edits them, so cached reads skip the database entirely.
// Every admin write invalidates the touched document.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// docKeyPrefix is the Valkey key prefix for cached documents.
	docKeyPrefix = "doc:"

	// DefaultDocumentTTL is how long a served document stays cached.
	DefaultDocumentTTL = 5 * time.Minute
)

// DocumentCache manages cached document bodies in Valkey. A nil
// *DocumentCache is valid and disables caching.
type DocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocumentCache creates a document cache backed by the given Valkey client.
func NewDocumentCache(client *redis.Client, ttl time.Duration) *DocumentCache {
	if ttl == 0 {
		ttl = DefaultDocumentTTL
	}
	return &DocumentCache{client: client, ttl: ttl}
}

// Get retrieves a cached document body. Returns (nil, false) on miss.
func (dc *DocumentCache) Get(ctx context.Context, name string) ([]byte, bool) {
	if dc == nil {
		return nil, false
	}
	val, err := dc.client.Get(ctx, docKeyPrefix+name).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("document cache get error", "name", name, "error", err)
		return nil, false
	}
	slog.Debug("document cache hit", "name", name)
	return val, true
}

// Set stores a document body with the configured TTL.
func (dc *DocumentCache) Set(ctx context.Context, name string, body []byte) {
	if dc == nil {
		return
	}
	if err := dc.client.Set(ctx, docKeyPrefix+name, body, dc.ttl).Err(); err != nil {
		slog.Warn("document cache set error", "name", name, "error", err)
	}
}

// Invalidate removes a single document from the cache.
func (dc *DocumentCache) Invalidate(ctx context.Context, name string) {
	if dc == nil {
		return
	}
	if err := dc.client.Del(ctx, docKeyPrefix+name).Err(); err != nil {
		slog.Warn("document cache invalidate error", "name", name, "error", err)
	}
	slog.Debug("document cache invalidated", "name", name)
}

// InvalidateAll removes every cached document by scanning for the prefix.
func (dc *DocumentCache) InvalidateAll(ctx context.Context) {
	if dc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := dc.client.Scan(ctx, cursor, docKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("document cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := dc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("document cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("document cache fully cleared", "deleted", deleted)
	}
}
