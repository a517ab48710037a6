package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"achievement-board-api/internal/dto"
)

const boardListKey = "boards:summaries"

// BoardListCache is an optional redis cache for the board list endpoint.
// It only ever holds board summaries; full documents and their derived
// stats are always recomputed from a fresh store read. Every mutation
// invalidates the key, and a nil cache (redis not configured) is a no-op,
// so callers never branch on availability.
type BoardListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewBoardListCache creates a board list cache backed by the given client.
// A nil client yields a cache that never hits.
func NewBoardListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *BoardListCache {
	return &BoardListCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached summary list, or ok=false on miss or any error
func (c *BoardListCache) Get(ctx context.Context) ([]*dto.BoardSummaryResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, boardListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read board list cache", zap.Error(err))
		}
		return nil, false
	}
	var summaries []*dto.BoardSummaryResponse
	if err := json.Unmarshal(raw, &summaries); err != nil {
		c.logger.Warn("Discarding corrupt board list cache entry", zap.Error(err))
		return nil, false
	}
	return summaries, true
}

// Set stores the summary list; failures are logged and ignored
func (c *BoardListCache) Set(ctx context.Context, summaries []*dto.BoardSummaryResponse) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, boardListKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write board list cache", zap.Error(err))
	}
}

// Invalidate drops the cached list after any board mutation
func (c *BoardListCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, boardListKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate board list cache", zap.Error(err))
	}
}
