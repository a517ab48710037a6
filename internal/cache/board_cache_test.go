package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"achievement-board-api/internal/dto"
)

func TestBoardListCache_NilClientNeverHits(t *testing.T) {
	c := NewBoardListCache(nil, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	// Writes and invalidations are no-ops rather than panics
	c.Set(ctx, []*dto.BoardSummaryResponse{{Name: "ignored"}})
	c.Invalidate(ctx)

	_, ok = c.Get(ctx)
	assert.False(t, ok)
}

func TestBoardListCache_NilCacheIsSafe(t *testing.T) {
	var c *BoardListCache
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok)
	c.Set(ctx, nil)
	c.Invalidate(ctx)
}
