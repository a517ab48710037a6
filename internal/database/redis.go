package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"achievement-board-api/internal/config"
)

var redisClient *redis.Client

// InitRedis connects to redis using the configured URL. Caching is
// optional; callers treat a nil client as cache-disabled.
func InitRedis(cfg *config.Config, log *zap.Logger) error {
	var client *redis.Client

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     "redis:6379",
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Info("Redis connection established successfully", zap.Int("db", cfg.Redis.DB))
	return nil
}

// GetRedis returns the redis client, or nil when redis is not connected
func GetRedis() *redis.Client {
	return redisClient
}
