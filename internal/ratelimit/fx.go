package ratelimit

import (
	"github.com/redis/go-redis/v9"
	"github.com/screenclash/screenclash/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("ratelimit",
	fx.Provide(
		newRedisClient,
		newBucket,
		newLimiter,
	),
)

func newRedisClient(cfg config.Config, log *zap.Logger) *redis.Client {
	if !cfg.RateLimit.Enabled {
		log.Warn("redis not configured, upload rate limiting disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RateLimit.RedisAddr,
		Password: cfg.RateLimit.RedisPass,
		DB:       cfg.RateLimit.RedisDB,
	})
}

func newBucket(client *redis.Client) *TokenBucket {
	return NewTokenBucket(client)
}

func newLimiter(bucket *TokenBucket, cfg config.Config) *UploadLimiter {
	return NewUploadLimiter(bucket, cfg.RateLimit)
}
