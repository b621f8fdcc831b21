package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/DonaldEOgbame/subscription-platform/internal/pkg/env"
)

var client *redis.Client

// SetupCache connects to Redis when CACHE_ENABLED is set. The cache fronts
// hot reads (platform settings); the platform works without it.
func SetupCache() {
	if env.GetEnv("CACHE_ENABLED", "false") != "true" {
		log.Info("Cache disabled")
		return
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", env.GetEnv("REDIS_HOST", "127.0.0.1"), env.GetEnv("REDIS_PORT", "6379")),
		Password: env.GetEnv("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("Redis unreachable, continuing without cache: %v", err)
		client = nil
		return
	}
	log.Info("Cache connected")
}

// Enabled reports whether a Redis connection is available.
func Enabled() bool {
	return client != nil
}

func Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	return client.Set(ctx, key, value, ttl).Err()
}

func Get(ctx context.Context, key string) (string, error) {
	if client == nil {
		return "", redis.Nil
	}
	return client.Get(ctx, key).Result()
}

func Delete(ctx context.Context, key string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, key).Err()
}

// IsMiss reports whether the error is a cache miss rather than a failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}

// Close releases the Redis connection.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
