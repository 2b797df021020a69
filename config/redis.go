package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// ConnectRedis establishes connection to Redis. It returns nil when Redis is unreachable;
// callers fall back to in-process session storage.
func ConnectRedis(ctx context.Context, cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis connection failed, sessions will be kept in memory")
		client.Close()
		return nil
	}

	log.Info().Str("addr", cfg.Addr).Msg("Connected to Redis")
	return client
}
