package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/config"
	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to Redis, or returns nil when no address is configured.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		log.Println("[cache] REDIS_ADDR not set, list cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[cache] connected addr=%s ttl=%s", cfg.Addr, cfg.CacheTTL)
	return client, nil
}
