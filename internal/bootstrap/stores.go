package bootstrap

import (
	"context"
	"database/sql"
	"log"

	"github.com/GoSim-25-26J-441/issue-tracker/config"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/repository"
	"github.com/redis/go-redis/v9"
)

// Stores owns every process-wide connection. It is opened before the
// server starts serving and closed after it has shut down.
type Stores struct {
	DB     *sql.DB
	Redis  *redis.Client
	Issues repository.Store
}

// OpenStores wires the issue store for cfg: PostgreSQL or memory, wrapped
// in the Redis cache when one is configured.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	db, err := OpenDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb, err := OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	s := &Stores{DB: db, Redis: rdb}

	var store repository.Store
	if db != nil {
		store = repository.NewPostgresStore(db)
	} else {
		store = repository.NewMemoryStore()
	}
	if rdb != nil {
		store = repository.NewCachedStore(store, rdb, cfg.Redis.CacheTTL)
	}
	s.Issues = store

	return s, nil
}

// Close releases Redis and the database pool.
func (s *Stores) Close() {
	if s == nil {
		return
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Printf("[cache] close: %v", err)
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Printf("[db] close: %v", err)
		}
	}
}
