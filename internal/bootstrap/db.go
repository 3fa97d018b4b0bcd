package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/GoSim-25-26J-441/issue-tracker/config"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/storage/postgres"
)

// OpenDB connects to PostgreSQL and applies the schema when auto-migrate
// is on. It returns nil for the memory driver.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Driver == config.DriverMemory {
		log.Println("[db] using in-memory store, data is lost on exit")
		return nil, nil
	}

	db, err := postgres.NewConnection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}
	}

	log.Printf("[db] connected driver=%s", cfg.Driver)
	return db, nil
}
