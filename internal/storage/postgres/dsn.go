package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/issue-tracker/config"
)

// DSN returns the configured connection string, building a key/value one
// from the individual settings when DB_DSN is unset.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode,
	)
}
