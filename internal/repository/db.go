// Package repository reads stored FX rate observations from PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fxrates/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver registration
)

const pingTimeout = 5 * time.Second

// NewPostgresDB opens a connection pool using the provided configuration
// and verifies it is reachable.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeSec) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to connect to database %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	return db, nil
}
