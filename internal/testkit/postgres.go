package testkit

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RatesDB is a Postgres instance holding the fx_rates schema. It is backed
// either by a throwaway container or by an external database from TEST_PG_DSN.
type RatesDB struct {
	container testcontainers.Container
	dsn       string
	db        *sql.DB
}

// StartRatesDB starts Postgres (or attaches to cfg.PGDSN) and opens a pgx
// connection pool against it.
func StartRatesDB(ctx context.Context, cfg *Config) (*RatesDB, error) {
	r := &RatesDB{dsn: cfg.PGDSN}

	if r.dsn == "" {
		ctr, err := postgres.Run(ctx,
			cfg.PGImage,
			postgres.WithDatabase(databaseName()),
			postgres.WithUsername(cfg.PGUser),
			postgres.WithPassword(cfg.PGPassword),
			testcontainers.WithWaitStrategyAndDeadline(cfg.StartupTimeout,
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("start postgres container: %w", err)
		}
		r.container = ctr

		if r.dsn, err = ctr.ConnectionString(ctx, "sslmode=disable"); err != nil {
			_ = r.Close(ctx)
			return nil, fmt.Errorf("postgres connection string: %w", err)
		}
	}

	db, err := sql.Open("pgx", r.dsn)
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("open rates db: %w", err)
	}
	r.db = db
	if err := db.PingContext(ctx); err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("ping rates db: %w", err)
	}
	return r, nil
}

// DSN returns the connection string of the database.
func (r *RatesDB) DSN() string { return r.dsn }

// DB returns the shared connection pool.
func (r *RatesDB) DB() *sql.DB { return r.db }

// Close closes the pool and terminates the container, if one was started.
func (r *RatesDB) Close(ctx context.Context) error {
	if r.db != nil {
		_ = r.db.Close()
	}
	if r.container == nil {
		return nil
	}
	return r.container.Terminate(ctx)
}

// databaseName returns a unique name like "fxrates_test_a1b2c3d4".
func databaseName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "fxrates_test"
	}
	return "fxrates_test_" + hex.EncodeToString(b)
}
