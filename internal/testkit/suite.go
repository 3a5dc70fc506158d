package testkit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"

	"go.uber.org/zap"

	"fxrates/internal/repository"
)

// Suite owns the migrated rates database shared by an integration test binary.
type Suite struct {
	mu    sync.Mutex
	cfg   Config
	rates *RatesDB
}

var (
	globalSuite *Suite
	globalOnce  sync.Once
)

// Global returns the singleton Suite instance.
func Global() *Suite {
	globalOnce.Do(func() {
		globalSuite = &Suite{cfg: LoadConfig()}
	})
	return globalSuite
}

// Setup starts the database and applies the fx_rates migrations.
// Returns an error if called twice without Shutdown in between.
func (s *Suite) Setup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rates != nil {
		return fmt.Errorf("suite already set up; call Shutdown first")
	}

	rates, err := StartRatesDB(ctx, &s.cfg)
	if err != nil {
		return fmt.Errorf("setup rates db: %w", err)
	}
	if err := repository.RunMigrations(ctx, rates.DB(), zap.NewNop().Sugar()); err != nil {
		_ = rates.Close(ctx)
		return fmt.Errorf("migrate rates db: %w", err)
	}
	s.rates = rates
	return nil
}

// Shutdown closes the database. The container is kept when KEEP_CONTAINERS is set.
func (s *Suite) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rates == nil {
		return
	}
	rates := s.rates
	s.rates = nil

	if s.cfg.KeepContainers {
		_ = rates.DB().Close()
		fmt.Println("KEEP_CONTAINERS=true, skipping container cleanup")
		fmt.Println("  Postgres DSN:", rates.DSN())
		return
	}
	if err := rates.Close(ctx); err != nil {
		fmt.Println("warning: failed to terminate postgres container:", err)
	}
}

// DB returns the migrated database, or nil before Setup.
func (s *Suite) DB() *sql.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rates == nil {
		return nil
	}
	return s.rates.DB()
}

// Run sets up the suite, calls optional afterSetup callbacks, executes the
// tests, then shuts down. Intended for use in TestMain.
func (s *Suite) Run(m *testing.M, afterSetup ...func(db *sql.DB) error) {
	ctx := context.Background()

	if err := s.Setup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "integration test setup failed: %v\n", err)
		os.Exit(1)
	}

	for _, fn := range afterSetup {
		if err := fn(s.DB()); err != nil {
			fmt.Fprintf(os.Stderr, "afterSetup callback failed: %v\n", err)
			s.Shutdown(ctx)
			os.Exit(1)
		}
	}

	code := m.Run()

	s.Shutdown(ctx)
	os.Exit(code)
}

// Run is a package-level convenience that delegates to Global().Run.
func Run(m *testing.M, afterSetup ...func(db *sql.DB) error) {
	Global().Run(m, afterSetup...)
}
