//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fxrates/internal/repository"
	"fxrates/internal/testkit"
)

var testDB *sql.DB

// resetTestData empties fx_rates.
func resetTestData(t *testing.T) {
	t.Helper()
	if err := testkit.ResetRates(testContext(t), testDB); err != nil {
		t.Fatal(err)
	}
}

func seedRates(t *testing.T, obs ...repository.Observation) {
	t.Helper()
	if err := testkit.SeedRates(testContext(t), testDB, obs...); err != nil {
		t.Fatal(err)
	}
}

// testContext returns a context with a 30-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
