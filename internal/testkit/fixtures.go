package testkit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fxrates/internal/repository"
)

// ScenarioRates returns the reference fixture: a "mid" USD table with EUR and
// GBP on 2020-01-01, 01-03 and 01-05, plus a one-row "bid" table on 01-02.
func ScenarioRates() []repository.Observation {
	day := func(d int) time.Time { return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC) }
	return []repository.Observation{
		{RateName: "mid", Quote: "USD", Base: "EUR", AsOf: day(1), Value: 1.1},
		{RateName: "mid", Quote: "USD", Base: "GBP", AsOf: day(1), Value: 1.3},
		{RateName: "mid", Quote: "USD", Base: "EUR", AsOf: day(3), Value: 1.2},
		{RateName: "mid", Quote: "USD", Base: "GBP", AsOf: day(3), Value: 1.35},
		{RateName: "mid", Quote: "USD", Base: "EUR", AsOf: day(5), Value: 1.15},
		{RateName: "mid", Quote: "USD", Base: "GBP", AsOf: day(5), Value: 1.32},
		{RateName: "bid", Quote: "USD", Base: "EUR", AsOf: day(2), Value: 1.09},
	}
}

// ResetRates removes every stored observation.
func ResetRates(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "TRUNCATE TABLE fx_rates"); err != nil {
		return fmt.Errorf("truncate fx_rates: %w", err)
	}
	return nil
}

// SeedRates inserts observations in a single transaction. The service never
// writes rates, so this is the only writer of fx_rates.
func SeedRates(ctx context.Context, db *sql.DB, obs ...repository.Observation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fx_rates (rate_name, quote, base, as_of, value) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.ExecContext(ctx, o.RateName, o.Quote, o.Base, o.AsOf, o.Value); err != nil {
			return fmt.Errorf("seed %s/%s %s at %s: %w", o.RateName, o.Quote, o.Base, o.AsOf.Format(time.RFC3339), err)
		}
	}
	return tx.Commit()
}
