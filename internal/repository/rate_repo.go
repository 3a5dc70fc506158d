package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"fxrates/internal/fx"
)

// ErrNoRates is returned when the store holds no rate observations.
var ErrNoRates = errors.New("no fx rates stored")

// Observation is a single stored rate: the value of one base currency in
// terms of a quote currency for a rate name at a point in time.
type Observation struct {
	RateName string
	Quote    string
	Base     string
	AsOf     time.Time
	Value    float64
}

// RateRepository defines DB operations for FX rates.
type RateRepository interface {
	LoadDataset(ctx context.Context) (*fx.Dataset, error)
}

// PostgresRateRepository is an implementation of RateRepository using PostgreSQL.
type PostgresRateRepository struct {
	db *sql.DB
}

// NewPostgresRateRepository creates a new PostgresRateRepository.
func NewPostgresRateRepository(db *sql.DB) *PostgresRateRepository {
	return &PostgresRateRepository{db: db}
}

var _ RateRepository = (*PostgresRateRepository)(nil)

// LoadDataset reads every stored observation and materialises it into a Dataset.
func (r *PostgresRateRepository) LoadDataset(ctx context.Context) (*fx.Dataset, error) {
	query := `SELECT rate_name, quote, base, as_of, value
              FROM fx_rates
              ORDER BY rate_name, quote, as_of, base`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fx rates: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	var obs []Observation
	for rows.Next() {
		var o Observation
		if err := rows.Scan(&o.RateName, &o.Quote, &o.Base, &o.AsOf, &o.Value); err != nil {
			return nil, fmt.Errorf("failed to scan fx rate row: %w", err)
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fx rate rows: %w", err)
	}

	return BuildDataset(obs)
}

// BuildDataset pivots observations into one RateTable per rate name and
// quote currency. A table's rows are the distinct observation times of that
// table, its columns the sorted base currencies. A cell with no observation
// carries forward the currency's previous value; cells before a currency's
// first observation hold NaN.
func BuildDataset(obs []Observation) (*fx.Dataset, error) {
	if len(obs) == 0 {
		return nil, ErrNoRates
	}

	type cell struct {
		at   int64
		base string
	}
	type group struct {
		dates map[int64]time.Time
		bases map[string]struct{}
		cells map[cell]float64
	}

	groups := make(map[fx.TableKey]*group)
	for _, o := range obs {
		key := fx.TableKey{
			RateName: strings.TrimSpace(o.RateName),
			Quote:    strings.ToUpper(strings.TrimSpace(o.Quote)),
		}
		base := strings.ToUpper(strings.TrimSpace(o.Base))
		at := o.AsOf.UTC()

		g, ok := groups[key]
		if !ok {
			g = &group{
				dates: make(map[int64]time.Time),
				bases: make(map[string]struct{}),
				cells: make(map[cell]float64),
			}
			groups[key] = g
		}

		c := cell{at: at.UnixNano(), base: base}
		if _, dup := g.cells[c]; dup {
			return nil, fmt.Errorf("duplicate observation for %s/%s %s at %s",
				key.RateName, key.Quote, base, at.Format(time.RFC3339))
		}
		g.cells[c] = o.Value
		g.dates[c.at] = at
		g.bases[base] = struct{}{}
	}

	tables := make(map[fx.TableKey]*fx.RateTable, len(groups))
	for key, g := range groups {
		dates := make([]time.Time, 0, len(g.dates))
		for _, d := range g.dates {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		bases := make([]string, 0, len(g.bases))
		for b := range g.bases {
			bases = append(bases, b)
		}
		sort.Strings(bases)

		values := make([][]float64, len(dates))
		for i, d := range dates {
			row := make([]float64, len(bases))
			for j, b := range bases {
				v, ok := g.cells[cell{at: d.UnixNano(), base: b}]
				switch {
				case ok:
				case i > 0:
					v = values[i-1][j]
				default:
					v = math.NaN()
				}
				row[j] = v
			}
			values[i] = row
		}

		table, err := fx.NewRateTable(dates, bases, values)
		if err != nil {
			return nil, fmt.Errorf("build %s/%s table: %w", key.RateName, key.Quote, err)
		}
		tables[key] = table
	}

	return fx.NewDataset(tables), nil
}
