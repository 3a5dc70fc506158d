// Package fx implements point-in-time foreign exchange rate lookup.
package fx

import (
	"fmt"
	"sort"
	"time"
)

// RateTable is an immutable date-indexed table of rates for one rate name
// and quote currency. Rows follow the date index, columns follow the
// currency index, and values are stored densely in row-major order.
type RateTable struct {
	dates      []time.Time
	currencies []string
	columns    map[string]int
	values     []float64
}

// NewRateTable builds a RateTable, copying its inputs.
// Dates must be strictly ascending, currencies unique canonical ISO codes,
// and values must have one row per date and one column per currency.
func NewRateTable(dates []time.Time, currencies []string, values [][]float64) (*RateTable, error) {
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: date index is empty", ErrInvalidTable)
	}
	if len(values) != len(dates) {
		return nil, fmt.Errorf("%w: %d value rows for %d dates", ErrInvalidTable, len(values), len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("%w: date index not strictly ascending at %s",
				ErrInvalidTable, dates[i].Format(time.RFC3339))
		}
	}

	columns := make(map[string]int, len(currencies))
	for i, code := range currencies {
		if !IsCurrencyCode(code) {
			return nil, fmt.Errorf("%w: invalid currency code %q", ErrInvalidTable, code)
		}
		if _, dup := columns[code]; dup {
			return nil, fmt.Errorf("%w: duplicate currency %s", ErrInvalidTable, code)
		}
		columns[code] = i
	}

	flat := make([]float64, 0, len(dates)*len(currencies))
	for i, row := range values {
		if len(row) != len(currencies) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d currencies",
				ErrInvalidTable, i, len(row), len(currencies))
		}
		flat = append(flat, row...)
	}

	return &RateTable{
		dates:      append([]time.Time(nil), dates...),
		currencies: append([]string(nil), currencies...),
		columns:    columns,
		values:     flat,
	}, nil
}

// Dates returns a copy of the date index.
func (t *RateTable) Dates() []time.Time {
	return append([]time.Time(nil), t.dates...)
}

// Currencies returns a copy of the currency index.
func (t *RateTable) Currencies() []string {
	return append([]string(nil), t.currencies...)
}

// Rows returns the number of stored dates.
func (t *RateTable) Rows() int { return len(t.dates) }

// Cols returns the number of stored currencies.
func (t *RateTable) Cols() int { return len(t.currencies) }

// Start returns the earliest stored date.
func (t *RateTable) Start() time.Time { return t.dates[0] }

// End returns the latest stored date.
func (t *RateTable) End() time.Time { return t.dates[len(t.dates)-1] }

// At returns the stored value at row i, column j.
func (t *RateTable) At(i, j int) float64 {
	return t.values[i*len(t.currencies)+j]
}

// asOf returns the index of the latest stored date not after d.
// Returns -1 when d precedes the first stored date.
func (t *RateTable) asOf(d time.Time) int {
	return sort.Search(len(t.dates), func(i int) bool {
		return t.dates[i].After(d)
	}) - 1
}

// column returns the position of code in the currency index.
func (t *RateTable) column(code string) (int, bool) {
	j, ok := t.columns[code]
	return j, ok
}

// IsCurrencyCode reports whether code is a canonical currency code:
// exactly three upper-case ASCII letters.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
