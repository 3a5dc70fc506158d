package fx

import (
	"context"
	"fmt"
	"time"
)

// DefaultRateName is the rate name readers resolve to their configured default.
const DefaultRateName = "default"

// Reader looks up rates converting base currencies into a quote currency.
//
// GetRates returns a len(dates) x len(bases) matrix whose entry [i][j] is
// the rate for bases[j] as of dates[i]. Dates must be ascending. A request
// starting before or ending after the stored range fails with an error
// matching ErrOutOfBounds.
type Reader interface {
	GetRates(ctx context.Context, rate, quote string, bases []string, dates []time.Time) (*Matrix, error)
}

var _ Reader = (*InMemoryReader)(nil)

// InMemoryReader serves rates from a fully materialised Dataset.
type InMemoryReader struct {
	data        *Dataset
	defaultRate string
}

// NewInMemoryReader creates a reader over data. Requests for DefaultRateName
// are served from defaultRate. The reader does not own data.
func NewInMemoryReader(data *Dataset, defaultRate string) *InMemoryReader {
	return &InMemoryReader{
		data:        data,
		defaultRate: defaultRate,
	}
}

// DefaultRate returns the rate name substituted for DefaultRateName.
func (r *InMemoryReader) DefaultRate() string { return r.defaultRate }

// GetRates returns as-of rates for bases against quote at each of dates.
func (r *InMemoryReader) GetRates(_ context.Context, rate, quote string, bases []string, dates []time.Time) (*Matrix, error) {
	if rate == DefaultRateName {
		rate = r.defaultRate
	}

	table, ok := r.data.Table(rate, quote)
	if !ok {
		return nil, fmt.Errorf("%w: rate %q, quote %q", ErrTableNotFound, rate, quote)
	}

	if len(dates) == 0 {
		return newMatrix(0, len(bases)), nil
	}

	if err := checkDates(table, dates); err != nil {
		return nil, err
	}

	cols := make([]int, len(bases))
	for j, base := range bases {
		col, ok := table.column(base)
		if !ok {
			return nil, fmt.Errorf("%w: %q not in %s/%s table", ErrUnknownCurrency, base, rate, quote)
		}
		cols[j] = col
	}

	out := newMatrix(len(dates), len(bases))
	for i, d := range dates {
		row := table.asOf(d)
		if row < 0 {
			// only reachable when dates are not ascending
			return nil, &OutOfBoundsError{Side: BoundStart, Requested: d, Stored: table.Start()}
		}
		for j, col := range cols {
			out.set(i, j, table.At(row, col))
		}
	}
	return out, nil
}

// checkDates verifies the requested range lies within the stored range.
// Only the first and last requested dates are inspected.
func checkDates(table *RateTable, dates []time.Time) error {
	requestStart, requestEnd := dates[0], dates[len(dates)-1]
	dataStart, dataEnd := table.Start(), table.End()

	if requestStart.Before(dataStart) {
		return &OutOfBoundsError{Side: BoundStart, Requested: requestStart, Stored: dataStart}
	}
	if requestEnd.After(dataEnd) {
		return &OutOfBoundsError{Side: BoundEnd, Requested: requestEnd, Stored: dataEnd}
	}
	return nil
}
