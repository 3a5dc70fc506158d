package fx

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func days(ss ...string) []time.Time {
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		out[i] = day(s)
	}
	return out
}

// newTestReader returns a reader over the "mid"/USD scenario table plus a
// "bid"/USD table, with "mid" as the default rate.
func newTestReader(t *testing.T) *InMemoryReader {
	t.Helper()

	mid, err := NewRateTable(
		days("2020-01-01", "2020-01-03", "2020-01-05"),
		[]string{"EUR", "GBP"},
		[][]float64{{1.1, 1.3}, {1.2, 1.35}, {1.15, 1.32}},
	)
	require.NoError(t, err)

	bid, err := NewRateTable(
		days("2020-01-01", "2020-01-05"),
		[]string{"EUR", "GBP", "JPY"},
		[][]float64{{1.09, 1.29, 0.009}, {1.14, 1.31, 0.0091}},
	)
	require.NoError(t, err)

	ds := NewDataset(map[TableKey]*RateTable{
		{RateName: "mid", Quote: "USD"}: mid,
		{RateName: "bid", Quote: "USD"}: bid,
	})
	return NewInMemoryReader(ds, "mid")
}

func TestInMemoryReader_GetRates(t *testing.T) {
	ctx := context.Background()
	r := newTestReader(t)

	t.Run("forward fill and column order", func(t *testing.T) {
		m, err := r.GetRates(ctx, "mid", "USD", []string{"GBP", "EUR"}, days("2020-01-02", "2020-01-05"))
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1.3, 1.1}, {1.32, 1.15}}, m.Values())
	})

	t.Run("exact matches at boundaries", func(t *testing.T) {
		first, err := r.GetRates(ctx, "mid", "USD", []string{"EUR", "GBP"}, days("2020-01-01"))
		require.NoError(t, err)
		assert.Equal(t, []float64{1.1, 1.3}, first.Row(0))

		last, err := r.GetRates(ctx, "mid", "USD", []string{"EUR", "GBP"}, days("2020-01-05"))
		require.NoError(t, err)
		assert.Equal(t, []float64{1.15, 1.32}, last.Row(0))
	})

	t.Run("exact match does not advance to next row", func(t *testing.T) {
		m, err := r.GetRates(ctx, "mid", "USD", []string{"EUR"}, days("2020-01-03"))
		require.NoError(t, err)
		assert.Equal(t, 1.2, m.At(0, 0))
	})

	t.Run("intraday timestamps fill from same day", func(t *testing.T) {
		ts := day("2020-01-03").Add(23 * time.Hour)
		m, err := r.GetRates(ctx, "mid", "USD", []string{"EUR"}, []time.Time{ts})
		require.NoError(t, err)
		assert.Equal(t, 1.2, m.At(0, 0))
	})

	t.Run("repeated dates and currencies", func(t *testing.T) {
		m, err := r.GetRates(ctx, "mid", "USD", []string{"EUR", "EUR"}, days("2020-01-04", "2020-01-04"))
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1.2, 1.2}, {1.2, 1.2}}, m.Values())
	})

	t.Run("shape", func(t *testing.T) {
		m, err := r.GetRates(ctx, "bid", "USD", []string{"JPY", "GBP", "EUR"},
			days("2020-01-01", "2020-01-02", "2020-01-03", "2020-01-05"))
		require.NoError(t, err)
		assert.Equal(t, 4, m.Rows())
		assert.Equal(t, 3, m.Cols())
		assert.Equal(t, []float64{0.009, 1.29, 1.09}, m.Row(2))
		assert.Equal(t, []float64{0.0091, 1.31, 1.14}, m.Row(3))
	})

	t.Run("empty dates", func(t *testing.T) {
		m, err := r.GetRates(ctx, "mid", "USD", []string{"EUR", "GBP"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Rows())
		assert.Equal(t, 2, m.Cols())
	})
}

func TestInMemoryReader_ColumnSwap(t *testing.T) {
	ctx := context.Background()
	r := newTestReader(t)
	dates := days("2020-01-01", "2020-01-02", "2020-01-04", "2020-01-05")

	ab, err := r.GetRates(ctx, "mid", "USD", []string{"EUR", "GBP"}, dates)
	require.NoError(t, err)
	ba, err := r.GetRates(ctx, "mid", "USD", []string{"GBP", "EUR"}, dates)
	require.NoError(t, err)

	for i := 0; i < len(dates); i++ {
		assert.Equal(t, ab.At(i, 0), ba.At(i, 1))
		assert.Equal(t, ab.At(i, 1), ba.At(i, 0))
	}
}

func TestInMemoryReader_DefaultAlias(t *testing.T) {
	ctx := context.Background()
	r := newTestReader(t)
	dates := days("2020-01-02", "2020-01-04")
	bases := []string{"GBP", "EUR"}

	viaAlias, err := r.GetRates(ctx, DefaultRateName, "USD", bases, dates)
	require.NoError(t, err)
	direct, err := r.GetRates(ctx, "mid", "USD", bases, dates)
	require.NoError(t, err)

	assert.Equal(t, direct.Values(), viaAlias.Values())
	assert.Equal(t, "mid", r.DefaultRate())
}

func TestInMemoryReader_Deterministic(t *testing.T) {
	ctx := context.Background()
	r := newTestReader(t)
	dates := days("2020-01-01", "2020-01-02", "2020-01-05")

	first, err := r.GetRates(ctx, "mid", "USD", []string{"GBP", "EUR"}, dates)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := r.GetRates(ctx, "mid", "USD", []string{"GBP", "EUR"}, dates)
			if assert.NoError(t, err) {
				for i := 0; i < m.Rows(); i++ {
					for j := 0; j < m.Cols(); j++ {
						assert.Equal(t, math.Float64bits(first.At(i, j)), math.Float64bits(m.At(i, j)))
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestInMemoryReader_OutOfBounds(t *testing.T) {
	ctx := context.Background()
	r := newTestReader(t)

	tests := []struct {
		name      string
		dates     []time.Time
		side      BoundSide
		requested string
		stored    string
		message   string
	}{
		{
			name:      "before start",
			dates:     days("2019-12-31", "2020-01-02"),
			side:      BoundStart,
			requested: "2019-12-31",
			stored:    "2020-01-01",
			message:   "requested fx rates starting at 2019-12-31T00:00:00Z, but data starts at 2020-01-01T00:00:00Z",
		},
		{
			name:      "after end",
			dates:     days("2020-01-02", "2020-01-06"),
			side:      BoundEnd,
			requested: "2020-01-06",
			stored:    "2020-01-05",
			message:   "requested fx rates ending at 2020-01-06T00:00:00Z, but data ends at 2020-01-05T00:00:00Z",
		},
		{
			name:      "one nanosecond past end",
			dates:     []time.Time{day("2020-01-05").Add(time.Nanosecond)},
			side:      BoundEnd,
			requested: "2020-01-05",
			stored:    "2020-01-05",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := r.GetRates(ctx, "mid", "USD", []string{"EUR"}, tc.dates)
			assert.Nil(t, m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfBounds))

			var oob *OutOfBoundsError
			require.True(t, errors.As(err, &oob))
			assert.Equal(t, tc.side, oob.Side)
			assert.Equal(t, day(tc.stored), oob.Stored)
			assert.Equal(t, day(tc.requested), oob.Requested.Truncate(24*time.Hour))
			if tc.message != "" {
				assert.Equal(t, tc.message, err.Error())
			}
		})
	}

	t.Run("bounds checked before currency lookup", func(t *testing.T) {
		_, err := r.GetRates(ctx, "mid", "USD", []string{"XXX"}, days("2019-01-01"))
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("unsorted dates before start", func(t *testing.T) {
		_, err := r.GetRates(ctx, "mid", "USD", []string{"EUR"}, days("2020-01-02", "2019-06-01", "2020-01-05"))
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestInMemoryReader_LookupFailures(t *testing.T) {
	ctx := context.Background()
	r := newTestReader(t)
	dates := days("2020-01-02")

	t.Run("unknown rate", func(t *testing.T) {
		_, err := r.GetRates(ctx, "ask", "USD", []string{"EUR"}, dates)
		assert.ErrorIs(t, err, ErrTableNotFound)
		assert.Contains(t, err.Error(), `"ask"`)
	})

	t.Run("unknown quote", func(t *testing.T) {
		_, err := r.GetRates(ctx, "mid", "CHF", []string{"EUR"}, dates)
		assert.ErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("unknown base currency", func(t *testing.T) {
		_, err := r.GetRates(ctx, "mid", "USD", []string{"EUR", "JPY"}, dates)
		assert.ErrorIs(t, err, ErrUnknownCurrency)
		assert.Contains(t, err.Error(), "JPY")
	})

	t.Run("default resolves to unknown rate", func(t *testing.T) {
		bad := NewInMemoryReader(r.data, "close")
		_, err := bad.GetRates(ctx, DefaultRateName, "USD", []string{"EUR"}, dates)
		assert.ErrorIs(t, err, ErrTableNotFound)
		assert.Contains(t, err.Error(), `"close"`)
	})
}
