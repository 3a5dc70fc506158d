// Package metrics instruments rate lookups with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fxrates/internal/fx"
)

// Lookup outcomes recorded in the outcome label.
const (
	OutcomeOK          = "ok"
	OutcomeOutOfBounds = "out_of_bounds"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
)

// UnknownLabel replaces the rate and quote labels of lookups that did not
// resolve to a stored table, keeping series cardinality bounded by the dataset.
const UnknownLabel = "unknown"

var _ fx.Reader = (*InstrumentedReader)(nil)

// InstrumentedReader wraps a Reader and records lookup counts and latency.
type InstrumentedReader struct {
	next     fx.Reader
	lookups  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewInstrumentedReader creates an InstrumentedReader and registers its
// collectors with reg.
func NewInstrumentedReader(next fx.Reader, reg prometheus.Registerer) (*InstrumentedReader, error) {
	r := &InstrumentedReader{
		next: next,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fxrates",
			Name:      "lookups_total",
			Help:      "Number of rate lookups by rate name, quote currency and outcome",
		}, []string{"rate", "quote", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fxrates",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent serving rate lookups",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"rate"}),
	}

	for _, c := range []prometheus.Collector{r.lookups, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// GetRates delegates to the wrapped Reader.
func (r *InstrumentedReader) GetRates(ctx context.Context, rate, quote string, bases []string, dates []time.Time) (*fx.Matrix, error) {
	start := time.Now()
	m, err := r.next.GetRates(ctx, rate, quote, bases, dates)
	elapsed := time.Since(start)

	res := outcome(err)
	if res == OutcomeError || errors.Is(err, fx.ErrTableNotFound) {
		rate, quote = UnknownLabel, UnknownLabel
	}
	r.duration.WithLabelValues(rate).Observe(elapsed.Seconds())
	r.lookups.WithLabelValues(rate, quote, res).Inc()
	return m, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, fx.ErrOutOfBounds):
		return OutcomeOutOfBounds
	case errors.Is(err, fx.ErrTableNotFound), errors.Is(err, fx.ErrUnknownCurrency):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
