// Package service implements request validation and lookup orchestration for FX rates.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"fxrates/internal/fx"
)

// RateServiceInterface defines the operations available for rate lookup.
type RateServiceInterface interface {
	GetRates(ctx context.Context, req RatesRequest) (*RatesResult, error)
	ListTables(ctx context.Context) []TableInfo
}

// RatesRequest describes a rate lookup. Currency codes may be in any case;
// a blank rate name selects the default rate.
type RatesRequest struct {
	Rate  string
	Quote string
	Bases []string
	Dates []time.Time
}

// RatesResult holds a lookup result. Values[i][j] is the rate of Bases[j] in
// Quote as of Dates[i]; NaN marks a table cell with no observation.
type RatesResult struct {
	Rate   string
	Quote  string
	Bases  []string
	Dates  []time.Time
	Values [][]float64
}

// TableInfo summarises one stored rate table.
type TableInfo struct {
	Rate       string
	Quote      string
	Currencies []string
	Start      time.Time
	End        time.Time
	Rows       int
}

// RateService validates lookups and serves them from a Reader.
type RateService struct {
	reader fx.Reader
	tables []TableInfo
	log    *zap.SugaredLogger
}

// NewRateService creates a new RateService. data is only used to describe
// the available tables; lookups always go through reader.
func NewRateService(reader fx.Reader, data *fx.Dataset, logger *zap.SugaredLogger) *RateService {
	return &RateService{
		reader: reader,
		tables: describe(data),
		log:    logger,
	}
}

// GetRates normalises and validates req, then looks up the rates.
func (s *RateService) GetRates(ctx context.Context, req RatesRequest) (*RatesResult, error) {
	rate := strings.TrimSpace(req.Rate)
	if rate == "" {
		rate = fx.DefaultRateName
	}

	quote, err := normalizeCurrency(req.Quote)
	if err != nil {
		return nil, err
	}

	if len(req.Bases) == 0 {
		return nil, ErrNoBases
	}
	bases := make([]string, len(req.Bases))
	for i, b := range req.Bases {
		if bases[i], err = normalizeCurrency(b); err != nil {
			return nil, err
		}
	}

	if err := checkAscending(req.Dates); err != nil {
		return nil, err
	}

	m, err := s.reader.GetRates(ctx, rate, quote, bases, req.Dates)
	if err != nil {
		switch {
		case errors.Is(err, fx.ErrOutOfBounds):
			s.log.Infow("Rate request out of bounds", "rate", rate, "quote", quote, "error", err)
			return nil, err
		case errors.Is(err, fx.ErrTableNotFound), errors.Is(err, fx.ErrUnknownCurrency):
			s.log.Infow("Rate request for unknown data", "rate", rate, "quote", quote, "bases", bases, "error", err)
			return nil, err
		default:
			s.log.Errorw("Rate lookup failed", "rate", rate, "quote", quote, "error", err)
			return nil, ErrInternal
		}
	}

	return &RatesResult{
		Rate:   rate,
		Quote:  quote,
		Bases:  bases,
		Dates:  append([]time.Time(nil), req.Dates...),
		Values: m.Values(),
	}, nil
}

// ListTables returns a summary of every stored table ordered by rate name and quote.
func (s *RateService) ListTables(_ context.Context) []TableInfo {
	return append([]TableInfo(nil), s.tables...)
}

func describe(data *fx.Dataset) []TableInfo {
	if data == nil {
		return nil
	}
	keys := data.Keys()
	out := make([]TableInfo, 0, len(keys))
	for _, k := range keys {
		t, _ := data.Table(k.RateName, k.Quote)
		out = append(out, TableInfo{
			Rate:       k.RateName,
			Quote:      k.Quote,
			Currencies: t.Currencies(),
			Start:      t.Start(),
			End:        t.End(),
			Rows:       t.Rows(),
		})
	}
	return out
}
