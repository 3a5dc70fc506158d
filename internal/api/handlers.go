package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"fxrates/internal/fx"
	"fxrates/internal/service"
)

// RatesResponse represents the response for a rate lookup.
// Values[i][j] is the rate of Bases[j] in Quote as of Dates[i]; null marks a
// stored date with no observation for that currency.
type RatesResponse struct {
	Rate   string       `json:"rate" example:"mid"`
	Quote  string       `json:"quote" example:"USD"`
	Bases  []string     `json:"bases" example:"GBP,EUR"`
	Dates  []string     `json:"dates" example:"2020-01-02T00:00:00Z,2020-01-05T00:00:00Z"`
	Values [][]*float64 `json:"values"`
}

// TableResponse describes one stored rate table.
type TableResponse struct {
	Rate       string   `json:"rate" example:"mid"`
	Quote      string   `json:"quote" example:"USD"`
	Currencies []string `json:"currencies" example:"EUR,GBP"`
	Start      string   `json:"start" example:"2020-01-01T00:00:00Z"`
	End        string   `json:"end" example:"2020-01-05T00:00:00Z"`
	Rows       int      `json:"rows" example:"3"`
}

// HandleGetRates godoc
// @Summary Get as-of FX rates
// @Description Returns, for each requested date, the latest stored rate at or before that date for every requested base currency. Columns follow the order of bases; rows follow the order of dates.
// @Tags rates
// @Produce json
// @Param rate query string false "Rate name; omitted or 'default' selects the configured default rate" example(mid)
// @Param quote query string true "Quote currency code (3 letters)" minlength(3) maxlength(3)
// @Param bases query string true "Comma separated base currency codes" example(GBP,EUR)
// @Param dates query string false "Comma separated, strictly ascending dates (YYYY-MM-DD or RFC 3339)" example(2020-01-02,2020-01-05)
// @Success 200 {object} RatesResponse "Rates found"
// @Failure 400 {object} ErrorResponse "Invalid currency code, date, or date order"
// @Failure 404 {object} ErrorResponse "Unknown rate, quote, or base currency"
// @Failure 422 {object} ErrorResponse "Requested dates outside the stored range"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates [get]
func HandleGetRates(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("quote") == "" || q.Get("bases") == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "quote and bases query params are required"})
			return
		}

		bases, err := service.ParseCurrencyList(q.Get("bases"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		dates, err := service.ParseDateList(q.Get("dates"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		res, err := svc.GetRates(r.Context(), service.RatesRequest{
			Rate:  q.Get("rate"),
			Quote: q.Get("quote"),
			Bases: bases,
			Dates: dates,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidCurrencyCode),
				errors.Is(err, service.ErrNoBases),
				errors.Is(err, service.ErrUnsortedDates):
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			case errors.Is(err, fx.ErrTableNotFound), errors.Is(err, fx.ErrUnknownCurrency):
				writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
			case errors.Is(err, fx.ErrOutOfBounds):
				writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			default:
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, ratesResponse(res))
	}
}

// HandleListTables godoc
// @Summary List stored rate tables
// @Description Lists every rate name / quote currency table with its currencies and stored date range.
// @Tags rates
// @Produce json
// @Success 200 {array} TableResponse "Stored tables"
// @Router /tables [get]
func HandleListTables(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables := svc.ListTables(r.Context())
		resp := make([]TableResponse, 0, len(tables))
		for _, t := range tables {
			resp = append(resp, TableResponse{
				Rate:       t.Rate,
				Quote:      t.Quote,
				Currencies: t.Currencies,
				Start:      t.Start.Format(time.RFC3339),
				End:        t.End.Format(time.RFC3339),
				Rows:       t.Rows,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func ratesResponse(res *service.RatesResult) RatesResponse {
	dates := make([]string, len(res.Dates))
	for i, d := range res.Dates {
		dates[i] = d.Format(time.RFC3339Nano)
	}

	values := make([][]*float64, len(res.Values))
	for i, row := range res.Values {
		out := make([]*float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				out[j] = &v
			}
		}
		values[i] = out
	}

	return RatesResponse{
		Rate:   res.Rate,
		Quote:  res.Quote,
		Bases:  res.Bases,
		Dates:  dates,
		Values: values,
	}
}
