package service

import (
	"errors"
	"strings"
	"time"

	"fxrates/internal/fx"
)

// ErrInvalidCurrencyCode indicates a currency code is not three letters.
var ErrInvalidCurrencyCode = errors.New("invalid currency code format")

// ErrNoBases indicates a lookup requested no base currencies.
var ErrNoBases = errors.New("at least one base currency is required")

// ErrUnsortedDates indicates requested dates are not strictly ascending.
var ErrUnsortedDates = errors.New("dates must be strictly ascending")

// ErrInvalidDate indicates a date could not be parsed.
var ErrInvalidDate = errors.New("invalid date")

// ErrInternal indicates an internal server error.
var ErrInternal = errors.New("internal error")

// IsValidCurrencyCode checks whether a string is a valid 3-letter currency code, in any case.
func IsValidCurrencyCode(code string) bool {
	return fx.IsCurrencyCode(strings.ToUpper(code))
}

// normalizeCurrency trims and upper-cases code, the canonical form stored in rate tables.
func normalizeCurrency(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !IsValidCurrencyCode(code) {
		return "", ErrInvalidCurrencyCode
	}
	return strings.ToUpper(code), nil
}

// ParseCurrencyList splits a comma separated list such as "GBP,eur" into canonical codes.
func ParseCurrencyList(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return nil, ErrNoBases
	}
	parts := strings.Split(list, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		code, err := normalizeCurrency(p)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{"2006-01-02", time.RFC3339Nano}

// ParseDate parses a calendar date (midnight UTC) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseDateList splits a comma separated list of dates. Empty input yields no dates.
func ParseDateList(list string) ([]time.Time, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	dates := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		d, err := ParseDate(p)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func checkAscending(dates []time.Time) error {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return ErrUnsortedDates
		}
	}
	return nil
}
