package fx

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfBounds is matched by every *OutOfBoundsError.
var ErrOutOfBounds = errors.New("fx rates out of bounds")

// ErrTableNotFound indicates no table is stored for a rate name and quote currency.
var ErrTableNotFound = errors.New("fx rate table not found")

// ErrUnknownCurrency indicates a requested base currency is not a column of the table.
var ErrUnknownCurrency = errors.New("unknown base currency")

// ErrInvalidTable indicates a RateTable was constructed with inconsistent data.
var ErrInvalidTable = errors.New("invalid rate table")

// BoundSide tells which end of the stored date range was violated.
type BoundSide string

// Bound sides.
const (
	BoundStart BoundSide = "start"
	BoundEnd   BoundSide = "end"
)

// OutOfBoundsError reports a request extending past the stored date range.
type OutOfBoundsError struct {
	Side      BoundSide
	Requested time.Time
	Stored    time.Time
}

func (e *OutOfBoundsError) Error() string {
	if e.Side == BoundStart {
		return fmt.Sprintf("requested fx rates starting at %s, but data starts at %s",
			e.Requested.Format(time.RFC3339), e.Stored.Format(time.RFC3339))
	}
	return fmt.Sprintf("requested fx rates ending at %s, but data ends at %s",
		e.Requested.Format(time.RFC3339), e.Stored.Format(time.RFC3339))
}

// Is makes errors.Is(err, ErrOutOfBounds) hold.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
