package fx

import (
	"sort"
)

// TableKey identifies a RateTable within a Dataset.
type TableKey struct {
	RateName string
	Quote    string
}

// Dataset holds rate tables keyed by rate name and quote currency.
// It is read-only once constructed and safe for concurrent use.
type Dataset struct {
	tables map[TableKey]*RateTable
}

// NewDataset creates a Dataset over a copy of the given table mapping.
func NewDataset(tables map[TableKey]*RateTable) *Dataset {
	m := make(map[TableKey]*RateTable, len(tables))
	for k, t := range tables {
		m[k] = t
	}
	return &Dataset{tables: m}
}

// Table returns the table stored for rate and quote.
func (d *Dataset) Table(rate, quote string) (*RateTable, bool) {
	t, ok := d.tables[TableKey{RateName: rate, Quote: quote}]
	return t, ok
}

// Len returns the number of tables.
func (d *Dataset) Len() int { return len(d.tables) }

// Keys returns all table keys ordered by rate name, then quote.
func (d *Dataset) Keys() []TableKey {
	keys := make([]TableKey, 0, len(d.tables))
	for k := range d.tables {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RateName != keys[j].RateName {
			return keys[i].RateName < keys[j].RateName
		}
		return keys[i].Quote < keys[j].Quote
	})
	return keys
}
