// Package rates provides the conversion rate table and currency conversion
// used when a profile commits a budget entry.
//
// Rates are expressed relative to one implicit base currency. Conversion
// between two codes always passes through that base; a code missing from the
// table converts with rate 1.0, which degrades to treating that side as
// already the base currency.
package rates

// Table is an immutable in-memory rate mapping. The zero value is a valid
// empty table for which every lookup returns the identity rate.
type Table struct {
	rates  map[string]float64
	loaded bool
}

// NewTable builds a table from a code->rate mapping.
func NewTable(rates map[string]float64) Table {
	m := make(map[string]float64, len(rates))
	for code, rate := range rates {
		m[code] = rate
	}
	return Table{rates: m, loaded: true}
}

// Empty returns a table with no rates and the loaded flag unset.
func Empty() Table {
	return Table{}
}

// RateOf returns the stored rate for code, or 1.0 when the code is unknown.
// The fallback is a documented policy, not an error: the caller must be able
// to convert through a stale or missing rate document without failing.
func (t Table) RateOf(code string) float64 {
	if rate, ok := t.rates[code]; ok {
		return rate
	}
	return 1.0
}

// Loaded reports whether the table came from a successfully fetched rate
// document. An unloaded table still answers RateOf with the identity rate.
func (t Table) Loaded() bool {
	return t.loaded
}

// Len returns the number of known codes.
func (t Table) Len() int {
	return len(t.rates)
}

// Convert converts amount from one currency code to another by passing
// through the base currency: amount/RateOf(from)*RateOf(to). Converting a
// code to itself returns the amount unchanged for any rate, including the
// fallback.
func (t Table) Convert(amount float64, from, to string) float64 {
	return amount / t.RateOf(from) * t.RateOf(to)
}
