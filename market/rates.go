package market

// InterestRates is a pair of annualized short-term rates, in percent.
// Domestic is the home central bank rate, Foreign the rate of the currency
// being purchased.
type InterestRates struct {
	Domestic float64
	Foreign  float64
}

// Differential returns domestic minus foreign, in percentage points.
// A negative differential makes the unhedged foreign position cheaper to
// carry.
func (r InterestRates) Differential() float64 {
	return r.Domestic - r.Foreign
}
