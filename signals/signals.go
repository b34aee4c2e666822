// Package signals implements the three hedging signals: carry, momentum and
// value. Each is a pure function of already-materialized inputs and returns
// a value in [0,1], where 0 means "don't hedge" and 1 means "hedge fully".
// Signals never fail on valid input; thin data gets a neutral reading.
package signals

import "github.com/rustyeddy/fxhedge/market"

const (
	// Neutral is the reading a signal returns when it has too little data
	// to take a view.
	Neutral = 0.5

	// carryScale saturates the carry signal: a 5-point rate differential
	// pins it at 0 or 1.
	carryScale = 10.0

	// momentumScale converts the lookback FX return into signal space:
	// a 25% move saturates the signal.
	momentumScale = 2.0

	// MinMomentumObservations is the smallest series the momentum signal
	// will compute from. Anything shorter returns Neutral.
	MinMomentumObservations = 30

	// ValueScalePrimary converts PPP deviation into signal space when the
	// fair value comes from a live source.
	ValueScalePrimary = 0.1

	// ValueScaleFallback is the wider scale used with the fixed fallback
	// PPP estimate, which is coarser than a live reading.
	ValueScaleFallback = 0.3
)

// Set holds one reading of each signal.
type Set struct {
	Carry    float64
	Momentum float64
	Value    float64
}

// Carry maps the interest rate differential (domestic minus foreign, in
// percentage points) to [0,1]. A domestic rate below the foreign rate makes
// holding the foreign currency unhedged cheaper to carry, so the signal
// rises as the differential falls.
func Carry(differential float64) float64 {
	return clamp(Neutral-differential/carryScale, 0, 1)
}

// Momentum is a trend-following signal over the rate series. It compares
// the newest rate to the rate lookback observations earlier; when the
// series is shorter than the lookback, it narrows to the oldest available
// observation. Series with fewer than MinMomentumObservations return
// Neutral without attempting the calculation.
func Momentum(series market.RateSeries, lookback int) float64 {
	if len(series) < MinMomentumObservations {
		return Neutral
	}

	if max := len(series) - 1; lookback > max {
		lookback = max
	}

	now := series[len(series)-1].Rate
	past := series[len(series)-1-lookback].Rate
	fxReturn := (now - past) / past

	return clamp(Neutral+fxReturn*momentumScale, 0, 1)
}

// Value compares the market rate to a PPP fair-value rate, both in the
// domestic-per-foreign convention. A market rate above fair value means the
// foreign currency is expensive and likely to revert, so the signal falls as
// the deviation grows. scale is ValueScalePrimary for a live PPP reading and
// ValueScaleFallback for the fixed estimate.
func Value(currentRate, pppRate, scale float64) float64 {
	deviation := (currentRate - pppRate) / pppRate
	return clamp(Neutral-deviation*scale, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
