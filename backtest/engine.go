// Package backtest replays a daily foreign-currency purchase schedule under
// fixed hedge ratios and compares the outcomes against a no-hedge baseline.
package backtest

import (
	"fmt"
	"math"

	"github.com/rustyeddy/fxhedge/market"
)

// DefaultFeeRate is the annualized cost of the hedging instrument applied to
// the hedged fraction of each daily purchase.
const DefaultFeeRate = 0.005

// purchaseDays spreads the annual amount evenly across the year regardless
// of the simulated horizon. Deliberate simplification.
const purchaseDays = 365

// Engine runs purchase-cost simulations for one purchase program. The
// configuration is validated once at construction; Simulate and Compare
// never re-validate it.
type Engine struct {
	annualPurchase float64
	horizonDays    int
	feeRate        float64
}

// NewEngine rejects invalid purchase parameters up front.
func NewEngine(annualPurchase float64, horizonDays int, feeRate float64) (*Engine, error) {
	if annualPurchase <= 0 {
		return nil, fmt.Errorf("annual purchase amount must be positive, got %v", annualPurchase)
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon days must be positive, got %d", horizonDays)
	}
	if feeRate < 0 {
		return nil, fmt.Errorf("fee rate must not be negative, got %v", feeRate)
	}
	return &Engine{
		annualPurchase: annualPurchase,
		horizonDays:    horizonDays,
		feeRate:        feeRate,
	}, nil
}

// ScenarioResult is the outcome of simulating one fixed hedge ratio.
// Immutable once returned; each invocation produces its own copy.
type ScenarioResult struct {
	HedgeRatio float64

	DailyCosts []float64
	TotalCost  float64
	BaseCost   float64 // spot + locked legs, excluding fees
	HedgeFees  float64

	Volatility   float64 // population stddev of the daily cost series
	MaxDailyCost float64
	MinDailyCost float64

	// Horizon is the number of days actually simulated. It is narrower
	// than the configured horizon when the series is short.
	Horizon int
}

// Simulate replays the purchase schedule over the most recent window of the
// series at a fixed hedge ratio. A series shorter than horizon+1
// observations narrows the horizon to len(series)-1 and proceeds; the
// adjusted horizon is reported on the result. All costs are in the domestic
// currency of the purchase amount, unrounded.
func (e *Engine) Simulate(series market.RateSeries, hedgeRatio float64) (ScenarioResult, error) {
	if hedgeRatio < 0 || hedgeRatio > 1 {
		return ScenarioResult{}, fmt.Errorf("hedge ratio must be in [0, 1], got %v", hedgeRatio)
	}
	if len(series) == 0 {
		return ScenarioResult{}, fmt.Errorf("rate series is empty")
	}

	horizon := e.horizonDays
	if len(series) < horizon+1 {
		horizon = len(series) - 1
	}

	window := series.Tail(horizon + 1)
	initialRate := window.First().Rate
	dailyPurchase := e.annualPurchase / purchaseDays

	result := ScenarioResult{
		HedgeRatio: hedgeRatio,
		DailyCosts: make([]float64, 0, horizon),
		Horizon:    horizon,
	}

	for i := 1; i < len(window); i++ {
		// Unhedged portion priced at the day's spot rate.
		unhedged := dailyPurchase * (1 - hedgeRatio) * window[i].Rate

		// Hedged portion locked at the rate observed at the window start,
		// modelling a forward struck once and held.
		hedged := dailyPurchase * hedgeRatio * initialRate

		fee := dailyPurchase * hedgeRatio * e.feeRate / purchaseDays

		total := unhedged + hedged + fee
		result.DailyCosts = append(result.DailyCosts, total)
		result.BaseCost += unhedged + hedged
		result.HedgeFees += fee
		result.TotalCost += total
	}

	result.Volatility = populationStdDev(result.DailyCosts)
	result.MaxDailyCost, result.MinDailyCost = extremes(result.DailyCosts)

	return result, nil
}

func populationStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

func extremes(xs []float64) (max, min float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	max, min = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
		if x < min {
			min = x
		}
	}
	return max, min
}
