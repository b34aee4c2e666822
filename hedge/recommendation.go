package hedge

import (
	"time"

	"github.com/rustyeddy/fxhedge/market"
	"github.com/rustyeddy/fxhedge/signals"
)

// Recommendation tier thresholds on the hedge ratio.
const (
	tierSignificant = 0.7
	tierIncrease    = 0.5
	tierModerate    = 0.3
)

// Tier maps a hedge ratio to its textual recommendation.
func Tier(ratio float64) string {
	switch {
	case ratio > tierSignificant:
		return "Significantly increase hedge position"
	case ratio > tierIncrease:
		return "Increase hedge position"
	case ratio > tierModerate:
		return "Maintain moderate hedge position"
	default:
		return "Reduce hedge position"
	}
}

// Sources records the provenance of each input that fed a recommendation,
// so degraded data reaches the user instead of being silently absorbed.
type Sources struct {
	Spot    string
	History string
	Rates   string
	PPP     string
}

// Recommendation is the output record of one advisor run. It is created
// fresh per invocation and never mutated afterwards.
type Recommendation struct {
	ID           string
	Time         time.Time
	HedgeRatio   float64
	Signals      signals.Set
	CurrentRate  float64
	Tier         string
	Rates        market.InterestRates
	Observations int
	Sources      Sources
}
