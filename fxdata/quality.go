package fxdata

import (
	"fmt"
	"math"

	"github.com/rustyeddy/fxhedge/market"
)

// dailyMoveThreshold flags single-day rate moves larger than 10%.
const dailyMoveThreshold = 0.10

// Band is the plausible range for rates of the configured pair.
type Band struct {
	Low  float64
	High float64
}

// ValidateQuality runs sanity checks over a fetched series and returns
// human-readable warnings. Quality issues never fail a run; they are
// surfaced so the caller can proceed with caution.
func ValidateQuality(series market.RateSeries, band Band) []string {
	var warnings []string

	if len(series) == 0 {
		return []string{"series is empty"}
	}

	outliers := 0
	for _, p := range series {
		if p.Rate < band.Low || p.Rate > band.High {
			outliers++
		}
	}
	if outliers > 0 && float64(outliers) > float64(len(series))*0.01 {
		warnings = append(warnings,
			fmt.Sprintf("%d observations outside plausible band [%v, %v]", outliers, band.Low, band.High))
	}

	jumps := 0
	for i := 1; i < len(series); i++ {
		move := math.Abs(series[i].Rate-series[i-1].Rate) / series[i-1].Rate
		if move > dailyMoveThreshold {
			jumps++
		}
	}
	if jumps > 0 {
		warnings = append(warnings,
			fmt.Sprintf("%d single-day moves above %.0f%%", jumps, dailyMoveThreshold*100))
	}

	return warnings
}
