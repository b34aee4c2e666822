package market

import (
	"math/rand"
	"time"
)

// Synthetic generates a deterministic random-walk rate series ending at end,
// one observation per day. It is the documented fallback when no live
// history can be fetched: the same seed always yields the same series, so
// backtests over synthetic data are reproducible.
func Synthetic(end time.Time, days int, base, dailyVol float64, seed int64) RateSeries {
	if days < 1 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	end = end.UTC().Truncate(24 * time.Hour)

	series := make(RateSeries, days)
	rate := base
	for i := 0; i < days; i++ {
		if i > 0 {
			rate *= 1 + rng.NormFloat64()*dailyVol
		}
		series[i] = RatePoint{
			Time: end.AddDate(0, 0, i-days+1),
			Rate: rate,
		}
	}
	return series
}
