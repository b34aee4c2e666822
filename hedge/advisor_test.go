package hedge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxhedge/market"
	"github.com/rustyeddy/fxhedge/signals"
)

// stubData is a MarketData with canned answers.
type stubData struct {
	spot      market.Quote
	series    market.RateSeries
	seriesTag market.Quote
	rates     market.InterestRates
	ratesTag  market.Quote
	ppp       market.Quote
	pppOK     bool
}

func (s stubData) CurrentRate(context.Context) market.Quote { return s.spot }

func (s stubData) HistoricalSeries(_ context.Context, _ int) (market.RateSeries, market.Quote) {
	return s.series, s.seriesTag
}

func (s stubData) InterestRates(context.Context) (market.InterestRates, market.Quote) {
	return s.rates, s.ratesTag
}

func (s stubData) PPPFairValue(context.Context) (market.Quote, bool) { return s.ppp, s.pppOK }

func testCombiner(t *testing.T) *Combiner {
	t.Helper()
	c, err := NewCombiner(Weights{Carry: 0.5, Momentum: 0.3, Value: 0.2}, Bounds{0, 1})
	require.NoError(t, err)
	return c
}

func flatSeries(n int, rate float64) market.RateSeries {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(market.RateSeries, n)
	for i := range s {
		s[i] = market.RatePoint{Time: start.AddDate(0, 0, i), Rate: rate}
	}
	return s
}

func TestNewAdvisorValidation(t *testing.T) {
	t.Parallel()

	c := testCombiner(t)
	good := AdvisorConfig{HistoryDays: 730, LookbackDays: 365, FallbackPPP: 1.40}

	_, err := NewAdvisor(nil, c, good)
	assert.Error(t, err)

	_, err = NewAdvisor(stubData{}, nil, good)
	assert.Error(t, err)

	for _, bad := range []AdvisorConfig{
		{HistoryDays: 0, LookbackDays: 365, FallbackPPP: 1.4},
		{HistoryDays: 730, LookbackDays: 0, FallbackPPP: 1.4},
		{HistoryDays: 730, LookbackDays: 365, FallbackPPP: 0},
	} {
		_, err = NewAdvisor(stubData{}, c, bad)
		assert.Error(t, err)
	}
}

func TestRecommendLivePath(t *testing.T) {
	t.Parallel()

	data := stubData{
		spot:      market.Live(4.50),
		series:    flatSeries(400, 4.50),
		seriesTag: market.Live(0),
		rates:     market.InterestRates{Domestic: 3.0, Foreign: 5.0},
		ratesTag:  market.Live(0),
		ppp:       market.Live(4.50),
		pppOK:     true,
	}

	a, err := NewAdvisor(data, testCombiner(t), AdvisorConfig{HistoryDays: 730, LookbackDays: 365, FallbackPPP: 1.40})
	require.NoError(t, err)

	rec, err := a.Recommend(context.Background())
	require.NoError(t, err)

	// Differential -2 => carry 0.7; flat series => momentum 0.5;
	// spot at fair value => value 0.5.
	assert.InDelta(t, 0.7, rec.Signals.Carry, 1e-9)
	assert.InDelta(t, 0.5, rec.Signals.Momentum, 1e-9)
	assert.InDelta(t, 0.5, rec.Signals.Value, 1e-9)

	want := 0.7*0.5 + 0.5*0.3 + 0.5*0.2
	assert.InDelta(t, want, rec.HedgeRatio, 1e-9)
	assert.Equal(t, Tier(want), rec.Tier)

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Time.IsZero())
	assert.Equal(t, 4.50, rec.CurrentRate)
	assert.Equal(t, 400, rec.Observations)
	assert.Equal(t, "live", rec.Sources.Spot)
	assert.Equal(t, "live", rec.Sources.PPP)
}

func TestRecommendPPPFallbackPath(t *testing.T) {
	t.Parallel()

	data := stubData{
		spot:      market.Fallback(4.50, "api unavailable"),
		series:    flatSeries(400, 4.50),
		seriesTag: market.Fallback(0, "synthetic"),
		rates:     market.InterestRates{Domestic: 3.0, Foreign: 3.0},
		ratesTag:  market.Fallback(0, "manual rates"),
		pppOK:     false,
	}

	a, err := NewAdvisor(data, testCombiner(t), AdvisorConfig{HistoryDays: 730, LookbackDays: 365, FallbackPPP: 1.40})
	require.NoError(t, err)

	rec, err := a.Recommend(context.Background())
	require.NoError(t, err)

	// The fallback path uses the fixed PPP estimate with the wider scale.
	wantValue := signals.Value(4.50, 1.40, signals.ValueScaleFallback)
	assert.Equal(t, wantValue, rec.Signals.Value)
	assert.Equal(t, "fallback (fixed estimate)", rec.Sources.PPP)
	assert.Equal(t, "fallback (api unavailable)", rec.Sources.Spot)
	assert.Equal(t, "fallback (synthetic)", rec.Sources.History)
	assert.Equal(t, "fallback (manual rates)", rec.Sources.Rates)
}

func TestRecommendShortHistoryIsNeutralMomentum(t *testing.T) {
	t.Parallel()

	data := stubData{
		spot:      market.Live(4.50),
		series:    flatSeries(10, 4.50),
		seriesTag: market.Live(0),
		rates:     market.InterestRates{Domestic: 3.0, Foreign: 5.25},
		ratesTag:  market.Live(0),
		ppp:       market.Live(4.50),
		pppOK:     true,
	}

	a, err := NewAdvisor(data, testCombiner(t), AdvisorConfig{HistoryDays: 730, LookbackDays: 365, FallbackPPP: 1.40})
	require.NoError(t, err)

	rec, err := a.Recommend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, signals.Neutral, rec.Signals.Momentum)
	assert.Equal(t, 10, rec.Observations)
}
