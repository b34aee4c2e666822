package hedge

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/fxhedge/market"
	"github.com/rustyeddy/fxhedge/pkg/id"
	"github.com/rustyeddy/fxhedge/signals"
)

// MarketData is the narrow contract the advisor needs from a data provider.
// Implementations must return either live values or documented fallbacks;
// they never fail. PPPFairValue reports ok=false when no fair-value
// reference is available at all, which switches the value signal onto its
// fallback path.
type MarketData interface {
	CurrentRate(ctx context.Context) market.Quote
	HistoricalSeries(ctx context.Context, days int) (market.RateSeries, market.Quote)
	InterestRates(ctx context.Context) (market.InterestRates, market.Quote)
	PPPFairValue(ctx context.Context) (market.Quote, bool)
}

// AdvisorConfig carries the validated knobs the advisor needs per run.
type AdvisorConfig struct {
	HistoryDays  int     // how much history to request for momentum
	LookbackDays int     // momentum comparison window within that history
	FallbackPPP  float64 // fixed fair-value estimate when PPP is unavailable
}

// Advisor runs the recommendation pipeline: fetch inputs, derive the three
// signals, combine, and package the result. Signals are re-derived from raw
// inputs on every call; the advisor keeps no state between runs.
type Advisor struct {
	data     MarketData
	combiner *Combiner
	cfg      AdvisorConfig
}

func NewAdvisor(data MarketData, combiner *Combiner, cfg AdvisorConfig) (*Advisor, error) {
	if data == nil {
		return nil, fmt.Errorf("advisor: market data source is required")
	}
	if combiner == nil {
		return nil, fmt.Errorf("advisor: combiner is required")
	}
	if cfg.HistoryDays <= 0 {
		return nil, fmt.Errorf("advisor: history days must be positive, got %d", cfg.HistoryDays)
	}
	if cfg.LookbackDays <= 0 {
		return nil, fmt.Errorf("advisor: lookback days must be positive, got %d", cfg.LookbackDays)
	}
	if cfg.FallbackPPP <= 0 {
		return nil, fmt.Errorf("advisor: fallback PPP must be positive, got %v", cfg.FallbackPPP)
	}
	return &Advisor{data: data, combiner: combiner, cfg: cfg}, nil
}

// Recommend computes one hedge ratio recommendation. Data degradation is
// absorbed into the record's Sources tags; a correctly configured advisor
// never fails here.
func (a *Advisor) Recommend(ctx context.Context) (Recommendation, error) {
	spot := a.data.CurrentRate(ctx)
	series, seriesTag := a.data.HistoricalSeries(ctx, a.cfg.HistoryDays)
	rates, ratesTag := a.data.InterestRates(ctx)

	set := signals.Set{
		Carry:    signals.Carry(rates.Differential()),
		Momentum: signals.Momentum(series, a.cfg.LookbackDays),
	}

	ppp, ok := a.data.PPPFairValue(ctx)
	pppTag := ppp.String()
	if ok {
		set.Value = signals.Value(spot.Value, ppp.Value, signals.ValueScalePrimary)
	} else {
		// No fair-value reference: fall back to the fixed estimate with
		// the wider scale that compensates for its imprecision.
		set.Value = signals.Value(spot.Value, a.cfg.FallbackPPP, signals.ValueScaleFallback)
		pppTag = market.Fallback(a.cfg.FallbackPPP, "fixed estimate").String()
	}

	ratio := a.combiner.Combine(set)

	return Recommendation{
		ID:           id.New(),
		Time:         time.Now().UTC(),
		HedgeRatio:   ratio,
		Signals:      set,
		CurrentRate:  spot.Value,
		Tier:         Tier(ratio),
		Rates:        rates,
		Observations: len(series),
		Sources: Sources{
			Spot:    spot.String(),
			History: seriesTag.String(),
			Rates:   ratesTag.String(),
			PPP:     pppTag,
		},
	}, nil
}
