package fxdata

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/market"
)

// spotSource fetches spot quotes and daily history for a symbol.
type spotSource interface {
	CurrentRate(ctx context.Context, symbol string) (float64, error)
	HistoricalSeries(ctx context.Context, symbol string, days int) (market.RateSeries, error)
}

// rateSource fetches the latest observation of an interest rate series.
type rateSource interface {
	LatestRate(ctx context.Context, seriesID string) (float64, error)
}

// pppSource fetches a PPP conversion factor for a country.
type pppSource interface {
	PPPConversionFactor(ctx context.Context, country string) (float64, error)
}

// Provider hands the algorithm its market inputs. Every method returns
// either a live value or a documented fallback, tagged with its provenance;
// none of them fails. Retry and timeout policy lives in the underlying HTTP
// clients, never in the core.
type Provider struct {
	spot  spotSource
	fred  rateSource // nil when no API key is configured
	wb    pppSource
	cache *SeriesCache // nil when caching is disabled

	cfg config.DataConfig
	now func() time.Time
}

// NewProvider wires the live clients according to the data configuration.
func NewProvider(cfg config.DataConfig) *Provider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	p := &Provider{
		spot: NewYahooClient(timeout),
		wb:   NewWorldBankClient(timeout),
		cfg:  cfg,
		now:  time.Now,
	}
	if cfg.UseFRED && cfg.FREDAPIKey != "" {
		p.fred = NewFREDClient(cfg.FREDAPIKey, timeout)
	}
	if cfg.CacheDir != "" {
		// A broken cache dir only disables caching; it never blocks a run.
		if cache, err := NewSeriesCache(cfg.CacheDir); err == nil {
			p.cache = cache
		}
	}
	return p
}

// CurrentRate returns the spot rate, falling back to the configured
// indicative rate when the live quote is unavailable or implausible.
func (p *Provider) CurrentRate(ctx context.Context) market.Quote {
	rate, err := p.spot.CurrentRate(ctx, p.cfg.Symbol)
	if err != nil {
		return market.Fallback(p.cfg.FallbackSpot, fmt.Sprintf("indicative rate: %v", err))
	}
	if rate <= 0 {
		return market.Fallback(p.cfg.FallbackSpot, "indicative rate: non-positive quote")
	}
	return market.Live(rate)
}

// HistoricalSeries returns a daily rate series covering the last days
// calendar days. Order of preference: same-day cache covering the window,
// live fetch (cached on success), deterministic seeded synthetic series.
// The returned series
// always holds at least one observation.
func (p *Provider) HistoricalSeries(ctx context.Context, days int) (market.RateSeries, market.Quote) {
	if p.cache != nil {
		if series, mod, err := p.cache.Get(p.cfg.Symbol); err == nil && len(series) > 0 {
			if sameDay(mod.UTC(), p.now().UTC()) && coversWindow(series, p.now(), days) {
				return series, market.Live(0)
			}
		}
	}

	series, err := p.spot.HistoricalSeries(ctx, p.cfg.Symbol, days)
	if err == nil {
		if p.cache != nil {
			_ = p.cache.Put(p.cfg.Symbol, series) // cache misses are not fatal
		}
		return series, market.Live(0)
	}

	synthetic := market.Synthetic(p.now(), days, p.cfg.FallbackSpot, p.cfg.SyntheticVol, p.cfg.SyntheticSeed)
	return synthetic, market.Fallback(0, fmt.Sprintf("synthetic series: %v", err))
}

// InterestRates returns the rate pair. The domestic rate is always the
// configured manual value; the foreign rate comes from FRED when configured
// and plausible, otherwise the manual fallback. The tag reflects the foreign
// leg, which is the only one with a live source.
func (p *Provider) InterestRates(ctx context.Context) (market.InterestRates, market.Quote) {
	rates := market.InterestRates{
		Domestic: p.cfg.DomesticRate,
		Foreign:  p.cfg.ForeignRate,
	}

	if p.fred == nil {
		return rates, market.Fallback(rates.Foreign, "manual rates")
	}

	foreign, err := p.fred.LatestRate(ctx, FedFundsSeries)
	if err != nil {
		return rates, market.Fallback(rates.Foreign, fmt.Sprintf("manual rates: %v", err))
	}
	if foreign < 0 || foreign > 20 {
		return rates, market.Fallback(rates.Foreign, fmt.Sprintf("manual rates: implausible value %v", foreign))
	}

	rates.Foreign = foreign
	return rates, market.Live(foreign)
}

// PPPFairValue returns the live PPP reference, or ok=false when none is
// available; the caller then switches the value signal onto its fallback
// path.
func (p *Provider) PPPFairValue(ctx context.Context) (market.Quote, bool) {
	ppp, err := p.wb.PPPConversionFactor(ctx, p.cfg.PPPCountry)
	if err != nil || ppp <= 0 {
		return market.Quote{}, false
	}
	return market.Live(ppp), true
}

// coversWindow reports whether a cached series reaches back far enough for
// a days-day request. A cache entry written for a shorter window must not
// satisfy a longer one. A week of slack absorbs holiday gaps at the window
// edge.
func coversWindow(series market.RateSeries, now time.Time, days int) bool {
	want := now.UTC().AddDate(0, 0, -days).Add(7 * 24 * time.Hour)
	return !series.First().Time.After(want)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
