// Package journal persists hedge recommendations and backtest runs so they
// can be reviewed after the fact. SQLite and CSV backends share the same
// interface.
package journal

import (
	"time"

	"github.com/rustyeddy/fxhedge/backtest"
	"github.com/rustyeddy/fxhedge/hedge"
)

// RecommendationRecord is the flat, persisted form of a recommendation.
type RecommendationRecord struct {
	RecID        string
	Time         time.Time
	HedgeRatio   float64
	Carry        float64
	Momentum     float64
	Value        float64
	CurrentRate  float64
	Tier         string
	DomesticRate float64
	ForeignRate  float64
	Observations int
	DataSources  string
}

// FromRecommendation flattens an advisor record for storage.
func FromRecommendation(r hedge.Recommendation) RecommendationRecord {
	return RecommendationRecord{
		RecID:        r.ID,
		Time:         r.Time,
		HedgeRatio:   r.HedgeRatio,
		Carry:        r.Signals.Carry,
		Momentum:     r.Signals.Momentum,
		Value:        r.Signals.Value,
		CurrentRate:  r.CurrentRate,
		Tier:         r.Tier,
		DomesticRate: r.Rates.Domestic,
		ForeignRate:  r.Rates.Foreign,
		Observations: r.Observations,
		DataSources: "spot=" + r.Sources.Spot +
			"; history=" + r.Sources.History +
			"; rates=" + r.Sources.Rates +
			"; ppp=" + r.Sources.PPP,
	}
}

// BacktestRun records one comparator invocation: the purchase program and
// the ranked comparison rows.
type BacktestRun struct {
	RunID          string
	Time           time.Time
	AnnualPurchase float64
	HorizonDays    int
	Rows           []backtest.Comparison // ranked order
}

// Journal stores recommendation and backtest records.
type Journal interface {
	RecordRecommendation(RecommendationRecord) error
	RecordBacktest(BacktestRun) error
	Close() error
}
