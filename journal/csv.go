package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends records to two CSV files, one for recommendations and
// one for backtest scenario rows. Files are opened in append mode so
// history accumulates across process runs; the header is written only when
// a file is created empty.
type CSVJournal struct {
	recs      *csv.Writer
	backtests *csv.Writer
	rf, bf    *os.File
}

func NewCSV(recommendationsPath, backtestsPath string) (*CSVJournal, error) {
	rf, err := openAppend(recommendationsPath, []string{
		"rec_id", "time", "hedge_ratio", "carry_signal", "momentum_signal",
		"value_signal", "current_rate", "tier", "domestic_rate",
		"foreign_rate", "observations", "data_sources",
	})
	if err != nil {
		return nil, err
	}
	bf, err := openAppend(backtestsPath, []string{
		"run_id", "time", "rank", "label", "hedge_ratio", "total_cost",
		"volatility", "max_daily_cost", "min_daily_cost", "cost_vs_baseline",
		"cost_vs_baseline_pct", "risk_adjusted_score",
	})
	if err != nil {
		rf.Close()
		return nil, err
	}

	return &CSVJournal{
		recs:      csv.NewWriter(rf),
		backtests: csv.NewWriter(bf),
		rf:        rf,
		bf:        bf,
	}, nil
}

// openAppend opens path for appending, writing the header first when the
// file is new or empty.
func openAppend(path string, header []string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() > 0 {
		return f, nil
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (j *CSVJournal) RecordRecommendation(r RecommendationRecord) error {
	j.recs.Write([]string{
		r.RecID,
		r.Time.Format(time.RFC3339),
		f(r.HedgeRatio),
		f(r.Carry),
		f(r.Momentum),
		f(r.Value),
		f(r.CurrentRate),
		r.Tier,
		f(r.DomesticRate),
		f(r.ForeignRate),
		strconv.Itoa(r.Observations),
		r.DataSources,
	})
	j.recs.Flush()
	return j.recs.Error()
}

func (j *CSVJournal) RecordBacktest(run BacktestRun) error {
	for rank, row := range run.Rows {
		j.backtests.Write([]string{
			run.RunID,
			run.Time.Format(time.RFC3339),
			strconv.Itoa(rank + 1),
			row.Label,
			f(row.HedgeRatio),
			f(row.TotalCost),
			f(row.Volatility),
			f(row.MaxDailyCost),
			f(row.MinDailyCost),
			f(row.CostVsBaseline),
			f(row.CostVsBaselinePct),
			f(row.RiskAdjustedScore),
		})
	}
	j.backtests.Flush()
	return j.backtests.Error()
}

func (j *CSVJournal) Close() error {
	j.recs.Flush()
	j.backtests.Flush()
	if err := j.rf.Close(); err != nil {
		j.bf.Close()
		return err
	}
	return j.bf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
