package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/fxhedge/backtest"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRecommendation(r RecommendationRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO recommendations
		(rec_id, time, hedge_ratio, carry_signal, momentum_signal, value_signal,
		 current_rate, tier, domestic_rate, foreign_rate, observations, data_sources)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RecID, r.Time, r.HedgeRatio, r.Carry, r.Momentum, r.Value,
		r.CurrentRate, r.Tier, r.DomesticRate, r.ForeignRate, r.Observations, r.DataSources,
	)
	return err
}

// RecordBacktest stores the run header and every ranked scenario row in one
// transaction; a failed insert leaves no partial run behind.
func (j *SQLiteJournal) RecordBacktest(run BacktestRun) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO backtest_runs (run_id, time, annual_purchase, horizon_days)
		VALUES (?, ?, ?, ?)`,
		run.RunID, run.Time, run.AnnualPurchase, run.HorizonDays,
	)
	if err != nil {
		return err
	}

	for rank, row := range run.Rows {
		_, err = tx.Exec(`
			INSERT INTO backtest_scenarios
			(run_id, rank, label, hedge_ratio, total_cost, volatility,
			 max_daily_cost, min_daily_cost, cost_vs_baseline,
			 cost_vs_baseline_pct, risk_adjusted_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, rank+1, row.Label, row.HedgeRatio, row.TotalCost, row.Volatility,
			row.MaxDailyCost, row.MinDailyCost, row.CostVsBaseline,
			row.CostVsBaselinePct, row.RiskAdjustedScore,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRecommendation looks up one stored recommendation by ID.
func (j *SQLiteJournal) GetRecommendation(recID string) (RecommendationRecord, error) {
	var r RecommendationRecord
	err := j.db.QueryRow(`
		SELECT rec_id, time, hedge_ratio, carry_signal, momentum_signal, value_signal,
		       current_rate, tier, domestic_rate, foreign_rate, observations, data_sources
		FROM recommendations WHERE rec_id = ?`, recID,
	).Scan(&r.RecID, &r.Time, &r.HedgeRatio, &r.Carry, &r.Momentum, &r.Value,
		&r.CurrentRate, &r.Tier, &r.DomesticRate, &r.ForeignRate, &r.Observations, &r.DataSources)
	if err == sql.ErrNoRows {
		return r, fmt.Errorf("recommendation %s not found", recID)
	}
	return r, err
}

// ListRecommendationsBetween returns records with start <= time < end in
// chronological order.
func (j *SQLiteJournal) ListRecommendationsBetween(start, end time.Time) ([]RecommendationRecord, error) {
	rows, err := j.db.Query(`
		SELECT rec_id, time, hedge_ratio, carry_signal, momentum_signal, value_signal,
		       current_rate, tier, domestic_rate, foreign_rate, observations, data_sources
		FROM recommendations
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []RecommendationRecord
	for rows.Next() {
		var r RecommendationRecord
		if err := rows.Scan(&r.RecID, &r.Time, &r.HedgeRatio, &r.Carry, &r.Momentum, &r.Value,
			&r.CurrentRate, &r.Tier, &r.DomesticRate, &r.ForeignRate, &r.Observations, &r.DataSources); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// GetBacktestRun loads a run header and its scenario rows in stored rank
// order.
func (j *SQLiteJournal) GetBacktestRun(runID string) (BacktestRun, error) {
	var run BacktestRun
	err := j.db.QueryRow(`
		SELECT run_id, time, annual_purchase, horizon_days
		FROM backtest_runs WHERE run_id = ?`, runID,
	).Scan(&run.RunID, &run.Time, &run.AnnualPurchase, &run.HorizonDays)
	if err == sql.ErrNoRows {
		return run, fmt.Errorf("backtest run %s not found", runID)
	}
	if err != nil {
		return run, err
	}

	rows, err := j.db.Query(`
		SELECT label, hedge_ratio, total_cost, volatility, max_daily_cost,
		       min_daily_cost, cost_vs_baseline, cost_vs_baseline_pct, risk_adjusted_score
		FROM backtest_scenarios WHERE run_id = ? ORDER BY rank ASC`, runID)
	if err != nil {
		return run, err
	}
	defer rows.Close()

	for rows.Next() {
		var c backtest.Comparison
		if err := rows.Scan(&c.Label, &c.HedgeRatio, &c.TotalCost, &c.Volatility,
			&c.MaxDailyCost, &c.MinDailyCost, &c.CostVsBaseline,
			&c.CostVsBaselinePct, &c.RiskAdjustedScore); err != nil {
			return run, err
		}
		run.Rows = append(run.Rows, c)
	}
	return run, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
