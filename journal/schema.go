package journal

const Schema = `
CREATE TABLE IF NOT EXISTS recommendations (
	rec_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	hedge_ratio REAL NOT NULL,
	carry_signal REAL NOT NULL,
	momentum_signal REAL NOT NULL,
	value_signal REAL NOT NULL,
	current_rate REAL NOT NULL,
	tier TEXT NOT NULL,
	domestic_rate REAL NOT NULL,
	foreign_rate REAL NOT NULL,
	observations INTEGER NOT NULL,
	data_sources TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_recommendations_time ON recommendations(time);

CREATE TABLE IF NOT EXISTS backtest_runs (
	run_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	annual_purchase REAL NOT NULL,
	horizon_days INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS backtest_scenarios (
	run_id TEXT NOT NULL,
	rank INTEGER NOT NULL,
	label TEXT NOT NULL,
	hedge_ratio REAL NOT NULL,
	total_cost REAL NOT NULL,
	volatility REAL NOT NULL,
	max_daily_cost REAL NOT NULL,
	min_daily_cost REAL NOT NULL,
	cost_vs_baseline REAL NOT NULL,
	cost_vs_baseline_pct REAL NOT NULL,
	risk_adjusted_score REAL NOT NULL,
	PRIMARY KEY (run_id, rank)
);
`
