// Package config loads and validates the algorithm configuration. All
// configuration errors are raised here, before any computation runs.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// weightTolerance is how far the signal weight sum may drift from 1.0.
const weightTolerance = 1e-6

// Config is the complete configuration for a run.
type Config struct {
	Algorithm AlgorithmConfig `json:"algorithm" yaml:"algorithm"`
	Data      DataConfig      `json:"data" yaml:"data"`
	Backtest  BacktestConfig  `json:"backtest" yaml:"backtest"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
}

// AlgorithmConfig contains the signal blend parameters.
type AlgorithmConfig struct {
	// Signal weights, must sum to 1.0.
	CarryWeight    float64 `json:"carry_weight" yaml:"carry_weight"`
	MomentumWeight float64 `json:"momentum_weight" yaml:"momentum_weight"`
	ValueWeight    float64 `json:"value_weight" yaml:"value_weight"`

	// Hedge ratio constraints, [min, max] within [0, 1].
	MinHedgeRatio float64 `json:"min_hedge_ratio" yaml:"min_hedge_ratio"`
	MaxHedgeRatio float64 `json:"max_hedge_ratio" yaml:"max_hedge_ratio"`

	LookbackYears int `json:"lookback_years" yaml:"lookback_years"`

	// Momentum comparison window in trading days.
	MomentumLookbackDays int `json:"momentum_lookback_days" yaml:"momentum_lookback_days"`

	// Fixed PPP fair-value estimate used when no live reference exists.
	FallbackPPP float64 `json:"fallback_ppp" yaml:"fallback_ppp"`
}

// DataConfig contains data source parameters and fallback constants.
type DataConfig struct {
	Symbol string `json:"symbol" yaml:"symbol"`

	// Manual interest rates. Domestic is always manual; Foreign is the
	// fallback when FRED is unavailable.
	DomesticRate float64 `json:"domestic_rate" yaml:"domestic_rate"`
	ForeignRate  float64 `json:"foreign_rate" yaml:"foreign_rate"`

	FREDAPIKey string `json:"fred_api_key,omitempty" yaml:"fred_api_key,omitempty"`
	UseFRED    bool   `json:"use_fred" yaml:"use_fred"`

	// ISO2 country code for the PPP fair-value lookup.
	PPPCountry string `json:"ppp_country" yaml:"ppp_country"`

	// Indicative spot used when the live quote is unavailable.
	FallbackSpot float64 `json:"fallback_spot" yaml:"fallback_spot"`

	// Synthetic series parameters for the history fallback.
	SyntheticSeed int64   `json:"synthetic_seed" yaml:"synthetic_seed"`
	SyntheticVol  float64 `json:"synthetic_vol" yaml:"synthetic_vol"`

	CacheDir       string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// BacktestConfig contains the purchase program parameters.
type BacktestConfig struct {
	AnnualPurchase float64 `json:"annual_purchase" yaml:"annual_purchase"`
	HorizonDays    int     `json:"horizon_days" yaml:"horizon_days"`
	FeeRate        float64 `json:"fee_rate" yaml:"fee_rate"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "sqlite" or "csv"

	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	RecommendationsFile string `json:"recommendations_file,omitempty" yaml:"recommendations_file,omitempty"`
	BacktestsFile       string `json:"backtests_file,omitempty" yaml:"backtests_file,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration to a file, YAML or JSON by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// applyEnv lets the environment override secrets that don't belong in files.
func (c *Config) applyEnv() {
	if key := os.Getenv("FRED_API_KEY"); key != "" {
		c.Data.FREDAPIKey = key
	}
}

// Validate checks the configuration. A process must refuse to start on any
// error returned here.
func (c *Config) Validate() error {
	a := c.Algorithm
	sum := a.CarryWeight + a.MomentumWeight + a.ValueWeight
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("signal weights must sum to 1.0, got %v", sum)
	}
	if a.MinHedgeRatio < 0 || a.MinHedgeRatio > a.MaxHedgeRatio || a.MaxHedgeRatio > 1 {
		return fmt.Errorf("invalid hedge ratio constraints [%v, %v]", a.MinHedgeRatio, a.MaxHedgeRatio)
	}
	if a.LookbackYears <= 0 {
		return fmt.Errorf("algorithm.lookback_years must be positive")
	}
	if a.MomentumLookbackDays <= 0 {
		return fmt.Errorf("algorithm.momentum_lookback_days must be positive")
	}
	if a.FallbackPPP <= 0 {
		return fmt.Errorf("algorithm.fallback_ppp must be positive")
	}

	d := c.Data
	if d.Symbol == "" {
		return fmt.Errorf("data.symbol is required")
	}
	if d.PPPCountry == "" {
		return fmt.Errorf("data.ppp_country is required")
	}
	if d.DomesticRate < 0 || d.DomesticRate > 20 {
		return fmt.Errorf("data.domestic_rate must be within 0-20%%, got %v", d.DomesticRate)
	}
	if d.ForeignRate < 0 || d.ForeignRate > 20 {
		return fmt.Errorf("data.foreign_rate must be within 0-20%%, got %v", d.ForeignRate)
	}
	if d.FallbackSpot <= 0 {
		return fmt.Errorf("data.fallback_spot must be positive")
	}
	if d.SyntheticVol <= 0 {
		return fmt.Errorf("data.synthetic_vol must be positive")
	}
	if d.TimeoutSeconds <= 0 {
		return fmt.Errorf("data.timeout_seconds must be positive")
	}

	b := c.Backtest
	if b.AnnualPurchase <= 0 {
		return fmt.Errorf("backtest.annual_purchase must be positive")
	}
	if b.HorizonDays <= 0 {
		return fmt.Errorf("backtest.horizon_days must be positive")
	}
	if b.FeeRate < 0 {
		return fmt.Errorf("backtest.fee_rate must not be negative")
	}

	j := c.Journal
	if j.Type != "sqlite" && j.Type != "csv" {
		return fmt.Errorf("journal.type must be 'sqlite' or 'csv'")
	}
	if j.Type == "sqlite" && j.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if j.Type == "csv" && (j.RecommendationsFile == "" || j.BacktestsFile == "") {
		return fmt.Errorf("journal recommendations_file and backtests_file required for CSV type")
	}
	return nil
}

// HistoryDays converts the lookback setting into a day count for data
// requests.
func (c *Config) HistoryDays() int {
	return c.Algorithm.LookbackYears * 365
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Algorithm: AlgorithmConfig{
			CarryWeight:          0.5,
			MomentumWeight:       0.3,
			ValueWeight:          0.2,
			MinHedgeRatio:        0.0,
			MaxHedgeRatio:        1.0,
			LookbackYears:        2,
			MomentumLookbackDays: 365,
			FallbackPPP:          1.40,
		},
		Data: DataConfig{
			Symbol:         "MYR=X",
			DomesticRate:   3.00,
			ForeignRate:    5.25,
			UseFRED:        true,
			PPPCountry:     "MY",
			FallbackSpot:   4.50,
			SyntheticSeed:  42,
			SyntheticVol:   0.005,
			CacheDir:       "data/cache",
			TimeoutSeconds: 10,
		},
		Backtest: BacktestConfig{
			AnnualPurchase: 1_000_000,
			HorizonDays:    365,
			FeeRate:        0.005,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./fxhedge.sqlite",
		},
	}
}
