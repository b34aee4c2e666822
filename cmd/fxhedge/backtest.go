package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/backtest"
	"github.com/rustyeddy/fxhedge/fxdata"
	"github.com/rustyeddy/fxhedge/journal"
	"github.com/rustyeddy/fxhedge/market"
	"github.com/rustyeddy/fxhedge/pkg/id"
	"github.com/rustyeddy/fxhedge/report"
)

func newBacktestCmd() *cobra.Command {
	var (
		amount    float64
		days      int
		archive   string
		currency  string
		csvPath   string
		noJournal bool
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay the purchase schedule under fixed hedge ratios and rank the outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if amount == 0 {
				amount = cfg.Backtest.AnnualPurchase
			}
			if days == 0 {
				days = cfg.Backtest.HorizonDays
			}

			var series market.RateSeries
			switch {
			case archive != "":
				// Offline run from a reference-rate bulk download.
				series, err = fxdata.LoadReferenceArchive(archive, currency)
				if err != nil {
					return fmt.Errorf("load archive: %w", err)
				}
			default:
				provider := fxdata.NewProvider(cfg.Data)
				var tag market.Quote
				// A month of slack past the horizon, matching the
				// window the simulator trims to.
				series, tag = provider.HistoricalSeries(cmd.Context(), days+30)
				if tag.Source == market.SourceFallback {
					fmt.Printf("WARNING: using fallback data: %s\n\n", tag.Reason)
				}
			}

			for _, w := range fxdata.ValidateQuality(series, fxdata.Band{Low: 3.5, High: 6.0}) {
				fmt.Printf("WARNING: data quality: %s\n", w)
			}

			engine, err := backtest.NewEngine(amount, days, cfg.Backtest.FeeRate)
			if err != nil {
				return err
			}

			table, err := engine.Compare(series, backtest.DefaultScenarios())
			if err != nil {
				return err
			}

			fmt.Println(report.Comparison(table, amount, days))

			if csvPath != "" {
				if err := exportComparisonCSV(csvPath, table.Ranked()); err != nil {
					return fmt.Errorf("export csv: %w", err)
				}
				fmt.Printf("Wrote %s\n", csvPath)
			}

			if noJournal {
				return nil
			}
			j, err := openJournal(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			run := journal.BacktestRun{
				RunID:          id.New(),
				Time:           time.Now().UTC(),
				AnnualPurchase: amount,
				HorizonDays:    days,
				Rows:           table.Ranked(),
			}
			if err := j.RecordBacktest(run); err != nil {
				return fmt.Errorf("journal backtest: %w", err)
			}
			fmt.Printf("Journaled backtest run %s\n", run.RunID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "annual purchase amount (defaults to config)")
	cmd.Flags().IntVar(&days, "days", 0, "backtest horizon in days (defaults to config)")
	cmd.Flags().StringVar(&archive, "archive", "", "zip archive of reference-rate CSV to backtest against instead of live data")
	cmd.Flags().StringVar(&currency, "currency", "MYR", "currency column to read from the archive")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the ranked table to this CSV file")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "skip journaling the run")
	return cmd
}

// exportComparisonCSV writes the ranked rows to path, one scenario per line.
func exportComparisonCSV(path string, rows []backtest.Comparison) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{
		"rank", "label", "hedge_ratio", "total_cost", "volatility",
		"max_daily_cost", "min_daily_cost", "cost_vs_baseline",
		"cost_vs_baseline_pct", "risk_adjusted_score",
	}); err != nil {
		return err
	}
	for i, row := range rows {
		rec := []string{
			strconv.Itoa(i + 1),
			row.Label,
			f(row.HedgeRatio),
			f(row.TotalCost),
			f(row.Volatility),
			f(row.MaxDailyCost),
			f(row.MinDailyCost),
			f(row.CostVsBaseline),
			f(row.CostVsBaselinePct),
			f(row.RiskAdjustedScore),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
