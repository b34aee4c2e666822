package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/journal"
)

func newJournalCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query recorded recommendations and backtest runs",
		Long: `Query and display journal records from the SQLite database.

Subcommands:
  rec    - Show one recommendation by ID
  today  - List recommendations made today
  day    - List recommendations made on a specific day
  run    - Show one backtest run by ID

Examples:
  fxhedge journal rec <rec-id>
  fxhedge journal today
  fxhedge journal day 2024-01-15
  fxhedge journal run <run-id>`,
	}

	openDB := func() (*journal.SQLiteJournal, error) {
		j, err := journal.NewSQLite(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return j, nil
	}

	recCmd := &cobra.Command{
		Use:   "rec <rec-id>",
		Short: "Show one recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openDB()
			if err != nil {
				return err
			}
			defer j.Close()

			rec, err := j.GetRecommendation(args[0])
			if err != nil {
				return fmt.Errorf("get recommendation: %w", err)
			}
			fmt.Println(journal.FormatRecommendationOrg(rec))
			return nil
		},
	}

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "List recommendations made today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDay(openDB, time.Now().In(time.Local).Format("2006-01-02"))
		},
	}

	dayCmd := &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "List recommendations made on a specific day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDay(openDB, args[0])
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <run-id>",
		Short: "Show one backtest run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openDB()
			if err != nil {
				return err
			}
			defer j.Close()

			run, err := j.GetBacktestRun(args[0])
			if err != nil {
				return fmt.Errorf("get backtest run: %w", err)
			}
			printBacktestRun(run)
			return nil
		},
	}

	cmd.AddCommand(recCmd, todayCmd, dayCmd, runCmd)
	cmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "./fxhedge.sqlite", "path to SQLite journal DB")
	return cmd
}

func listDay(openDB func() (*journal.SQLiteJournal, error), day string) error {
	j, err := openDB()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListRecommendationsBetween(start, end)
	if err != nil {
		return fmt.Errorf("query recommendations: %w", err)
	}
	fmt.Println(journal.FormatRecommendationsOrg(recs))
	return nil
}

func printBacktestRun(run journal.BacktestRun) {
	fmt.Printf("Backtest run %s (%s)\n", run.RunID, run.Time.UTC().Format(time.RFC3339))
	fmt.Printf("Annual purchase %.0f over %d days\n\n", run.AnnualPurchase, run.HorizonDays)
	for i, row := range run.Rows {
		fmt.Printf("%d. %-20s total=%.2f vol=%.2f vs-baseline=%+.2f (%.2f%%) score=%.4f\n",
			i+1, row.Label, row.TotalCost, row.Volatility,
			row.CostVsBaseline, row.CostVsBaselinePct, row.RiskAdjustedScore)
	}
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
