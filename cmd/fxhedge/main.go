package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/journal"
)

var cfgPath string

func main() {
	root := &cobra.Command{
		Use:          "fxhedge",
		Short:        "Dynamic FX hedging: signal-based hedge ratio recommendations and backtests",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (YAML or JSON); defaults apply when omitted")

	root.AddCommand(newRecommendCmd())
	root.AddCommand(newBacktestCmd())
	root.AddCommand(newJournalCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}

// openJournal builds the journal backend the config asks for.
func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(cfg.Journal.RecommendationsFile, cfg.Journal.BacktestsFile)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}
