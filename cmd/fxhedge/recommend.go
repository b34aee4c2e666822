package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/fxdata"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/journal"
	"github.com/rustyeddy/fxhedge/report"
)

func newRecommendCmd() *cobra.Command {
	var noJournal bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Fetch market data and compute the current hedge ratio recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			combiner, err := hedge.NewCombiner(
				hedge.Weights{
					Carry:    cfg.Algorithm.CarryWeight,
					Momentum: cfg.Algorithm.MomentumWeight,
					Value:    cfg.Algorithm.ValueWeight,
				},
				hedge.Bounds{
					Min: cfg.Algorithm.MinHedgeRatio,
					Max: cfg.Algorithm.MaxHedgeRatio,
				},
			)
			if err != nil {
				return err
			}

			advisor, err := hedge.NewAdvisor(
				fxdata.NewProvider(cfg.Data),
				combiner,
				hedge.AdvisorConfig{
					HistoryDays:  cfg.HistoryDays(),
					LookbackDays: cfg.Algorithm.MomentumLookbackDays,
					FallbackPPP:  cfg.Algorithm.FallbackPPP,
				},
			)
			if err != nil {
				return err
			}

			rec, err := advisor.Recommend(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(report.Recommendation(rec))

			if noJournal {
				return nil
			}
			j, err := openJournal(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			if err := j.RecordRecommendation(journal.FromRecommendation(rec)); err != nil {
				return fmt.Errorf("journal recommendation: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "skip writing the recommendation to the journal")
	return cmd
}
