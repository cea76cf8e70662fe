package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodwaste/internal/factories"
	"github.com/chrisdamba/foodwaste/internal/output"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the five synthetic input datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := factories.NewGenerator(cfg.Generator)

		bar := progressbar.Default(int64(g.Total()), "generating")
		g.OnRow = func() { _ = bar.Add(1) }

		sink := output.NewCSVSink(cfg.DataDir)
		if err := g.Generate(cfg, sink); err != nil {
			return err
		}
		_ = bar.Finish()
		log.Info().Str("dir", cfg.DataDir).Int64("seed", cfg.Generator.Seed).Msg("synthetic datasets generated")
		return nil
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.Int64("seed", 42, "Random seed for generation")
	flags.String("start-date", "2025-10-06T00:00:00Z", "First day of the generated week (RFC3339)")
	flags.Int("waste-records", 300, "Number of waste records")
	flags.Int("feedback-records", 250, "Number of customer feedback rows")
	flags.Int("delivery-records", 350, "Number of delivery log rows")
	bindFlags(generateCmd, map[string]string{
		"generator.seed":             "seed",
		"generator.start_date":       "start-date",
		"generator.waste_records":    "waste-records",
		"generator.feedback_records": "feedback-records",
		"generator.delivery_records": "delivery-records",
	})
	rootCmd.AddCommand(generateCmd)
}
