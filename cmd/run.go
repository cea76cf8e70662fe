package cmd

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/output"
	"github.com/chrisdamba/foodwaste/internal/telemetry"
)

var errAnalysisFailed = errors.New("analysis failed")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every stage and print the analysis result",
	RunE:  runPipeline,
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Aggregate delivery logs into per-restaurant delivery metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPipeline(cmd.Context(), cfg, false, telemetry.NewMetrics())
		if err != nil {
			return err
		}
		defer cleanup()

		metrics, err := p.ComputeMetrics(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int("restaurants", len(metrics)).Str("file", cfg.Path(cfg.MetricsFile)).Msg("delivery metrics computed")
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score delivery efficiency from the delivery metrics table",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPipeline(cmd.Context(), cfg, false, telemetry.NewMetrics())
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := p.ScoreEfficiency(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int("restaurants", len(result.Scores)).Str("file", cfg.Path(cfg.EfficiencyFile)).Msg("efficiency scored")
		return nil
	},
}

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Merge the raw datasets into the cleaned master waste dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPipeline(cmd.Context(), cfg, false, telemetry.NewMetrics())
		if err != nil {
			return err
		}
		defer cleanup()

		merged, err := p.Integrate(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int("rows", merged.Len()).Str("file", cfg.Path(cfg.WasteFile)).Msg("datasets integrated")
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Correlate efficiency scores with waste and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPipeline(cmd.Context(), cfg, false, telemetry.NewMetrics())
		if err != nil {
			return err
		}
		defer cleanup()

		resp := p.AnalyzeResponse(cmd.Context())
		return printResponse(cmd, resp)
	},
}

func printResponse(cmd *cobra.Command, resp models.AnalysisResponse) error {
	if err := output.NewConsolePublisher(os.Stdout, resultFormat).Publish(cmd.Context(), "", resp); err != nil {
		return err
	}
	if resp.Status != models.StatusSuccess {
		return errAnalysisFailed
	}
	return nil
}

// runPipeline runs every stage and prints the envelope, exiting non-zero on failure.
func runPipeline(cmd *cobra.Command, args []string) error {
	p, cleanup, err := newPipeline(cmd.Context(), cfg, true, telemetry.NewMetrics())
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn().Err(err).Msg("error closing pipeline resources")
		}
	}()

	resp, err := p.Run(cmd.Context())
	if err != nil {
		log.Error().Err(err).Msg("pipeline failed")
		return errAnalysisFailed
	}
	log.Info().Int("restaurants", resp.Data.RestaurantsAnalyzed).Msg("pipeline finished")
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd, metricsCmd, scoreCmd, integrateCmd, analyzeCmd)
}
