package analysis

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
	"github.com/chrisdamba/foodwaste/internal/waste"
)

// Analyze runs the full correlation and regression pass over an efficiency
// table and a waste record table.
func Analyze(efficiency, wasteRecords *tabular.Table) (*models.AnalysisResult, error) {
	aggregates, err := waste.Aggregate(wasteRecords)
	if err != nil {
		return nil, fmt.Errorf("aggregate waste: %w", err)
	}

	frame, err := Join(efficiency, aggregates)
	if err != nil {
		return nil, fmt.Errorf("join efficiency and waste: %w", err)
	}

	correlations, err := Correlate(frame)
	if err != nil {
		return nil, fmt.Errorf("correlate: %w", err)
	}
	regressions, err := Regress(frame)
	if err != nil {
		return nil, fmt.Errorf("regress: %w", err)
	}

	result := &models.AnalysisResult{
		Correlations:        make(map[string]models.CorrelationResult, len(correlations)),
		Regressions:         make(map[string]models.RegressionResult, len(regressions)),
		Summary:             Summarize(correlations),
		RestaurantsAnalyzed: frame.Len(),
	}
	for _, c := range correlations {
		result.Correlations[c.Pair] = c
	}
	for _, r := range regressions {
		result.Regressions[r.Target] = r
	}

	log.Info().
		Int("restaurants", frame.Len()).
		Int("pairs", len(correlations)).
		Int("regressions", len(regressions)).
		Int("strong", len(result.Summary.StrongCorrelations)).
		Msg("analysed efficiency against waste")
	return result, nil
}
