package analysis

import (
	"math"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/stats"
)

const (
	SummaryPrecision = 4
	StrongThreshold  = 0.5
)

// Summarize rounds every pair and flags those whose Pearson magnitude exceeds
// StrongThreshold, in correlation order.
func Summarize(correlations []models.CorrelationResult) models.CorrelationSummary {
	summary := models.CorrelationSummary{
		Correlations:       make(map[string]models.SummaryEntry, len(correlations)),
		StrongCorrelations: []models.StrongCorrelation{},
	}
	for _, c := range correlations {
		summary.Correlations[c.Pair] = models.SummaryEntry{
			Pearson:  stats.Round(c.PearsonCorrelation, SummaryPrecision),
			Spearman: stats.Round(c.SpearmanCorrelation, SummaryPrecision),
			NSamples: c.NSamples,
		}
		if math.Abs(c.PearsonCorrelation) > StrongThreshold {
			interpretation := models.InterpretationStrongNegative
			if c.PearsonCorrelation > 0 {
				interpretation = models.InterpretationStrongPositive
			}
			summary.StrongCorrelations = append(summary.StrongCorrelations, models.StrongCorrelation{
				Pair:           c.Pair,
				Pearson:        stats.Round(c.PearsonCorrelation, SummaryPrecision),
				Interpretation: interpretation,
			})
		}
	}
	return summary
}
