package analysis

import (
	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/stats"
)

// MinCorrelationSamples is the smallest complete-case count a pair needs.
const MinCorrelationSamples = 3

func PairKey(predictor, outcome string) string {
	return predictor + "_vs_" + outcome
}

// Correlate computes Pearson and Spearman coefficients for every
// predictor/outcome pair in fixed order. Pairs with too few samples are omitted.
func Correlate(f *Frame) ([]models.CorrelationResult, error) {
	var results []models.CorrelationResult
	for _, p := range f.Predictors {
		for _, o := range f.Outcomes {
			key := PairKey(p, o)
			rows := f.Complete(p, o)
			if len(rows) < MinCorrelationSamples {
				log.Debug().Str("pair", key).Int("n", len(rows)).Msg("skipping pair with too few samples")
				continue
			}

			x := make([]float64, len(rows))
			y := make([]float64, len(rows))
			for i, r := range rows {
				x[i], y[i] = r[0], r[1]
			}
			pearson, err := stats.Pearson(x, y)
			if err != nil {
				return nil, err
			}
			spearman, err := stats.Spearman(x, y)
			if err != nil {
				return nil, err
			}

			results = append(results, models.CorrelationResult{
				Pair:                key,
				Predictor:           p,
				Outcome:             o,
				PearsonCorrelation:  pearson.R,
				PearsonPValue:       pearson.P,
				SpearmanCorrelation: spearman.R,
				SpearmanPValue:      spearman.P,
				NSamples:            len(rows),
			})
		}
	}
	return results, nil
}
