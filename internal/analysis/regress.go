package analysis

import (
	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/stats"
)

// Regress fits one multivariate OLS model per outcome over every available
// predictor. An outcome is skipped unless n >= predictors + 2.
func Regress(f *Frame) ([]models.RegressionResult, error) {
	var results []models.RegressionResult
	if len(f.Predictors) == 0 {
		log.Debug().Msg("no predictors available for regression")
		return results, nil
	}

	for _, o := range f.Outcomes {
		names := append(append([]string(nil), f.Predictors...), o)
		rows := f.Complete(names...)
		if len(rows) < len(f.Predictors)+2 {
			log.Debug().Str("target", o).Int("n", len(rows)).Msg("skipping regression with too few samples")
			continue
		}

		x := make([][]float64, len(rows))
		y := make([]float64, len(rows))
		for i, r := range rows {
			x[i] = r[:len(f.Predictors)]
			y[i] = r[len(f.Predictors)]
		}

		fit, err := stats.OLS(x, y)
		if err != nil {
			return nil, err
		}

		coefficients := make(map[string]float64, len(f.Predictors))
		for j, p := range f.Predictors {
			coefficients[p] = fit.Coefficients[j]
		}
		results = append(results, models.RegressionResult{
			Target:       o,
			Coefficients: coefficients,
			Intercept:    fit.Intercept,
			R2Score:      fit.R2,
			NSamples:     fit.N,
		})
	}
	return results, nil
}
