package analysis

import (
	"math"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

// Frame is the inner join of the efficiency table with aggregated waste.
// Missing cells are NaN.
type Frame struct {
	Restaurants []string
	Predictors  []string
	Outcomes    []string
	columns     map[string][]float64
}

func (f *Frame) Len() int { return len(f.Restaurants) }

func (f *Frame) Column(name string) []float64 { return f.columns[name] }

// Complete returns the rows where every named column has a value.
func (f *Frame) Complete(names ...string) [][]float64 {
	var rows [][]float64
	for i := range f.Restaurants {
		row := make([]float64, len(names))
		ok := true
		for j, name := range names {
			v := f.columns[name][i]
			if math.IsNaN(v) {
				ok = false
				break
			}
			row[j] = v
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// Join inner-joins efficiency rows with waste aggregates on restaurant,
// keeping efficiency row order. Predictors absent from the table are skipped.
func Join(efficiency *tabular.Table, aggregates []models.WasteAggregate) (*Frame, error) {
	if err := efficiency.Require(models.ColRestaurant); err != nil {
		return nil, err
	}

	byRestaurant := make(map[string]models.WasteAggregate, len(aggregates))
	for _, a := range aggregates {
		byRestaurant[a.Restaurant] = a
	}

	f := &Frame{
		Outcomes: models.Outcomes,
		columns:  make(map[string][]float64),
	}
	for _, p := range models.Predictors {
		if efficiency.Has(p) {
			f.Predictors = append(f.Predictors, p)
		}
	}

	for i := range efficiency.Rows {
		restaurant := efficiency.Value(i, models.ColRestaurant)
		agg, ok := byRestaurant[restaurant]
		if !ok {
			continue
		}

		values := make([]float64, len(f.Predictors))
		for j, p := range f.Predictors {
			v, ok, err := efficiency.Float(i, p)
			if err != nil {
				return nil, err
			}
			if !ok {
				v = math.NaN()
			}
			values[j] = v
		}

		f.Restaurants = append(f.Restaurants, restaurant)
		for j, p := range f.Predictors {
			f.columns[p] = append(f.columns[p], values[j])
		}
		for _, o := range f.Outcomes {
			v, ok := agg.Outcome(o)
			if !ok {
				v = math.NaN()
			}
			f.columns[o] = append(f.columns[o], v)
		}
	}
	return f, nil
}
