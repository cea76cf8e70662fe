package efficiency

import (
	"errors"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

const (
	WeightOnTime     = 0.4
	WeightDuration   = 0.3
	WeightDistance   = 0.2
	WeightThroughput = 0.1

	// NeutralNorm is used when every restaurant shares the same value.
	NeutralNorm = 0.5
	// NeutralScore is used when every raw score is identical.
	NeutralScore = 50.0

	MetadataSuffix = "_meta"
)

var derivedColumns = []string{
	models.ColNormAvgDeliveryTime,
	models.ColNormAvgDistance,
	models.ColNormDeliveriesPerDay,
	models.ColEfficiencyScore,
}

var errMissingValue = errors.New("missing value")

type Result struct {
	Scores          []models.EfficiencyScore
	MetadataColumns []string
}

// MetricsFromTable reads a persisted vendor metrics table.
func MetricsFromTable(t *tabular.Table) ([]models.VendorMetrics, error) {
	if err := t.Require(models.MetricColumns...); err != nil {
		return nil, err
	}

	metrics := make([]models.VendorMetrics, 0, t.Len())
	for i := range t.Rows {
		var values [4]float64
		for j, col := range models.MetricColumns[1:] {
			v, ok, err := t.Float(i, col)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &tabular.ParseError{Table: t.Name, Row: i, Column: col, Err: errMissingValue}
			}
			values[j] = v
		}
		metrics = append(metrics, models.VendorMetrics{
			Restaurant:       t.Value(i, models.ColRestaurant),
			AvgDeliveryTime:  values[0],
			OnTimeRate:       values[1],
			AvgDistance:      values[2],
			DeliveriesPerDay: values[3],
		})
	}
	return metrics, nil
}

// Score left-joins metadata onto metrics and computes the composite score.
// Every metrics row survives; the first metadata row per restaurant wins.
func Score(metrics []models.VendorMetrics, metadata *tabular.Table) (*Result, error) {
	if err := metadata.Require(models.ColRestaurant); err != nil {
		return nil, err
	}

	reserved := make(map[string]bool)
	for _, c := range models.MetricColumns {
		reserved[c] = true
	}
	for _, c := range derivedColumns {
		reserved[c] = true
	}

	var sourceCols, outCols []string
	for _, c := range metadata.Columns {
		if c == models.ColRestaurant {
			continue
		}
		name := c
		if reserved[c] {
			name = c + MetadataSuffix
		}
		sourceCols = append(sourceCols, c)
		outCols = append(outCols, name)
	}

	byRestaurant := make(map[string]int, metadata.Len())
	for i := range metadata.Rows {
		r := metadata.Value(i, models.ColRestaurant)
		if _, ok := byRestaurant[r]; !ok {
			byRestaurant[r] = i
		}
	}

	durations := make([]float64, len(metrics))
	distances := make([]float64, len(metrics))
	throughput := make([]float64, len(metrics))
	for i, m := range metrics {
		durations[i] = m.AvgDeliveryTime
		distances[i] = m.AvgDistance
		throughput[i] = m.DeliveriesPerDay
	}
	normDuration := Normalize(durations, NeutralNorm)
	normDistance := Normalize(distances, NeutralNorm)
	normThroughput := Normalize(throughput, NeutralNorm)

	raw := make([]float64, len(metrics))
	for i, m := range metrics {
		raw[i] = WeightOnTime*(m.OnTimeRate/100) +
			WeightDuration*(1-normDuration[i]) +
			WeightDistance*(1-normDistance[i]) +
			WeightThroughput*normThroughput[i]
	}
	scaled := Normalize(raw, NeutralScore/100)

	result := &Result{
		Scores:          make([]models.EfficiencyScore, len(metrics)),
		MetadataColumns: outCols,
	}
	matched := 0
	for i, m := range metrics {
		values := make(map[string]string, len(outCols))
		if row, ok := byRestaurant[m.Restaurant]; ok {
			matched++
			for j, c := range sourceCols {
				values[outCols[j]] = metadata.Value(row, c)
			}
		}
		result.Scores[i] = models.EfficiencyScore{
			VendorMetrics:        m,
			Metadata:             values,
			NormAvgDeliveryTime:  normDuration[i],
			NormAvgDistance:      normDistance[i],
			NormDeliveriesPerDay: normThroughput[i],
			EfficiencyScore:      math.Max(0, math.Min(100, 100*scaled[i])),
		}
	}

	log.Info().Int("restaurants", len(metrics)).Int("with_metadata", matched).Msg("scored delivery efficiency")
	return result, nil
}

// Normalize min-max scales values into [0,1], returning neutral for every
// element when the values do not vary.
func Normalize(values []float64, neutral float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for i, v := range values {
		if hi == lo {
			out[i] = neutral
			continue
		}
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// Columns is the efficiency table header.
func (r *Result) Columns() []string {
	cols := append([]string(nil), models.MetricColumns...)
	cols = append(cols, r.MetadataColumns...)
	return append(cols, derivedColumns...)
}

func (r *Result) Table() *tabular.Table {
	t := tabular.New("vendor_efficiency_scores", r.Columns())
	for _, s := range r.Scores {
		row := []string{
			s.Restaurant,
			tabular.FormatFloat(s.AvgDeliveryTime),
			tabular.FormatFloat(s.OnTimeRate),
			tabular.FormatFloat(s.AvgDistance),
			tabular.FormatFloat(s.DeliveriesPerDay),
		}
		for _, c := range r.MetadataColumns {
			row = append(row, s.Metadata[c])
		}
		row = append(row,
			tabular.FormatFloat(s.NormAvgDeliveryTime),
			tabular.FormatFloat(s.NormAvgDistance),
			tabular.FormatFloat(s.NormDeliveriesPerDay),
			tabular.FormatFloat(s.EfficiencyScore),
		)
		t.Append(row)
	}
	return t
}
