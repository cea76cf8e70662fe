package efficiency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

func metadataTable(t *testing.T, csv string) *tabular.Table {
	t.Helper()
	tbl, err := tabular.Read("Restaurant_Metadata.csv", strings.NewReader(csv))
	require.NoError(t, err)
	return tbl
}

func TestScoreSingleRestaurantIsMidpoint(t *testing.T) {
	metrics := []models.VendorMetrics{{Restaurant: "A", AvgDeliveryTime: 20, OnTimeRate: 90, AvgDistance: 4, DeliveriesPerDay: 3}}
	res, err := Score(metrics, metadataTable(t, "restaurant,cuisine\nA,Thai\n"))
	require.NoError(t, err)

	require.Len(t, res.Scores, 1)
	s := res.Scores[0]
	assert.Equal(t, NeutralScore, s.EfficiencyScore)
	assert.Equal(t, NeutralNorm, s.NormAvgDeliveryTime)
	assert.Equal(t, NeutralNorm, s.NormAvgDistance)
	assert.Equal(t, NeutralNorm, s.NormDeliveriesPerDay)
	assert.Equal(t, "Thai", s.Metadata["cuisine"])
}

func TestScoreOrdersFasterRestaurantsHigher(t *testing.T) {
	metrics := []models.VendorMetrics{
		{Restaurant: "Fast", AvgDeliveryTime: 15, OnTimeRate: 100, AvgDistance: 2, DeliveriesPerDay: 6},
		{Restaurant: "Mid", AvgDeliveryTime: 22, OnTimeRate: 80, AvgDistance: 5, DeliveriesPerDay: 4},
		{Restaurant: "Slow", AvgDeliveryTime: 35, OnTimeRate: 40, AvgDistance: 9, DeliveriesPerDay: 2},
	}
	res, err := Score(metrics, metadataTable(t, "restaurant\n"))
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.Scores[0].EfficiencyScore)
	assert.Equal(t, 0.0, res.Scores[2].EfficiencyScore)
	mid := res.Scores[1].EfficiencyScore
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 100.0)

	for _, s := range res.Scores {
		assert.GreaterOrEqual(t, s.EfficiencyScore, 0.0)
		assert.LessOrEqual(t, s.EfficiencyScore, 100.0)
		for _, n := range []float64{s.NormAvgDeliveryTime, s.NormAvgDistance, s.NormDeliveriesPerDay} {
			assert.GreaterOrEqual(t, n, 0.0)
			assert.LessOrEqual(t, n, 1.0)
		}
	}
}

func TestScoreLeftJoinKeepsUnmatchedAndRenamesClashes(t *testing.T) {
	metrics := []models.VendorMetrics{
		{Restaurant: "A", AvgDeliveryTime: 10, OnTimeRate: 100, AvgDistance: 1, DeliveriesPerDay: 1},
		{Restaurant: "B", AvgDeliveryTime: 20, OnTimeRate: 50, AvgDistance: 2, DeliveriesPerDay: 2},
	}
	meta := metadataTable(t, "restaurant,cuisine,on_time_rate\nA,Deli,12\nA,Other,13\nZ,BBQ,1\n")

	res, err := Score(metrics, meta)
	require.NoError(t, err)
	assert.Equal(t, []string{"cuisine", "on_time_rate_meta"}, res.MetadataColumns)

	tbl := res.Table()
	assert.Equal(t, []string{
		"restaurant", "avg_delivery_time", "on_time_rate", "avg_distance", "deliveries_per_day",
		"cuisine", "on_time_rate_meta",
		"norm_avg_delivery_time", "norm_avg_distance", "norm_deliveries_per_day", "efficiency_score",
	}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Deli", tbl.Value(0, "cuisine"))
	assert.Equal(t, "12", tbl.Value(0, "on_time_rate_meta"))
	assert.Equal(t, "", tbl.Value(1, "cuisine"))
	assert.Equal(t, "100", tbl.Value(0, "on_time_rate"))
}

func TestScoreMetadataWithoutRestaurant(t *testing.T) {
	_, err := Score(nil, metadataTable(t, "name,cuisine\nA,Deli\n"))
	require.Error(t, err)
	assert.True(t, tabular.IsSchema(err))
}

func TestMetricsFromTable(t *testing.T) {
	tbl, err := tabular.Read("vendor_delivery_metrics.csv", strings.NewReader(
		"restaurant,avg_delivery_time,on_time_rate,avg_distance,deliveries_per_day\nA,25,100,5,2\n"))
	require.NoError(t, err)

	metrics, err := MetricsFromTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, []models.VendorMetrics{{Restaurant: "A", AvgDeliveryTime: 25, OnTimeRate: 100, AvgDistance: 5, DeliveriesPerDay: 2}}, metrics)

	bad, err := tabular.Read("m.csv", strings.NewReader("restaurant,avg_delivery_time\nA,1\n"))
	require.NoError(t, err)
	_, err = MetricsFromTable(bad)
	assert.True(t, tabular.IsSchema(err))
}

func TestMetricsFromTableRejectsInfinity(t *testing.T) {
	tbl, err := tabular.Read("vendor_delivery_metrics.csv", strings.NewReader(
		"restaurant,avg_delivery_time,on_time_rate,avg_distance,deliveries_per_day\nA,+Inf,100,5,2\nB,20,50,3,1\n"))
	require.NoError(t, err)

	_, err = MetricsFromTable(tbl)
	require.Error(t, err)
	assert.True(t, tabular.IsParse(err))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Normalize([]float64{2, 4, 6}, NeutralNorm))
	assert.Equal(t, []float64{0.5, 0.5}, Normalize([]float64{3, 3}, NeutralNorm))
	assert.Empty(t, Normalize(nil, NeutralNorm))
}
