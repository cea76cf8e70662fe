package factories

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/foodwaste/internal/delivery"
	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/output"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

var start = time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)

func generatorConfig(seed int64) models.GeneratorConfig {
	return models.GeneratorConfig{
		Seed:            seed,
		StartDate:       start,
		WasteRecords:    60,
		FeedbackRecords: 40,
		DeliveryRecords: 80,
	}
}

func TestWasteRecords(t *testing.T) {
	records := NewGenerator(generatorConfig(42)).WasteRecords()
	require.Len(t, records, 60)

	for _, r := range records {
		assert.Contains(t, restaurants, r.Restaurant)
		assert.Contains(t, menuItems, r.Entree)
		assert.GreaterOrEqual(t, r.QuantityLb, 0.0)
		assert.GreaterOrEqual(t, r.Servings, 1)
		assert.InDelta(t, r.QuantityLb*r.UnitCostUsd, r.EstCostUsd, 0.01)
		assert.Equal(t, r.StorageTempF > 40 && r.StorageTempF < 140, r.SafeTempRangeOk)

		day, err := time.Parse(dateLayout, r.Date)
		require.NoError(t, err)
		assert.False(t, day.Before(start))
		assert.False(t, day.After(start.AddDate(0, 0, 7)))
		assert.Equal(t, day.Weekday().String(), r.DayOfWeek)
	}
}

func TestDeliveryLogs(t *testing.T) {
	logs := NewGenerator(generatorConfig(42)).DeliveryLogs()
	require.Len(t, logs, 80)

	assert.Equal(t, "ORD-1000", logs[0].OrderID)
	for _, l := range logs {
		assert.GreaterOrEqual(t, l.DeliveryTimeMin, 3)
		assert.Equal(t, l.DeliveryTimeMin > 30, l.Delayed)
		assert.GreaterOrEqual(t, l.DistanceKm, 0.0)
		assert.True(t, strings.HasPrefix(l.CourierID, "CR-"))
		assert.Contains(t, portionSizes, l.PortionSize)
	}
}

func TestSameSeedSameNumbers(t *testing.T) {
	a := NewGenerator(generatorConfig(7))
	b := NewGenerator(generatorConfig(7))

	assert.Equal(t, a.WasteRecords(), b.WasteRecords())
	assert.Equal(t, a.RestaurantProfiles(), b.RestaurantProfiles())

	logsA, logsB := a.DeliveryLogs(), b.DeliveryLogs()
	for i := range logsA {
		logsA[i].CourierID, logsB[i].CourierID = "", ""
	}
	assert.Equal(t, logsA, logsB)
}

func TestFixedRosterTables(t *testing.T) {
	g := NewGenerator(generatorConfig(1))

	profiles := g.RestaurantProfiles()
	require.Len(t, profiles, len(restaurants))
	for _, p := range profiles {
		assert.GreaterOrEqual(t, p.Capacity, 30)
		assert.LessOrEqual(t, p.Capacity, 200)
		assert.Contains(t, zipCodes, p.ZipCode)
	}

	portions := g.MenuPortions()
	require.Len(t, portions, len(menuItems))
	for _, p := range portions {
		assert.Contains(t, portionOunces, p.StandardPortionOz)
		assert.GreaterOrEqual(t, p.AvgUnitCostUsd, 2.5)
		assert.LessOrEqual(t, p.AvgUnitCostUsd, 10.0)
	}

	for _, f := range g.CustomerFeedback() {
		assert.GreaterOrEqual(t, f.DeliveryRating, 1)
		assert.LessOrEqual(t, f.FoodQualityRating, 5)
	}
}

func TestGenerateWritesReadableTables(t *testing.T) {
	dir := t.TempDir()
	cfg := &models.Config{
		DataDir:          dir,
		DeliveryLogsFile: "Delivery_Logs.csv",
		MetadataFile:     "Restaurant_Metadata.csv",
		RawWasteFile:     "waste.csv",
		FeedbackFile:     "Customer_Feedback.csv",
		MenuFile:         "Menu_Portions.csv",
	}
	g := NewGenerator(generatorConfig(42))
	rows := 0
	g.OnRow = func() { rows++ }

	require.NoError(t, g.Generate(cfg, output.NewCSVSink(dir)))
	assert.Equal(t, g.Total(), rows)

	logs, err := tabular.ReadFile(filepath.Join(dir, cfg.DeliveryLogsFile))
	require.NoError(t, err)
	assert.Equal(t, deliveryColumns, logs.Columns)
	assert.Equal(t, 80, logs.Len())

	metrics, err := delivery.Aggregate(logs)
	require.NoError(t, err)
	assert.NotEmpty(t, metrics)
	for _, m := range metrics {
		assert.GreaterOrEqual(t, m.OnTimeRate, 0.0)
		assert.LessOrEqual(t, m.OnTimeRate, 100.0)
	}

	waste, err := tabular.ReadFile(filepath.Join(dir, cfg.RawWasteFile))
	require.NoError(t, err)
	assert.Equal(t, 60, waste.Len())
	assert.Contains(t, []string{"True", "False"}, waste.Value(0, "safe_temp_range_ok"))
}
