package factories

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/output"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

var (
	wasteColumns = []string{
		"date", "day_of_week", "time", "restaurant", "entree", "cuisine", "location", "waste_type",
		"quantity_lb", "servings", "unit_cost_usd", "est_cost_usd", "disposal_method", "reason",
		"storage_temp_F", "safe_temp_range_ok",
	}
	metadataColumns = []string{
		"restaurant", "cuisine", "capacity", "seating_type", "avg_daily_orders", "has_sustainability_program", "zip_code",
	}
	feedbackColumns = []string{"restaurant", "date", "delivery_rating", "food_quality_rating", "feedback_text"}
	menuColumns     = []string{"entree", "standard_portion_oz", "expected_servings", "avg_unit_cost_usd"}
	deliveryColumns = []string{
		"order_id", "date", "time", "restaurant", "courier_id", "distance_km", "delivery_time_min",
		"portion_size", "delivered", "delayed",
	}
)

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return tabular.FormatFloat(v) }

func WasteTable(records []models.WasteRecord) *tabular.Table {
	t := tabular.New("waste", wasteColumns)
	for _, r := range records {
		t.Append([]string{
			r.Date, r.DayOfWeek, r.Time, r.Restaurant, r.Entree, r.Cuisine, r.Location, r.WasteType,
			ftoa(r.QuantityLb), itoa(r.Servings), ftoa(r.UnitCostUsd), ftoa(r.EstCostUsd),
			r.DisposalMethod, r.Reason, ftoa(r.StorageTempF), formatBool(r.SafeTempRangeOk),
		})
	}
	return t
}

func MetadataTable(profiles []models.RestaurantProfile) *tabular.Table {
	t := tabular.New("metadata", metadataColumns)
	for _, p := range profiles {
		t.Append([]string{
			p.Restaurant, p.Cuisine, itoa(p.Capacity), p.SeatingType, itoa(p.AvgDailyOrders),
			formatBool(p.HasSustainabilityProgram), itoa(p.ZipCode),
		})
	}
	return t
}

func FeedbackTable(feedback []models.CustomerFeedback) *tabular.Table {
	t := tabular.New("feedback", feedbackColumns)
	for _, f := range feedback {
		t.Append([]string{f.Restaurant, f.Date, itoa(f.DeliveryRating), itoa(f.FoodQualityRating), f.FeedbackText})
	}
	return t
}

func MenuTable(portions []models.MenuPortion) *tabular.Table {
	t := tabular.New("menu", menuColumns)
	for _, p := range portions {
		t.Append([]string{p.Entree, itoa(p.StandardPortionOz), itoa(p.ExpectedServings), ftoa(p.AvgUnitCostUsd)})
	}
	return t
}

func DeliveryTable(logs []models.DeliveryLog) *tabular.Table {
	t := tabular.New("delivery", deliveryColumns)
	for _, l := range logs {
		t.Append([]string{
			l.OrderID, l.Date, l.Time, l.Restaurant, l.CourierID, ftoa(l.DistanceKm), itoa(l.DeliveryTimeMin),
			l.PortionSize, formatBool(l.Delivered), formatBool(l.Delayed),
		})
	}
	return t
}

// Generate writes all five datasets through sink under the configured file names.
func (g *Generator) Generate(cfg *models.Config, sink output.TableSink) error {
	tables := []struct {
		name  string
		build func() *tabular.Table
	}{
		{cfg.RawWasteFile, func() *tabular.Table { return WasteTable(g.WasteRecords()) }},
		{cfg.MetadataFile, func() *tabular.Table { return MetadataTable(g.RestaurantProfiles()) }},
		{cfg.FeedbackFile, func() *tabular.Table { return FeedbackTable(g.CustomerFeedback()) }},
		{cfg.MenuFile, func() *tabular.Table { return MenuTable(g.MenuPortions()) }},
		{cfg.DeliveryLogsFile, func() *tabular.Table { return DeliveryTable(g.DeliveryLogs()) }},
	}
	for _, entry := range tables {
		t := entry.build()
		if err := sink.WriteTable(entry.name, t); err != nil {
			return err
		}
		log.Info().Str("file", entry.name).Int("rows", t.Len()).Msg("generated dataset")
	}
	return nil
}
