package models

const (
	ColRestaurant      = "restaurant"
	ColDate            = "date"
	ColDistanceKm      = "distance_km"
	ColDeliveryTimeMin = "delivery_time_min"
	ColDelayed         = "delayed"

	ColAvgDeliveryTime  = "avg_delivery_time"
	ColOnTimeRate       = "on_time_rate"
	ColAvgDistance      = "avg_distance"
	ColDeliveriesPerDay = "deliveries_per_day"

	ColNormAvgDeliveryTime  = "norm_avg_delivery_time"
	ColNormAvgDistance      = "norm_avg_distance"
	ColNormDeliveriesPerDay = "norm_deliveries_per_day"
	ColEfficiencyScore      = "efficiency_score"

	ColQuantityLb        = "quantity_lb"
	ColServings          = "servings"
	ColWastePerServingLb = "waste_per_serving_lb"
	ColEstCostUsd        = "est_cost_usd"
	ColEntree            = "entree"

	ColTotalWasteLb           = "total_waste_lb"
	ColAvgWastePerRecordLb    = "avg_waste_per_record_lb"
	ColWasteRecordCount       = "waste_record_count"
	ColAvgWastePerServingLb   = "avg_waste_per_serving_lb"
	ColTotalWasteCostUsd      = "total_waste_cost_usd"
	ColDelayedDeliveriesCount = "delayed_deliveries_count"

	ColDeliveryRating    = "delivery_rating"
	ColFoodQualityRating = "food_quality_rating"
	ColAvgRating         = "avg_rating"

	StatusSuccess = "success"
	StatusError   = "error"
	StatusHealthy = "healthy"

	InterpretationStrongPositive = "strong positive"
	InterpretationStrongNegative = "strong negative"
)

// Predictors is the fixed order in which efficiency metrics are analysed.
var Predictors = []string{
	ColEfficiencyScore,
	ColAvgDeliveryTime,
	ColOnTimeRate,
	ColAvgDistance,
	ColDeliveriesPerDay,
}

// Outcomes is the fixed order in which waste metrics are analysed.
var Outcomes = []string{
	ColTotalWasteLb,
	ColAvgWastePerRecordLb,
	ColAvgWastePerServingLb,
	ColTotalWasteCostUsd,
}

// MetricColumns is the column layout of the vendor metrics table.
var MetricColumns = []string{
	ColRestaurant,
	ColAvgDeliveryTime,
	ColOnTimeRate,
	ColAvgDistance,
	ColDeliveriesPerDay,
}
