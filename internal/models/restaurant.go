package models

// RestaurantMetadata carries descriptive columns keyed by restaurant. Columns
// keeps the source order so unknown attributes pass through untouched.
type RestaurantMetadata struct {
	Restaurant string            `json:"restaurant"`
	Columns    []string          `json:"-"`
	Values     map[string]string `json:"values"`
}

type RestaurantProfile struct {
	Restaurant               string `json:"restaurant"`
	Cuisine                  string `json:"cuisine"`
	Capacity                 int    `json:"capacity"`
	SeatingType              string `json:"seating_type"`
	AvgDailyOrders           int    `json:"avg_daily_orders"`
	HasSustainabilityProgram bool   `json:"has_sustainability_program"`
	ZipCode                  int    `json:"zip_code"`
}

// EfficiencyScore is one scored restaurant. Norm fields are in [0,1] and
// EfficiencyScore is in [0,100].
type EfficiencyScore struct {
	VendorMetrics
	Metadata             map[string]string `json:"metadata,omitempty"`
	NormAvgDeliveryTime  float64           `json:"norm_avg_delivery_time"`
	NormAvgDistance      float64           `json:"norm_avg_distance"`
	NormDeliveriesPerDay float64           `json:"norm_deliveries_per_day"`
	EfficiencyScore      float64           `json:"efficiency_score"`
}
