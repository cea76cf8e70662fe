package models

import (
	"database/sql"
	"time"
)

type WasteEvent struct {
	Restaurant  string    `json:"restaurant"`
	Date        time.Time `json:"date"`
	QuantityLb  float64   `json:"quantity_lb"`
	Servings    int       `json:"servings"`
	UnitCostUsd float64   `json:"unit_cost_usd"`
	EstCostUsd  float64   `json:"est_cost_usd"`
}

// WasteRecord is a full row of the raw waste log.
type WasteRecord struct {
	Date            string  `json:"date"`
	DayOfWeek       string  `json:"day_of_week"`
	Time            string  `json:"time"`
	Restaurant      string  `json:"restaurant"`
	Entree          string  `json:"entree"`
	Cuisine         string  `json:"cuisine"`
	Location        string  `json:"location"`
	WasteType       string  `json:"waste_type"`
	QuantityLb      float64 `json:"quantity_lb"`
	Servings        int     `json:"servings"`
	UnitCostUsd     float64 `json:"unit_cost_usd"`
	EstCostUsd      float64 `json:"est_cost_usd"`
	DisposalMethod  string  `json:"disposal_method"`
	Reason          string  `json:"reason"`
	StorageTempF    float64 `json:"storage_temp_F"`
	SafeTempRangeOk bool    `json:"safe_temp_range_ok"`
}

// WasteAggregate summarises a restaurant's waste records. Averages are null
// when no record carried a usable value, and cost is null when the source
// has no cost column.
type WasteAggregate struct {
	Restaurant             string
	TotalWasteLb           float64
	AvgWastePerRecordLb    sql.NullFloat64
	WasteRecordCount       int
	AvgWastePerServingLb   sql.NullFloat64
	TotalWasteCostUsd      sql.NullFloat64
	DelayedDeliveriesCount int
}

// Outcome returns the named waste metric, with ok false when it is null or unknown.
func (w WasteAggregate) Outcome(name string) (float64, bool) {
	switch name {
	case ColTotalWasteLb:
		return w.TotalWasteLb, true
	case ColAvgWastePerRecordLb:
		return w.AvgWastePerRecordLb.Float64, w.AvgWastePerRecordLb.Valid
	case ColAvgWastePerServingLb:
		return w.AvgWastePerServingLb.Float64, w.AvgWastePerServingLb.Valid
	case ColTotalWasteCostUsd:
		return w.TotalWasteCostUsd.Float64, w.TotalWasteCostUsd.Valid
	}
	return 0, false
}
