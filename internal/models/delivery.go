package models

import "time"

type DeliveryEvent struct {
	Restaurant      string    `json:"restaurant"`
	Date            time.Time `json:"date"`
	DistanceKm      float64   `json:"distance_km"`
	DeliveryTimeMin float64   `json:"delivery_time_min"`
	Delayed         bool      `json:"delayed"`
}

// VendorMetrics is the per-restaurant delivery summary. OnTimeRate is a
// percentage in [0,100].
type VendorMetrics struct {
	Restaurant       string  `json:"restaurant"`
	AvgDeliveryTime  float64 `json:"avg_delivery_time"`
	OnTimeRate       float64 `json:"on_time_rate"`
	AvgDistance      float64 `json:"avg_distance"`
	DeliveriesPerDay float64 `json:"deliveries_per_day"`
}

// DeliveryLog is a full row of the delivery log as producers write it.
type DeliveryLog struct {
	OrderID         string  `json:"order_id"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Restaurant      string  `json:"restaurant"`
	CourierID       string  `json:"courier_id"`
	DistanceKm      float64 `json:"distance_km"`
	DeliveryTimeMin int     `json:"delivery_time_min"`
	PortionSize     string  `json:"portion_size"`
	Delivered       bool    `json:"delivered"`
	Delayed         bool    `json:"delayed"`
}
