package delivery

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/stats"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

var RequiredColumns = []string{
	models.ColRestaurant,
	models.ColDate,
	models.ColDistanceKm,
	models.ColDeliveryTimeMin,
	models.ColDelayed,
}

// ParseEvents converts a delivery log into events. Rows with an empty required
// cell or an unparseable date are dropped.
func ParseEvents(t *tabular.Table) ([]models.DeliveryEvent, error) {
	if err := t.Require(RequiredColumns...); err != nil {
		return nil, err
	}

	events := make([]models.DeliveryEvent, 0, t.Len())
	dropped := 0
	for i := range t.Rows {
		restaurant := t.Value(i, models.ColRestaurant)
		if tabular.IsMissing(restaurant) || tabular.IsMissing(t.Value(i, models.ColDelayed)) {
			dropped++
			continue
		}
		date, ok := tabular.ParseDate(t.Value(i, models.ColDate))
		if !ok {
			dropped++
			continue
		}
		distance, ok, err := t.Float(i, models.ColDistanceKm)
		if err != nil {
			return nil, err
		}
		if !ok {
			dropped++
			continue
		}
		duration, ok, err := t.Float(i, models.ColDeliveryTimeMin)
		if err != nil {
			return nil, err
		}
		if !ok {
			dropped++
			continue
		}

		events = append(events, models.DeliveryEvent{
			Restaurant:      restaurant,
			Date:            date,
			DistanceKm:      distance,
			DeliveryTimeMin: duration,
			Delayed:         tabular.Truthy(t.Value(i, models.ColDelayed)),
		})
	}

	if dropped > 0 {
		log.Debug().Str("table", t.Name).Int("dropped", dropped).Msg("dropped incomplete delivery rows")
	}
	return events, nil
}

type accumulator struct {
	count    int
	onTime   int
	duration float64
	distance float64
	dates    map[time.Time]struct{}
}

// ComputeVendorMetrics groups events by restaurant. Output is sorted by restaurant.
func ComputeVendorMetrics(events []models.DeliveryEvent) []models.VendorMetrics {
	groups := make(map[string]*accumulator)
	for _, e := range events {
		acc, ok := groups[e.Restaurant]
		if !ok {
			acc = &accumulator{dates: make(map[time.Time]struct{})}
			groups[e.Restaurant] = acc
		}
		acc.count++
		if !e.Delayed {
			acc.onTime++
		}
		acc.duration += e.DeliveryTimeMin
		acc.distance += e.DistanceKm
		acc.dates[e.Date] = struct{}{}
	}

	metrics := make([]models.VendorMetrics, 0, len(groups))
	for restaurant, acc := range groups {
		n := float64(acc.count)
		metrics = append(metrics, models.VendorMetrics{
			Restaurant:       restaurant,
			AvgDeliveryTime:  stats.Round(acc.duration/n, 2),
			OnTimeRate:       stats.Round(float64(acc.onTime)/n*100, 2),
			AvgDistance:      stats.Round(acc.distance/n, 2),
			DeliveriesPerDay: stats.Round(n/float64(len(acc.dates)), 2),
		})
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Restaurant < metrics[j].Restaurant })
	return metrics
}

// Aggregate runs the metrics aggregation over a raw delivery log.
func Aggregate(t *tabular.Table) ([]models.VendorMetrics, error) {
	events, err := ParseEvents(t)
	if err != nil {
		return nil, err
	}
	metrics := ComputeVendorMetrics(events)
	log.Info().Int("events", len(events)).Int("restaurants", len(metrics)).Msg("computed vendor delivery metrics")
	return metrics, nil
}

func MetricsTable(metrics []models.VendorMetrics) *tabular.Table {
	t := tabular.New("vendor_delivery_metrics", models.MetricColumns)
	for _, m := range metrics {
		t.Append([]string{
			m.Restaurant,
			tabular.FormatFloat(m.AvgDeliveryTime),
			tabular.FormatFloat(m.OnTimeRate),
			tabular.FormatFloat(m.AvgDistance),
			tabular.FormatFloat(m.DeliveriesPerDay),
		})
	}
	return t
}
