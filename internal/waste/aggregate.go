package waste

import (
	"database/sql"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

// Producers disagree on a few column names.
var (
	PerServingColumns = []string{models.ColWastePerServingLb, "waste_per_serving"}
	CostColumns       = []string{models.ColEstCostUsd, "estimated_cost_usd", "cost_usd"}
)

type group struct {
	quantitySum   float64
	quantityCount int
	servingSum    float64
	servingCount  int
	costSum       float64
	delayed       int
}

// Aggregate summarises waste records per restaurant, sorted by restaurant.
func Aggregate(t *tabular.Table) ([]models.WasteAggregate, error) {
	if err := t.Require(models.ColRestaurant, models.ColQuantityLb); err != nil {
		return nil, err
	}
	servingCol, hasServing := t.Resolve(PerServingColumns...)
	costCol, hasCost := t.Resolve(CostColumns...)
	deriveServing := !hasServing && t.Has(models.ColServings)
	hasDelayed := t.Has(models.ColDelayed)

	groups := make(map[string]*group)
	for i := range t.Rows {
		restaurant := t.Value(i, models.ColRestaurant)
		if tabular.IsMissing(restaurant) {
			continue
		}
		g, ok := groups[restaurant]
		if !ok {
			g = &group{}
			groups[restaurant] = g
		}

		quantity, hasQuantity, err := t.Float(i, models.ColQuantityLb)
		if err != nil {
			return nil, err
		}
		if hasQuantity {
			g.quantitySum += quantity
			g.quantityCount++
		}

		switch {
		case hasServing:
			v, ok, err := t.Float(i, servingCol)
			if err != nil {
				return nil, err
			}
			if ok {
				g.servingSum += v
				g.servingCount++
			}
		case deriveServing:
			servings, ok, err := t.Float(i, models.ColServings)
			if err != nil {
				return nil, err
			}
			if ok && hasQuantity && servings > 0 {
				g.servingSum += quantity / servings
				g.servingCount++
			}
		}

		if hasCost {
			v, ok, err := t.Float(i, costCol)
			if err != nil {
				return nil, err
			}
			if ok {
				g.costSum += v
			}
		}

		if hasDelayed && tabular.Truthy(t.Value(i, models.ColDelayed)) {
			g.delayed++
		}
	}

	aggregates := make([]models.WasteAggregate, 0, len(groups))
	for restaurant, g := range groups {
		agg := models.WasteAggregate{
			Restaurant:             restaurant,
			TotalWasteLb:           g.quantitySum,
			WasteRecordCount:       g.quantityCount,
			DelayedDeliveriesCount: g.delayed,
		}
		if g.quantityCount > 0 {
			agg.AvgWastePerRecordLb = sql.NullFloat64{Float64: g.quantitySum / float64(g.quantityCount), Valid: true}
		}
		if g.servingCount > 0 {
			agg.AvgWastePerServingLb = sql.NullFloat64{Float64: g.servingSum / float64(g.servingCount), Valid: true}
		}
		if hasCost {
			agg.TotalWasteCostUsd = sql.NullFloat64{Float64: g.costSum, Valid: true}
		}
		aggregates = append(aggregates, agg)
	}
	sort.Slice(aggregates, func(i, j int) bool { return aggregates[i].Restaurant < aggregates[j].Restaurant })

	log.Debug().Str("table", t.Name).Int("records", t.Len()).Int("restaurants", len(aggregates)).Msg("aggregated waste")
	return aggregates, nil
}

var Columns = []string{
	models.ColRestaurant,
	models.ColTotalWasteLb,
	models.ColAvgWastePerRecordLb,
	models.ColWasteRecordCount,
	models.ColAvgWastePerServingLb,
	models.ColTotalWasteCostUsd,
	models.ColDelayedDeliveriesCount,
}

func AggregateTable(aggregates []models.WasteAggregate) *tabular.Table {
	t := tabular.New("waste_aggregates", Columns)
	for _, a := range aggregates {
		t.Append([]string{
			a.Restaurant,
			tabular.FormatFloat(a.TotalWasteLb),
			nullable(a.AvgWastePerRecordLb),
			tabular.FormatFloat(float64(a.WasteRecordCount)),
			nullable(a.AvgWastePerServingLb),
			nullable(a.TotalWasteCostUsd),
			tabular.FormatFloat(float64(a.DelayedDeliveriesCount)),
		})
	}
	return t
}

func nullable(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return tabular.FormatFloat(v.Float64)
}
