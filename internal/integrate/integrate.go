package integrate

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/stats"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

const (
	DefaultWastePerServing = 0.0
	DefaultRating          = 0.0

	WastePerServingPrecision = 3
	RatingPrecision          = 2
)

var (
	JoinMetadata = tabular.JoinSpec{Name: "waste+metadata", Keys: []string{models.ColRestaurant}, Suffix: "_meta"}
	JoinMenu     = tabular.JoinSpec{Name: "+menu", Keys: []string{models.ColEntree}, Suffix: "_menu"}
	// JoinDelivery is approximate: logs match on calendar day only, so a waste
	// record fans out across every delivery its restaurant made that day.
	JoinDelivery = tabular.JoinSpec{Name: "+delivery", Keys: []string{models.ColRestaurant, models.ColDate}, Suffix: "_delivery"}
	JoinFeedback = tabular.JoinSpec{Name: "+feedback", Keys: []string{models.ColRestaurant, models.ColDate}, Suffix: "_feedback"}
)

// numericColumns are coerced; unparseable cells become empty.
var numericColumns = []string{
	"quantity_lb", "servings", "unit_cost_usd", "est_cost_usd", "storage_temp_F", "distance_km", "delivery_time_min",
}

// Inputs are the five raw snapshot tables.
type Inputs struct {
	Waste    *tabular.Table
	Metadata *tabular.Table
	Feedback *tabular.Table
	Menu     *tabular.Table
	Delivery *tabular.Table
}

// Build cleans and joins the raw tables into the master waste dataset.
func Build(in Inputs) (*tabular.Table, error) {
	for _, t := range []*tabular.Table{in.Waste, in.Metadata, in.Feedback, in.Menu, in.Delivery} {
		if t == nil {
			return nil, fmt.Errorf("integrate: missing input table")
		}
		clean(t)
	}
	if err := in.Waste.Require(models.ColRestaurant, models.ColDate, models.ColQuantityLb); err != nil {
		return nil, err
	}
	coerceNumeric(in.Waste)
	coerceNumeric(in.Delivery)

	merged, err := tabular.LeftJoin(in.Waste, in.Metadata, JoinMetadata)
	if err != nil {
		return nil, err
	}
	if merged.Has(models.ColEntree) && in.Menu.Has(models.ColEntree) {
		if merged, err = tabular.LeftJoin(merged, in.Menu, JoinMenu); err != nil {
			return nil, err
		}
	}
	if merged, err = tabular.LeftJoin(merged, in.Delivery, JoinDelivery); err != nil {
		return nil, err
	}
	if merged, err = tabular.LeftJoin(merged, in.Feedback, JoinFeedback); err != nil {
		return nil, err
	}

	perServing := func(i int) string {
		q := tabular.FloatOr(merged.Value(i, models.ColQuantityLb), 0)
		s := tabular.FloatOr(merged.Value(i, models.ColServings), 0)
		if s <= 0 || tabular.IsMissing(merged.Value(i, models.ColQuantityLb)) {
			return tabular.FormatFloat(DefaultWastePerServing)
		}
		return tabular.FormatFloat(stats.Round(q/s, WastePerServingPrecision))
	}
	if merged.Has(models.ColWastePerServingLb) {
		for i := range merged.Rows {
			merged.Set(i, models.ColWastePerServingLb, perServing(i))
		}
	} else {
		merged.AddColumn(models.ColWastePerServingLb, perServing)
	}

	merged.AddColumn(models.ColAvgRating, func(i int) string {
		delivery := tabular.FloatOr(merged.Value(i, models.ColDeliveryRating), DefaultRating)
		food := tabular.FloatOr(merged.Value(i, models.ColFoodQualityRating), DefaultRating)
		return tabular.FormatFloat(stats.Round((delivery+food)/2, RatingPrecision))
	})
	merged.Name = "cleaned_master_dataset"

	log.Info().Int("waste_records", in.Waste.Len()).Int("rows", merged.Len()).Int("columns", len(merged.Columns)).Msg("integrated master dataset")
	return merged, nil
}

func clean(t *tabular.Table) {
	t.TrimSpace()
	if dropped := t.Dedupe(); dropped > 0 {
		log.Debug().Str("table", t.Name).Int("dropped", dropped).Msg("dropped duplicate rows")
	}
}

func coerceNumeric(t *tabular.Table) {
	for _, col := range numericColumns {
		if !t.Has(col) {
			continue
		}
		for i := range t.Rows {
			if _, _, err := t.Float(i, col); err != nil {
				t.Set(i, col, "")
			}
		}
	}
}
