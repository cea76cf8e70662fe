package factories

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/chrisdamba/foodwaste/internal/models"
)

const (
	weekMinutes   = 7 * 24 * 60
	courierPool   = 30
	delayedAfter  = 30
	deliveredRate = 92
	dateLayout    = "2006-01-02"
	timeLayout    = "15:04"
)

// Generator produces the five synthetic input datasets. Every draw comes from
// one seeded source, so a given seed reproduces the same numbers.
type Generator struct {
	cfg      models.GeneratorConfig
	rng      *rand.Rand
	fake     faker.Faker
	couriers []string

	// OnRow, when set, is called once per generated row.
	OnRow func()
}

func NewGenerator(cfg models.GeneratorConfig) *Generator {
	rng := rand.New(rand.NewSource(cfg.Seed))
	g := &Generator{
		cfg:  cfg,
		rng:  rng,
		fake: faker.NewWithSeed(rand.NewSource(cfg.Seed)),
	}
	g.couriers = make([]string, courierPool)
	for i := range g.couriers {
		g.couriers[i] = "CR-" + cuid.Slug()
	}
	return g
}

func (g *Generator) tick() {
	if g.OnRow != nil {
		g.OnRow()
	}
}

func (g *Generator) normal(mean, stddev float64) float64 {
	return g.rng.NormFloat64()*stddev + mean
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// withinWeek returns a timestamp up to one week after the configured start date.
func (g *Generator) withinWeek() time.Time {
	return g.cfg.StartDate.Add(time.Duration(g.rng.Intn(weekMinutes+1)) * time.Minute)
}

func (g *Generator) WasteRecords() []models.WasteRecord {
	records := make([]models.WasteRecord, 0, g.cfg.WasteRecords)
	for i := 0; i < g.cfg.WasteRecords; i++ {
		ts := g.withinWeek()
		quantity := round(math.Abs(g.normal(4, 5)), 2)
		servings := int(quantity / math.Max(0.1, g.normal(0.5, 0.2)))
		if servings < 1 {
			servings = 1
		}
		unitCost := round(g.uniform(2, 12), 2)
		temp := g.fake.Float64(1, 30, 160)

		records = append(records, models.WasteRecord{
			Date:            ts.Format(dateLayout),
			DayOfWeek:       ts.Weekday().String(),
			Time:            ts.Format(timeLayout),
			Restaurant:      g.fake.RandomStringElement(restaurants),
			Entree:          g.fake.RandomStringElement(menuItems),
			Cuisine:         g.fake.RandomStringElement(cuisines),
			Location:        fmt.Sprintf("Raleigh, Zone-%d", g.fake.IntBetween(1, 10)),
			WasteType:       g.fake.RandomStringElement(wasteTypes),
			QuantityLb:      quantity,
			Servings:        servings,
			UnitCostUsd:     unitCost,
			EstCostUsd:      round(quantity*unitCost, 2),
			DisposalMethod:  g.fake.RandomStringElement(disposalMethods),
			Reason:          g.fake.RandomStringElement(wasteReasons),
			StorageTempF:    temp,
			SafeTempRangeOk: temp > 40 && temp < 140,
		})
		g.tick()
	}
	return records
}

func (g *Generator) RestaurantProfiles() []models.RestaurantProfile {
	profiles := make([]models.RestaurantProfile, 0, len(restaurants))
	for _, name := range restaurants {
		profiles = append(profiles, models.RestaurantProfile{
			Restaurant:               name,
			Cuisine:                  g.fake.RandomStringElement(cuisines),
			Capacity:                 g.fake.IntBetween(30, 200),
			SeatingType:              g.fake.RandomStringElement(seatingTypes),
			AvgDailyOrders:           g.fake.IntBetween(50, 400),
			HasSustainabilityProgram: g.fake.Bool(),
			ZipCode:                  zipCodes[g.rng.Intn(len(zipCodes))],
		})
		g.tick()
	}
	return profiles
}

func (g *Generator) CustomerFeedback() []models.CustomerFeedback {
	feedback := make([]models.CustomerFeedback, 0, g.cfg.FeedbackRecords)
	for i := 0; i < g.cfg.FeedbackRecords; i++ {
		day := g.cfg.StartDate.AddDate(0, 0, g.rng.Intn(7))
		feedback = append(feedback, models.CustomerFeedback{
			Restaurant:        g.fake.RandomStringElement(restaurants),
			Date:              day.Format(dateLayout),
			DeliveryRating:    g.fake.IntBetween(1, 5),
			FoodQualityRating: g.fake.IntBetween(1, 5),
			FeedbackText:      g.fake.RandomStringElement(feedbackTexts),
		})
		g.tick()
	}
	return feedback
}

func (g *Generator) MenuPortions() []models.MenuPortion {
	portions := make([]models.MenuPortion, 0, len(menuItems))
	for _, item := range menuItems {
		portions = append(portions, models.MenuPortion{
			Entree:            item,
			StandardPortionOz: portionOunces[g.rng.Intn(len(portionOunces))],
			ExpectedServings:  g.fake.IntBetween(1, 6),
			AvgUnitCostUsd:    round(g.uniform(2.5, 10), 2),
		})
		g.tick()
	}
	return portions
}

func (g *Generator) DeliveryLogs() []models.DeliveryLog {
	logs := make([]models.DeliveryLog, 0, g.cfg.DeliveryRecords)
	for i := 0; i < g.cfg.DeliveryRecords; i++ {
		ts := g.withinWeek()
		duration := int(math.Abs(g.normal(20, 8)))
		if duration < 3 {
			duration = 3
		}
		logs = append(logs, models.DeliveryLog{
			OrderID:         fmt.Sprintf("ORD-%d", 1000+i),
			Date:            ts.Format(dateLayout),
			Time:            ts.Format(timeLayout),
			Restaurant:      g.fake.RandomStringElement(restaurants),
			CourierID:       g.couriers[g.rng.Intn(len(g.couriers))],
			DistanceKm:      round(math.Abs(g.normal(5, 3)), 2),
			DeliveryTimeMin: duration,
			PortionSize:     g.fake.RandomStringElement(portionSizes),
			Delivered:       g.rng.Intn(100) < deliveredRate,
			Delayed:         duration > delayedAfter,
		})
		g.tick()
	}
	return logs
}

// Total is the number of rows a full Generate call produces.
func (g *Generator) Total() int {
	return g.cfg.WasteRecords + g.cfg.FeedbackRecords + g.cfg.DeliveryRecords + len(restaurants) + len(menuItems)
}
