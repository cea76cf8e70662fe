package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for pipeline runs
type Metrics struct {
	StageDuration       *prometheus.HistogramVec
	StageRuns           *prometheus.CounterVec
	RestaurantsAnalyzed prometheus.Gauge
	StrongCorrelations  prometheus.Gauge
	registry            *prometheus.Registry
}

func NewMetrics() *Metrics {
	m := &Metrics{
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foodwaste_stage_duration_seconds",
				Help:    "Duration of each pipeline stage in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"stage", "result"},
		),
		StageRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodwaste_stage_runs_total",
				Help: "Total number of pipeline stage runs by outcome",
			},
			[]string{"stage", "status"},
		),
		RestaurantsAnalyzed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "foodwaste_restaurants_analyzed",
				Help: "Restaurants present in the last analysis",
			},
		),
		StrongCorrelations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "foodwaste_strong_correlations",
				Help: "Strong correlations flagged in the last analysis",
			},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.StageDuration, m.StageRuns, m.RestaurantsAnalyzed, m.StrongCorrelations)
	return m
}

// ObserveStage records a stage outcome started at start.
func (m *Metrics) ObserveStage(stage string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.StageDuration.WithLabelValues(stage, result).Observe(time.Since(start).Seconds())
	m.StageRuns.WithLabelValues(stage, result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
