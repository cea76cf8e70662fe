package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/analysis"
	"github.com/chrisdamba/foodwaste/internal/delivery"
	"github.com/chrisdamba/foodwaste/internal/efficiency"
	"github.com/chrisdamba/foodwaste/internal/integrate"
	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/output"
	"github.com/chrisdamba/foodwaste/internal/repositories"
	"github.com/chrisdamba/foodwaste/internal/tabular"
	"github.com/chrisdamba/foodwaste/internal/telemetry"
)

const (
	StageMetrics    = "metrics"
	StageEfficiency = "efficiency"
	StageIntegrate  = "integrate"
	StageAnalyze    = "analyze"
	StagePublish    = "publish"
)

// Pipeline runs the batch stages against one snapshot source. Derived tables
// are written through the sink and read back from the data directory by
// later stages.
type Pipeline struct {
	cfg       *models.Config
	source    repositories.SnapshotSource
	sink      output.TableSink
	publisher output.ResultPublisher
	metrics   *telemetry.Metrics
}

// New wires a pipeline. publisher may be nil.
func New(cfg *models.Config, source repositories.SnapshotSource, sink output.TableSink, publisher output.ResultPublisher, metrics *telemetry.Metrics) *Pipeline {
	if metrics == nil {
		metrics = telemetry.NewMetrics()
	}
	return &Pipeline{
		cfg:       cfg,
		source:    source,
		sink:      sink,
		publisher: publisher,
		metrics:   metrics,
	}
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	start := time.Now()
	err := ctx.Err()
	if err == nil {
		err = fn()
	}
	p.metrics.ObserveStage(name, start, err)

	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}
	event.Str("stage", name).Dur("duration", time.Since(start)).Msg("stage finished")
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (p *Pipeline) readDerived(name string) (*tabular.Table, error) {
	return tabular.ReadFile(p.cfg.Path(name))
}

// ComputeMetrics aggregates delivery logs into the vendor metrics table.
func (p *Pipeline) ComputeMetrics(ctx context.Context) ([]models.VendorMetrics, error) {
	var metrics []models.VendorMetrics
	err := p.stage(ctx, StageMetrics, func() error {
		logs, err := p.source.DeliveryLogs(ctx)
		if err != nil {
			return err
		}
		if metrics, err = delivery.Aggregate(logs); err != nil {
			return err
		}
		return p.sink.WriteTable(p.cfg.MetricsFile, delivery.MetricsTable(metrics))
	})
	return metrics, err
}

// ScoreEfficiency scores the persisted metrics table against restaurant metadata.
func (p *Pipeline) ScoreEfficiency(ctx context.Context) (*efficiency.Result, error) {
	var result *efficiency.Result
	err := p.stage(ctx, StageEfficiency, func() error {
		metricsTable, err := p.readDerived(p.cfg.MetricsFile)
		if err != nil {
			return err
		}
		metrics, err := efficiency.MetricsFromTable(metricsTable)
		if err != nil {
			return err
		}
		metadata, err := p.source.RestaurantMetadata(ctx)
		if err != nil {
			return err
		}
		if result, err = efficiency.Score(metrics, metadata); err != nil {
			return err
		}
		return p.sink.WriteTable(p.cfg.EfficiencyFile, result.Table())
	})
	return result, err
}

// Integrate builds the cleaned master waste dataset.
func (p *Pipeline) Integrate(ctx context.Context) (*tabular.Table, error) {
	var merged *tabular.Table
	err := p.stage(ctx, StageIntegrate, func() error {
		var in integrate.Inputs
		var err error
		if in.Waste, err = p.source.WasteRecords(ctx); err != nil {
			return err
		}
		if in.Metadata, err = p.source.RestaurantMetadata(ctx); err != nil {
			return err
		}
		if in.Feedback, err = p.source.CustomerFeedback(ctx); err != nil {
			return err
		}
		if in.Menu, err = p.source.MenuPortions(ctx); err != nil {
			return err
		}
		if in.Delivery, err = p.source.DeliveryLogs(ctx); err != nil {
			return err
		}
		if merged, err = integrate.Build(in); err != nil {
			return err
		}
		return p.sink.WriteTable(p.cfg.WasteFile, merged)
	})
	return merged, err
}

// Analyze correlates the persisted efficiency table with the waste dataset.
func (p *Pipeline) Analyze(ctx context.Context) (*models.AnalysisResult, error) {
	var result *models.AnalysisResult
	err := p.stage(ctx, StageAnalyze, func() error {
		eff, err := p.readDerived(p.cfg.EfficiencyFile)
		if err != nil {
			return err
		}
		records, err := p.readDerived(p.cfg.WasteFile)
		if err != nil {
			return err
		}
		if result, err = analysis.Analyze(eff, records); err != nil {
			return err
		}
		p.metrics.RestaurantsAnalyzed.Set(float64(result.RestaurantsAnalyzed))
		p.metrics.StrongCorrelations.Set(float64(len(result.Summary.StrongCorrelations)))
		return nil
	})
	return result, err
}

// AnalyzeResponse runs Analyze behind the response boundary. It never panics.
func (p *Pipeline) AnalyzeResponse(ctx context.Context) (resp models.AnalysisResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("analysis panicked")
			resp = Respond(nil, fmt.Errorf("internal error: %v", r))
		}
	}()
	return Respond(p.Analyze(ctx))
}

// Run executes every stage in order and publishes the outcome, success or not.
// A panicking stage is reported as an error response.
func (p *Pipeline) Run(ctx context.Context) (resp models.AnalysisResponse, err error) {
	runID := uuid.NewString()
	log.Info().Str("run_id", runID).Str("source", p.cfg.Source).Msg("pipeline started")

	result, err := p.safeStages(ctx)
	resp = Respond(result, err)

	if p.publisher != nil {
		pubErr := p.stage(ctx, StagePublish, func() error {
			return p.publisher.Publish(ctx, runID, resp)
		})
		if err == nil {
			err = pubErr
		}
	}
	return resp, err
}

func (p *Pipeline) safeStages(ctx context.Context) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("pipeline panicked")
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()
	return p.runStages(ctx)
}

func (p *Pipeline) runStages(ctx context.Context) (*models.AnalysisResult, error) {
	if _, err := p.ComputeMetrics(ctx); err != nil {
		return nil, err
	}
	if _, err := p.ScoreEfficiency(ctx); err != nil {
		return nil, err
	}
	if _, err := p.Integrate(ctx); err != nil {
		return nil, err
	}
	return p.Analyze(ctx)
}

// Respond converts a stage outcome into the outward envelope.
func Respond(result *models.AnalysisResult, err error) models.AnalysisResponse {
	if err != nil {
		return models.AnalysisResponse{Status: models.StatusError, Message: err.Error()}
	}
	if result == nil {
		return models.AnalysisResponse{Status: models.StatusError, Message: "no analysis result"}
	}
	return models.AnalysisResponse{Status: models.StatusSuccess, Data: result}
}
