package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/output"
	"github.com/chrisdamba/foodwaste/internal/pipeline"
	"github.com/chrisdamba/foodwaste/internal/repositories"
	"github.com/chrisdamba/foodwaste/internal/repositories/files"
	"github.com/chrisdamba/foodwaste/internal/repositories/postgres"
	"github.com/chrisdamba/foodwaste/internal/telemetry"
)

func openSource(ctx context.Context, cfg *models.Config) (repositories.SnapshotSource, error) {
	switch cfg.Source {
	case models.SourcePostgres:
		return postgres.NewSnapshotRepository(ctx, cfg.Database.DSN())
	default:
		return files.NewSnapshotRepository(cfg), nil
	}
}

func newPublisher(cfg *models.Config, console bool) (output.ResultPublisher, error) {
	var publishers output.MultiPublisher
	if console {
		publishers = append(publishers, output.NewConsolePublisher(os.Stdout, resultFormat))
	}
	if cfg.KafkaEnabled {
		kafka, err := output.NewKafkaPublisher(cfg.KafkaBrokerList, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, kafka)
	}
	if len(publishers) == 0 {
		return nil, nil
	}
	return publishers, nil
}

// newPipeline wires a pipeline; the returned cleanup closes everything it opened.
func newPipeline(ctx context.Context, cfg *models.Config, console bool, metrics *telemetry.Metrics) (*pipeline.Pipeline, func() error, error) {
	source, err := openSource(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s source: %w", cfg.Source, err)
	}
	sink, err := output.NewSink(ctx, cfg)
	if err != nil {
		source.Close()
		return nil, nil, err
	}
	publisher, err := newPublisher(cfg, console)
	if err != nil {
		source.Close()
		return nil, nil, err
	}

	cleanup := func() error {
		source.Close()
		errs := []error{sink.Close()}
		if publisher != nil {
			errs = append(errs, publisher.Close())
		}
		return errors.Join(errs...)
	}
	return pipeline.New(cfg, source, sink, publisher, metrics), cleanup, nil
}
