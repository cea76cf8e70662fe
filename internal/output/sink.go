package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/cloudwriter"
	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

// TableSink persists a derived table under a file name. Every write
// replaces whatever the sink held under that name.
type TableSink interface {
	WriteTable(name string, t *tabular.Table) error
	Close() error
}

type CSVSink struct {
	dir string
}

func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

func (c *CSVSink) WriteTable(name string, t *tabular.Table) error {
	path := filepath.Join(c.dir, name)
	if err := t.WriteFile(path); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("rows", t.Len()).Msg("wrote table")
	return nil
}

func (c *CSVSink) Close() error { return nil }

// CloudCSVSink uploads CSV tables through a cloud writer.
type CloudCSVSink struct {
	factory cloudwriter.CloudWriterFactory
	bucket  string
	prefix  string
}

func NewCloudCSVSink(factory cloudwriter.CloudWriterFactory, bucket, prefix string) *CloudCSVSink {
	return &CloudCSVSink{factory: factory, bucket: bucket, prefix: prefix}
}

func (c *CloudCSVSink) WriteTable(name string, t *tabular.Table) error {
	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		return err
	}

	key := cloudwriter.ObjectKey(c.prefix, name)
	w, err := c.factory.NewWriter(c.bucket, key)
	if err != nil {
		return fmt.Errorf("failed to create cloud file writer: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return w.Close()
}

func (c *CloudCSVSink) Close() error { return nil }

// MultiSink fans each table out to every sink, stopping at the first failure.
type MultiSink []TableSink

func (m MultiSink) WriteTable(name string, t *tabular.Table) error {
	for _, s := range m {
		if err := s.WriteTable(name, t); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewSink builds the configured sinks. Local CSV is always written since
// later stages read the tables back from the data directory.
func NewSink(ctx context.Context, cfg *models.Config) (TableSink, error) {
	sinks := MultiSink{NewCSVSink(cfg.DataDir)}
	if cfg.HasFormat(models.FormatParquet) {
		sinks = append(sinks, NewParquetSink(cfg.DataDir))
	}

	if cfg.OutputDestination != models.DestinationLocal {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		bucket, prefix := cfg.CloudStorage.BucketName, cfg.CloudStorage.Prefix
		if cfg.HasFormat(models.FormatCSV) {
			sinks = append(sinks, NewCloudCSVSink(factory, bucket, prefix))
		}
		if cfg.HasFormat(models.FormatParquet) {
			sinks = append(sinks, NewCloudParquetSink(factory, bucket, prefix))
		}
	}
	return sinks, nil
}
