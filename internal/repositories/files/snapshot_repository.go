package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

// SnapshotRepository reads the raw inputs from CSV files in the data directory.
type SnapshotRepository struct {
	cfg *models.Config
}

func NewSnapshotRepository(cfg *models.Config) *SnapshotRepository {
	return &SnapshotRepository{cfg: cfg}
}

func (r *SnapshotRepository) load(ctx context.Context, name string) (*tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := r.cfg.Path(name)
	t, err := tabular.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("missing %s in %s, run the generate command first: %w", name, r.cfg.DataDir, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

func (r *SnapshotRepository) DeliveryLogs(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, r.cfg.DeliveryLogsFile)
}

func (r *SnapshotRepository) RestaurantMetadata(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, r.cfg.MetadataFile)
}

func (r *SnapshotRepository) WasteRecords(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, r.cfg.RawWasteFile)
}

func (r *SnapshotRepository) CustomerFeedback(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, r.cfg.FeedbackFile)
}

func (r *SnapshotRepository) MenuPortions(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, r.cfg.MenuFile)
}

func (r *SnapshotRepository) Close() {}
