package repositories

import (
	"context"

	"github.com/chrisdamba/foodwaste/internal/tabular"
)

// SnapshotSource supplies the raw input tables for one pipeline run.
// Implementations are read-only.
type SnapshotSource interface {
	DeliveryLogs(ctx context.Context) (*tabular.Table, error)
	RestaurantMetadata(ctx context.Context) (*tabular.Table, error)
	WasteRecords(ctx context.Context) (*tabular.Table, error)
	CustomerFeedback(ctx context.Context) (*tabular.Table, error)
	MenuPortions(ctx context.Context) (*tabular.Table, error)
	Close()
}
