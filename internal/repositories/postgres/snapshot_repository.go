package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/chrisdamba/foodwaste/internal/tabular"
)

const (
	DeliveryLogsTable       = "delivery_logs"
	RestaurantMetadataTable = "restaurant_metadata"
	WasteRecordsTable       = "food_waste"
	CustomerFeedbackTable   = "customer_feedback"
	MenuPortionsTable       = "menu_portions"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SnapshotRepository reads the raw inputs from PostgreSQL tables whose
// columns follow the CSV headers.
type SnapshotRepository struct {
	db   Querier
	pool *pgxpool.Pool
}

func NewSnapshotRepository(ctx context.Context, dsn string) (*SnapshotRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return &SnapshotRepository{db: pool, pool: pool}, nil
}

func NewSnapshotRepositoryWithQuerier(db Querier) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) load(ctx context.Context, table string) (*tabular.Table, error) {
	query := "SELECT * FROM " + pgx.Identifier{table}.Sanitize()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	t, err := RowsToTable(table, rows)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("table", table).Int("rows", t.Len()).Msg("loaded snapshot table")
	return t, nil
}

// RowsToTable drains rows into a string-celled table. NULL becomes an empty cell.
func RowsToTable(name string, rows pgx.Rows) (*tabular.Table, error) {
	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	t := tabular.New(name, columns)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cell(v)
		}
		t.Append(cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return t, nil
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func (r *SnapshotRepository) DeliveryLogs(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, DeliveryLogsTable)
}

func (r *SnapshotRepository) RestaurantMetadata(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, RestaurantMetadataTable)
}

func (r *SnapshotRepository) WasteRecords(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, WasteRecordsTable)
}

func (r *SnapshotRepository) CustomerFeedback(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, CustomerFeedbackTable)
}

func (r *SnapshotRepository) MenuPortions(ctx context.Context) (*tabular.Table, error) {
	return r.load(ctx, MenuPortionsTable)
}

func (r *SnapshotRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
