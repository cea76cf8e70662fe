package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/foodwaste/internal/cloudwriter"
	"github.com/chrisdamba/foodwaste/internal/models"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

func scoresTable() *tabular.Table {
	t := tabular.New("vendor_efficiency_scores", []string{"restaurant", "efficiency_score", "cuisine", "odd name"})
	t.Append([]string{"A", "100", "Deli", ""})
	t.Append([]string{"B", "", "BBQ", "x"})
	return t
}

func TestCSVSinkOverwrites(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(dir)

	require.NoError(t, sink.WriteTable("scores.csv", scoresTable()))
	small := tabular.New("s", []string{"restaurant"})
	require.NoError(t, sink.WriteTable("scores.csv", small))

	data, err := os.ReadFile(filepath.Join(dir, "scores.csv"))
	require.NoError(t, err)
	assert.Equal(t, "restaurant\n", string(data))
}

func TestCloudCSVSink(t *testing.T) {
	factory := cloudwriter.NewMemoryWriterFactory()
	sink := NewCloudCSVSink(factory, "bucket", "runs")

	require.NoError(t, sink.WriteTable("scores.csv", scoresTable()))
	data, ok := factory.Object("bucket", "runs/scores.csv")
	require.True(t, ok)
	assert.True(t, bytes.HasPrefix(data, []byte("restaurant,efficiency_score")))
}

type failingWriter struct {
	closed bool
}

func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }
func (w *failingWriter) Close() error {
	w.closed = true
	return nil
}

type failingWriterFactory struct {
	writers []*failingWriter
}

func (f *failingWriterFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	w := &failingWriter{}
	f.writers = append(f.writers, w)
	return w, nil
}

func TestCloudCSVSinkClosesWriterOnFailure(t *testing.T) {
	factory := &failingWriterFactory{}
	sink := NewCloudCSVSink(factory, "bucket", "")

	err := sink.WriteTable("scores.csv", scoresTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.Len(t, factory.writers, 1)
	assert.True(t, factory.writers[0].closed)
}

func TestParquetSinkLocalAndCloud(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewParquetSink(dir).WriteTable("scores.csv", scoresTable()))

	data, err := os.ReadFile(filepath.Join(dir, "scores.parquet"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))
	assert.True(t, bytes.HasSuffix(data, []byte("PAR1")))

	factory := cloudwriter.NewMemoryWriterFactory()
	require.NoError(t, NewCloudParquetSink(factory, "bucket", "").WriteTable("scores.csv", scoresTable()))
	obj, ok := factory.Object("bucket", "scores.parquet")
	require.True(t, ok)
	assert.True(t, bytes.HasPrefix(obj, []byte("PAR1")))
}

func TestParquetColumnTyping(t *testing.T) {
	cols := parquetColumns(scoresTable())
	require.Len(t, cols, 4)
	assert.True(t, cols[1].numeric)
	assert.False(t, cols[2].numeric)
	assert.Equal(t, "odd_name", cols[3].field)
	assert.Nil(t, cols[1].value(""))
	assert.Equal(t, 100.0, cols[1].value("100"))
}

type failingSink struct{ err error }

func (f failingSink) WriteTable(string, *tabular.Table) error { return f.err }
func (f failingSink) Close() error                            { return f.err }

func TestMultiSink(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	sink := MultiSink{NewCSVSink(dir), failingSink{err: boom}}

	assert.ErrorIs(t, sink.WriteTable("a.csv", scoresTable()), boom)
	assert.FileExists(t, filepath.Join(dir, "a.csv"))
	assert.ErrorIs(t, sink.Close(), boom)
}

func TestNewSinkLocal(t *testing.T) {
	cfg := &models.Config{DataDir: t.TempDir(), OutputFormats: []string{models.FormatCSV, models.FormatParquet}, OutputDestination: models.DestinationLocal}

	sink, err := NewSink(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, sink.WriteTable("m.csv", scoresTable()))
	assert.FileExists(t, filepath.Join(cfg.DataDir, "m.csv"))
	assert.FileExists(t, filepath.Join(cfg.DataDir, "m.parquet"))

	cfg.OutputDestination = models.DestinationS3
	cfg.CloudStorage.Provider = "gcs"
	_, err = NewSink(context.Background(), cfg)
	assert.Error(t, err)
}
