package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/chrisdamba/foodwaste/internal/cloudwriter"
	"github.com/chrisdamba/foodwaste/internal/tabular"
)

const parquetParallelism = 4

// ParquetSink writes a typed Parquet copy of each table. Tables go to the
// local directory unless a cloud writer factory is set.
type ParquetSink struct {
	dir                string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	prefix             string
}

func NewParquetSink(dir string) *ParquetSink {
	return &ParquetSink{dir: dir}
}

func NewCloudParquetSink(factory cloudwriter.CloudWriterFactory, bucket, prefix string) *ParquetSink {
	return &ParquetSink{cloudWriterFactory: factory, cloudBucketName: bucket, prefix: prefix}
}

func (p *ParquetSink) WriteTable(name string, t *tabular.Table) error {
	fileName := strings.TrimSuffix(name, filepath.Ext(name)) + ".parquet"

	fw, err := p.createFile(fileName)
	if err != nil {
		return err
	}

	columns := parquetColumns(t)
	schema, err := parquetSchema(columns)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	pw, err := writer.NewJSONWriter(schema, fw, parquetParallelism)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	for i := range t.Rows {
		record := make(map[string]any, len(columns))
		for _, c := range columns {
			record[c.field] = c.value(t.Rows[i][c.index])
		}
		line, err := json.Marshal(record)
		if err != nil {
			fw.Close()
			return err
		}
		if err := pw.Write(string(line)); err != nil {
			fw.Close()
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return err
	}
	log.Info().Str("file", fileName).Int("rows", t.Len()).Msg("wrote parquet table")
	return nil
}

func (p *ParquetSink) Close() error { return nil }

func (p *ParquetSink) createFile(fileName string) (source.ParquetFile, error) {
	if p.cloudWriterFactory != nil {
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, cloudwriter.ObjectKey(p.prefix, fileName))
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cloudWriter), nil
	}

	if err := os.MkdirAll(p.dir, os.ModePerm); err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(filepath.Join(p.dir, fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, nil
}

type parquetColumn struct {
	index   int
	field   string
	numeric bool
}

func (c parquetColumn) value(cell string) any {
	if tabular.IsMissing(cell) {
		return nil
	}
	if c.numeric {
		v, _ := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		return v
	}
	return cell
}

var unsafeFieldChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// parquetColumns types a column DOUBLE when every present cell parses as a
// number, otherwise UTF8.
func parquetColumns(t *tabular.Table) []parquetColumn {
	columns := make([]parquetColumn, 0, len(t.Columns))
	seen := make(map[string]int)
	for i, name := range t.Columns {
		field := unsafeFieldChars.ReplaceAllString(name, "_")
		if field == "" {
			field = "column"
		}
		if n := seen[field]; n > 0 {
			field = fmt.Sprintf("%s_%d", field, n)
		}
		seen[field]++

		numeric, present := true, false
		for _, row := range t.Rows {
			cell := row[i]
			if tabular.IsMissing(cell) {
				continue
			}
			present = true
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil || math.IsInf(v, 0) {
				numeric = false
				break
			}
		}
		columns = append(columns, parquetColumn{index: i, field: field, numeric: numeric && present})
	}
	return columns
}

type schemaNode struct {
	Tag    string       `json:"Tag"`
	Fields []schemaNode `json:"Fields,omitempty"`
}

func parquetSchema(columns []parquetColumn) (string, error) {
	root := schemaNode{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, c := range columns {
		tag := fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", c.field)
		if c.numeric {
			tag = fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", c.field)
		}
		root.Fields = append(root.Fields, schemaNode{Tag: tag})
	}
	out, err := json.Marshal(root)
	return string(out), err
}

// CloudParquetFile adapts a CloudWriter to the write side of source.ParquetFile.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

// Open and Create return the receiver; the object exists once written.
func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	n, err = c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
