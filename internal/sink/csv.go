package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/logger"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// CSVSink writes one CSV file per table with a header row.
type CSVSink struct {
	dir string
	log *logger.Logger
}

// NewCSVSink creates a CSV sink writing into dir.
func NewCSVSink(dir string, log *logger.Logger) *CSVSink {
	return &CSVSink{dir: dir, log: log.WithSink(config.FormatCSV)}
}

// Format implements Sink.
func (s *CSVSink) Format() string { return config.FormatCSV }

// Write implements Sink.
func (s *CSVSink) Write(ctx context.Context, tables []*table.Table) (*Stats, error) {
	return writeFiles(ctx, s.dir, "csv", s.log, tables, writeCSV)
}

func writeCSV(path string, t *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Schema.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range t.Rows {
		if err := w.Write(t.FormatRow(i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}
