// Package sink writes generated tables to files or a MySQL database.
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/logger"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// Sink persists a set of tables.
type Sink interface {
	// Format returns the output format name, e.g. "csv".
	Format() string
	// Write persists every table. A failed write returns the first error.
	Write(ctx context.Context, tables []*table.Table) (*Stats, error)
}

// Stats summarizes a Write call.
type Stats struct {
	TablesWritten int
	RowsWritten   int64
	RowsPerTable  map[string]int64
	// Files lists the paths created by file sinks.
	Files    []string
	Duration time.Duration
}

func newStats() *Stats {
	return &Stats{RowsPerTable: make(map[string]int64)}
}

func (s *Stats) record(t *table.Table, rows int64) {
	s.TablesWritten++
	s.RowsWritten += rows
	s.RowsPerTable[t.Name] += rows
}

// New creates the sink selected by cfg.Format. db is only used by the
// mysql format and may be nil otherwise.
func New(cfg *config.OutputConfig, db *sql.DB, database string, log *logger.Logger) (Sink, error) {
	if log == nil {
		log = logger.NewNop()
	}

	switch cfg.Format {
	case config.FormatCSV:
		return NewCSVSink(cfg.Directory, log), nil
	case config.FormatJSON:
		return NewJSONSink(cfg.Directory, log), nil
	case config.FormatXLSX:
		return NewXLSXSink(cfg.Directory, log), nil
	case config.FormatMySQL:
		if db == nil {
			return nil, fmt.Errorf("mysql sink requires a destination connection")
		}
		return NewMySQLSink(db, database, log).
			WithBatchSize(cfg.BatchSize).
			WithLockTimeout(cfg.LockTimeout).
			WithTruncate(cfg.Truncate), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.Format)
	}
}

// fileWriter is the per-table step shared by the file sinks.
type fileWriter func(path string, t *table.Table) error

// writeFiles writes each table to dir/{table}.{ext} using write.
func writeFiles(ctx context.Context, dir, ext string, log *logger.Logger, tables []*table.Table, write fileWriter) (*Stats, error) {
	start := time.Now()
	stats := newStats()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("write interrupted: %w", err)
		}

		path := filepath.Join(dir, t.Name+"."+ext)
		if err := write(path, t); err != nil {
			return nil, fmt.Errorf("failed to write table %s: %w", t.Name, err)
		}

		stats.record(t, int64(t.Len()))
		stats.Files = append(stats.Files, path)
		log.WithTable(t.Name).Debugw("table written", "path", path, "rows", t.Len())
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
