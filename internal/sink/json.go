package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/logger"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// JSONSink writes one JSON file per table holding an array of row objects.
// Object keys follow schema order.
type JSONSink struct {
	dir string
	log *logger.Logger
}

// NewJSONSink creates a JSON sink writing into dir.
func NewJSONSink(dir string, log *logger.Logger) *JSONSink {
	return &JSONSink{dir: dir, log: log.WithSink(config.FormatJSON)}
}

// Format implements Sink.
func (s *JSONSink) Format() string { return config.FormatJSON }

// Write implements Sink.
func (s *JSONSink) Write(ctx context.Context, tables []*table.Table) (*Stats, error) {
	return writeFiles(ctx, s.dir, "json", s.log, tables, writeJSON)
}

func writeJSON(path string, t *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := EncodeJSON(w, t); err != nil {
		return err
	}
	return w.Flush()
}

// EncodeJSON writes t as a JSON array of objects to w. encoding/json sorts
// map keys, so objects are assembled by hand to keep column order.
func EncodeJSON(w *bufio.Writer, t *table.Table) error {
	cols := t.Schema.Columns()

	keys := make([][]byte, len(cols))
	for j, c := range cols {
		k, err := json.Marshal(c.Name)
		if err != nil {
			return err
		}
		keys[j] = k
	}

	w.WriteString("[")
	for i, row := range t.Rows {
		if i > 0 {
			w.WriteString(",")
		}
		w.WriteString("\n  {")
		for j, c := range cols {
			if j > 0 {
				w.WriteString(", ")
			}
			v, err := json.Marshal(table.NativeValue(c.Type, row[j]))
			if err != nil {
				return fmt.Errorf("failed to encode %s.%s row %d: %w", t.Name, c.Name, i, err)
			}
			w.Write(keys[j])
			w.WriteString(": ")
			w.Write(v)
		}
		w.WriteString("}")
	}
	if len(t.Rows) > 0 {
		w.WriteString("\n")
	}
	_, err := w.WriteString("]\n")
	return err
}
