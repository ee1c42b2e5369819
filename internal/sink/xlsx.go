package sink

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/logger"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// maxSheetName is Excel's limit on worksheet names.
const maxSheetName = 31

// XLSXSink writes one workbook per table with a single sheet named after
// the table.
type XLSXSink struct {
	dir string
	log *logger.Logger
}

// NewXLSXSink creates an XLSX sink writing into dir.
func NewXLSXSink(dir string, log *logger.Logger) *XLSXSink {
	return &XLSXSink{dir: dir, log: log.WithSink(config.FormatXLSX)}
}

// Format implements Sink.
func (s *XLSXSink) Format() string { return config.FormatXLSX }

// Write implements Sink.
func (s *XLSXSink) Write(ctx context.Context, tables []*table.Table) (*Stats, error) {
	return writeFiles(ctx, s.dir, "xlsx", s.log, tables, writeXLSX)
}

// SheetName returns the worksheet name used for a table.
func SheetName(tableName string) string {
	if len(tableName) > maxSheetName {
		return tableName[:maxSheetName]
	}
	return tableName
}

// cellValue converts a cell for excelize. Decimals become numbers so
// spreadsheets can sum them; dates and timestamps are written as text.
func cellValue(ct table.ColumnType, v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64()
	case nil:
		return nil
	}
	if ct == table.TypeDate || ct == table.TypeTimestamp {
		return table.FormatValue(ct, v)
	}
	return v
}

func writeXLSX(path string, t *table.Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheet := SheetName(t.Name)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	names := t.Schema.Names()
	header := make([]interface{}, len(names))
	for j, n := range names {
		header[j] = n
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cols := t.Schema.Columns()
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cols))
		for j, c := range cols {
			values[j] = cellValue(c.Type, row[j])
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
