package table

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts used when rendering date and timestamp cells.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// FormatValue renders a cell as text for the given column type.
// Supports string, bool, every int width, float32/64, decimal.Decimal and time.Time.
// nil renders as the empty string.
func FormatValue(ct ColumnType, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case decimal.Decimal:
		return x.StringFixed(2)
	case time.Time:
		if ct == TypeDate {
			return x.Format(DateLayout)
		}
		return x.Format(TimestampLayout)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// FormatRow renders every cell of row i.
func (t *Table) FormatRow(i int) []string {
	cols := t.Schema.Columns()
	out := make([]string, len(cols))
	for j, c := range cols {
		out[j] = FormatValue(c.Type, t.Rows[i][j])
	}
	return out
}

// NativeValue converts a cell into a value suitable for JSON or SQL drivers.
// Decimals become fixed two-place strings and dates become YYYY-MM-DD.
func NativeValue(ct ColumnType, v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.StringFixed(2)
	case time.Time:
		if ct == TypeDate {
			return x.Format(DateLayout)
		}
		return x.UTC()
	default:
		return v
	}
}
