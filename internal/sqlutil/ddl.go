package sqlutil

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gotreasury/internal/table"
)

// mysqlTypes maps logical column types to MySQL column definitions.
var mysqlTypes = map[table.ColumnType]string{
	table.TypeString:    "VARCHAR(255)",
	table.TypeInt:       "BIGINT",
	table.TypeFloat:     "DOUBLE",
	table.TypeDecimal:   "DECIMAL(20,2)",
	table.TypeDate:      "DATE",
	table.TypeTimestamp: "DATETIME",
	table.TypeBool:      "BOOLEAN",
}

// ColumnDefinition returns the MySQL type for a logical column type.
// Unknown types fall back to TEXT.
func ColumnDefinition(ct table.ColumnType) string {
	if def, ok := mysqlTypes[ct]; ok {
		return def
	}
	return "TEXT"
}

// CreateTableSQL builds a CREATE TABLE IF NOT EXISTS statement for t.
// Every column is nullable; generated tables carry no keys.
func CreateTableSQL(t *table.Table) (string, error) {
	name, err := QuoteIdentifierSafe(t.Name)
	if err != nil {
		return "", err
	}

	cols := t.Schema.Columns()
	if len(cols) == 0 {
		return "", fmt.Errorf("table %s has no columns", t.Name)
	}

	defs := make([]string, len(cols))
	for i, c := range cols {
		col, err := QuoteIdentifierSafe(c.Name)
		if err != nil {
			return "", err
		}
		defs[i] = col + " " + ColumnDefinition(c.Type) + " NULL"
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		name, strings.Join(defs, ",\n  ")), nil
}

// TruncateSQL builds a TRUNCATE TABLE statement.
func TruncateSQL(tableName string) (string, error) {
	name, err := QuoteIdentifierSafe(tableName)
	if err != nil {
		return "", err
	}
	return "TRUNCATE TABLE " + name, nil
}

// InsertSQL builds a multi-row INSERT with rows groups of placeholders.
// Example: INSERT INTO `fx_rates` (`date`, `pair`) VALUES (?, ?), (?, ?)
func InsertSQL(tableName string, columns []string, rows int) (string, error) {
	if rows <= 0 {
		return "", fmt.Errorf("insert into %s needs at least one row", tableName)
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("insert into %s needs at least one column", tableName)
	}

	name, err := QuoteIdentifierSafe(tableName)
	if err != nil {
		return "", err
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		if quoted[i], err = QuoteIdentifierSafe(c); err != nil {
			return "", err
		}
	}

	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(name)
	b.WriteString(" (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(") VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(group)
	}
	return b.String(), nil
}

// InsertArgs flattens rows [from, to) of t into driver arguments in
// column order, converting decimals and dates with table.NativeValue.
func InsertArgs(t *table.Table, from, to int) []any {
	cols := t.Schema.Columns()
	args := make([]any, 0, (to-from)*len(cols))
	for _, row := range t.Rows[from:to] {
		for j, c := range cols {
			args = append(args, table.NativeValue(c.Type, row[j]))
		}
	}
	return args
}
