// Package table contains the in-memory table model every generator emits.
package table

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// ColumnType is the logical type of a column, used by sinks to pick
// cell formatting and SQL column definitions.
type ColumnType string

const (
	TypeString    ColumnType = "string"
	TypeInt       ColumnType = "int"
	TypeFloat     ColumnType = "float"
	TypeDecimal   ColumnType = "decimal"
	TypeDate      ColumnType = "date"
	TypeTimestamp ColumnType = "timestamp"
	TypeBool      ColumnType = "bool"
)

// Column describes a single named column.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is an ordered set of columns. Column order is the order in which
// columns were declared and is preserved by every sink.
type Schema struct {
	columns *orderedmap.OrderedMap[string, ColumnType]
}

// NewSchema builds a schema from columns in declaration order.
// Duplicate names panic since schemas are static literals.
func NewSchema(cols ...Column) *Schema {
	m := orderedmap.NewOrderedMap[string, ColumnType]()
	for _, c := range cols {
		if !m.Set(c.Name, c.Type) {
			panic(fmt.Sprintf("table: duplicate column %q", c.Name))
		}
	}
	return &Schema{columns: m}
}

// Names returns the column names in order.
func (s *Schema) Names() []string {
	return s.columns.Keys()
}

// Columns returns the columns in order.
func (s *Schema) Columns() []Column {
	cols := make([]Column, 0, s.columns.Len())
	for el := s.columns.Front(); el != nil; el = el.Next() {
		cols = append(cols, Column{Name: el.Key, Type: el.Value})
	}
	return cols
}

// Type returns the type of the named column.
func (s *Schema) Type(name string) (ColumnType, bool) {
	return s.columns.Get(name)
}

// Index returns the position of the named column, or -1.
func (s *Schema) Index(name string) int {
	i := 0
	for el := s.columns.Front(); el != nil; el = el.Next() {
		if el.Key == name {
			return i
		}
		i++
	}
	return -1
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return s.columns.Len()
}

// Table is a named, schema-typed set of rows.
type Table struct {
	Name   string
	Schema *Schema
	Rows   [][]any
}

// New creates an empty table.
func New(name string, schema *Schema) *Table {
	return &Table{Name: name, Schema: schema}
}

// Append adds a row. The number of values must match the schema.
func (t *Table) Append(values ...any) error {
	if len(values) != t.Schema.Len() {
		return fmt.Errorf("table %s: row has %d values, schema has %d columns",
			t.Name, len(values), t.Schema.Len())
	}
	t.Rows = append(t.Rows, values)
	return nil
}

// MustAppend is Append for generator code whose rows are built from the
// same literal schema; a mismatch is a programming error.
func (t *Table) MustAppend(values ...any) {
	if err := t.Append(values...); err != nil {
		panic(err)
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns all values of the named column.
func (t *Table) Column(name string) ([]any, error) {
	idx := t.Schema.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("table %s: unknown column %q", t.Name, name)
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Value returns the value at row i of the named column.
func (t *Table) Value(i int, name string) (any, bool) {
	idx := t.Schema.Index(name)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[i][idx], true
}

// Head returns a table sharing the schema with at most n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) || n < 0 {
		n = len(t.Rows)
	}
	return &Table{Name: t.Name, Schema: t.Schema, Rows: t.Rows[:n]}
}
