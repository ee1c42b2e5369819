// Package preview renders the first rows of generated tables as a
// terminal grid.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/table"
)

// DefaultRows is the number of rows shown when Options.Rows is zero.
const DefaultRows = 10

// Options controls grid rendering.
type Options struct {
	// Rows is the maximum number of rows shown.
	Rows int
	// MaxCellWidth truncates longer cells with an ellipsis. Zero disables.
	MaxCellWidth int
	// Color enables ANSI styling for the header, negative numbers and
	// true flags.
	Color bool
}

var (
	headerStyle   = color.New(color.FgCyan, color.OpBold)
	negativeStyle = color.New(color.FgRed)
	flagStyle     = color.New(color.FgYellow, color.OpBold)
	mutedStyle    = color.New(color.FgGray)
)

// Render writes t as a box-drawn grid followed by a row count footer.
func Render(w io.Writer, t *table.Table, opts Options) error {
	n := opts.Rows
	if n <= 0 {
		n = DefaultRows
	}
	head := t.Head(n)
	cols := t.Schema.Columns()

	cells := make([][]string, head.Len())
	widths := make([]int, len(cols))
	for j, c := range cols {
		widths[j] = runewidth.StringWidth(c.Name)
	}
	for i := range head.Rows {
		row := head.FormatRow(i)
		for j := range row {
			if opts.MaxCellWidth > 0 {
				row[j] = runewidth.Truncate(row[j], opts.MaxCellWidth, "…")
			}
			if cw := runewidth.StringWidth(row[j]); cw > widths[j] {
				widths[j] = cw
			}
		}
		cells[i] = row
	}

	var b strings.Builder
	b.WriteString(border("┌", "┬", "┐", widths))

	b.WriteString("│")
	for j, c := range cols {
		b.WriteString(" ")
		b.WriteString(paint(opts.Color, headerStyle, runewidth.FillRight(c.Name, widths[j])))
		b.WriteString(" │")
	}
	b.WriteString("\n")
	b.WriteString(border("├", "┼", "┤", widths))

	for i, row := range cells {
		b.WriteString("│")
		for j, c := range cols {
			b.WriteString(" ")
			b.WriteString(formatCell(opts.Color, c.Type, head.Rows[i][j], row[j], widths[j]))
			b.WriteString(" │")
		}
		b.WriteString("\n")
	}
	b.WriteString(border("└", "┴", "┘", widths))

	footer := fmt.Sprintf("%s: showing %d of %d rows", t.Name, head.Len(), t.Len())
	b.WriteString(paint(opts.Color, mutedStyle, footer))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func border(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for j, w := range widths {
		parts[j] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right + "\n"
}

// formatCell pads a rendered cell. Numeric columns are right aligned.
func formatCell(useColor bool, ct table.ColumnType, raw any, text string, width int) string {
	switch ct {
	case table.TypeInt, table.TypeFloat, table.TypeDecimal:
		padded := runewidth.FillLeft(text, width)
		if isNegative(raw) {
			return paint(useColor, negativeStyle, padded)
		}
		return padded
	case table.TypeBool:
		padded := runewidth.FillRight(text, width)
		if v, ok := raw.(bool); ok && v {
			return paint(useColor, flagStyle, padded)
		}
		return padded
	default:
		return runewidth.FillRight(text, width)
	}
}

func isNegative(v any) bool {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.IsNegative()
	case float64:
		return x < 0
	case int:
		return x < 0
	case int64:
		return x < 0
	}
	return false
}

func paint(useColor bool, style color.Style, s string) string {
	if !useColor {
		return s
	}
	return style.Sprint(s)
}

// PrintHeader prints a formatted title framed by rules.
func PrintHeader(w io.Writer, format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

// PrintSection prints a section header.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "[%s]\n", title)
	fmt.Fprintln(w, strings.Repeat("-", runewidth.StringWidth(title)+2))
}
