package preview

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gotreasury/internal/table"
)

func paymentsTable(n int) *table.Table {
	t := table.New("payments", table.NewSchema(
		table.Column{Name: "date", Type: table.TypeDate},
		table.Column{Name: "beneficiary", Type: table.TypeString},
		table.Column{Name: "amount", Type: table.TypeDecimal},
		table.Column{Name: "is_anomaly", Type: table.TypeBool},
	))
	d := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		t.MustAppend(d.AddDate(0, 0, i), "Acme GmbH", decimal.NewFromInt(int64(1500*(i+1))), i%2 == 1)
	}
	return t
}

func TestRender_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, paymentsTable(2), Options{}))

	expected := strings.Join([]string{
		"┌────────────┬─────────────┬─────────┬────────────┐",
		"│ date       │ beneficiary │ amount  │ is_anomaly │",
		"├────────────┼─────────────┼─────────┼────────────┤",
		"│ 2024-05-01 │ Acme GmbH   │ 1500.00 │ false      │",
		"│ 2024-05-02 │ Acme GmbH   │ 3000.00 │ true       │",
		"└────────────┴─────────────┴─────────┴────────────┘",
		"payments: showing 2 of 2 rows",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRender_LimitsRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, paymentsTable(30), Options{Rows: 3}))

	out := buf.String()
	assert.Contains(t, out, "payments: showing 3 of 30 rows")
	assert.Contains(t, out, "2024-05-03")
	assert.NotContains(t, out, "2024-05-04")
}

func TestRender_DefaultRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, paymentsTable(30), Options{}))
	assert.Contains(t, buf.String(), "showing 10 of 30 rows")
}

func TestRender_TruncatesWideCells(t *testing.T) {
	tbl := table.New("counterparties", table.NewSchema(table.Column{Name: "name", Type: table.TypeString}))
	tbl.MustAppend("Global Commodities Trading International Holdings")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tbl, Options{MaxCellWidth: 10}))
	assert.Contains(t, buf.String(), "│ Global Co… │")
}

func TestRender_WideRunes(t *testing.T) {
	tbl := table.New("counterparties", table.NewSchema(table.Column{Name: "name", Type: table.TypeString}))
	tbl.MustAppend("東京銀行")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tbl, Options{}))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "┌──────────┐", lines[0])
	assert.Equal(t, "│ 東京銀行 │", lines[3])
}

func TestRender_ColorKeepsValues(t *testing.T) {
	tbl := table.New("daily_cash_position", table.NewSchema(table.Column{Name: "net_flow", Type: table.TypeDecimal}))
	tbl.MustAppend(decimal.NewFromInt(-250))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tbl, Options{Color: true}))
	assert.Contains(t, buf.String(), "-250.00")
	assert.Contains(t, buf.String(), "net_flow")
}

func TestIsNegative(t *testing.T) {
	assert.True(t, isNegative(decimal.NewFromInt(-1)))
	assert.True(t, isNegative(-0.5))
	assert.True(t, isNegative(-3))
	assert.True(t, isNegative(int64(-3)))
	assert.False(t, isNegative(decimal.Zero))
	assert.False(t, isNegative("-1"))
}

func TestPrintHeaderAndSection(t *testing.T) {
	var buf bytes.Buffer
	PrintHeader(&buf, "Dataset: %s", "fx_rates")
	PrintSection(&buf, "Tables")

	expected := "=====================\n" +
		"  Dataset: fx_rates\n" +
		"=====================\n" +
		"[Tables]\n" +
		"--------\n"
	assert.Equal(t, expected, buf.String())
}
