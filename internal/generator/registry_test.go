package generator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"cash_flows", "daily_cash_position", "fx_rates", "fx_exposures", "payments",
		"commodity_prices", "counterparties", "bank_accounts", "trade_documents",
	}, Names())
}

func TestLookup(t *testing.T) {
	ds, err := Lookup("commodity_prices")
	require.NoError(t, err)
	assert.Equal(t, []string{"commodity_prices", "crack_spreads"}, ds.Tables)

	_, err = Lookup("bonds")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestDatasets_GenerateDeclaredTables(t *testing.T) {
	opts := Options{
		Seed:  11,
		Start: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Days:  15,
		Count: 20,
	}

	for _, ds := range Datasets() {
		t.Run(ds.Name, func(t *testing.T) {
			tables, err := ds.Generate(opts)
			require.NoError(t, err)
			require.Len(t, tables, len(ds.Tables))
			for i, tbl := range tables {
				assert.Equal(t, ds.Tables[i], tbl.Name)
				assert.Positive(t, tbl.Len())
			}
		})
	}
}

func TestDatasets_OptionsApplied(t *testing.T) {
	rate := 1.0
	ds, err := Lookup("payments")
	require.NoError(t, err)

	tables, err := ds.Generate(Options{Seed: 1, Days: 7, Count: 40, DailyCount: 3, AnomalyRate: &rate})
	require.NoError(t, err)
	require.Positive(t, tables[0].Len())
	assert.Less(t, tables[0].Len(), 40, "count does not size payment runs")
	flags, err := tables[0].Column("is_anomaly")
	require.NoError(t, err)
	for _, f := range flags {
		assert.Equal(t, true, f)
	}

	ds, err = Lookup("fx_rates")
	require.NoError(t, err)
	tables, err = ds.Generate(Options{Seed: 1, Days: 4, Pairs: []string{"USD/JPY"}})
	require.NoError(t, err)
	assert.Equal(t, 4, tables[0].Len())

	_, err = ds.Generate(Options{Pairs: []string{"BAD/PAIR"}})
	assert.ErrorIs(t, err, ErrInvalidParameters)

	tables, err = ds.Generate(Options{Seed: 1, Days: 2, Pairs: []string{"EUR/USD"}, Frequency: "hourly"})
	require.NoError(t, err)
	assert.Equal(t, 48, tables[0].Len())
	assert.Equal(t, "timestamp", tables[0].Schema.Names()[0])

	_, err = ds.Generate(Options{Frequency: "weekly"})
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestDatasets_LedgerOptions(t *testing.T) {
	zero := 0.0
	ds, err := Lookup("daily_cash_position")
	require.NoError(t, err)

	tables, err := ds.Generate(Options{
		Seed: 3, Days: 6, Accounts: 2, Currency: "JPY",
		OpeningBalance: &zero, MinimumBalance: &zero,
	})
	require.NoError(t, err)
	tbl := tables[0]
	require.Equal(t, 12, tbl.Len())

	assert.Equal(t, "ACC_000", cell(t, tbl, 0, "account_id"))
	assert.Equal(t, "ACC_001", cell(t, tbl, 1, "account_id"))
	opening, ok := cell(t, tbl, 0, "opening_balance").(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, opening.IsZero(), "an explicit zero opening balance is kept")

	currencies, err := tbl.Column("currency")
	require.NoError(t, err)
	for _, c := range currencies {
		assert.Equal(t, "JPY", c)
	}

	ds, err = Lookup("cash_flows")
	require.NoError(t, err)
	tables, err = ds.Generate(Options{Seed: 3, Days: 10, Accounts: 3, Currencies: []string{"SEK", "NOK"}})
	require.NoError(t, err)
	accounts, err := tables[0].Column("account_id")
	require.NoError(t, err)
	distinct := map[any]bool{}
	for _, a := range accounts {
		distinct[a] = true
	}
	assert.Len(t, distinct, 3)
	currencies, err = tables[0].Column("currency")
	require.NoError(t, err)
	for _, c := range currencies {
		assert.Contains(t, []string{"SEK", "NOK"}, c)
	}
}

func TestDatasets_SeedChangesOutput(t *testing.T) {
	ds, err := Lookup("counterparties")
	require.NoError(t, err)

	a, err := ds.Generate(Options{Seed: 1, Count: 5})
	require.NoError(t, err)
	b, err := ds.Generate(Options{Seed: 1, Count: 5})
	require.NoError(t, err)
	c, err := ds.Generate(Options{Seed: 2, Count: 5})
	require.NoError(t, err)

	assert.Equal(t, a[0].Rows, b[0].Rows)
	assert.NotEqual(t, a[0].Rows, c[0].Rows)
}
