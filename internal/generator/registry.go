package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/table"
)

// ErrUnknownDataset is returned by Lookup for names not in the registry.
var ErrUnknownDataset = errors.New("unknown dataset")

// Options carries caller overrides applied on top of a dataset's defaults.
// Zero values keep the default, except Seed which is always applied. The
// pointer fields distinguish an explicit zero from an unset value.
type Options struct {
	Seed     int64
	Start    time.Time
	Days     int
	Count    int
	Accounts int
	// Currency pins every ledger account to one currency.
	Currency       string
	OpeningBalance *float64
	MinimumBalance *float64
	DailyCount     float64
	AnomalyRate    *float64
	Frequency      string
	Pairs          []string
	Commodities    []string
	Currencies     []string
}

// Dataset is a named generator producing one or more tables.
type Dataset struct {
	Name        string
	Description string
	Tables      []string
	Generate    func(Options) ([]*table.Table, error)
}

func applyWindow(start *time.Time, days *int, o Options) {
	if !o.Start.IsZero() {
		*start = o.Start
	}
	if o.Days > 0 {
		*days = o.Days
	}
}

func applyCount(count *int, o Options) {
	if o.Count > 0 {
		*count = o.Count
	}
}

// applyLedger overrides the account count and currency mix. Currency wins
// over Currencies; either replaces the default weights with a uniform draw.
func applyLedger(accounts *int, currencies *[]string, weights *[]float64, o Options) {
	if o.Accounts > 0 {
		*accounts = o.Accounts
	}
	switch {
	case o.Currency != "":
		*currencies, *weights = []string{o.Currency}, nil
	case len(o.Currencies) > 0:
		*currencies, *weights = o.Currencies, nil
	}
}

var registry = []Dataset{
	{
		Name:        "cash_flows",
		Description: "Multi-account ledger transactions with weekday, month-end and quarter-end rules",
		Tables:      []string{"cash_flows"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultCashFlowParams()
			p.Seed = o.Seed
			applyWindow(&p.Start, &p.Days, o)
			applyLedger(&p.Accounts, &p.Currencies, &p.CurrencyWeights, o)
			flows, err := GenerateCashFlows(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{CashFlowTable(flows)}, nil
		},
	},
	{
		Name:        "daily_cash_position",
		Description: "Daily opening, flows and closing balance per ledger account",
		Tables:      []string{"daily_cash_position"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultCashPositionParams()
			p.Seed = o.Seed
			applyWindow(&p.Start, &p.Days, o)
			applyLedger(&p.Accounts, &p.Currencies, &p.CurrencyWeights, o)
			if o.OpeningBalance != nil {
				p.OpeningBalance = decimal.NewFromFloat(*o.OpeningBalance)
			}
			if o.MinimumBalance != nil {
				p.MinimumBalance = decimal.NewFromFloat(*o.MinimumBalance)
			}
			positions, err := GenerateDailyCashPosition(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{CashPositionTable(positions)}, nil
		},
	},
	{
		Name:        "fx_rates",
		Description: "Mean-reverting daily or hourly FX random walks with volatility clustering",
		Tables:      []string{"fx_rates"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultFXRateParams()
			p.Seed = o.Seed
			applyWindow(&p.Start, &p.Days, o)
			if len(o.Pairs) > 0 {
				pairs, err := LookupFXPairs(o.Pairs)
				if err != nil {
					return nil, fmt.Errorf("fx rates: %w", err)
				}
				p.Pairs = pairs
			}
			freq, err := ParseFrequency(o.Frequency)
			if err != nil {
				return nil, fmt.Errorf("fx rates: %w", err)
			}
			p.Frequency = freq
			rates, err := GenerateFXRates(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{FXRateTable(freq, rates)}, nil
		},
	},
	{
		Name:        "fx_exposures",
		Description: "Open foreign-currency exposures with hedge ratios",
		Tables:      []string{"fx_exposures"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultFXExposureParams()
			p.Seed = o.Seed
			if !o.Start.IsZero() {
				p.AsOf = o.Start
			}
			if o.Days > 0 {
				p.HorizonDays = o.Days
			}
			applyCount(&p.Count, o)
			if len(o.Currencies) > 0 {
				p.Currencies = o.Currencies
			}
			exposures, err := GenerateFXExposures(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{FXExposureTable(exposures)}, nil
		},
	},
	{
		Name:        "payments",
		Description: "Business-day payment runs with labeled synthetic anomalies",
		Tables:      []string{"payments"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultPaymentParams()
			p.Seed = o.Seed
			applyWindow(&p.Start, &p.Days, o)
			if o.DailyCount > 0 {
				p.DailyCount = o.DailyCount
			}
			if o.AnomalyRate != nil {
				p.AnomalyRate = *o.AnomalyRate
			}
			payments, err := GeneratePayments(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{PaymentTable(payments)}, nil
		},
	},
	{
		Name:        "commodity_prices",
		Description: "Correlated seasonal commodity bars and derived crack spreads",
		Tables:      []string{"commodity_prices", "crack_spreads"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultCommodityParams()
			p.Seed = o.Seed
			applyWindow(&p.Start, &p.Days, o)
			if len(o.Commodities) > 0 {
				cs, err := LookupCommodities(o.Commodities)
				if err != nil {
					return nil, fmt.Errorf("commodity prices: %w", err)
				}
				p.Commodities = cs
			}
			prices, spreads, err := GenerateCommodityPrices(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{
				CommodityPriceTable(prices),
				CrackSpreadTable(p.Commodities, spreads),
			}, nil
		},
	},
	{
		Name:        "counterparties",
		Description: "Counterparty master data with ratings, limits and LEIs",
		Tables:      []string{"counterparties"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultCounterpartyParams()
			p.Seed = o.Seed
			applyCount(&p.Count, o)
			if !o.Start.IsZero() {
				p.AsOf = o.Start
			}
			cps, err := GenerateCounterparties(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{CounterpartyTable(cps)}, nil
		},
	},
	{
		Name:        "bank_accounts",
		Description: "House bank accounts with IBANs, balances and overdraft limits",
		Tables:      []string{"bank_accounts"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultBankAccountParams()
			p.Seed = o.Seed
			applyCount(&p.Count, o)
			if !o.Start.IsZero() {
				p.AsOf = o.Start
			}
			accounts, err := GenerateBankAccounts(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{BankAccountTable(accounts)}, nil
		},
	},
	{
		Name:        "trade_documents",
		Description: "Trade finance documents with incoterms, ports and expiry dates",
		Tables:      []string{"trade_documents"},
		Generate: func(o Options) ([]*table.Table, error) {
			p := DefaultTradeDocumentParams()
			p.Seed = o.Seed
			applyWindow(&p.Start, &p.Days, o)
			applyCount(&p.Count, o)
			docs, err := GenerateTradeDocuments(p)
			if err != nil {
				return nil, err
			}
			return []*table.Table{TradeDocumentTable(docs)}, nil
		},
	},
}

// Datasets returns every registered dataset in a stable order.
func Datasets() []Dataset {
	out := make([]Dataset, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered dataset names in order.
func Names() []string {
	names := make([]string, len(registry))
	for i, d := range registry {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the dataset with the given name.
func Lookup(name string) (Dataset, error) {
	for _, d := range registry {
		if d.Name == name {
			return d, nil
		}
	}
	return Dataset{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}
