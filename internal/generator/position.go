package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// CashPositionParams configures GenerateDailyCashPosition. OpeningBalance
// and MinimumBalance apply to every account.
type CashPositionParams struct {
	Start           time.Time
	Days            int
	Accounts        int
	Currencies      []string
	CurrencyWeights []float64
	OpeningBalance  decimal.Decimal
	MinimumBalance  decimal.Decimal
	Seed            int64
}

// DefaultCashPositionParams returns five accounts opening at 10m over one year.
func DefaultCashPositionParams() CashPositionParams {
	return CashPositionParams{
		Start:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:            365,
		Accounts:        5,
		Currencies:      DefaultLedgerCurrencies,
		CurrencyWeights: defaultLedgerWeights,
		OpeningBalance:  decimal.NewFromInt(10_000_000),
		MinimumBalance:  decimal.NewFromInt(2_000_000),
		Seed:            42,
	}
}

func (p CashPositionParams) validate() error {
	if err := validateWindow(p.Start, p.Days); err != nil {
		return err
	}
	if err := validateLedger(p.Accounts, p.Currencies, p.CurrencyWeights); err != nil {
		return err
	}
	if p.MinimumBalance.IsNegative() {
		return paramErr("minimum_balance", "minimum_balance cannot be negative")
	}
	return nil
}

// CashPosition is one account-day of an aggregated balance ledger.
type CashPosition struct {
	Date             time.Time
	AccountID        string
	Currency         string
	OpeningBalance   decimal.Decimal
	Inflows          decimal.Decimal
	Outflows         decimal.Decimal
	NetFlow          decimal.Decimal
	ClosingBalance   decimal.Decimal
	TransactionCount int
	BelowMinimum     bool
}

// Daily flow profile: log-normal parameters for weekday totals and the
// extra payroll outflow on the last business day of each month.
const (
	positionInflowMu    = 13.0
	positionInflowSigma = 0.35
	positionOutMu       = 12.95
	positionOutSigma    = 0.38
	positionPayrollMu   = 14.2
	positionPayrollSig  = 0.1
	positionTxnRate     = 40
)

// GenerateDailyCashPosition produces exactly Days rows per account, one per
// calendar day, ordered by date and then account. Each closing balance is
// the opening balance plus inflows minus outflows, and becomes the same
// account's next opening balance.
func GenerateDailyCashPosition(p CashPositionParams) ([]CashPosition, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("daily cash position: %w", err)
	}
	rng := random.New(p.Seed)
	start := truncateDay(p.Start)
	accounts := ledgerAccounts(rng, p.Accounts, p.Currencies, p.CurrencyWeights)

	balances := make([]decimal.Decimal, len(accounts))
	for i := range balances {
		balances[i] = p.OpeningBalance.Round(2)
	}

	positions := make([]CashPosition, 0, p.Days*len(accounts))
	for d := 0; d < p.Days; d++ {
		day := start.AddDate(0, 0, d)
		for i, acc := range accounts {
			inflows, outflows := decimal.Zero, decimal.Zero
			txns := 0

			if !isWeekend(day) {
				mult := activityMultiplier(day)
				inflows = money(rng.LogNormal(positionInflowMu, positionInflowSigma) * mult)
				outflows = money(rng.LogNormal(positionOutMu, positionOutSigma) * mult)
				if isLastBusinessDay(day) {
					outflows = outflows.Add(money(rng.LogNormal(positionPayrollMu, positionPayrollSig)))
				}
				txns = rng.Poisson(positionTxnRate * mult)
			}

			net := inflows.Sub(outflows)
			closing := balances[i].Add(net)
			positions = append(positions, CashPosition{
				Date:             day,
				AccountID:        acc.ID,
				Currency:         acc.Currency,
				OpeningBalance:   balances[i],
				Inflows:          inflows,
				Outflows:         outflows,
				NetFlow:          net,
				ClosingBalance:   closing,
				TransactionCount: txns,
				BelowMinimum:     closing.LessThan(p.MinimumBalance),
			})
			balances[i] = closing
		}
	}
	return positions, nil
}

// CashPositionSchema is the column layout of the daily_cash_position table.
var CashPositionSchema = table.NewSchema(
	table.Column{Name: "date", Type: table.TypeDate},
	table.Column{Name: "account_id", Type: table.TypeString},
	table.Column{Name: "currency", Type: table.TypeString},
	table.Column{Name: "opening_balance", Type: table.TypeDecimal},
	table.Column{Name: "inflows", Type: table.TypeDecimal},
	table.Column{Name: "outflows", Type: table.TypeDecimal},
	table.Column{Name: "net_flow", Type: table.TypeDecimal},
	table.Column{Name: "closing_balance", Type: table.TypeDecimal},
	table.Column{Name: "transaction_count", Type: table.TypeInt},
	table.Column{Name: "minimum_balance_breach", Type: table.TypeBool},
)

// CashPositionTable converts positions into the daily_cash_position table.
func CashPositionTable(positions []CashPosition) *table.Table {
	t := table.New("daily_cash_position", CashPositionSchema)
	for _, p := range positions {
		t.MustAppend(p.Date, p.AccountID, p.Currency, p.OpeningBalance, p.Inflows, p.Outflows,
			p.NetFlow, p.ClosingBalance, p.TransactionCount, p.BelowMinimum)
	}
	return t
}
