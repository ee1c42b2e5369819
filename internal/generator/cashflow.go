package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// Flow directions.
const (
	DirectionInflow  = "inflow"
	DirectionOutflow = "outflow"
)

// CashFlowParams configures GenerateCashFlows.
type CashFlowParams struct {
	Start time.Time
	Days  int
	// Accounts is the number of ledger accounts; each gets one currency
	// drawn from Currencies, weighted by CurrencyWeights when set.
	Accounts        int
	Currencies      []string
	CurrencyWeights []float64
	// VolumeScale multiplies every unscheduled category's daily event rate.
	VolumeScale float64
	Seed        int64
}

// DefaultCashFlowParams returns one year of flows on five accounts starting
// 2024-01-01.
func DefaultCashFlowParams() CashFlowParams {
	return CashFlowParams{
		Start:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:            365,
		Accounts:        5,
		Currencies:      DefaultLedgerCurrencies,
		CurrencyWeights: defaultLedgerWeights,
		VolumeScale:     1,
		Seed:            42,
	}
}

func (p CashFlowParams) validate() error {
	if err := validateWindow(p.Start, p.Days); err != nil {
		return err
	}
	if err := validateLedger(p.Accounts, p.Currencies, p.CurrencyWeights); err != nil {
		return err
	}
	if p.VolumeScale <= 0 {
		return paramErr("volume_scale", "volume_scale must be positive, got %g", p.VolumeScale)
	}
	return nil
}

// CashFlow is a single ledger transaction.
type CashFlow struct {
	TransactionID string
	Date          time.Time
	AccountID     string
	Category      string
	Direction     string
	Amount        decimal.Decimal
	SignedAmount  decimal.Decimal
	Currency      string
	Counterparty  string
	Description   string
}

// cashFlowCategory is the frequency and magnitude profile of one category.
// A category with a schedule emits exactly one event on matching days and
// ignores lambda and the calendar multiplier.
type cashFlowCategory struct {
	name        string
	direction   string // empty means either direction, drawn per event
	lambda      float64
	mu, sigma   float64
	schedule    func(time.Time) bool
	parties     func(*random.Source) string
	description string
}

var intercompanyEntities = []string{
	"Treasury Holdings Inc", "EU Operations BV", "UK Trading Ltd", "APAC Services Pte Ltd", "LatAm Distribution SA",
}

var bankNames = []string{
	"JPMorgan Chase", "Citibank", "Bank of America", "HSBC", "Barclays", "Deutsche Bank", "BNP Paribas", "ING",
}

func numbered(prefix string, max int) func(*random.Source) string {
	return func(s *random.Source) string {
		return fmt.Sprintf("%s-%04d", prefix, s.IntRange(1, max))
	}
}

func fixedParty(name string) func(*random.Source) string {
	return func(*random.Source) string { return name }
}

func pooledParty(pool []string) func(*random.Source) string {
	return func(s *random.Source) string { return random.Choice(s, pool) }
}

var cashFlowCategories = []cashFlowCategory{
	{name: "Customer Receipts", direction: DirectionInflow, lambda: 6, mu: 9.6, sigma: 1.0,
		parties: numbered("CUST", 500), description: "Customer invoice settlement"},
	{name: "Supplier Payments", direction: DirectionOutflow, lambda: 5, mu: 9.2, sigma: 1.1,
		parties: numbered("SUPP", 300), description: "Supplier invoice payment"},
	{name: "Intercompany Transfers", lambda: 0.8, mu: 11.5, sigma: 0.8,
		parties: pooledParty(intercompanyEntities), description: "Intercompany funding transfer"},
	{name: "Tax Payments", direction: DirectionOutflow, mu: 11.0, sigma: 0.5,
		schedule: func(d time.Time) bool { return isFirstBusinessDayFrom(d, 15) },
		parties:  fixedParty("Tax Authority"), description: "Monthly tax remittance"},
	{name: "Payroll", direction: DirectionOutflow, mu: 12.3, sigma: 0.2,
		schedule: isLastBusinessDay,
		parties:  fixedParty("Payroll Provider"), description: "Monthly payroll run"},
	{name: "Interest Income", direction: DirectionInflow, lambda: 0.2, mu: 8.0, sigma: 0.6,
		parties: pooledParty(bankNames), description: "Deposit interest credit"},
	{name: "Bank Fees", direction: DirectionOutflow, lambda: 1.0, mu: 5.0, sigma: 0.7,
		parties: pooledParty(bankNames), description: "Account maintenance fee"},
	{name: "Investment Income", direction: DirectionInflow, lambda: 0.3, mu: 10.0, sigma: 0.9,
		parties: fixedParty("Money Market Fund"), description: "Fund distribution"},
	{name: "Loan Repayments", direction: DirectionOutflow, lambda: 0.1, mu: 12.0, sigma: 0.4,
		parties: pooledParty(bankNames), description: "Term loan installment"},
}

// CashFlowCategories lists the category names in generation order.
func CashFlowCategories() []string {
	names := make([]string, len(cashFlowCategories))
	for i, c := range cashFlowCategories {
		names[i] = c.name
	}
	return names
}

// GenerateCashFlows produces ledger transactions for each weekday in
// [Start, Start+Days) on every account, in the account's currency. Weekends
// carry no activity; month-end and quarter-end days raise every unscheduled
// category's Poisson rate. Rows are ordered by date, then account.
func GenerateCashFlows(p CashFlowParams) ([]CashFlow, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("cash flows: %w", err)
	}
	rng := random.New(p.Seed)
	start := truncateDay(p.Start)
	accounts := ledgerAccounts(rng, p.Accounts, p.Currencies, p.CurrencyWeights)

	var flows []CashFlow
	for i := 0; i < p.Days; i++ {
		day := start.AddDate(0, 0, i)
		if isWeekend(day) {
			continue
		}
		mult := activityMultiplier(day)

		for _, acc := range accounts {
			for _, cat := range cashFlowCategories {
				var count int
				if cat.schedule != nil {
					if cat.schedule(day) {
						count = 1
					}
				} else {
					count = rng.Poisson(cat.lambda * mult * p.VolumeScale)
				}

				for n := 0; n < count; n++ {
					flows = append(flows, cat.draw(rng, fmt.Sprintf("CF-%06d", len(flows)+1), day, acc))
				}
			}
		}
	}
	return flows, nil
}

// draw produces one transaction of the category.
func (cat cashFlowCategory) draw(rng *random.Source, id string, day time.Time, acc LedgerAccount) CashFlow {
	direction := cat.direction
	if direction == "" {
		direction = DirectionOutflow
		if rng.Bernoulli(0.5) {
			direction = DirectionInflow
		}
	}
	amount := money(rng.LogNormal(cat.mu, cat.sigma))
	if amount.IsZero() {
		amount = decimal.New(1, -2)
	}
	signed := amount
	if direction == DirectionOutflow {
		signed = amount.Neg()
	}
	return CashFlow{
		TransactionID: id,
		Date:          day,
		AccountID:     acc.ID,
		Category:      cat.name,
		Direction:     direction,
		Amount:        amount,
		SignedAmount:  signed,
		Currency:      acc.Currency,
		Counterparty:  cat.parties(rng),
		Description:   cat.description,
	}
}

// CashFlowSchema is the column layout of the cash_flows table.
var CashFlowSchema = table.NewSchema(
	table.Column{Name: "transaction_id", Type: table.TypeString},
	table.Column{Name: "date", Type: table.TypeDate},
	table.Column{Name: "account_id", Type: table.TypeString},
	table.Column{Name: "category", Type: table.TypeString},
	table.Column{Name: "direction", Type: table.TypeString},
	table.Column{Name: "amount", Type: table.TypeDecimal},
	table.Column{Name: "signed_amount", Type: table.TypeDecimal},
	table.Column{Name: "currency", Type: table.TypeString},
	table.Column{Name: "counterparty", Type: table.TypeString},
	table.Column{Name: "description", Type: table.TypeString},
)

// CashFlowTable converts flows into the cash_flows table.
func CashFlowTable(flows []CashFlow) *table.Table {
	t := table.New("cash_flows", CashFlowSchema)
	for _, f := range flows {
		t.MustAppend(f.TransactionID, f.Date, f.AccountID, f.Category, f.Direction, f.Amount,
			f.SignedAmount, f.Currency, f.Counterparty, f.Description)
	}
	return t
}
