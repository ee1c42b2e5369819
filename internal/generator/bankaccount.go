package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// DefaultBankAccountParams returns 50 accounts as of 2024-01-01.
func DefaultBankAccountParams() ReferenceParams {
	return ReferenceParams{Count: 50, AsOf: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Seed: 42}
}

// BankAccount is a house bank account in the treasury account structure.
type BankAccount struct {
	AccountID      string
	BankName       string
	BIC            string
	Country        string
	Currency       string
	AccountNumber  string
	AccountType    string
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	OpenedDate     time.Time
	Status         string
}

type bankProfile struct {
	name     string
	bic      string
	country  string
	currency string
	// bban is the national account layout: A is a letter, 9 a digit.
	// Empty means the country does not use IBAN.
	bban string
}

var banks = []bankProfile{
	{name: "JPMorgan Chase", bic: "CHASUS33", country: "US", currency: "USD"},
	{name: "Citibank", bic: "CITIUS33", country: "US", currency: "USD"},
	{name: "Bank of America", bic: "BOFAUS3N", country: "US", currency: "USD"},
	{name: "HSBC", bic: "MIDLGB22", country: "GB", currency: "GBP", bban: "AAAA99999999999999"},
	{name: "Barclays", bic: "BARCGB22", country: "GB", currency: "GBP", bban: "AAAA99999999999999"},
	{name: "Deutsche Bank", bic: "DEUTDEFF", country: "DE", currency: "EUR", bban: "999999999999999999"},
	{name: "BNP Paribas", bic: "BNPAFRPP", country: "FR", currency: "EUR", bban: "99999999999999999999999"},
	{name: "ING", bic: "INGBNL2A", country: "NL", currency: "EUR", bban: "AAAA9999999999"},
	{name: "UBS", bic: "UBSWCHZH", country: "CH", currency: "CHF", bban: "99999999999999999"},
	{name: "Santander", bic: "BSCHESMM", country: "ES", currency: "EUR", bban: "99999999999999999999"},
	{name: "MUFG Bank", bic: "BOTKJPJT", country: "JP", currency: "JPY"},
	{name: "DBS Bank", bic: "DBSSSGSG", country: "SG", currency: "SGD"},
	{name: "Royal Bank of Canada", bic: "ROYCCAT2", country: "CA", currency: "CAD"},
	{name: "Commonwealth Bank", bic: "CTBAAU2S", country: "AU", currency: "AUD"},
}

type accountType struct {
	name      string
	weight    float64
	mu, sigma float64
	overdraft bool
}

var accountTypes = []accountType{
	{name: "operating", weight: 0.35, mu: 14.0, sigma: 0.9, overdraft: true},
	{name: "collection", weight: 0.20, mu: 13.5, sigma: 1.0},
	{name: "payroll", weight: 0.15, mu: 13.0, sigma: 0.5},
	{name: "concentration", weight: 0.10, mu: 15.5, sigma: 0.6},
	{name: "investment", weight: 0.10, mu: 15.0, sigma: 0.8},
	{name: "escrow", weight: 0.05, mu: 13.0, sigma: 1.0},
	{name: "disbursement", weight: 0.05, mu: 12.5, sigma: 0.8, overdraft: true},
}

var (
	overdraftLimits    = []int64{0, 250_000, 500_000, 1_000_000}
	accountStatuses    = []string{"active", "dormant", "closed"}
	accountStatusW     = []float64{0.90, 0.06, 0.04}
	foreignCurrencies  = []string{"USD", "EUR"}
	homeCurrencyWeight = 0.75
)

// accountNumber returns an IBAN for IBAN countries and a 10-12 digit
// domestic account number otherwise.
func accountNumber(rng *random.Source, b bankProfile) string {
	if b.bban == "" {
		n := rng.IntRange(10, 12)
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteByte(byte('0' + rng.IntN(10)))
		}
		return sb.String()
	}
	var sb strings.Builder
	for i, ch := range b.bban {
		if ch == 'A' {
			if i < 4 && len(b.bic) >= 4 {
				sb.WriteByte(b.bic[i])
				continue
			}
			sb.WriteByte(byte('A' + rng.IntN(26)))
		} else {
			sb.WriteByte(byte('0' + rng.IntN(10)))
		}
	}
	bban := sb.String()
	return fmt.Sprintf("%s%02d%s", b.country, checkDigits(bban+b.country), bban)
}

// ValidIBAN reports whether iban passes the MOD 97-10 check.
func ValidIBAN(iban string) bool {
	if len(iban) < 15 {
		return false
	}
	return mod97(iban[4:]+iban[:4]) == 1
}

// GenerateBankAccounts samples Count i.i.d. bank accounts.
func GenerateBankAccounts(p ReferenceParams) ([]BankAccount, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("bank accounts: %w", err)
	}
	rng := random.New(p.Seed)
	asOf := truncateDay(p.AsOf)

	typeWeights := make([]float64, len(accountTypes))
	for i, at := range accountTypes {
		typeWeights[i] = at.weight
	}

	out := make([]BankAccount, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		bank := random.Choice(rng, banks)
		at := accountTypes[rng.WeightedIndex(typeWeights)]
		currency := bank.currency
		if !rng.Bernoulli(homeCurrencyWeight) {
			currency = random.Choice(rng, foreignCurrencies)
		}
		overdraft := decimal.Zero
		if at.overdraft {
			overdraft = decimal.NewFromInt(random.Choice(rng, overdraftLimits))
		}
		out = append(out, BankAccount{
			AccountID:      fmt.Sprintf("BA-%04d", i+1),
			BankName:       bank.name,
			BIC:            bank.bic,
			Country:        bank.country,
			Currency:       currency,
			AccountNumber:  accountNumber(rng, bank),
			AccountType:    at.name,
			Balance:        money(rng.LogNormal(at.mu, at.sigma)),
			OverdraftLimit: overdraft,
			OpenedDate:     asOf.AddDate(0, 0, -rng.IntRange(90, 7300)),
			Status:         random.WeightedChoice(rng, accountStatuses, accountStatusW),
		})
	}
	return out, nil
}

// BankAccountSchema is the column layout of the bank_accounts table.
var BankAccountSchema = table.NewSchema(
	table.Column{Name: "account_id", Type: table.TypeString},
	table.Column{Name: "bank_name", Type: table.TypeString},
	table.Column{Name: "bic", Type: table.TypeString},
	table.Column{Name: "country", Type: table.TypeString},
	table.Column{Name: "currency", Type: table.TypeString},
	table.Column{Name: "account_number", Type: table.TypeString},
	table.Column{Name: "account_type", Type: table.TypeString},
	table.Column{Name: "balance", Type: table.TypeDecimal},
	table.Column{Name: "overdraft_limit", Type: table.TypeDecimal},
	table.Column{Name: "opened_date", Type: table.TypeDate},
	table.Column{Name: "status", Type: table.TypeString},
)

// BankAccountTable converts accounts into the bank_accounts table.
func BankAccountTable(accounts []BankAccount) *table.Table {
	t := table.New("bank_accounts", BankAccountSchema)
	for _, a := range accounts {
		t.MustAppend(a.AccountID, a.BankName, a.BIC, a.Country, a.Currency, a.AccountNumber,
			a.AccountType, a.Balance, a.OverdraftLimit, a.OpenedDate, a.Status)
	}
	return t
}
