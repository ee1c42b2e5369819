package generator

import (
	"fmt"

	"github.com/dbsmedya/gotreasury/internal/random"
)

// LedgerAccount is one account of a multi-account ledger.
type LedgerAccount struct {
	ID       string
	Currency string
}

// DefaultLedgerCurrencies is the currency mix ledger accounts are drawn from.
var DefaultLedgerCurrencies = []string{"USD", "EUR", "GBP"}

var defaultLedgerWeights = []float64{0.4, 0.3, 0.3}

// MaxLedgerAccounts bounds the account count of one ledger.
const MaxLedgerAccounts = 1000

func validateLedger(accounts int, currencies []string, weights []float64) error {
	if accounts <= 0 {
		return paramErr("accounts", "accounts must be positive, got %d", accounts)
	}
	if accounts > MaxLedgerAccounts {
		return paramErr("accounts", "accounts must not exceed %d, got %d", MaxLedgerAccounts, accounts)
	}
	if len(currencies) == 0 {
		return paramErr("currencies", "at least one account currency is required")
	}
	for _, c := range currencies {
		if c == "" {
			return paramErr("currencies", "currency code is required")
		}
	}
	if weights != nil && len(weights) != len(currencies) {
		return paramErr("currency_weights", "got %d weights for %d currencies", len(weights), len(currencies))
	}
	return nil
}

// ledgerAccounts assigns ACC_000.. their currencies. With nil weights every
// currency is equally likely.
func ledgerAccounts(rng *random.Source, n int, currencies []string, weights []float64) []LedgerAccount {
	accounts := make([]LedgerAccount, n)
	for i := range accounts {
		ccy := currencies[0]
		switch {
		case len(currencies) == 1:
		case weights == nil:
			ccy = random.Choice(rng, currencies)
		default:
			ccy = random.WeightedChoice(rng, currencies, weights)
		}
		accounts[i] = LedgerAccount{ID: fmt.Sprintf("ACC_%03d", i), Currency: ccy}
	}
	return accounts
}
