package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// ReferenceParams configures the static master-data generators.
type ReferenceParams struct {
	Count int
	// AsOf anchors onboarding and account opening dates, which fall before it.
	AsOf time.Time
	Seed int64
}

func (p ReferenceParams) validate() error {
	if err := validateCount(p.Count); err != nil {
		return err
	}
	if p.AsOf.IsZero() {
		return paramErr("as_of", "as_of date is required")
	}
	return nil
}

// DefaultCounterpartyParams returns 200 counterparties as of 2024-01-01.
func DefaultCounterpartyParams() ReferenceParams {
	return ReferenceParams{Count: 200, AsOf: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Seed: 42}
}

// Counterparty is a trading or banking relationship.
type Counterparty struct {
	CounterpartyID         string
	Name                   string
	Country                string
	Sector                 string
	CreditRating           string
	CreditLimit            decimal.Decimal
	LEI                    string
	IsFinancialInstitution bool
	OnboardedDate          time.Time
	Status                 string
}

var (
	counterpartySectors = []string{
		"Banking", "Insurance", "Energy", "Manufacturing", "Retail", "Technology",
		"Healthcare", "Shipping & Logistics", "Commodities Trading", "Utilities", "Government",
	}
	financialSectors = map[string]bool{"Banking": true, "Insurance": true}

	creditRatings      = []string{"AAA", "AA", "A", "BBB", "BB", "B", "CCC"}
	creditRatingWeight = []float64{0.04, 0.10, 0.22, 0.30, 0.17, 0.12, 0.05}
	// ratingLimitBase is the median credit limit in USD per rating.
	ratingLimitBase = map[string]float64{
		"AAA": 50_000_000, "AA": 35_000_000, "A": 20_000_000, "BBB": 10_000_000,
		"BB": 5_000_000, "B": 2_000_000, "CCC": 500_000,
	}

	counterpartyStatuses = []string{"active", "under_review", "suspended"}
	counterpartyStatusW  = []float64{0.85, 0.10, 0.05}

	leiAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// newLEI returns a 20 character Legal Entity Identifier whose last two
// digits satisfy ISO 17442 MOD 97-10.
func newLEI(rng *random.Source) string {
	var b strings.Builder
	for i := 0; i < 18; i++ {
		b.WriteByte(leiAlphabet[rng.IntN(len(leiAlphabet))])
	}
	payload := b.String()
	return fmt.Sprintf("%s%02d", payload, checkDigits(payload))
}

// ValidLEI reports whether lei has a valid MOD 97-10 checksum.
func ValidLEI(lei string) bool {
	return len(lei) == 20 && mod97(lei) == 1
}

// GenerateCounterparties samples Count i.i.d. counterparties.
func GenerateCounterparties(p ReferenceParams) ([]Counterparty, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("counterparties: %w", err)
	}
	rng := random.New(p.Seed)
	faker := gofakeit.New(rng.Int63() | 1)
	asOf := truncateDay(p.AsOf)

	out := make([]Counterparty, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		sector := random.Choice(rng, counterpartySectors)
		rating := random.WeightedChoice(rng, creditRatings, creditRatingWeight)
		limit := decimal.NewFromFloat(ratingLimitBase[rating] * rng.LogNormal(0, 0.35))
		out = append(out, Counterparty{
			CounterpartyID:         fmt.Sprintf("CP-%05d", i+1),
			Name:                   faker.Company(),
			Country:                random.WeightedChoice(rng, paymentCountries, paymentCountryWeights),
			Sector:                 sector,
			CreditRating:           rating,
			CreditLimit:            roundToNearest(limit, 100_000),
			LEI:                    newLEI(rng),
			IsFinancialInstitution: financialSectors[sector],
			OnboardedDate:          asOf.AddDate(0, 0, -rng.IntRange(30, 3650)),
			Status:                 random.WeightedChoice(rng, counterpartyStatuses, counterpartyStatusW),
		})
	}
	return out, nil
}

// CounterpartySchema is the column layout of the counterparties table.
var CounterpartySchema = table.NewSchema(
	table.Column{Name: "counterparty_id", Type: table.TypeString},
	table.Column{Name: "name", Type: table.TypeString},
	table.Column{Name: "country", Type: table.TypeString},
	table.Column{Name: "sector", Type: table.TypeString},
	table.Column{Name: "credit_rating", Type: table.TypeString},
	table.Column{Name: "credit_limit", Type: table.TypeDecimal},
	table.Column{Name: "lei", Type: table.TypeString},
	table.Column{Name: "is_financial_institution", Type: table.TypeBool},
	table.Column{Name: "onboarded_date", Type: table.TypeDate},
	table.Column{Name: "status", Type: table.TypeString},
)

// CounterpartyTable converts counterparties into the counterparties table.
func CounterpartyTable(cps []Counterparty) *table.Table {
	t := table.New("counterparties", CounterpartySchema)
	for _, c := range cps {
		t.MustAppend(c.CounterpartyID, c.Name, c.Country, c.Sector, c.CreditRating, c.CreditLimit,
			c.LEI, c.IsFinancialInstitution, c.OnboardedDate, c.Status)
	}
	return t
}
