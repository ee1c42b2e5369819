package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// Anomaly reasons, in the order they are evaluated.
const (
	ReasonNewBeneficiary  = "new_beneficiary"
	ReasonAmountSpike     = "amount_spike"
	ReasonRoundAmount     = "round_amount"
	ReasonHighRiskCountry = "high_risk_country"
	ReasonUnusualHour     = "unusual_hour"
)

// AnomalyReasons lists every reason; the anomaly score denominator is its length.
var AnomalyReasons = []string{
	ReasonNewBeneficiary, ReasonAmountSpike, ReasonRoundAmount, ReasonHighRiskCountry, ReasonUnusualHour,
}

// Anomaly injection tuning.
const (
	reasonProbability        = 0.35
	baselineHighRiskRate     = 0.01
	spikeMin, spikeMax       = 5.0, 20.0
	roundAmountStep    int64 = 10_000
	knownBeneficiaries       = 150
	payerAccounts            = 12
)

var (
	paymentCountries       = []string{"US", "GB", "DE", "FR", "NL", "CH", "JP", "SG", "CA", "AU", "IE", "ES", "IT", "SE"}
	paymentCountryWeights  = []float64{0.30, 0.12, 0.10, 0.07, 0.06, 0.05, 0.05, 0.05, 0.05, 0.04, 0.03, 0.03, 0.03, 0.02}
	highRiskCountries      = []string{"KP", "IR", "MM", "SY", "YE", "AF", "SS", "VE"}
	paymentCurrencies      = []string{"USD", "EUR", "GBP", "JPY", "CHF"}
	paymentCurrencyWeights = []float64{0.55, 0.25, 0.10, 0.05, 0.05}
	paymentMethods         = []string{"WIRE", "ACH", "SEPA", "SWIFT", "RTP"}
	paymentMethodWeights   = []float64{0.30, 0.30, 0.15, 0.15, 0.10}
	unusualHours           = []int{0, 1, 2, 3, 4, 5, 22, 23}
)

// PaymentParams configures GeneratePayments.
type PaymentParams struct {
	Start time.Time
	Days  int
	// DailyCount is the mean number of payments released on a business day.
	DailyCount  float64
	AnomalyRate float64
	Seed        int64
}

// DefaultPaymentParams returns 90 days of about 50 payments per business
// day with a 5% anomaly rate.
func DefaultPaymentParams() PaymentParams {
	return PaymentParams{
		Start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:        90,
		DailyCount:  50,
		AnomalyRate: 0.05,
		Seed:        42,
	}
}

func (p PaymentParams) validate() error {
	if err := validateWindow(p.Start, p.Days); err != nil {
		return err
	}
	if p.DailyCount <= 0 {
		return paramErr("daily_count", "daily_count must be positive, got %g", p.DailyCount)
	}
	if p.AnomalyRate < 0 || p.AnomalyRate > 1 {
		return paramErr("anomaly_rate", "anomaly_rate must be within [0, 1], got %g", p.AnomalyRate)
	}
	return nil
}

// Payment is an outgoing payment labeled with its synthetic anomaly reasons.
type Payment struct {
	PaymentID          string
	Timestamp          time.Time
	PayerAccount       string
	BeneficiaryID      string
	BeneficiaryName    string
	BeneficiaryCountry string
	Amount             decimal.Decimal
	Currency           string
	PaymentMethod      string
	IsNewBeneficiary   bool
	IsAnomaly          bool
	AnomalyScore       float64
	AnomalyReasons     []string
}

type beneficiary struct {
	id, name, country string
}

// paymentDraft is the mutable state anomaly reasons are applied to.
type paymentDraft struct {
	ben     beneficiary
	isNew   bool
	amount  decimal.Decimal
	hour    int
	reasons []string
}

type paymentGenerator struct {
	rng     *random.Source
	faker   *gofakeit.Faker
	newBens int
}

// apply mutates the draft for one anomaly reason and records it.
func (g *paymentGenerator) apply(d *paymentDraft, reason string) {
	switch reason {
	case ReasonNewBeneficiary:
		g.newBens++
		d.ben = beneficiary{
			id:      fmt.Sprintf("BEN-N%05d", g.newBens),
			name:    g.faker.Company(),
			country: d.ben.country,
		}
		d.isNew = true
	case ReasonAmountSpike:
		d.amount = d.amount.Mul(decimal.NewFromFloat(g.rng.Uniform(spikeMin, spikeMax))).Round(2)
	case ReasonRoundAmount:
		d.amount = roundToNearest(d.amount, roundAmountStep)
	case ReasonHighRiskCountry:
		d.ben.country = random.Choice(g.rng, highRiskCountries)
	case ReasonUnusualHour:
		d.hour = random.Choice(g.rng, unusualHours)
	}
	d.reasons = append(d.reasons, reason)
}

// GeneratePayments produces payments for each weekday in [Start, Start+Days),
// sorted by timestamp. The number released on a business day is drawn from
// a Poisson distribution with mean DailyCount; weekends carry none.
//
// A payment is flagged anomalous at AnomalyRate and each flagged payment
// gets one or more independently drawn reasons. A small baseline share of
// unflagged payments is routed to a high-risk country, which flags them as
// well. AnomalyScore is the reason count over five.
func GeneratePayments(p PaymentParams) ([]Payment, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("payments: %w", err)
	}
	rng := random.New(p.Seed)
	g := &paymentGenerator{rng: rng, faker: gofakeit.New(rng.Int63() | 1)}
	start := truncateDay(p.Start)

	pool := make([]beneficiary, knownBeneficiaries)
	for i := range pool {
		pool[i] = beneficiary{
			id:      fmt.Sprintf("BEN-%05d", i+1),
			name:    g.faker.Company(),
			country: random.WeightedChoice(rng, paymentCountries, paymentCountryWeights),
		}
	}

	var payments []Payment
	for d := 0; d < p.Days; d++ {
		day := start.AddDate(0, 0, d)
		if isWeekend(day) {
			continue
		}
		n := rng.Poisson(p.DailyCount)
		for i := 0; i < n; i++ {
			pay, err := g.payment(day, pool, p.AnomalyRate)
			if err != nil {
				return nil, fmt.Errorf("payments: %w", err)
			}
			payments = append(payments, pay)
		}
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Timestamp.Before(payments[j].Timestamp)
	})
	return payments, nil
}

// payment draws one payment released on day.
func (g *paymentGenerator) payment(day time.Time, pool []beneficiary, anomalyRate float64) (Payment, error) {
	rng := g.rng
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return Payment{}, fmt.Errorf("failed to draw payment id: %w", err)
	}
	isAnomaly := rng.Bernoulli(anomalyRate)
	d := &paymentDraft{
		ben:    random.Choice(rng, pool),
		amount: money(rng.LogNormal(8.8, 1.3)),
		hour:   rng.IntRange(8, 18),
	}
	minute, second := rng.IntN(60), rng.IntN(60)

	if isAnomaly {
		for _, reason := range AnomalyReasons {
			if rng.Bernoulli(reasonProbability) {
				g.apply(d, reason)
			}
		}
		if len(d.reasons) == 0 {
			g.apply(d, random.Choice(rng, AnomalyReasons))
		}
	} else if rng.Bernoulli(baselineHighRiskRate) {
		g.apply(d, ReasonHighRiskCountry)
		isAnomaly = true
	}

	if d.amount.IsZero() {
		d.amount = decimal.New(1, -2)
	}

	return Payment{
		PaymentID:          id.String(),
		Timestamp:          day.Add(time.Duration(d.hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second),
		PayerAccount:       fmt.Sprintf("OPS-%03d", rng.IntRange(1, payerAccounts)),
		BeneficiaryID:      d.ben.id,
		BeneficiaryName:    d.ben.name,
		BeneficiaryCountry: d.ben.country,
		Amount:             d.amount,
		Currency:           random.WeightedChoice(rng, paymentCurrencies, paymentCurrencyWeights),
		PaymentMethod:      random.WeightedChoice(rng, paymentMethods, paymentMethodWeights),
		IsNewBeneficiary:   d.isNew,
		IsAnomaly:          isAnomaly,
		AnomalyScore:       float64(len(d.reasons)) / float64(len(AnomalyReasons)),
		AnomalyReasons:     d.reasons,
	}, nil
}

// PaymentSchema is the column layout of the payments table.
var PaymentSchema = table.NewSchema(
	table.Column{Name: "payment_id", Type: table.TypeString},
	table.Column{Name: "timestamp", Type: table.TypeTimestamp},
	table.Column{Name: "payer_account", Type: table.TypeString},
	table.Column{Name: "beneficiary_id", Type: table.TypeString},
	table.Column{Name: "beneficiary_name", Type: table.TypeString},
	table.Column{Name: "beneficiary_country", Type: table.TypeString},
	table.Column{Name: "amount", Type: table.TypeDecimal},
	table.Column{Name: "currency", Type: table.TypeString},
	table.Column{Name: "payment_method", Type: table.TypeString},
	table.Column{Name: "is_new_beneficiary", Type: table.TypeBool},
	table.Column{Name: "is_anomaly", Type: table.TypeBool},
	table.Column{Name: "anomaly_score", Type: table.TypeFloat},
	table.Column{Name: "anomaly_reasons", Type: table.TypeString},
)

// PaymentTable converts payments into the payments table. Reasons are
// joined with semicolons.
func PaymentTable(payments []Payment) *table.Table {
	t := table.New("payments", PaymentSchema)
	for _, p := range payments {
		t.MustAppend(p.PaymentID, p.Timestamp, p.PayerAccount, p.BeneficiaryID, p.BeneficiaryName,
			p.BeneficiaryCountry, p.Amount, p.Currency, p.PaymentMethod, p.IsNewBeneficiary,
			p.IsAnomaly, p.AnomalyScore, strings.Join(p.AnomalyReasons, ";"))
	}
	return t
}
