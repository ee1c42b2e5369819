package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// FXExposureParams configures GenerateFXExposures.
type FXExposureParams struct {
	AsOf        time.Time
	Count       int
	Currencies  []string
	Entities    []string
	HorizonDays int
	Seed        int64
}

// DefaultFXExposureParams returns 500 exposures over a one-year horizon.
func DefaultFXExposureParams() FXExposureParams {
	return FXExposureParams{
		AsOf:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:       500,
		Currencies:  []string{"EUR", "GBP", "JPY", "CHF", "AUD", "CAD", "CNY", "MXN", "BRL", "INR"},
		Entities:    intercompanyEntities,
		HorizonDays: 365,
		Seed:        42,
	}
}

func (p FXExposureParams) validate() error {
	if p.AsOf.IsZero() {
		return paramErr("as_of", "as_of date is required")
	}
	if err := validateCount(p.Count); err != nil {
		return err
	}
	if len(p.Currencies) == 0 {
		return paramErr("currencies", "at least one currency is required")
	}
	if len(p.Entities) == 0 {
		return paramErr("entities", "at least one entity is required")
	}
	if p.HorizonDays <= 0 || p.HorizonDays > MaxDays {
		return paramErr("horizon_days", "horizon_days must be between 1 and %d, got %d", MaxDays, p.HorizonDays)
	}
	return nil
}

// FXExposure is an open foreign-currency position awaiting settlement.
type FXExposure struct {
	ExposureID      string
	Entity          string
	Currency        string
	ExposureType    string
	Direction       string
	Amount          decimal.Decimal
	MaturityDate    time.Time
	HedgeRatio      float64
	HedgedAmount    decimal.Decimal
	UnhedgedAmount  decimal.Decimal
	HedgeInstrument string
}

type exposureType struct {
	name      string
	direction string
	weight    float64
	mu, sigma float64
}

var exposureTypes = []exposureType{
	{name: "receivable", direction: "long", weight: 0.25, mu: 12.5, sigma: 1.0},
	{name: "payable", direction: "short", weight: 0.25, mu: 12.3, sigma: 1.0},
	{name: "forecast_revenue", direction: "long", weight: 0.15, mu: 13.5, sigma: 0.9},
	{name: "forecast_cost", direction: "short", weight: 0.15, mu: 13.3, sigma: 0.9},
	{name: "intercompany", weight: 0.12, mu: 14.0, sigma: 0.8},
	{name: "debt", direction: "short", weight: 0.08, mu: 15.5, sigma: 0.6},
}

var (
	hedgeRatios       = []float64{0, 0.25, 0.5, 0.75, 1}
	hedgeRatioWeights = []float64{0.2, 0.2, 0.25, 0.2, 0.15}
	hedgeInstruments  = []string{"forward", "option", "cross_currency_swap"}
	hedgeInstrWeights = []float64{0.7, 0.2, 0.1}
)

// GenerateFXExposures samples Count independent exposures maturing within
// (AsOf, AsOf+HorizonDays].
func GenerateFXExposures(p FXExposureParams) ([]FXExposure, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("fx exposures: %w", err)
	}
	rng := random.New(p.Seed)
	asOf := truncateDay(p.AsOf)

	typeWeights := make([]float64, len(exposureTypes))
	for i, et := range exposureTypes {
		typeWeights[i] = et.weight
	}

	exposures := make([]FXExposure, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		et := exposureTypes[rng.WeightedIndex(typeWeights)]
		direction := et.direction
		if direction == "" {
			direction = random.Choice(rng, []string{"long", "short"})
		}
		amount := money(rng.LogNormal(et.mu, et.sigma))
		ratio := random.WeightedChoice(rng, hedgeRatios, hedgeRatioWeights)
		hedged := amount.Mul(decimal.NewFromFloat(ratio)).Round(2)
		instrument := ""
		if ratio > 0 {
			instrument = random.WeightedChoice(rng, hedgeInstruments, hedgeInstrWeights)
		}

		exposures = append(exposures, FXExposure{
			ExposureID:      fmt.Sprintf("EXP-%05d", i+1),
			Entity:          random.Choice(rng, p.Entities),
			Currency:        random.Choice(rng, p.Currencies),
			ExposureType:    et.name,
			Direction:       direction,
			Amount:          amount,
			MaturityDate:    asOf.AddDate(0, 0, rng.IntRange(1, p.HorizonDays)),
			HedgeRatio:      ratio,
			HedgedAmount:    hedged,
			UnhedgedAmount:  amount.Sub(hedged),
			HedgeInstrument: instrument,
		})
	}
	return exposures, nil
}

// FXExposureSchema is the column layout of the fx_exposures table.
var FXExposureSchema = table.NewSchema(
	table.Column{Name: "exposure_id", Type: table.TypeString},
	table.Column{Name: "entity", Type: table.TypeString},
	table.Column{Name: "currency", Type: table.TypeString},
	table.Column{Name: "exposure_type", Type: table.TypeString},
	table.Column{Name: "direction", Type: table.TypeString},
	table.Column{Name: "amount", Type: table.TypeDecimal},
	table.Column{Name: "maturity_date", Type: table.TypeDate},
	table.Column{Name: "hedge_ratio", Type: table.TypeFloat},
	table.Column{Name: "hedged_amount", Type: table.TypeDecimal},
	table.Column{Name: "unhedged_amount", Type: table.TypeDecimal},
	table.Column{Name: "hedge_instrument", Type: table.TypeString},
)

// FXExposureTable converts exposures into the fx_exposures table.
func FXExposureTable(exposures []FXExposure) *table.Table {
	t := table.New("fx_exposures", FXExposureSchema)
	for _, e := range exposures {
		t.MustAppend(e.ExposureID, e.Entity, e.Currency, e.ExposureType, e.Direction, e.Amount,
			e.MaturityDate, e.HedgeRatio, e.HedgedAmount, e.UnhedgedAmount, e.HedgeInstrument)
	}
	return t
}
