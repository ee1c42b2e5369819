package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// FX random-walk tuning.
const (
	fxReversionThreshold = 0.10
	fxReversionPull      = 0.01
)

// Frequency is the observation interval of an FX series.
type Frequency string

// Supported frequencies. The zero value means daily.
const (
	FrequencyDaily  Frequency = "daily"
	FrequencyHourly Frequency = "hourly"
)

// ParseFrequency validates a frequency name. An empty name is daily.
func ParseFrequency(name string) (Frequency, error) {
	switch Frequency(name) {
	case "", FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyHourly:
		return FrequencyHourly, nil
	default:
		return "", paramErr("frequency", "unknown frequency %q (expected daily or hourly)", name)
	}
}

// periods returns the observation count and spacing for a window of days.
func (f Frequency) periods(days int) (int, func(time.Time, int) time.Time) {
	if f == FrequencyHourly {
		return days * 24, func(start time.Time, i int) time.Time { return start.Add(time.Duration(i) * time.Hour) }
	}
	return days, func(start time.Time, i int) time.Time { return start.AddDate(0, 0, i) }
}

// volScale converts a daily volatility to the per-period volatility.
func (f Frequency) volScale() float64 {
	if f == FrequencyHourly {
		return 1 / math.Sqrt(24)
	}
	return 1
}

// FXPair is a currency pair with its starting rate and daily volatility.
type FXPair struct {
	Pair       string
	Base       float64
	Volatility float64
}

// precision returns the quoting precision: three places for large-figure
// pairs such as USD/JPY, five otherwise.
func (p FXPair) precision() int32 {
	if p.Base >= 20 {
		return 3
	}
	return 5
}

// DefaultFXPairs are the majors plus USD/CNY.
var DefaultFXPairs = []FXPair{
	{Pair: "EUR/USD", Base: 1.0850, Volatility: 0.0045},
	{Pair: "GBP/USD", Base: 1.2700, Volatility: 0.0050},
	{Pair: "USD/JPY", Base: 149.50, Volatility: 0.0055},
	{Pair: "USD/CHF", Base: 0.8800, Volatility: 0.0048},
	{Pair: "AUD/USD", Base: 0.6600, Volatility: 0.0065},
	{Pair: "USD/CAD", Base: 1.3600, Volatility: 0.0042},
	{Pair: "USD/CNY", Base: 7.2400, Volatility: 0.0020},
}

// LookupFXPairs resolves pair names against DefaultFXPairs.
func LookupFXPairs(names []string) ([]FXPair, error) {
	pairs := make([]FXPair, 0, len(names))
	for _, name := range names {
		found := false
		for _, p := range DefaultFXPairs {
			if p.Pair == name {
				pairs = append(pairs, p)
				found = true
				break
			}
		}
		if !found {
			return nil, paramErr("pairs", "unknown currency pair %q", name)
		}
	}
	return pairs, nil
}

// FXRateParams configures GenerateFXRates.
type FXRateParams struct {
	Start     time.Time
	Days      int
	Pairs     []FXPair
	SpreadBps float64
	// Frequency selects daily fixings or hourly ticks; empty means daily.
	Frequency Frequency
	Seed      int64
}

// DefaultFXRateParams returns one year of daily fixings for DefaultFXPairs.
func DefaultFXRateParams() FXRateParams {
	return FXRateParams{
		Start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:      365,
		Pairs:     DefaultFXPairs,
		SpreadBps: 2,
		Seed:      42,
	}
}

func (p FXRateParams) validate() error {
	if err := validateWindow(p.Start, p.Days); err != nil {
		return err
	}
	if len(p.Pairs) == 0 {
		return paramErr("pairs", "at least one currency pair is required")
	}
	seen := make(map[string]bool, len(p.Pairs))
	for _, pair := range p.Pairs {
		if pair.Pair == "" {
			return paramErr("pairs", "pair name is required")
		}
		if seen[pair.Pair] {
			return paramErr("pairs", "duplicate pair %q", pair.Pair)
		}
		seen[pair.Pair] = true
		if pair.Base <= 0 {
			return paramErr("pairs", "base rate for %s must be positive", pair.Pair)
		}
		if pair.Volatility < 0 {
			return paramErr("pairs", "volatility for %s cannot be negative", pair.Pair)
		}
	}
	if p.SpreadBps < 0 {
		return paramErr("spread_bps", "spread_bps cannot be negative")
	}
	if _, err := ParseFrequency(string(p.Frequency)); err != nil {
		return err
	}
	return nil
}

// FXRate is one observation of a currency pair. Date is the fixing day for
// daily series and the tick hour for hourly ones; DailyReturn is the return
// over one period.
type FXRate struct {
	Date          time.Time
	Pair          string
	Rate          float64
	Bid           float64
	Ask           float64
	DailyReturn   float64
	VolMultiplier float64
}

// GenerateFXRates walks every pair over exactly Days calendar days: one row
// per day, or 24 per day for hourly series with volatility scaled by
// 1/sqrt(24). Rows are ordered by time, then by pair in the order given.
func GenerateFXRates(p FXRateParams) ([]FXRate, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("fx rates: %w", err)
	}
	rng := random.New(p.Seed)
	start := truncateDay(p.Start)
	halfSpread := p.SpreadBps / 10000 / 2
	freq, _ := ParseFrequency(string(p.Frequency))
	periods, at := freq.periods(p.Days)
	scale := freq.volScale()

	walks := make([]*walk, len(p.Pairs))
	prev := make([]float64, len(p.Pairs))
	for i, pair := range p.Pairs {
		walks[i] = newWalk(pair.Base, fxReversionThreshold, fxReversionPull)
		prev[i] = pair.Base
	}

	rates := make([]FXRate, 0, periods*len(p.Pairs))
	for d := 0; d < periods; d++ {
		day := at(start, d)
		for i, pair := range p.Pairs {
			mult := walks[i].step(pair.Volatility*scale, rng.Normal(0, 1))
			prec := pair.precision()
			rate := roundTo(walks[i].price, prec)
			rates = append(rates, FXRate{
				Date:          day,
				Pair:          pair.Pair,
				Rate:          rate,
				Bid:           roundTo(rate*(1-halfSpread), prec),
				Ask:           roundTo(rate*(1+halfSpread), prec),
				DailyReturn:   roundTo(rate/prev[i]-1, 6),
				VolMultiplier: roundTo(mult, 4),
			})
			prev[i] = rate
		}
	}
	return rates, nil
}

// FXRateSchema is the column layout of the fx_rates table.
var FXRateSchema = table.NewSchema(
	table.Column{Name: "date", Type: table.TypeDate},
	table.Column{Name: "currency_pair", Type: table.TypeString},
	table.Column{Name: "rate", Type: table.TypeFloat},
	table.Column{Name: "bid", Type: table.TypeFloat},
	table.Column{Name: "ask", Type: table.TypeFloat},
	table.Column{Name: "daily_return", Type: table.TypeFloat},
	table.Column{Name: "volatility_multiplier", Type: table.TypeFloat},
)

// FXHourlyRateSchema is the column layout of an hourly fx_rates table.
var FXHourlyRateSchema = table.NewSchema(
	table.Column{Name: "timestamp", Type: table.TypeTimestamp},
	table.Column{Name: "currency_pair", Type: table.TypeString},
	table.Column{Name: "rate", Type: table.TypeFloat},
	table.Column{Name: "bid", Type: table.TypeFloat},
	table.Column{Name: "ask", Type: table.TypeFloat},
	table.Column{Name: "hourly_return", Type: table.TypeFloat},
	table.Column{Name: "volatility_multiplier", Type: table.TypeFloat},
)

// FXRateTable converts rates generated at freq into the fx_rates table.
func FXRateTable(freq Frequency, rates []FXRate) *table.Table {
	schema := FXRateSchema
	if freq == FrequencyHourly {
		schema = FXHourlyRateSchema
	}
	t := table.New("fx_rates", schema)
	for _, r := range rates {
		t.MustAppend(r.Date, r.Pair, r.Rate, r.Bid, r.Ask, r.DailyReturn, r.VolMultiplier)
	}
	return t
}
