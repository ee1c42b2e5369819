package generator

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFXRates_Shape(t *testing.T) {
	p := DefaultFXRateParams()
	p.Days = 30

	rates, err := GenerateFXRates(p)
	require.NoError(t, err)
	require.Len(t, rates, p.Days*len(p.Pairs))

	for d := 0; d < p.Days; d++ {
		for i, pair := range p.Pairs {
			r := rates[d*len(p.Pairs)+i]
			assert.Equal(t, pair.Pair, r.Pair)
			assert.Equal(t, p.Start.AddDate(0, 0, d), r.Date)
		}
	}
}

func TestGenerateFXRates_Invariants(t *testing.T) {
	p := DefaultFXRateParams()

	rates, err := GenerateFXRates(p)
	require.NoError(t, err)

	base := make(map[string]float64)
	for _, pair := range p.Pairs {
		base[pair.Pair] = pair.Base
	}
	prev := make(map[string]float64)
	for _, r := range rates {
		assert.Greater(t, r.Rate, 0.0)
		assert.LessOrEqual(t, r.Bid, r.Rate)
		assert.GreaterOrEqual(t, r.Ask, r.Rate)
		assert.GreaterOrEqual(t, r.VolMultiplier, 1.0)
		assert.LessOrEqual(t, r.VolMultiplier, maxVolMultiplier)

		dev := math.Abs(r.Rate-base[r.Pair]) / base[r.Pair]
		assert.Less(t, dev, 0.35, "%s drifted to %v on %s", r.Pair, r.Rate, r.Date)

		ref, ok := prev[r.Pair]
		if !ok {
			ref = base[r.Pair]
		}
		assert.InDelta(t, r.Rate/ref-1, r.DailyReturn, 1e-6)
		prev[r.Pair] = r.Rate
	}
}

func TestGenerateFXRates_Precision(t *testing.T) {
	p := DefaultFXRateParams()
	p.Days = 20
	pairs, err := LookupFXPairs([]string{"USD/JPY", "EUR/USD"})
	require.NoError(t, err)
	p.Pairs = pairs

	rates, err := GenerateFXRates(p)
	require.NoError(t, err)

	for _, r := range rates {
		places := int32(5)
		if r.Pair == "USD/JPY" {
			places = 3
		}
		d := decimal.NewFromFloat(r.Rate)
		assert.True(t, d.Equal(d.Round(places)), "%s rate %v has more than %d places", r.Pair, r.Rate, places)
	}
}

func TestGenerateFXRates_Deterministic(t *testing.T) {
	p := DefaultFXRateParams()
	p.Days = 50

	a, err := GenerateFXRates(p)
	require.NoError(t, err)
	b, err := GenerateFXRates(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateFXRates_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*FXRateParams)
	}{
		{"no pairs", func(p *FXRateParams) { p.Pairs = nil }},
		{"duplicate pair", func(p *FXRateParams) { p.Pairs = []FXPair{DefaultFXPairs[0], DefaultFXPairs[0]} }},
		{"zero base", func(p *FXRateParams) { p.Pairs = []FXPair{{Pair: "X/Y", Base: 0, Volatility: 0.01}} }},
		{"negative vol", func(p *FXRateParams) { p.Pairs = []FXPair{{Pair: "X/Y", Base: 1, Volatility: -0.01}} }},
		{"negative spread", func(p *FXRateParams) { p.SpreadBps = -1 }},
		{"zero days", func(p *FXRateParams) { p.Days = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultFXRateParams()
			tt.mod(&p)
			_, err := GenerateFXRates(p)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}

func TestLookupFXPairs(t *testing.T) {
	pairs, err := LookupFXPairs([]string{"GBP/USD", "USD/CNY"})
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "GBP/USD", pairs[0].Pair)
	assert.Equal(t, 7.24, pairs[1].Base)

	_, err = LookupFXPairs([]string{"EUR/XYZ"})
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestFXRateTable(t *testing.T) {
	p := DefaultFXRateParams()
	p.Days = 3
	rates, err := GenerateFXRates(p)
	require.NoError(t, err)

	tbl := FXRateTable(FrequencyDaily, rates)
	assert.Equal(t, "fx_rates", tbl.Name)
	assert.Equal(t, len(rates), tbl.Len())
	assert.Equal(t, "EUR/USD", cell(t, tbl, 0, "currency_pair"))
	assert.Equal(t, "date", tbl.Schema.Names()[0])

	hourly := FXRateTable(FrequencyHourly, rates)
	assert.Equal(t, []string{
		"timestamp", "currency_pair", "rate", "bid", "ask", "hourly_return", "volatility_multiplier",
	}, hourly.Schema.Names())
}

func TestGenerateFXRates_Hourly(t *testing.T) {
	p := DefaultFXRateParams()
	p.Days = 3
	p.Frequency = FrequencyHourly
	pairs, err := LookupFXPairs([]string{"EUR/USD", "USD/JPY"})
	require.NoError(t, err)
	p.Pairs = pairs

	rates, err := GenerateFXRates(p)
	require.NoError(t, err)
	require.Len(t, rates, p.Days*24*len(pairs))

	for h := 0; h < p.Days*24; h++ {
		for i, pair := range pairs {
			r := rates[h*len(pairs)+i]
			assert.Equal(t, pair.Pair, r.Pair)
			assert.Equal(t, p.Start.Add(time.Duration(h)*time.Hour), r.Date)
		}
	}
	last := rates[len(rates)-1].Date
	assert.True(t, last.Before(p.Start.AddDate(0, 0, p.Days)))

	daily := p
	daily.Frequency = ""
	d, err := GenerateFXRates(daily)
	require.NoError(t, err)
	assert.Len(t, d, p.Days*len(pairs), "empty frequency means daily")
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    Frequency
		wantErr bool
	}{
		{"", FrequencyDaily, false},
		{"daily", FrequencyDaily, false},
		{"hourly", FrequencyHourly, false},
		{"weekly", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameters)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	p := DefaultFXRateParams()
	p.Frequency = "minutely"
	_, err := GenerateFXRates(p)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestGenerateFXExposures(t *testing.T) {
	p := DefaultFXExposureParams()

	exposures, err := GenerateFXExposures(p)
	require.NoError(t, err)
	require.Len(t, exposures, p.Count)

	validRatio := map[float64]bool{0: true, 0.25: true, 0.5: true, 0.75: true, 1: true}
	horizon := p.AsOf.AddDate(0, 0, p.HorizonDays)
	for _, e := range exposures {
		assert.True(t, e.Amount.IsPositive())
		assert.True(t, e.HedgedAmount.Add(e.UnhedgedAmount).Equal(e.Amount), "%s does not reconcile", e.ExposureID)
		assert.True(t, validRatio[e.HedgeRatio], "unexpected ratio %v", e.HedgeRatio)
		assert.Equal(t, e.HedgeRatio == 0, e.HedgeInstrument == "")
		assert.True(t, e.MaturityDate.After(p.AsOf))
		assert.False(t, e.MaturityDate.After(horizon))
		assert.Contains(t, []string{"long", "short"}, e.Direction)
		assert.Contains(t, p.Currencies, e.Currency)
		assert.Contains(t, p.Entities, e.Entity)
		if e.HedgeRatio == 1 {
			assert.True(t, e.UnhedgedAmount.IsZero())
		}
	}
}

func TestGenerateFXExposures_InvalidParams(t *testing.T) {
	p := DefaultFXExposureParams()
	p.Currencies = nil
	_, err := GenerateFXExposures(p)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	p = DefaultFXExposureParams()
	p.HorizonDays = 0
	_, err = GenerateFXExposures(p)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	p = DefaultFXExposureParams()
	p.Count = 0
	_, err = GenerateFXExposures(p)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}
