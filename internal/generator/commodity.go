package generator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dbsmedya/gotreasury/internal/random"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// Commodity random-walk tuning.
const (
	commodityReversionThreshold = 0.30
	commodityReversionPull      = 0.02
	// GallonsPerBarrel converts gallon-priced products to a per-barrel price.
	GallonsPerBarrel = 42
)

// Commodity symbols.
const (
	Brent      = "BRENT"
	WTI        = "WTI"
	NaturalGas = "NATURAL_GAS"
	Gasoline   = "GASOLINE"
	HeatingOil = "HEATING_OIL"
	JetFuel    = "JET_FUEL"
)

// Commodity is the static profile of one series.
type Commodity struct {
	Symbol     string
	Unit       string
	Base       float64
	Volatility float64
	// Correlation is the loading on the shared daily shock.
	Correlation float64
	// Seasonal holds the January..December multiplicative price offsets.
	Seasonal [12]float64
	Decimals int32
	// Refined marks gallon-priced products that get a crack spread against Brent.
	Refined bool
}

// Commodities is the built-in commodity catalogue in generation order.
var Commodities = []Commodity{
	{Symbol: Brent, Unit: "USD/bbl", Base: 82.00, Volatility: 0.018, Correlation: 0.7, Decimals: 2,
		Seasonal: [12]float64{-0.010, -0.005, 0, 0.005, 0.010, 0.015, 0.015, 0.010, 0, -0.005, -0.010, -0.015}},
	{Symbol: WTI, Unit: "USD/bbl", Base: 78.00, Volatility: 0.020, Correlation: 0.7, Decimals: 2,
		Seasonal: [12]float64{-0.010, -0.005, 0, 0.005, 0.010, 0.015, 0.015, 0.010, 0, -0.005, -0.010, -0.015}},
	{Symbol: NaturalGas, Unit: "USD/MMBtu", Base: 2.80, Volatility: 0.035, Correlation: 0.3, Decimals: 3,
		Seasonal: [12]float64{0.12, 0.10, 0.04, -0.04, -0.07, -0.05, 0, 0.01, -0.03, -0.01, 0.05, 0.10}},
	{Symbol: Gasoline, Unit: "USD/gal", Base: 2.35, Volatility: 0.022, Correlation: 0.7, Decimals: 4, Refined: true,
		Seasonal: [12]float64{-0.04, -0.03, 0, 0.03, 0.05, 0.06, 0.05, 0.04, 0, -0.03, -0.05, -0.05}},
	{Symbol: HeatingOil, Unit: "USD/gal", Base: 2.70, Volatility: 0.020, Correlation: 0.7, Decimals: 4, Refined: true,
		Seasonal: [12]float64{0.05, 0.04, 0.01, -0.02, -0.03, -0.03, -0.02, -0.01, 0, 0.02, 0.03, 0.04}},
	{Symbol: JetFuel, Unit: "USD/gal", Base: 2.55, Volatility: 0.021, Correlation: 0.7, Decimals: 4, Refined: true,
		Seasonal: [12]float64{-0.02, -0.02, 0, 0.01, 0.02, 0.03, 0.03, 0.02, 0, -0.01, -0.02, -0.01}},
}

// LookupCommodities resolves symbols against the built-in catalogue.
func LookupCommodities(symbols []string) ([]Commodity, error) {
	out := make([]Commodity, 0, len(symbols))
	seen := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if seen[sym] {
			return nil, paramErr("commodities", "duplicate commodity %q", sym)
		}
		seen[sym] = true
		found := false
		for _, c := range Commodities {
			if c.Symbol == sym {
				out = append(out, c)
				found = true
				break
			}
		}
		if !found {
			return nil, paramErr("commodities", "unknown commodity %q", sym)
		}
	}
	return out, nil
}

// CommodityParams configures GenerateCommodityPrices.
type CommodityParams struct {
	Start       time.Time
	Days        int
	Commodities []Commodity
	Seed        int64
}

// DefaultCommodityParams returns one year of the full catalogue.
func DefaultCommodityParams() CommodityParams {
	return CommodityParams{
		Start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:        365,
		Commodities: Commodities,
		Seed:        42,
	}
}

func (p CommodityParams) validate() error {
	if err := validateWindow(p.Start, p.Days); err != nil {
		return err
	}
	if len(p.Commodities) == 0 {
		return paramErr("commodities", "at least one commodity is required")
	}
	seen := make(map[string]bool, len(p.Commodities))
	for _, c := range p.Commodities {
		if c.Symbol == "" {
			return paramErr("commodities", "commodity symbol is required")
		}
		if seen[c.Symbol] {
			return paramErr("commodities", "duplicate commodity %q", c.Symbol)
		}
		seen[c.Symbol] = true
		if c.Base <= 0 {
			return paramErr("commodities", "base price for %s must be positive", c.Symbol)
		}
		if c.Correlation < 0 || c.Correlation > 1 {
			return paramErr("commodities", "correlation for %s must be within [0, 1]", c.Symbol)
		}
	}
	return nil
}

// Intraday bar tuning: the open sits within openBand of the settlement and
// the high and low extend beyond both by |N(0, rangeSigma)|.
const (
	openBand              = 0.01
	rangeSigma            = 0.015
	volumeMu, volumeSigma = 15.0, 1.0
)

// CommodityPrice is one daily bar. Price is the settlement (close) and
// Low <= min(Open, Price) <= max(Open, Price) <= High.
type CommodityPrice struct {
	Date        time.Time
	Commodity   string
	Open        float64
	High        float64
	Low         float64
	Price       float64
	Volume      int64
	Unit        string
	DailyReturn float64
}

// CrackSpread is one day of refining margins against Brent, in USD/bbl.
// Cracks is keyed by refined product symbol; Crack321 is set only when both
// gasoline and heating oil were generated.
type CrackSpread struct {
	Date     time.Time
	Brent    float64
	Cracks   map[string]float64
	Crack321 *float64
}

// seasonalPrice applies the month's deterministic offset to a running price.
func (c Commodity) seasonalPrice(running float64, month time.Month) float64 {
	return running * (1 + c.Seasonal[month-1])
}

// GenerateCommodityPrices walks every commodity for exactly Days calendar
// days. Each day one common shock is shared by all series and mixed with an
// idiosyncratic draw according to each commodity's correlation. It returns
// the long-format prices and one crack spread row per day when Brent and at
// least one refined product are present.
func GenerateCommodityPrices(p CommodityParams) ([]CommodityPrice, []CrackSpread, error) {
	if err := p.validate(); err != nil {
		return nil, nil, fmt.Errorf("commodity prices: %w", err)
	}
	rng := random.New(p.Seed)
	start := truncateDay(p.Start)

	walks := make([]*walk, len(p.Commodities))
	prev := make([]float64, len(p.Commodities))
	brentIdx := -1
	refined := 0
	for i, c := range p.Commodities {
		walks[i] = newWalk(c.Base, commodityReversionThreshold, commodityReversionPull)
		prev[i] = roundTo(c.seasonalPrice(c.Base, start.Month()), c.Decimals)
		if c.Symbol == Brent {
			brentIdx = i
		}
		if c.Refined {
			refined++
		}
	}
	withSpreads := brentIdx >= 0 && refined > 0

	prices := make([]CommodityPrice, 0, p.Days*len(p.Commodities))
	var spreads []CrackSpread
	today := make([]float64, len(p.Commodities))
	for d := 0; d < p.Days; d++ {
		day := start.AddDate(0, 0, d)
		common := rng.Normal(0, 1)
		for i, c := range p.Commodities {
			idio := rng.Normal(0, 1)
			shock := c.Correlation*common + math.Sqrt(1-c.Correlation*c.Correlation)*idio
			walks[i].step(c.Volatility, shock)

			price := roundTo(c.seasonalPrice(walks[i].price, day.Month()), c.Decimals)
			today[i] = price
			bar := dailyBar(rng, c, price)
			bar.Date = day
			bar.DailyReturn = roundTo(price/prev[i]-1, 6)
			prices = append(prices, bar)
			prev[i] = price
		}
		if withSpreads {
			spreads = append(spreads, crackSpreads(day, p.Commodities, today, brentIdx))
		}
	}
	return prices, spreads, nil
}

// dailyBar draws the open, high, low and volume around a settlement price.
// Rounding is monotone, so the bounds survive rounding to c.Decimals.
func dailyBar(rng *random.Source, c Commodity, price float64) CommodityPrice {
	open := roundTo(price*(1+rng.Uniform(-openBand, openBand)), c.Decimals)
	hi := math.Max(open, price) * (1 + math.Abs(rng.Normal(0, rangeSigma)))
	lo := math.Min(open, price) * (1 - math.Abs(rng.Normal(0, rangeSigma)))
	return CommodityPrice{
		Commodity: c.Symbol,
		Open:      open,
		High:      roundTo(hi, c.Decimals),
		Low:       roundTo(lo, c.Decimals),
		Price:     price,
		Volume:    int64(rng.LogNormal(volumeMu, volumeSigma)),
		Unit:      c.Unit,
	}
}

// crackSpreads derives the day's margins from the reported prices, so each
// crack equals price*42 - Brent for the rounded values.
func crackSpreads(day time.Time, commodities []Commodity, prices []float64, brentIdx int) CrackSpread {
	brent := prices[brentIdx]
	cs := CrackSpread{Date: day, Brent: brent, Cracks: make(map[string]float64)}
	for i, c := range commodities {
		if c.Refined {
			cs.Cracks[c.Symbol] = CrackValue(prices[i], brent)
		}
	}
	gas, okGas := cs.Cracks[Gasoline]
	ho, okHO := cs.Cracks[HeatingOil]
	if okGas && okHO {
		v := roundTo((2*gas+ho)/3, 4)
		cs.Crack321 = &v
	}
	return cs
}

// CrackValue is the per-barrel margin of a gallon-priced product over Brent.
func CrackValue(productPerGallon, brent float64) float64 {
	return roundTo(productPerGallon*GallonsPerBarrel-brent, 4)
}

// CommodityPriceSchema is the column layout of the commodity_prices table.
var CommodityPriceSchema = table.NewSchema(
	table.Column{Name: "date", Type: table.TypeDate},
	table.Column{Name: "commodity", Type: table.TypeString},
	table.Column{Name: "open", Type: table.TypeFloat},
	table.Column{Name: "high", Type: table.TypeFloat},
	table.Column{Name: "low", Type: table.TypeFloat},
	table.Column{Name: "price", Type: table.TypeFloat},
	table.Column{Name: "volume", Type: table.TypeInt},
	table.Column{Name: "unit", Type: table.TypeString},
	table.Column{Name: "daily_return", Type: table.TypeFloat},
)

// CommodityPriceTable converts prices into the commodity_prices table.
func CommodityPriceTable(prices []CommodityPrice) *table.Table {
	t := table.New("commodity_prices", CommodityPriceSchema)
	for _, p := range prices {
		t.MustAppend(p.Date, p.Commodity, p.Open, p.High, p.Low, p.Price, p.Volume, p.Unit, p.DailyReturn)
	}
	return t
}

// CrackColumn returns the spread table column name for a refined product.
func CrackColumn(symbol string) string {
	return strings.ToLower(symbol) + "_crack"
}

// CrackSpreadTable converts spreads into the crack_spreads table. Columns
// follow the order of commodities; products not generated are omitted.
func CrackSpreadTable(commodities []Commodity, spreads []CrackSpread) *table.Table {
	cols := []table.Column{
		{Name: "date", Type: table.TypeDate},
		{Name: "brent", Type: table.TypeFloat},
	}
	var products []string
	has := map[string]bool{}
	for _, c := range commodities {
		if c.Refined {
			products = append(products, c.Symbol)
			cols = append(cols, table.Column{Name: CrackColumn(c.Symbol), Type: table.TypeFloat})
			has[c.Symbol] = true
		}
	}
	with321 := has[Gasoline] && has[HeatingOil]
	if with321 {
		cols = append(cols, table.Column{Name: "crack_3_2_1", Type: table.TypeFloat})
	}

	t := table.New("crack_spreads", table.NewSchema(cols...))
	for _, s := range spreads {
		row := []any{s.Date, s.Brent}
		for _, sym := range products {
			row = append(row, s.Cracks[sym])
		}
		if with321 {
			var v any
			if s.Crack321 != nil {
				v = *s.Crack321
			}
			row = append(row, v)
		}
		t.MustAppend(row...)
	}
	return t
}
