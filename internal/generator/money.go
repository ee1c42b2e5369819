package generator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// money converts a sampled float amount into a two-place decimal.
func money(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(2)
}

// roundTo rounds x half away from zero to the given number of places.
func roundTo(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// roundToNearest rounds x to the nearest multiple of step, never below step.
func roundToNearest(x decimal.Decimal, step int64) decimal.Decimal {
	s := decimal.NewFromInt(step)
	r := x.Div(s).Round(0).Mul(s)
	if r.LessThan(s) {
		return s
	}
	return r
}

// mod97 computes the ISO 7064 MOD 97-10 remainder of an alphanumeric string,
// mapping A..Z to 10..35 as IBAN and LEI check digits require.
func mod97(s string) int {
	rem := 0
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			rem = (rem*100 + v) % 97
		}
	}
	return rem
}

// checkDigits returns the two MOD 97-10 check digits for payload, where the
// digits are placed after payload (LEI layout).
func checkDigits(payload string) int {
	return 98 - mod97(payload+"00")
}
