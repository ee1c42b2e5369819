package generator

import "math"

// Volatility clustering: the magnitude of the previous shock inflates the
// next step's standard deviation, capped at maxVolMultiplier.
const (
	clusterFactor    = 0.5
	maxVolMultiplier = 3.0
)

// walk is the running state of one mean-reverting price series.
type walk struct {
	base      float64
	price     float64
	prevShock float64
	// threshold is the relative deviation from base beyond which the price
	// is blended back toward base with weight pull.
	threshold float64
	pull      float64
}

func newWalk(base, threshold, pull float64) *walk {
	return &walk{base: base, price: base, threshold: threshold, pull: pull}
}

// volMultiplier returns the variance inflation for the next step.
func (w *walk) volMultiplier() float64 {
	return math.Min(1+clusterFactor*math.Abs(w.prevShock), maxVolMultiplier)
}

// step applies a return of vol*volMult*shock, then the soft mean-reversion
// pull, and returns the volatility multiplier used.
func (w *walk) step(vol, shock float64) float64 {
	mult := w.volMultiplier()
	w.price *= 1 + vol*mult*shock
	if w.price <= 0 {
		w.price = w.base * 0.01
	}
	if math.Abs(w.price-w.base)/w.base > w.threshold {
		w.price = (1-w.pull)*w.price + w.pull*w.base
	}
	w.prevShock = shock
	return mult
}
