package book

import (
	"fmt"
	"math"
)

// EquilibriumMid computes the depth-weighted equilibrium mid price per §4.6,
// using exponential-decay weighting of resting depth and a bisection root
// find over [high_bid, low_ask]. It is pure: no book mutation occurs, and
// its cost is linear in the number of resting price levels.
//
// This adopts the mathematically defined form — weighted depth is the sum
// of each level's own decayed quantity, not a running product carried
// across levels — per Open Question 2 in the source specification, which
// flags the latter as a likely bug in the original implementation.
func (b *Book) EquilibriumMid(halfTimeTicks float64) (float64, error) {
	if b.bids.Empty() || b.asks.Empty() {
		return 0, ErrEmptyBookQuery
	}
	if halfTimeTicks <= 0 {
		return 0, fmt.Errorf("book: equilibrium-mid needs a positive half-time, got %g", halfTimeTicks)
	}

	highBid := float64(b.HighBid())
	lowAsk := float64(b.LowAsk())
	mid0 := (highBid + lowAsk) / 2.0

	bidLevels := b.bids.Levels()
	askLevels := b.asks.Levels()

	decay := mid0 * halfTimeTicks

	weightedDepth := func(levels []*PriceLevel, p float64) float64 {
		sum := 0.0
		for _, l := range levels {
			delta := float64(l.Price) - p
			if delta < 0 {
				delta = -delta
			}
			w := math.Exp2(-delta / decay)
			sum += float64(l.Total) * w
		}
		return sum
	}

	f := func(p float64) float64 {
		return weightedDepth(bidLevels, p) - weightedDepth(askLevels, p)
	}

	return bisect(f, highBid, lowAsk, 0.1*float64(b.priceIncrement), 100), nil
}

// bisect finds a root of f within [lo, hi] using bisection, stopping once
// the bracket width is within tol or after maxIter iterations.
func bisect(f func(float64) float64, lo, hi, tol float64, maxIter int) float64 {
	flo := f(lo)
	fhi := f(hi)

	// An endpoint that is already a root is returned as is; non-bracketing
	// input falls back to the midpoint rather than mis-converging.
	if flo == 0 {
		return lo
	}
	if fhi == 0 {
		return hi
	}
	if (flo > 0) == (fhi > 0) {
		return (lo + hi) / 2
	}

	for i := 0; i < maxIter && (hi-lo) > tol; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 {
			return mid
		}
		if (fmid > 0) == (flo > 0) {
			lo, flo = mid, fmid
		} else {
			hi, fhi = mid, fmid
		}
	}
	return (lo + hi) / 2
}
