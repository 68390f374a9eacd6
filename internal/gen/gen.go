// Package gen produces randomized command streams in the text-codec format,
// for soak-testing the matching engine. Ported from the original
// gen_test_file.py / gen_test_file_3.py scripts: a normal-distributed price
// walk around a configurable mid, with a random mix of Add/Modify/Delete.
package gen

import (
	"math/rand"
	"strconv"

	"lobx/internal/book"
)

// Params configures the random command stream.
type Params struct {
	Mid               int64   // center of the price random walk
	PriceSigma        float64 // standard deviation of the price walk, in ticks
	AverageTradeSize  int64
	QuantityIncrement int64
	Count             int
}

// DefaultParams mirrors the original script's constants (mid=100,
// sigma=mid/25, average trade size=50, 300 messages).
func DefaultParams() Params {
	return Params{
		Mid:               100,
		PriceSigma:        100.0 / 25.0,
		AverageTradeSize:  50,
		QuantityIncrement: 1,
		Count:             300,
	}
}

// Stream generates Count commands against an in-progress id ledger. The
// ledger (ids already seen as resting) grows as Add commands are emitted;
// Modify/Delete commands reference a ledger entry about 1-in-6 times over
// an id that doesn't exist, exercising the UnknownOrder no-op path, exactly
// as the original generator's "idx >= len(ids)" branch does.
func Stream(p Params, rng *rand.Rand) []book.Command {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	ids := []book.OrderID{"1", "2", "3"}
	out := make([]book.Command, 0, p.Count)

	for i := 0; i < p.Count; i++ {
		side := book.Buy
		coef := 1.0
		if rng.Intn(2) == 0 {
			side = book.Sell
			coef = -1.0
		}

		price := p.Mid + int64(coef*roundNormal(rng, p.PriceSigma))
		quantity := p.AverageTradeSize/2 + int64(absRound(roundNormal(rng, float64(p.QuantityIncrement)*10)))
		if quantity <= 0 {
			quantity = 1
		}

		switch rng.Intn(3) {
		case 0: // Add
			out = append(out, book.AddCommand(side, quantity, price))
			ids = append(ids, nextSequential(ids))
		case 1: // Modify
			out = append(out, book.ModifyCommand(pickID(rng, ids), quantity))
		default: // Delete
			out = append(out, book.DeleteCommand(pickID(rng, ids)))
		}
	}
	return out
}

// pickID mirrors the original generator's "idx >= len(ids)" branch: about
// 1-in-6 draws reference an id outside the known ledger, landing on the
// book's UnknownOrder no-op path.
func pickID(rng *rand.Rand, ids []book.OrderID) book.OrderID {
	span := int(float64(len(ids)) * 1.2)
	if span <= 0 {
		span = 1
	}
	idx := rng.Intn(span)
	if idx >= len(ids) {
		return "unknown"
	}
	return ids[idx]
}

func nextSequential(ids []book.OrderID) book.OrderID {
	last := ids[len(ids)-1]
	n, _ := strconv.ParseInt(string(last), 10, 64)
	return book.OrderID(strconv.FormatInt(n+1, 10))
}

// roundNormal draws a normal(0, sigma) sample and rounds it to the nearest
// integer, preserving sign.
func roundNormal(rng *rand.Rand, sigma float64) float64 {
	v := rng.NormFloat64() * sigma
	if v < 0 {
		return -round(-v)
	}
	return round(v)
}

func round(v float64) float64 {
	return float64(int64(v + 0.5))
}

// absRound rounds to the nearest integer, then takes the absolute value.
func absRound(v float64) float64 {
	r := round(v)
	if r < 0 {
		return -r
	}
	return r
}
