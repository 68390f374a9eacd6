package book

import (
	"math/rand"
	"testing"
)

// TestSoak_InvariantsHoldAcrossRandomSequence drives a deterministic pseudo
// random sequence of Add/Delete/Modify commands through the book and checks
// the quantified invariants after every single command.
func TestSoak_InvariantsHoldAcrossRandomSequence(t *testing.T) {
	b := New(WithPriceBounds(1, 1000))
	rng := rand.New(rand.NewSource(7))

	var resting []OrderID

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			side := Buy
			if rng.Intn(2) == 1 {
				side = Sell
			}
			price := int64(90 + rng.Intn(20))
			qty := int64(1 + rng.Intn(15))
			res := b.Dispatch(AddCommand(side, qty, price))
			if res.HasResting {
				resting = append(resting, res.RestingOrderID)
			}
		case 1:
			if len(resting) == 0 {
				continue
			}
			idx := rng.Intn(len(resting))
			b.Dispatch(DeleteCommand(resting[idx]))
			resting = append(resting[:idx], resting[idx+1:]...)
		case 2:
			if len(resting) == 0 {
				continue
			}
			idx := rng.Intn(len(resting))
			newQty := int64(rng.Intn(20))
			res := b.Dispatch(ModifyCommand(resting[idx], newQty))
			if !res.HasResting {
				resting = append(resting[:idx], resting[idx+1:]...)
			}
		}
		assertInvariants(t, b)
	}
}
