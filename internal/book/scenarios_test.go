package book

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

// Scenarios S1-S6 from the specification's testable-properties section,
// using literal values with default book construction.

func TestScenario_S1_Resting(t *testing.T) {
	b := New()

	r1 := b.Dispatch(AddCommand(Buy, 10, 99))
	r2 := b.Dispatch(AddCommand(Sell, 5, 101))

	require.True(t, r1.HasResting)
	require.True(t, r2.HasResting)
	assert.Empty(t, r1.Fills)
	assert.Empty(t, r2.Fills)

	assert.Equal(t, int64(99), b.HighBid())
	assert.Equal(t, int64(101), b.LowAsk())

	level, ok := b.bids.levelAt(99)
	require.True(t, ok)
	assert.Equal(t, []OrderID{r1.RestingOrderID}, orderIDs(level))
	assert.Equal(t, int64(10), level.Total)

	level, ok = b.asks.levelAt(101)
	require.True(t, ok)
	assert.Equal(t, []OrderID{r2.RestingOrderID}, orderIDs(level))
	assert.Equal(t, int64(5), level.Total)
}

func TestScenario_S2_FullCrossSingleMaker(t *testing.T) {
	b := New()
	r1 := b.Dispatch(AddCommand(Sell, 10, 100))
	r2 := b.Dispatch(AddCommand(Buy, 10, 100))

	assert.False(t, r2.HasResting)
	require.Len(t, r2.Fills, 1)
	assert.Equal(t, Fill{MakerID: r1.RestingOrderID, TakerSide: Buy, Price: 100, Quantity: 10}, r2.Fills[0])

	assert.True(t, b.bids.Empty())
	assert.True(t, b.asks.Empty())
	assert.Equal(t, 0, b.OrderCount())
}

func TestScenario_S3_PartialFillOfMaker(t *testing.T) {
	b := New()
	r1 := b.Dispatch(AddCommand(Sell, 10, 100))
	r2 := b.Dispatch(AddCommand(Buy, 4, 100))

	assert.False(t, r2.HasResting)
	require.Len(t, r2.Fills, 1)
	assert.Equal(t, int64(4), r2.Fills[0].Quantity)

	level, ok := b.asks.levelAt(100)
	require.True(t, ok)
	assert.Equal(t, []OrderID{r1.RestingOrderID}, orderIDs(level))
	assert.Equal(t, int64(6), level.Total)
	assert.True(t, b.bids.Empty())
}

func TestScenario_S4_SweepAcrossLevels(t *testing.T) {
	b := New()
	rA := b.Dispatch(AddCommand(Sell, 5, 100))
	rB := b.Dispatch(AddCommand(Sell, 5, 101))
	rC := b.Dispatch(AddCommand(Sell, 5, 102))

	r := b.Dispatch(AddCommand(Buy, 12, 102))

	require.Len(t, r.Fills, 3)
	assert.Equal(t, Fill{MakerID: rA.RestingOrderID, TakerSide: Buy, Price: 100, Quantity: 5}, r.Fills[0])
	assert.Equal(t, Fill{MakerID: rB.RestingOrderID, TakerSide: Buy, Price: 101, Quantity: 5}, r.Fills[1])
	assert.Equal(t, Fill{MakerID: rC.RestingOrderID, TakerSide: Buy, Price: 102, Quantity: 2}, r.Fills[2])

	level, ok := b.asks.levelAt(102)
	require.True(t, ok)
	assert.Equal(t, int64(3), level.Total)
	assert.Equal(t, int64(102), b.LowAsk())
	assert.True(t, b.bids.Empty())
}

func TestScenario_S5_FIFOWithinLevel(t *testing.T) {
	b := New()
	r1 := b.Dispatch(AddCommand(Sell, 5, 100))
	r2 := b.Dispatch(AddCommand(Sell, 5, 100))

	r := b.Dispatch(AddCommand(Buy, 6, 100))

	require.Len(t, r.Fills, 2)
	assert.Equal(t, Fill{MakerID: r1.RestingOrderID, TakerSide: Buy, Price: 100, Quantity: 5}, r.Fills[0])
	assert.Equal(t, Fill{MakerID: r2.RestingOrderID, TakerSide: Buy, Price: 100, Quantity: 1}, r.Fills[1])

	level, ok := b.asks.levelAt(100)
	require.True(t, ok)
	assert.Equal(t, []OrderID{r2.RestingOrderID}, orderIDs(level))
	assert.Equal(t, int64(4), level.Total)
}

func TestScenario_S6_ModifyPriorityLoss(t *testing.T) {
	b := New()
	r1 := b.Dispatch(AddCommand(Buy, 5, 99))
	r2 := b.Dispatch(AddCommand(Buy, 5, 99))

	mod := b.Dispatch(ModifyCommand(r1.RestingOrderID, 8))
	require.True(t, mod.Accepted)

	level, ok := b.bids.levelAt(99)
	require.True(t, ok)
	assert.Equal(t, []OrderID{r2.RestingOrderID, r1.RestingOrderID}, orderIDs(level))

	r := b.Dispatch(AddCommand(Sell, 5, 99))
	require.Len(t, r.Fills, 1)
	assert.Equal(t, r2.RestingOrderID, r.Fills[0].MakerID)
	assert.Equal(t, int64(5), r.Fills[0].Quantity)

	level, ok = b.bids.levelAt(99)
	require.True(t, ok)
	assert.Equal(t, []OrderID{r1.RestingOrderID}, orderIDs(level))
	assert.Equal(t, int64(8), level.Total)
}

func orderIDs(l *PriceLevel) []OrderID {
	ids := make([]OrderID, 0)
	for _, o := range l.Orders() {
		ids = append(ids, o.ID)
	}
	return ids
}
