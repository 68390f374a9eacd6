package book

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquilibriumMid_EmptySideIsUndefined(t *testing.T) {
	b := New()
	b.Dispatch(AddCommand(Buy, 10, 99))

	_, err := b.EquilibriumMid(10)
	assert.ErrorIs(t, err, ErrEmptyBookQuery)
}

func TestEquilibriumMid_SymmetricBookIsAtMidpoint(t *testing.T) {
	b := New()
	b.Dispatch(AddCommand(Buy, 10, 99))
	b.Dispatch(AddCommand(Sell, 10, 101))

	mid, err := b.EquilibriumMid(50)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, mid, 0.2)
}

func TestEquilibriumMid_SkewedDepthPullsTowardThinnerSide(t *testing.T) {
	b := New()
	b.Dispatch(AddCommand(Buy, 100, 99))
	b.Dispatch(AddCommand(Sell, 10, 101))

	mid, err := b.EquilibriumMid(0.003)
	require.NoError(t, err)
	// Heavier bid depth should pull equilibrium mid above the naive
	// arithmetic midpoint of 100, toward the ask side where it balances.
	assert.Greater(t, mid, 100.0)
	assert.LessOrEqual(t, mid, 101.0)
}

func TestBisect_ConvergesWithinTolerance(t *testing.T) {
	// A simple monotone function with a known root at x=3.
	f := func(x float64) float64 { return x - 3 }
	root := bisect(f, 0, 10, 0.001, 100)
	assert.True(t, math.Abs(root-3) < 0.01)
}
