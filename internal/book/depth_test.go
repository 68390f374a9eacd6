package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepth_ContiguousFromBest(t *testing.T) {
	b := New()
	b.Dispatch(AddCommand(Buy, 10, 99))
	b.Dispatch(AddCommand(Buy, 5, 97))
	b.Dispatch(AddCommand(Sell, 7, 101))

	bids, asks := b.Depth(5)

	assert.Equal(t, []DepthLevel{
		{Price: 99, Quantity: 10},
		{Price: 98, Quantity: 0},
		{Price: 97, Quantity: 5},
		{Price: 96, Quantity: 0},
		{Price: 95, Quantity: 0},
	}, bids)

	assert.Equal(t, []DepthLevel{
		{Price: 101, Quantity: 7},
		{Price: 102, Quantity: 0},
		{Price: 103, Quantity: 0},
		{Price: 104, Quantity: 0},
		{Price: 105, Quantity: 0},
	}, asks)
}

func TestDepth_EmptySideReturnsNoRows(t *testing.T) {
	b := New()
	bids, asks := b.Depth(DefaultDepth)
	assert.Empty(t, bids)
	assert.Empty(t, asks)
}

func TestDepth_DefaultsToTen(t *testing.T) {
	b := New()
	b.Dispatch(AddCommand(Buy, 1, 100))
	bids, _ := b.Depth(0)
	assert.Len(t, bids, DefaultDepth)
}
