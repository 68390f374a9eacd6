package book

import "github.com/tidwall/btree"

// levels is the underlying ordered container. The teacher's prototype used
// a btree.BTreeG[*PriceLevel] directly for each side; we keep that choice
// (balanced tree keyed by price, O(log n) best-price access and ordered
// iteration from the best outward) and wrap it with the side's own notion
// of "best".
type levels = btree.BTreeG[*PriceLevel]

// SideBook holds all resting price levels on one side (bids or asks) plus
// the cached best price for that side.
type SideBook struct {
	side   Side
	tree   *levels
	best   int64 // high_bid for BUY, low_ask for SELL
	resetV int64 // sentinel value when the side is empty
}

func newSideBook(side Side, minPrice, maxPrice int64) *SideBook {
	var less func(a, b *PriceLevel) bool
	var reset int64
	if side == Buy {
		// Bids sorted greatest-first so the minimum of the tree is the best bid.
		less = func(a, b *PriceLevel) bool { return a.Price > b.Price }
		reset = minPrice
	} else {
		// Asks sorted least-first so the minimum of the tree is the best ask.
		less = func(a, b *PriceLevel) bool { return a.Price < b.Price }
		reset = maxPrice
	}
	return &SideBook{
		side:   side,
		tree:   btree.NewBTreeG(less),
		best:   reset,
		resetV: reset,
	}
}

// Best returns the cached best price for this side (high_bid or low_ask).
func (s *SideBook) Best() int64 { return s.best }

// Empty reports whether the side currently holds no levels.
func (s *SideBook) Empty() bool { return s.tree.Len() == 0 }

// Len returns the number of distinct price levels resting on this side.
func (s *SideBook) Len() int { return s.tree.Len() }

// bestLevel returns the level at the best price, if any.
func (s *SideBook) bestLevel() (*PriceLevel, bool) {
	return s.tree.Min()
}

// levelAt returns the level at an exact price, if present.
func (s *SideBook) levelAt(price int64) (*PriceLevel, bool) {
	return s.tree.Get(&PriceLevel{Price: price})
}

// getOrCreate returns the level at price, creating an empty one if absent.
func (s *SideBook) getOrCreate(price int64) *PriceLevel {
	if l, ok := s.tree.Get(&PriceLevel{Price: price}); ok {
		return l
	}
	l := newPriceLevel(price)
	s.tree.Set(l)
	return l
}

// dropIfEmpty removes the level from the tree once its queue is empty, per
// the level-non-emptiness invariant.
func (s *SideBook) dropIfEmpty(l *PriceLevel) {
	if l.Empty() {
		s.tree.Delete(l)
	}
}

// refreshBest recomputes the cached best price from the tree, resetting to
// the side's sentinel if now empty.
func (s *SideBook) refreshBest() {
	if l, ok := s.tree.Min(); ok {
		s.best = l.Price
	} else {
		s.best = s.resetV
	}
}

// improve updates best if price is a strict improvement for this side.
func (s *SideBook) improve(price int64) {
	if s.side == Buy {
		if price > s.best {
			s.best = price
		}
	} else {
		if price < s.best {
			s.best = price
		}
	}
}

// ascend walks levels from best outward, calling fn for each. Iteration
// stops early if fn returns false.
func (s *SideBook) ascend(fn func(*PriceLevel) bool) {
	s.tree.Scan(fn)
}

// Levels returns a defensive snapshot of resting levels, best price first.
func (s *SideBook) Levels() []*PriceLevel {
	out := make([]*PriceLevel, 0, s.tree.Len())
	s.tree.Scan(func(l *PriceLevel) bool {
		out = append(out, l)
		return true
	})
	return out
}
