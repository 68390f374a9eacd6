package book

// add implements the Add command: the resting-vs-crossing decision (§4.2)
// followed by the matching walk (§4.3) when the incoming price crosses.
func (b *Book) add(side Side, quantity, price int64) Result {
	if quantity <= 0 {
		b.logger.Debug().Err(ErrInvalidQuantity).Int64("quantity", quantity).Msg("add: rejected")
		return Result{}
	}

	crosses := false
	if side == Buy {
		crosses = price >= b.asks.Best()
	} else {
		crosses = price <= b.bids.Best()
	}

	if !crosses {
		id := b.rest(side, quantity, price)
		return Result{Accepted: true, RestingOrderID: id, HasResting: true}
	}

	fills, residual := b.match(side, quantity, price)
	res := Result{Accepted: true, Fills: fills}
	if residual > 0 {
		id := b.rest(side, residual, price)
		res.RestingOrderID = id
		res.HasResting = true
	}
	return res
}

// rest creates a new order and appends it to the tail of its price level,
// creating the level if needed, and updates the side's cached best price.
func (b *Book) rest(side Side, quantity, price int64) OrderID {
	sb := b.sideBook(side)
	o := &Order{ID: b.nextID(), Side: side, Price: price, Quantity: quantity}
	level := sb.getOrCreate(price)
	level.pushBack(o)
	b.idx.put(o, level)
	sb.improve(price)
	return o.ID
}

// match walks the opposite side book from the best price outward, consuming
// resting orders in arrival order until either the aggressor's quantity is
// exhausted or the opposite side no longer crosses the aggressor's price.
// It returns the fills produced and the aggressor's residual quantity (0 if
// fully filled).
func (b *Book) match(side Side, quantity, price int64) ([]Fill, int64) {
	opp := b.opposite(side)
	var fills []Fill

	for quantity > 0 {
		level, ok := opp.bestLevel()
		if !ok {
			break
		}
		// Stop if the best remaining level is no longer reachable by the
		// aggressor's price.
		if side == Buy && level.Price > price {
			break
		}
		if side == Sell && level.Price < price {
			break
		}

		for quantity > 0 {
			maker := level.front()
			if maker == nil {
				break
			}
			before := maker.Quantity
			take := before
			if quantity < before {
				take = quantity
			}

			fills = append(fills, Fill{
				MakerID:   maker.ID,
				TakerSide: side,
				Price:     level.Price,
				Quantity:  take,
			})

			quantity -= before

			if quantity < 0 {
				// Maker was only partially filled; restore it at the head
				// with its residual, preserving time priority.
				residual := -quantity
				level.popFront()
				maker.Quantity = residual
				level.pushFront(maker)
				b.idx.put(maker, level)
				quantity = 0
				break
			}

			// Maker fully consumed.
			level.popFront()
			b.idx.delete(maker.ID)

			if quantity == 0 {
				break
			}
			// quantity > 0: keep consuming this level if it still has orders.
		}

		if level.Empty() {
			opp.tree.Delete(level)
			continue
		}
		// A non-empty level here only happens because quantity reached 0
		// (the aggressor was exhausted exactly by a maker that was not the
		// level's last order, or a partial-fill residual left resting at
		// the head); nothing left for the aggressor to consume.
		break
	}

	opp.refreshBest()
	return fills, quantity
}
