package book

// modify implements the Modify command (§4.5). Side and price are never
// changed by a Modify; only quantity, and (conditionally) queue position.
func (b *Book) modify(id OrderID, newQuantity int64) Result {
	entry, ok := b.idx.get(id)
	if !ok {
		b.logger.Debug().Err(ErrUnknownOrder).Str("orderID", string(id)).Msg("modify: no-op")
		return Result{Accepted: false}
	}

	if newQuantity == 0 {
		return b.delete(id)
	}

	old := entry.order.Quantity
	level := entry.level

	if newQuantity > old {
		// Growing the order loses time priority: move to the tail.
		level.moveToBack(id, newQuantity)
	} else {
		// Shrinking (or unchanged) keeps time priority: overwrite in place.
		level.setQuantity(id, newQuantity)
	}

	return Result{Accepted: true, RestingOrderID: id, HasResting: true}
}
