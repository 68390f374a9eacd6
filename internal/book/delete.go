package book

// delete implements the Delete command (§4.4): a silent no-op for an
// unknown id, otherwise an erase from the order's level (dropping the level
// if it becomes empty) and the index, recomputing the side's best price if
// the removal touched it.
func (b *Book) delete(id OrderID) Result {
	entry, ok := b.idx.get(id)
	if !ok {
		b.logger.Debug().Err(ErrUnknownOrder).Str("orderID", string(id)).Msg("delete: no-op")
		return Result{Accepted: false}
	}

	sb := b.sideBook(entry.order.Side)
	level := entry.level
	wasBest := level.Price == sb.Best()

	level.remove(id)
	sb.dropIfEmpty(level)
	b.idx.delete(id)

	if wasBest {
		sb.refreshBest()
	}

	return Result{Accepted: true, RemovedOrderID: id, HasRemoved: true}
}
