package book

import "container/list"

// PriceLevel is the insertion-ordered queue of orders resting at one price.
// Head = earliest arrival, tail = latest; this ordering is the book's time
// priority. Orders are kept in a doubly-linked list rather than a slice so a
// mid-queue Delete (keyed by order id via the level's own index) is O(1)
// once the element handle is known, instead of an O(k) slice erase.
type PriceLevel struct {
	Price int64
	Total int64 // sum of resting quantity at this level, maintained incrementally

	orders *list.List               // list.Element.Value is *Order
	elems  map[OrderID]*list.Element
}

func newPriceLevel(price int64) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		orders: list.New(),
		elems:  make(map[OrderID]*list.Element),
	}
}

// pushBack appends an order to the tail of the level (latest time priority).
func (l *PriceLevel) pushBack(o *Order) {
	e := l.orders.PushBack(o)
	l.elems[o.ID] = e
	l.Total += o.Quantity
}

// pushFront re-inserts an order at the head of the level, preserving its
// original time priority relative to the rest of the level. Used when a
// maker is partially consumed during a match.
func (l *PriceLevel) pushFront(o *Order) {
	e := l.orders.PushFront(o)
	l.elems[o.ID] = e
	l.Total += o.Quantity
}

// front returns the head order without removing it.
func (l *PriceLevel) front() *Order {
	if e := l.orders.Front(); e != nil {
		return e.Value.(*Order)
	}
	return nil
}

// popFront removes and returns the head order.
func (l *PriceLevel) popFront() *Order {
	e := l.orders.Front()
	if e == nil {
		return nil
	}
	o := e.Value.(*Order)
	l.orders.Remove(e)
	delete(l.elems, o.ID)
	l.Total -= o.Quantity
	return o
}

// remove erases the order with the given id from anywhere in the level.
// Reports whether the order was found.
func (l *PriceLevel) remove(id OrderID) (*Order, bool) {
	e, ok := l.elems[id]
	if !ok {
		return nil, false
	}
	o := e.Value.(*Order)
	l.orders.Remove(e)
	delete(l.elems, id)
	l.Total -= o.Quantity
	return o, true
}

// moveToBack relocates an already-resting order to the tail, losing time
// priority, without changing its price or id.
func (l *PriceLevel) moveToBack(id OrderID, newQuantity int64) *Order {
	e, ok := l.elems[id]
	if !ok {
		return nil
	}
	o := e.Value.(*Order)
	l.Total -= o.Quantity
	o.Quantity = newQuantity
	l.orders.MoveToBack(e)
	l.Total += o.Quantity
	return o
}

// setQuantity overwrites the quantity of a resting order in place, keeping
// its position (and therefore time priority) unchanged.
func (l *PriceLevel) setQuantity(id OrderID, newQuantity int64) *Order {
	e, ok := l.elems[id]
	if !ok {
		return nil
	}
	o := e.Value.(*Order)
	l.Total += newQuantity - o.Quantity
	o.Quantity = newQuantity
	return o
}

// Empty reports whether the level has no resting orders.
func (l *PriceLevel) Empty() bool {
	return l.orders.Len() == 0
}

// Orders returns a defensive snapshot of the resting orders, head to tail.
func (l *PriceLevel) Orders() []Order {
	out := make([]Order, 0, l.orders.Len())
	for e := l.orders.Front(); e != nil; e = e.Next() {
		out = append(out, *e.Value.(*Order))
	}
	return out
}
