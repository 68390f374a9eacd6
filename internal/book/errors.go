package book

import "errors"

var (
	// ErrUnknownOrder marks a Delete/Modify referencing an id not currently
	// resting in the book. Dispatch treats this as a silent no-op per the
	// book's error taxonomy (Result.Accepted is false, nothing else
	// changes); delete and modify log it at debug level rather than
	// surfacing it as a return value.
	ErrUnknownOrder = errors.New("book: unknown order id")

	// ErrEmptyBookQuery is returned by the equilibrium-mid estimator when
	// either side of the book is empty and a mid is therefore undefined.
	ErrEmptyBookQuery = errors.New("book: equilibrium-mid undefined, a side is empty")

	// ErrInvalidQuantity guards Add against non-positive incoming
	// quantities. As with ErrUnknownOrder, the guard is a silent no-op
	// (empty Result) with the reason logged at debug level, not returned.
	ErrInvalidQuantity = errors.New("book: quantity must be positive")
)
