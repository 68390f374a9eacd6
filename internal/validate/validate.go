// Package validate implements the optional range/tick checks the
// specification places outside the book's core: price and quantity bounds,
// and tick-size conformance. It is a pure function of a Command and a
// Book's configured bounds/increments; the book itself performs none of
// this checking.
package validate

import (
	"errors"
	"fmt"

	"lobx/internal/book"
)

var (
	// ErrOutOfRange marks a price outside [minPrice, maxPrice].
	ErrOutOfRange = errors.New("validate: price out of range")
	// ErrOffTick marks a price or quantity that is not an integer multiple
	// of the configured increment.
	ErrOffTick = errors.New("validate: value off increment tick")
	// ErrNonPositiveQuantity marks an Add with quantity <= 0, or a Modify
	// with a negative new quantity.
	ErrNonPositiveQuantity = errors.New("validate: quantity must be positive")
)

// Bounds captures the book construction parameters a validator checks
// against. Callers typically derive these straight from the Book they will
// dispatch into.
type Bounds struct {
	PriceIncrement    int64
	QuantityIncrement int64
	MinPrice          int64
	MaxPrice          int64
}

// Command validates an incoming Command before it ever reaches Book.Dispatch.
// Delete and Modify-to-zero commands are never rejected on range/tick
// grounds — only Add, and a Modify's new quantity, are checked.
func Command(cmd book.Command, b Bounds) error {
	switch cmd.Kind {
	case book.KindAdd:
		if cmd.Quantity <= 0 {
			return fmt.Errorf("%w: %d", ErrNonPositiveQuantity, cmd.Quantity)
		}
		if err := checkIncrement(cmd.Quantity, b.QuantityIncrement); err != nil {
			return err
		}
		if cmd.Price < b.MinPrice || cmd.Price > b.MaxPrice {
			return fmt.Errorf("%w: price %d not in [%d, %d]", ErrOutOfRange, cmd.Price, b.MinPrice, b.MaxPrice)
		}
		return checkIncrement(cmd.Price, b.PriceIncrement)
	case book.KindModify:
		if cmd.NewQuantity < 0 {
			return fmt.Errorf("%w: %d", ErrNonPositiveQuantity, cmd.NewQuantity)
		}
		if cmd.NewQuantity == 0 {
			return nil
		}
		return checkIncrement(cmd.NewQuantity, b.QuantityIncrement)
	default:
		return nil
	}
}

func checkIncrement(value, increment int64) error {
	if increment <= 1 {
		return nil
	}
	if value%increment != 0 {
		return fmt.Errorf("%w: %d not a multiple of %d", ErrOffTick, value, increment)
	}
	return nil
}
