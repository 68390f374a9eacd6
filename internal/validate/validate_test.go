package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lobx/internal/book"
	"lobx/internal/validate"
)

func defaultBounds() validate.Bounds {
	return validate.Bounds{PriceIncrement: 5, QuantityIncrement: 10, MinPrice: 0, MaxPrice: 1000}
}

func TestCommand_AddWithinBounds(t *testing.T) {
	err := validate.Command(book.AddCommand(book.Buy, 20, 100), defaultBounds())
	assert.NoError(t, err)
}

func TestCommand_AddNonPositiveQuantity(t *testing.T) {
	err := validate.Command(book.AddCommand(book.Buy, 0, 100), defaultBounds())
	assert.ErrorIs(t, err, validate.ErrNonPositiveQuantity)
}

func TestCommand_AddOutOfRange(t *testing.T) {
	err := validate.Command(book.AddCommand(book.Buy, 10, 5000), defaultBounds())
	assert.ErrorIs(t, err, validate.ErrOutOfRange)
}

func TestCommand_AddOffTick(t *testing.T) {
	err := validate.Command(book.AddCommand(book.Buy, 7, 101), defaultBounds())
	assert.ErrorIs(t, err, validate.ErrOffTick)
}

func TestCommand_ModifyToZeroNeverRejected(t *testing.T) {
	err := validate.Command(book.ModifyCommand("x", 0), defaultBounds())
	assert.NoError(t, err)
}

func TestCommand_DeleteNeverRejected(t *testing.T) {
	err := validate.Command(book.DeleteCommand("x"), defaultBounds())
	assert.NoError(t, err)
}
