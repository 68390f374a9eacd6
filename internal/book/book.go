package book

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderIDMode selects how the book mints new order identities.
type OrderIDMode int

const (
	// SequentialFrom1 assigns monotonically increasing integers starting at 1.
	SequentialFrom1 OrderIDMode = iota
	// RandomToken assigns a unique random token (a UUID) per order.
	RandomToken
)

// Book is a two-sided limit order book and matching engine for a single
// instrument. A Book is not safe for concurrent use; callers embedding it in
// a multi-threaded host must serialize calls (single dispatcher goroutine,
// or an external mutex) per its concurrency model.
type Book struct {
	priceIncrement    int64
	quantityIncrement int64
	minPrice          int64
	maxPrice          int64
	idMode            OrderIDMode

	bids *SideBook
	asks *SideBook
	idx  *orderIndex

	seq    uint64 // next sequential id, when idMode == SequentialFrom1
	logger zerolog.Logger
}

// Option configures a Book at construction time.
type Option func(*Book)

// WithPriceIncrement sets the minimum price granularity. Default 1.
func WithPriceIncrement(inc int64) Option {
	return func(b *Book) { b.priceIncrement = inc }
}

// WithQuantityIncrement sets the minimum order-size granularity. Default 1.
func WithQuantityIncrement(inc int64) Option {
	return func(b *Book) { b.quantityIncrement = inc }
}

// WithPriceBounds sets the valid inclusive price range. Defaults to
// [0, DefaultMaxPrice].
func WithPriceBounds(min, max int64) Option {
	return func(b *Book) {
		b.minPrice = min
		b.maxPrice = max
	}
}

// WithOrderIDMode selects sequential or random order id generation.
// Default SequentialFrom1.
func WithOrderIDMode(mode OrderIDMode) Option {
	return func(b *Book) { b.idMode = mode }
}

// WithLogger attaches a zerolog.Logger for book diagnostics (debug-level
// no-op notes, and LogState's info-level summary).
// Defaults to a disabled logger (no output).
func WithLogger(l zerolog.Logger) Option {
	return func(b *Book) { b.logger = l }
}

// New constructs an empty Book with the given options applied over the
// spec's defaults.
func New(opts ...Option) *Book {
	b := &Book{
		priceIncrement:    1,
		quantityIncrement: 1,
		minPrice:          0,
		maxPrice:          DefaultMaxPrice,
		idMode:            SequentialFrom1,
		idx:               newOrderIndex(),
		logger:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.bids = newSideBook(Buy, b.minPrice, b.maxPrice)
	b.asks = newSideBook(Sell, b.minPrice, b.maxPrice)
	return b
}

// HighBid returns the best bid price, or the book's min-price sentinel if
// the bid side is empty.
func (b *Book) HighBid() int64 { return b.bids.Best() }

// LowAsk returns the best ask price, or the book's max-price sentinel if
// the ask side is empty.
func (b *Book) LowAsk() int64 { return b.asks.Best() }

// PriceIncrement returns the configured tick size.
func (b *Book) PriceIncrement() int64 { return b.priceIncrement }

// OrderCount returns the total number of live resting orders across both
// sides — equivalently, the size of the order index.
func (b *Book) OrderCount() int { return b.idx.len() }

func (b *Book) sideBook(s Side) *SideBook {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

func (b *Book) opposite(s Side) *SideBook {
	if s == Buy {
		return b.asks
	}
	return b.bids
}

// nextID mints the next order identity according to idMode.
func (b *Book) nextID() OrderID {
	switch b.idMode {
	case RandomToken:
		// Hex form (no dashes), matching the historical text codec where
		// fields are '-'-delimited and an id may not itself contain '-'.
		id := uuid.New()
		return OrderID(strings.ReplaceAll(id.String(), "-", ""))
	default:
		n := atomic.AddUint64(&b.seq, 1)
		return OrderID(strconv.FormatUint(n, 10))
	}
}
