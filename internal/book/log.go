package book

// LogState emits a single structured info-level log line summarizing the
// book's top of book and order count, mirroring the teacher's LogBook
// debug command.
func (b *Book) LogState() {
	b.logger.Info().
		Int64("highBid", b.HighBid()).
		Int64("lowAsk", b.LowAsk()).
		Int("bidLevels", b.bids.Len()).
		Int("askLevels", b.asks.Len()).
		Int("orders", b.idx.len()).
		Msg("book state")
}
