package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lobx/internal/book"
	"lobx/internal/net"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	b := book.New(book.WithLogger(log.Logger.Level(zerolog.InfoLevel)))
	srv := net.New("0.0.0.0", 9001, b)

	go srv.Run(ctx)
	<-ctx.Done()
}
