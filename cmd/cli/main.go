// Command cli is a line-oriented driver for the book, reading commands in
// the text-codec format from a fleet file and/or interactively from stdin,
// ported from the original run_exchange.py driver.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lobx/internal/book"
	"lobx/internal/codec"
	"lobx/internal/validate"
)

func main() {
	fleetFile := flag.String("fleet_file", "", "Path to an input file of text-codec command lines")
	priceIncrement := flag.Int64("price_increment", 1, "Tick size")
	quantityIncrement := flag.Int64("quantity_increment", 1, "Minimum change of order quantity")
	minPrice := flag.Int64("min_price", 0, "Minimum price")
	maxPrice := flag.Int64("max_price", book.DefaultMaxPrice, "Maximum price")
	sanityChecks := flag.Bool("sanity_checks", false, "Validate each command against bounds/tick size before dispatch")
	randomOrderID := flag.Bool("random_order_id", false, "Mint order ids as random tokens instead of sequential integers")
	interactive := flag.Bool("interactive", false, "Read further commands from stdin after the fleet file (or instead of one)")
	halfTimeTicks := flag.Float64("half_time_ticks", 0, "If > 0, print the equilibrium mid price using this half-time after the fleet file is processed")
	quiet := flag.Bool("quiet", false, "Suppress structured book logging")

	flag.Parse()

	fmt.Println("Opening Exchange")

	logger := log.Logger.Level(zerolog.InfoLevel)
	if *quiet {
		logger = zerolog.Nop()
	}

	idMode := book.SequentialFrom1
	if *randomOrderID {
		idMode = book.RandomToken
	}

	b := book.New(
		book.WithPriceIncrement(*priceIncrement),
		book.WithQuantityIncrement(*quantityIncrement),
		book.WithPriceBounds(*minPrice, *maxPrice),
		book.WithOrderIDMode(idMode),
		book.WithLogger(logger),
	)

	bounds := validate.Bounds{
		PriceIncrement:    *priceIncrement,
		QuantityIncrement: *quantityIncrement,
		MinPrice:          *minPrice,
		MaxPrice:          *maxPrice,
	}

	if *fleetFile != "" {
		runFile(b, *fleetFile, bounds, *sanityChecks)
		if *halfTimeTicks > 0 {
			printEquilibriumMid(b, *halfTimeTicks)
		}
	}

	if *interactive {
		runInteractive(b, bounds, *sanityChecks)
	}

	fmt.Println("Closing Exchange")
}

func runFile(b *book.Book, path string, bounds validate.Bounds, sanityChecks bool) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open fleet file: %v\n", err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		runLine(b, scanner.Text(), bounds, sanityChecks, false)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error reading fleet file: %v\n", err)
	}
}

func runInteractive(b *book.Book, bounds validate.Bounds, sanityChecks bool) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		runLine(b, scanner.Text(), bounds, sanityChecks, true)
	}
}

// runLine decodes and dispatches one command line, reporting fills/errors to
// stdout. A malformed or out-of-bounds line is dropped silently unless
// running interactively, matching the original driver's policy.
func runLine(b *book.Book, line string, bounds validate.Bounds, sanityChecks, isInteractive bool) {
	if line == "" {
		return
	}

	cmd, err := codec.Decode(line)
	if err != nil {
		if isInteractive {
			fmt.Println("Something wrong with message input.")
		}
		return
	}

	if sanityChecks {
		if err := validate.Command(cmd, bounds); err != nil {
			if isInteractive {
				fmt.Printf("rejected: %v\n", err)
			}
			return
		}
	}

	result := b.Dispatch(cmd)
	for _, fill := range result.Fills {
		fmt.Printf("FILL maker=%s side=%s qty=%d price=%d\n", fill.MakerID, fill.TakerSide, fill.Quantity, fill.Price)
	}
	if result.HasResting {
		fmt.Printf("RESTING id=%s\n", result.RestingOrderID)
	}
}

func printEquilibriumMid(b *book.Book, halfTimeTicks float64) {
	mid, err := b.EquilibriumMid(halfTimeTicks)
	if err != nil {
		fmt.Printf("EP: %v\n", err)
		return
	}
	if math.IsNaN(mid) {
		fmt.Println("EP: undefined")
		return
	}
	fmt.Printf("EP: %g\n", mid)
}
