// Command gen emits a randomized stream of text-codec command lines for
// soak-testing the book, ported from gen_test_file.py / gen_test_file_3.py.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"lobx/internal/codec"
	"lobx/internal/gen"
)

func main() {
	out := flag.String("out", "", "Output file path (default: stdout)")
	count := flag.Int("count", 300, "Number of commands to generate")
	mid := flag.Int64("mid", 100, "Center of the price random walk")
	seed := flag.Int64("seed", 1, "Random seed")
	averageTradeSize := flag.Int64("average_trade_size", 50, "Average trade size")
	quantityIncrement := flag.Int64("quantity_increment", 1, "Quantity increment")

	flag.Parse()

	p := gen.DefaultParams()
	p.Count = *count
	p.Mid = *mid
	p.AverageTradeSize = *averageTradeSize
	p.QuantityIncrement = *quantityIncrement

	rng := rand.New(rand.NewSource(*seed))
	commands := gen.Stream(p, rng)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	for _, cmd := range commands {
		line, err := codec.Encode(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to encode command: %v\n", err)
			continue
		}
		fmt.Fprintln(writer, line)
	}
}
