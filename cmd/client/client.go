// Command client is a minimal TCP client for the binary wire protocol,
// generalizing the teacher's multi-asset client to the single-instrument
// book: place/cancel/modify orders and stream back execution reports.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"lobx/internal/book"
	lobnet "lobx/internal/net"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "Address of the exchange server")
	action := flag.String("action", "place", "Action to perform: ['place', 'cancel', 'modify', 'log']")

	sideStr := flag.String("side", "buy", "Order side: 'buy' or 'sell'")
	price := flag.Int64("price", 100, "Limit price (integer ticks)")
	qtyStr := flag.String("qty", "10", "Quantity or comma-separated list (e.g. 10,20,50)")

	orderID := flag.String("id", "", "Order id to cancel or modify")

	flag.Parse()

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		log.Fatalf("failed to connect to server at %s: %v", *serverAddr, err)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *serverAddr)

	go readReports(conn)

	side := book.Buy
	if strings.EqualFold(*sideStr, "sell") {
		side = book.Sell
	}

	switch strings.ToLower(*action) {
	case "place":
		for _, q := range parseQuantities(*qtyStr) {
			msg := lobnet.NewOrderMessage{Side: side, Quantity: q, Price: *price}
			if _, err := conn.Write(msg.Serialize()); err != nil {
				log.Printf("failed to place order (qty %d): %v", q, err)
				continue
			}
			fmt.Printf("-> sent %s %d @ %d\n", strings.ToUpper(*sideStr), q, *price)
			time.Sleep(5 * time.Millisecond)
		}

	case "cancel":
		if *orderID == "" {
			log.Fatal("error: -id is required for cancellation")
		}
		msg := lobnet.CancelOrderMessage{OrderID: book.OrderID(*orderID)}
		if _, err := conn.Write(msg.Serialize()); err != nil {
			log.Printf("failed to send cancel request: %v", err)
		} else {
			fmt.Printf("-> sent cancel for id %s\n", *orderID)
		}

	case "modify":
		if *orderID == "" {
			log.Fatal("error: -id is required for modify")
		}
		qty, err := strconv.ParseInt(*qtyStr, 10, 64)
		if err != nil {
			log.Fatalf("invalid -qty: %v", err)
		}
		msg := lobnet.ModifyOrderMessage{OrderID: book.OrderID(*orderID), Quantity: qty}
		if _, err := conn.Write(msg.Serialize()); err != nil {
			log.Printf("failed to send modify request: %v", err)
		} else {
			fmt.Printf("-> sent modify for id %s to qty %d\n", *orderID, qty)
		}

	case "log":
		buf := make([]byte, lobnet.BaseMessageHeaderLen)
		binary.BigEndian.PutUint16(buf[0:2], uint16(lobnet.LogBook))
		if _, err := conn.Write(buf); err != nil {
			log.Printf("failed to send log request: %v", err)
		} else {
			fmt.Println("-> sent log request")
		}

	default:
		log.Fatalf("unknown action: %s", *action)
	}

	fmt.Println("\nlistening for reports... (ctrl+c to exit)")
	select {}
}

func parseQuantities(input string) []int64 {
	var result []int64
	for _, p := range strings.Split(input, ",") {
		p = strings.TrimSpace(p)
		if val, err := strconv.ParseInt(p, 10, 64); err == nil {
			result = append(result, val)
		} else {
			log.Printf("warning: invalid quantity %q, skipping", p)
		}
	}
	return result
}

// readReports continuously reads and prints Report frames from the server.
func readReports(conn net.Conn) {
	const fixedLen = 1 + 1 + 8 + 8 + 2
	for {
		header := make([]byte, fixedLen)
		if _, err := io.ReadFull(conn, header); err != nil {
			if err != io.EOF {
				log.Printf("connection lost: %v", err)
			}
			os.Exit(0)
		}

		msgType := lobnet.ReportMessageType(header[0])
		sideByte := header[1]
		price := int64(binary.BigEndian.Uint64(header[2:10]))
		qty := int64(binary.BigEndian.Uint64(header[10:18]))
		makerLen := binary.BigEndian.Uint16(header[18:20])

		rest := make([]byte, makerLen)
		if makerLen > 0 {
			if _, err := io.ReadFull(conn, rest); err != nil {
				log.Printf("error reading report body: %v", err)
				return
			}
		}
		makerID := string(rest)

		if msgType == lobnet.ErrorReport {
			fmt.Printf("\n[error] %s\n", makerID)
			continue
		}

		sideStr := "BUY"
		if sideByte == 1 {
			sideStr = "SELL"
		}
		fmt.Printf("\n[fill] %s %d @ %d vs maker %s\n", sideStr, qty, price, makerID)
	}
}
