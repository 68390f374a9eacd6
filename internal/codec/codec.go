// Package codec implements the text line protocol used by historical input
// files: one command per line, fields separated by '-'.
//
//	A-B-<qty>-<price>   Add, buy
//	A-S-<qty>-<price>   Add, sell
//	D-<id>              Delete
//	M-<id>-<qty>        Modify
//
// This mirrors the original `message.py` field layout exactly, ported into a
// Decode/Encode pair. The codec is explicitly outside the book's core per
// the specification — it never touches book state, only parses and formats
// command lines.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"lobx/internal/book"
)

// ErrMalformed marks a line that is not a well-formed command: wrong verb,
// wrong field count, or a non-integer field.
type ErrMalformed struct {
	Line string
	Why  string
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("codec: malformed line %q: %s", e.Line, e.Why)
}

// Decode parses a single command line. The caller decides what to do with a
// malformed line (the specification's policy is to drop it silently, or let
// the host flag it); Decode always reports the error rather than silently
// discarding, leaving that choice to the caller.
func Decode(line string) (book.Command, error) {
	fields := strings.Split(line, "-")
	if len(fields) == 0 {
		return book.Command{}, &ErrMalformed{Line: line, Why: "empty line"}
	}

	switch fields[0] {
	case "A":
		return decodeAdd(line, fields)
	case "D":
		return decodeDelete(line, fields)
	case "M":
		return decodeModify(line, fields)
	default:
		return book.Command{}, &ErrMalformed{Line: line, Why: "unknown verb " + fields[0]}
	}
}

func decodeAdd(line string, fields []string) (book.Command, error) {
	if len(fields) != 4 {
		return book.Command{}, &ErrMalformed{Line: line, Why: "add requires 4 fields"}
	}
	var side book.Side
	switch fields[1] {
	case "B":
		side = book.Buy
	case "S":
		side = book.Sell
	default:
		return book.Command{}, &ErrMalformed{Line: line, Why: "side must be B or S"}
	}
	qty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return book.Command{}, &ErrMalformed{Line: line, Why: "quantity not an integer"}
	}
	price, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return book.Command{}, &ErrMalformed{Line: line, Why: "price not an integer"}
	}
	return book.AddCommand(side, qty, price), nil
}

func decodeDelete(line string, fields []string) (book.Command, error) {
	if len(fields) != 2 {
		return book.Command{}, &ErrMalformed{Line: line, Why: "delete requires 2 fields"}
	}
	return book.DeleteCommand(book.OrderID(fields[1])), nil
}

func decodeModify(line string, fields []string) (book.Command, error) {
	if len(fields) != 3 {
		return book.Command{}, &ErrMalformed{Line: line, Why: "modify requires 3 fields"}
	}
	qty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return book.Command{}, &ErrMalformed{Line: line, Why: "quantity not an integer"}
	}
	return book.ModifyCommand(book.OrderID(fields[1]), qty), nil
}

// Encode formats a Command back into its text-line form. Round-trips with
// Decode for all well-formed commands.
func Encode(cmd book.Command) (string, error) {
	switch cmd.Kind {
	case book.KindAdd:
		sideStr := "B"
		if cmd.Side == book.Sell {
			sideStr = "S"
		}
		return fmt.Sprintf("A-%s-%d-%d", sideStr, cmd.Quantity, cmd.Price), nil
	case book.KindDelete:
		return fmt.Sprintf("D-%s", cmd.OrderID), nil
	case book.KindModify:
		return fmt.Sprintf("M-%s-%d", cmd.OrderID, cmd.NewQuantity), nil
	default:
		return "", fmt.Errorf("codec: unknown command kind %v", cmd.Kind)
	}
}
