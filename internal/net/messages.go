// Package net implements the binary wire protocol and TCP server that embed
// the book's core. These are explicitly external collaborators per the
// specification — the matching engine never depends on this package.
package net

import (
	"encoding/binary"
	"errors"
	"fmt"

	"lobx/internal/book"
)

var (
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrMessageTooShort    = errors.New("message too short for specified payload length")
)

// MessageType discriminates the binary frames a client may send.
type MessageType uint16

const (
	Heartbeat MessageType = iota
	NewOrder
	CancelOrder
	ModifyOrder
	LogBook
)

// ReportMessageType discriminates the frames the server sends back.
type ReportMessageType uint8

const (
	ExecutionReport ReportMessageType = iota
	ErrorReport
)

type Message interface {
	GetType() MessageType
}

const BaseMessageHeaderLen = 2

// BaseMessage is embedded by every concrete message to carry its type tag.
type BaseMessage struct {
	TypeOf MessageType
}

func (m BaseMessage) GetType() MessageType { return m.TypeOf }

// parseMessage reads the 2-byte type tag and dispatches to the matching
// payload parser.
func parseMessage(msg []byte) (Message, error) {
	if len(msg) < BaseMessageHeaderLen {
		return nil, ErrMessageTooShort
	}
	typeOf := MessageType(binary.BigEndian.Uint16(msg[0:2]))
	payload := msg[2:]

	switch typeOf {
	case NewOrder:
		return parseNewOrder(payload)
	case CancelOrder:
		return parseCancelOrder(payload)
	case ModifyOrder:
		return parseModifyOrder(payload)
	case LogBook:
		return LogBookMessage{BaseMessage: BaseMessage{TypeOf: LogBook}}, nil
	default:
		return nil, ErrInvalidMessageType
	}
}

// NewOrderMessage carries an Add command: side(1) + quantity(8) + price(8).
type NewOrderMessage struct {
	BaseMessage
	Side     book.Side
	Quantity int64
	Price    int64
}

const newOrderPayloadLen = 1 + 8 + 8

func (m NewOrderMessage) Command() book.Command {
	return book.AddCommand(m.Side, m.Quantity, m.Price)
}

func parseNewOrder(payload []byte) (NewOrderMessage, error) {
	if len(payload) < newOrderPayloadLen {
		return NewOrderMessage{}, ErrMessageTooShort
	}
	side := book.Buy
	if payload[0] != 0 {
		side = book.Sell
	}
	quantity := int64(binary.BigEndian.Uint64(payload[1:9]))
	price := int64(binary.BigEndian.Uint64(payload[9:17]))
	return NewOrderMessage{
		BaseMessage: BaseMessage{TypeOf: NewOrder},
		Side:        side,
		Quantity:    quantity,
		Price:       price,
	}, nil
}

func (m NewOrderMessage) Serialize() []byte {
	buf := make([]byte, BaseMessageHeaderLen+newOrderPayloadLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(NewOrder))
	if m.Side == book.Sell {
		buf[2] = 1
	}
	binary.BigEndian.PutUint64(buf[3:11], uint64(m.Quantity))
	binary.BigEndian.PutUint64(buf[11:19], uint64(m.Price))
	return buf
}

// CancelOrderMessage carries a Delete command: orderIDLen(2) + orderID(n).
type CancelOrderMessage struct {
	BaseMessage
	OrderID book.OrderID
}

func (m CancelOrderMessage) Command() book.Command {
	return book.DeleteCommand(m.OrderID)
}

func parseCancelOrder(payload []byte) (CancelOrderMessage, error) {
	id, _, err := readLengthPrefixedString(payload)
	if err != nil {
		return CancelOrderMessage{}, err
	}
	return CancelOrderMessage{BaseMessage: BaseMessage{TypeOf: CancelOrder}, OrderID: book.OrderID(id)}, nil
}

func (m CancelOrderMessage) Serialize() []byte {
	idBytes := []byte(m.OrderID)
	buf := make([]byte, BaseMessageHeaderLen+2+len(idBytes))
	binary.BigEndian.PutUint16(buf[0:2], uint16(CancelOrder))
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(idBytes)))
	copy(buf[4:], idBytes)
	return buf
}

// ModifyOrderMessage carries a Modify command: orderIDLen(2) + orderID(n) + quantity(8).
type ModifyOrderMessage struct {
	BaseMessage
	OrderID  book.OrderID
	Quantity int64
}

func (m ModifyOrderMessage) Command() book.Command {
	return book.ModifyCommand(m.OrderID, m.Quantity)
}

func parseModifyOrder(payload []byte) (ModifyOrderMessage, error) {
	id, rest, err := readLengthPrefixedString(payload)
	if err != nil {
		return ModifyOrderMessage{}, err
	}
	if len(rest) < 8 {
		return ModifyOrderMessage{}, ErrMessageTooShort
	}
	quantity := int64(binary.BigEndian.Uint64(rest[0:8]))
	return ModifyOrderMessage{
		BaseMessage: BaseMessage{TypeOf: ModifyOrder},
		OrderID:     book.OrderID(id),
		Quantity:    quantity,
	}, nil
}

func (m ModifyOrderMessage) Serialize() []byte {
	idBytes := []byte(m.OrderID)
	buf := make([]byte, BaseMessageHeaderLen+2+len(idBytes)+8)
	binary.BigEndian.PutUint16(buf[0:2], uint16(ModifyOrder))
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(idBytes)))
	off := 4
	copy(buf[off:], idBytes)
	off += len(idBytes)
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(m.Quantity))
	return buf
}

// LogBookMessage requests a diagnostic dump of the book's current state.
type LogBookMessage struct {
	BaseMessage
}

func readLengthPrefixedString(payload []byte) (string, []byte, error) {
	if len(payload) < 2 {
		return "", nil, ErrMessageTooShort
	}
	n := int(binary.BigEndian.Uint16(payload[0:2]))
	if len(payload) < 2+n {
		return "", nil, ErrMessageTooShort
	}
	return string(payload[2 : 2+n]), payload[2+n:], nil
}

// Report is the server-to-client wire frame: either an execution report
// (one per fill) or an error report. Resting orders are not acknowledged.
type Report struct {
	Type     ReportMessageType
	Side     book.Side
	MakerID  book.OrderID
	Price    int64
	Quantity int64
	Err      string
}

const reportFixedHeaderLen = 1 + 1 + 8 + 8 + 2

// Serialize converts the report to its wire form:
// type(1) + side(1) + price(8) + quantity(8) + makerIDLen(2) + makerID(n) + err(n).
func (r Report) Serialize() []byte {
	makerBytes := []byte(r.MakerID)
	errBytes := []byte(r.Err)
	buf := make([]byte, reportFixedHeaderLen+len(makerBytes)+len(errBytes))
	buf[0] = byte(r.Type)
	if r.Side == book.Sell {
		buf[1] = 1
	}
	binary.BigEndian.PutUint64(buf[2:10], uint64(r.Price))
	binary.BigEndian.PutUint64(buf[10:18], uint64(r.Quantity))
	binary.BigEndian.PutUint16(buf[18:20], uint16(len(makerBytes)))
	off := 20
	copy(buf[off:], makerBytes)
	off += len(makerBytes)
	copy(buf[off:], errBytes)
	return buf
}

// fillReport builds an execution report for one Fill produced by a match.
func fillReport(f book.Fill) Report {
	return Report{
		Type:     ExecutionReport,
		Side:     f.TakerSide,
		MakerID:  f.MakerID,
		Price:    f.Price,
		Quantity: f.Quantity,
	}
}

// errorReport builds an error report frame for the given error.
func errorReport(err error) Report {
	return Report{Type: ErrorReport, Err: fmt.Sprintf("%v", err)}
}
