package engine

import (
	"fmt"
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type Kind uint8

const (
	KindMarketTick Kind = iota
	KindMarketCandle
	KindSignalGenerated
	KindOrderSubmitted
	KindOrderFilled
	KindOrderCancelled
	KindFundingPayment
	KindMarginUpdate
	KindLiquidated
)

// Priority breaks timestamp ties in the scheduler. Market data sorts lowest,
// liquidation highest, so risk consequences of an instant are applied after
// the activity that caused them.
func (k Kind) Priority() int {
	switch k {
	case KindMarketTick, KindMarketCandle:
		return 0
	case KindSignalGenerated:
		return 1
	case KindOrderSubmitted:
		return 2
	case KindOrderFilled:
		return 3
	case KindOrderCancelled:
		return 4
	case KindFundingPayment:
		return 5
	case KindMarginUpdate:
		return 6
	case KindLiquidated:
		return 7
	}
	return int(k)
}

func (k Kind) String() string {
	switch k {
	case KindMarketTick:
		return "market-tick"
	case KindMarketCandle:
		return "market-candle"
	case KindSignalGenerated:
		return "signal-generated"
	case KindOrderSubmitted:
		return "order-submitted"
	case KindOrderFilled:
		return "order-filled"
	case KindOrderCancelled:
		return "order-cancelled"
	case KindFundingPayment:
		return "funding-payment"
	case KindMarginUpdate:
		return "margin-update"
	case KindLiquidated:
		return "liquidated"
	}
	return fmt.Sprintf("kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func ParseKind(v string) (Kind, error) {
	switch v {
	case "market-tick", "tick":
		return KindMarketTick, nil
	case "market-candle", "candle", "bar":
		return KindMarketCandle, nil
	case "signal-generated":
		return KindSignalGenerated, nil
	case "order-submitted":
		return KindOrderSubmitted, nil
	case "order-filled":
		return KindOrderFilled, nil
	case "order-cancelled":
		return KindOrderCancelled, nil
	case "funding-payment":
		return KindFundingPayment, nil
	case "margin-update":
		return KindMarginUpdate, nil
	case "liquidated":
		return KindLiquidated, nil
	}
	return 0, fmt.Errorf("unknown event kind %q", v)
}

// Payload is the closed union of per-kind event payloads.
type Payload interface {
	kind() Kind
}

type TickPayload struct {
	Tick common.Tick
}

type CandlePayload struct {
	Candle common.Candle
}

type SignalPayload struct {
	Signal common.Signal
}

type OrderSubmittedPayload struct {
	Order common.Order
}

type OrderFilledPayload struct {
	OrderId common.OrderId
	Side    common.Side
	Fill    common.Fill
}

type OrderCancelledPayload struct {
	OrderId common.OrderId
	Reason  string
}

type FundingPayload struct {
	Rate   fixed.Point
	Amount fixed.Point
}

type MarginUpdatePayload struct {
	Margin            fixed.Point
	MaintenanceMargin fixed.Point
	UnrealizedPnL     fixed.Point
}

type LiquidatedPayload struct {
	Price   fixed.Point
	Penalty fixed.Point
}

func (TickPayload) kind() Kind           { return KindMarketTick }
func (CandlePayload) kind() Kind         { return KindMarketCandle }
func (SignalPayload) kind() Kind         { return KindSignalGenerated }
func (OrderSubmittedPayload) kind() Kind { return KindOrderSubmitted }
func (OrderFilledPayload) kind() Kind    { return KindOrderFilled }
func (OrderCancelledPayload) kind() Kind { return KindOrderCancelled }
func (FundingPayload) kind() Kind        { return KindFundingPayment }
func (MarginUpdatePayload) kind() Kind   { return KindMarginUpdate }
func (LiquidatedPayload) kind() Kind     { return KindLiquidated }

// Event is a scheduled simulation event. Time is epoch milliseconds; the
// sequence number is assigned by the scheduler at enqueue time.
type Event struct {
	Time    int64
	Kind    Kind
	Payload Payload

	seq uint64
}

func NewEvent(at time.Time, payload Payload) Event {
	return Event{
		Time:    at.UnixMilli(),
		Kind:    payload.kind(),
		Payload: payload,
	}
}

func NewEventAt(unixMilli int64, payload Payload) Event {
	return Event{
		Time:    unixMilli,
		Kind:    payload.kind(),
		Payload: payload,
	}
}

func (e Event) TimeStamp() time.Time {
	return time.UnixMilli(e.Time).UTC()
}

// Seq is the scheduler-assigned sequence number, zero before enqueue.
func (e Event) Seq() uint64 {
	return e.seq
}

// Before reports whether e precedes o in the scheduler's total order
// (timestamp, priority, sequence).
func (e Event) Before(o Event) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	if e.Kind.Priority() != o.Kind.Priority() {
		return e.Kind.Priority() < o.Kind.Priority()
	}
	return e.seq < o.seq
}
