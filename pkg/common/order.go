package common

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type OrderId = int64

type OrderMode int

const (
	// OrderModePassive rests until the book crosses its limit price.
	OrderModePassive OrderMode = iota
	// OrderModeAggressive attempts to take liquidity at or better than its
	// limit price on every evaluation.
	OrderModeAggressive
)

func (m OrderMode) String() string {
	if m == OrderModePassive {
		return "passive"
	}
	return "aggressive"
}

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Liquidity int

const (
	LiquidityMaker Liquidity = iota
	LiquidityTaker
)

func (l Liquidity) String() string {
	if l == LiquidityMaker {
		return "maker"
	}
	return "taker"
}

type Fill struct {
	Qty       fixed.Point `json:"qty"`
	Price     fixed.Point `json:"price"`
	Fee       fixed.Point `json:"fee"`
	Liquidity Liquidity   `json:"liquidity"`
	TimeStamp time.Time   `json:"ts"`
}

// Order is a resting limit order. Market orders are fire-and-forget and never
// persist as entities.
type Order struct {
	Id         OrderId     `json:"id"`
	Side       Side        `json:"side"`
	Qty        fixed.Point `json:"qty"`
	Remaining  fixed.Point `json:"remaining"`
	LimitPrice fixed.Point `json:"limit_price"`
	Mode       OrderMode   `json:"mode"`
	Status     OrderStatus `json:"status"`

	CreatedAt  time.Time `json:"created_at"`
	ActivateAt time.Time `json:"activate_at"`
	// ExpireAt zero means no TTL.
	ExpireAt          time.Time `json:"expire_at,omitempty"`
	CancelRequestedAt time.Time `json:"cancel_requested_at,omitempty"`
	CancelEffectiveAt time.Time `json:"cancel_effective_at,omitempty"`

	Fills []Fill `json:"fills,omitempty"`

	Source    string    `json:"src,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	TimeStamp time.Time `json:"ts"`
}

// Active reports whether the order latency has elapsed and the order is
// eligible for matching.
func (o *Order) Active(now time.Time) bool {
	return o.Status == OrderStatusOpen && !now.Before(o.ActivateAt)
}

func (o *Order) Expired(now time.Time) bool {
	return !o.ExpireAt.IsZero() && now.After(o.ExpireAt)
}

func (o *Order) CancelDue(now time.Time) bool {
	return !o.CancelEffectiveAt.IsZero() && !now.Before(o.CancelEffectiveAt)
}
