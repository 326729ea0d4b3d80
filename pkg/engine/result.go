package engine

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// TradeLogEntry records one order lifecycle or account event. Only the
// fields relevant to the kind are set.
type TradeLogEntry struct {
	TimeStamp time.Time      `json:"ts"`
	Kind      Kind           `json:"kind"`
	OrderId   common.OrderId `json:"order_id,omitempty"`
	Side      string         `json:"side,omitempty"`
	Qty       fixed.Point    `json:"qty,omitempty"`
	Price     fixed.Point    `json:"price,omitempty"`
	Fee       fixed.Point    `json:"fee,omitempty"`
	Liquidity string         `json:"liquidity,omitempty"`
	CashAfter fixed.Point    `json:"cash_after,omitempty"`
	PosQty    fixed.Point    `json:"pos_qty,omitempty"`
	AvgPrice  fixed.Point    `json:"avg_price,omitempty"`
	Amount    fixed.Point    `json:"amount,omitempty"`
	Margin    fixed.Point    `json:"margin,omitempty"`
	Maint     fixed.Point    `json:"maintenance_margin,omitempty"`
	UPnL      fixed.Point    `json:"unrealized_pnl,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

// EquityPoint is one sample of the account trajectory, appended after every
// processed event.
type EquityPoint struct {
	TimeStamp time.Time   `json:"ts"`
	Equity    fixed.Point `json:"equity"`
	Cash      fixed.Point `json:"cash"`
	Margin    fixed.Point `json:"margin"`
	Maint     fixed.Point `json:"maintenance_margin"`
	PosQty    fixed.Point `json:"pos_qty"`
	AvgPrice  fixed.Point `json:"avg_price"`
	LastPrice fixed.Point `json:"last_price"`
	MarkPrice fixed.Point `json:"mark_price"`
}

// Result is the full output of one run. Final is a snapshot copy, immune to
// later engine reuse.
type Result struct {
	TradeLog     []TradeLogEntry
	EquitySeries []EquityPoint
	Final        common.AccountState
}
