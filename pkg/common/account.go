package common

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// AccountState is owned exclusively by the engine. Collaborators only ever
// see value copies.
type AccountState struct {
	Cash              fixed.Point `json:"cash"`
	Equity            fixed.Point `json:"equity"`
	Margin            fixed.Point `json:"margin"`
	MaintenanceMargin fixed.Point `json:"maintenance_margin"`
	UnrealizedPnL     fixed.Point `json:"unrealized_pnl"`
	LastPrice         fixed.Point `json:"last_price"`
	MarkPrice         fixed.Point `json:"mark_price"`
	Position          Position    `json:"position"`
	Liquidated        bool        `json:"liquidated"`
}

func (s AccountState) Fields() []zap.Field {
	return []zap.Field{
		zap.String("cash", s.Cash.String()),
		zap.String("equity", s.Equity.String()),
		zap.String("margin", s.Margin.String()),
		zap.String("maintenance_margin", s.MaintenanceMargin.String()),
		zap.String("unrealized_pnl", s.UnrealizedPnL.String()),
		zap.String("position_qty", s.Position.Qty.String()),
		zap.Bool("liquidated", s.Liquidated),
	}
}
