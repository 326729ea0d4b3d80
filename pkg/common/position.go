package common

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Position is the account's net exposure. Qty is signed, positive for long.
// AvgPrice is zero exactly when Qty is zero.
type Position struct {
	Qty         fixed.Point `json:"qty"`
	AvgPrice    fixed.Point `json:"avg_price"`
	RealizedPnL fixed.Point `json:"realized_pnl"`
}

func (p Position) IsFlat() bool {
	return p.Qty.IsZero()
}

func (p Position) IsLong() bool {
	return p.Qty.IsPos()
}

func (p Position) IsShort() bool {
	return p.Qty.IsNeg()
}

func (p Position) Fields() []zap.Field {
	return []zap.Field{
		zap.String("qty", p.Qty.String()),
		zap.String("avg_price", p.AvgPrice.String()),
		zap.String("realized_pnl", p.RealizedPnL.String()),
	}
}
