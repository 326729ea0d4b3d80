package exchange

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Instrument carries the venue constraints the fill simulation enforces.
// Zero-valued constraints are treated as absent.
type Instrument struct {
	Symbol      string
	TickSize    fixed.Point
	LotStep     fixed.Point
	MinQty      fixed.Point
	MaxQty      fixed.Point
	MinNotional fixed.Point

	MakerFeeRate fixed.Point
	TakerFeeRate fixed.Point
}

func (i Instrument) Fields() []zap.Field {
	return []zap.Field{
		zap.String("symbol", i.Symbol),
		zap.String("tick_size", i.TickSize.String()),
		zap.String("lot_step", i.LotStep.String()),
		zap.String("min_qty", i.MinQty.String()),
		zap.String("max_qty", i.MaxQty.String()),
		zap.String("min_notional", i.MinNotional.String()),
		zap.String("maker_fee_rate", i.MakerFeeRate.String()),
		zap.String("taker_fee_rate", i.TakerFeeRate.String()),
	}
}
