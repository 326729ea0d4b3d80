package sandbox

import (
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/exchange"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// SlippageModel prices the synthetic remainder of an order once book
// liquidity is exhausted. Implementations return the offset from the
// reference price; the simulator applies it against the taker's side.
type SlippageModel interface {
	Offset(ref fixed.Point, qty fixed.Point, book exchange.Book) fixed.Point
}

// FixedSlippage is a constant price offset.
type FixedSlippage struct {
	Amount fixed.Point
}

func (s FixedSlippage) Offset(fixed.Point, fixed.Point, exchange.Book) fixed.Point {
	return s.Amount
}

// SpreadSlippage is a fraction of the current bid/ask spread.
type SpreadSlippage struct {
	Fraction fixed.Point
}

func (s SpreadSlippage) Offset(_ fixed.Point, _ fixed.Point, book exchange.Book) fixed.Point {
	return book.Spread().Mul(s.Fraction)
}

// LiquiditySlippage grows with order size relative to average volume:
// base + impact * qty / avgVolume.
type LiquiditySlippage struct {
	Base      fixed.Point
	Impact    fixed.Point
	AvgVolume fixed.Point
}

func (s LiquiditySlippage) Offset(_ fixed.Point, qty fixed.Point, _ exchange.Book) fixed.Point {
	if !s.AvgVolume.IsPos() {
		return s.Base
	}
	return s.Base.Add(s.Impact.Mul(qty).Div(s.AvgVolume))
}

// applySlippage worsens the reference price for the taker's side.
func applySlippage(ref, offset fixed.Point, side common.Side) fixed.Point {
	if side == common.SideBuy {
		return ref.Add(offset)
	}
	return ref.Sub(offset)
}
