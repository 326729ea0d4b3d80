package position

import (
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Ledger tracks the account's net position across fills. Invariant: average
// price is zero exactly when quantity is zero.
type Ledger struct {
	pos common.Position
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Position() common.Position {
	return l.pos
}

func (l *Ledger) Reset() {
	l.pos = common.Position{}
}

// ApplyFill books one fill and returns the realized profit delta it caused.
// Same-direction fills (or opening from flat) blend the average price by
// notional weight and realize only the fee. Reducing fills realize
// (fillPrice - avgPrice) on the closed portion, signed by the prior
// direction. A fill that flips the sign restarts the average price at the
// fill price; one that lands exactly flat resets it to zero.
func (l *Ledger) ApplyFill(side common.Side, qty, price, fee fixed.Point) fixed.Point {
	signedQty := qty
	if side == common.SideSell {
		signedQty = qty.Neg()
	}

	prior := l.pos.Qty
	newQty := prior.Add(signedQty)
	realized := fee.Neg()

	switch {
	case prior.IsZero() || prior.Sign() == signedQty.Sign():
		// Flat open or same-direction add, notional-weighted average.
		priorNotional := prior.Abs().Mul(l.pos.AvgPrice)
		fillNotional := qty.Mul(price)
		l.pos.AvgPrice = priorNotional.Add(fillNotional).Div(newQty.Abs())

	default:
		closedQty := fixed.Min(prior.Abs(), qty)
		pnl := price.Sub(l.pos.AvgPrice).Mul(closedQty)
		if prior.IsNeg() {
			pnl = pnl.Neg()
		}
		realized = realized.Add(pnl)

		if newQty.IsZero() {
			l.pos.AvgPrice = fixed.Zero
		} else if newQty.Sign() != prior.Sign() {
			// Flipped through flat, remainder opens at the fill price.
			l.pos.AvgPrice = price
		}
	}

	l.pos.Qty = newQty
	l.pos.RealizedPnL = l.pos.RealizedPnL.Add(realized)
	return realized
}
