package risk

import (
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Snapshot is one margin evaluation at a mark price.
type Snapshot struct {
	PositionNotional  fixed.Point
	InitialMargin     fixed.Point
	MaintenanceMargin fixed.Point
	UnrealizedPnL     fixed.Point
}

// UnrealizedPnl values the open position at the mark price, falling back to
// the average entry price when no mark is available.
func UnrealizedPnl(pos common.Position, markPrice fixed.Point) fixed.Point {
	if pos.IsFlat() {
		return fixed.Zero
	}
	if markPrice.IsZero() {
		markPrice = pos.AvgPrice
	}
	return pos.Qty.Mul(markPrice.Sub(pos.AvgPrice))
}

func MarginSnapshot(pos common.Position, markPrice, initialRate, maintenanceRate fixed.Point) Snapshot {
	notional := pos.Qty.Abs().Mul(markPrice.Abs())
	return Snapshot{
		PositionNotional:  notional,
		InitialMargin:     notional.Mul(fixed.Max(fixed.Zero, initialRate)),
		MaintenanceMargin: notional.Mul(fixed.Max(fixed.Zero, maintenanceRate)),
		UnrealizedPnL:     UnrealizedPnl(pos, markPrice),
	}
}

// ShouldLiquidate reports the liquidation condition: an open position whose
// projected equity no longer covers the maintenance margin.
func ShouldLiquidate(cash fixed.Point, pos common.Position, snap Snapshot) bool {
	if pos.IsFlat() {
		return false
	}
	return cash.Add(snap.UnrealizedPnL).Lt(snap.MaintenanceMargin)
}

// Penalty is the cash deduction applied at liquidation time.
func Penalty(positionNotional, penaltyRate fixed.Point) fixed.Point {
	return positionNotional.Mul(fixed.Max(fixed.Zero, penaltyRate))
}
