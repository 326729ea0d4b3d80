package engine

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/tools/risk"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func (e *Engine) onMarketData(ev Event, last fixed.Point) {
	if !last.IsZero() {
		e.state.LastPrice = last
		e.state.MarkPrice = last
	}

	rc := e.context(ev)
	e.sched.Enqueue(e.strategy.OnEvent(ev, rc)...)
	e.sched.Enqueue(e.execution.OnMarketEvent(ev, rc)...)

	e.anchorFunding(ev.Time)
	e.evalRisk(ev.Time)
}

func (e *Engine) onOrderSubmitted(ev Event, p OrderSubmittedPayload) {
	order := p.Order
	e.orders[order.Id] = &order

	e.tradeLog = append(e.tradeLog, TradeLogEntry{
		TimeStamp: ev.TimeStamp(),
		Kind:      ev.Kind,
		OrderId:   order.Id,
		Side:      order.Side.String(),
		Qty:       order.Qty,
		Price:     order.LimitPrice,
	})
}

// applyFill books a fill against the ledger with the sign-aware cash debit
// cash -= signedQty * fillPrice. Fees accrue to realized profit, not cash.
func (e *Engine) applyFill(ev Event, p OrderFilledPayload) {
	signedQty := p.Fill.Qty
	if p.Side == common.SideSell {
		signedQty = signedQty.Neg()
	}

	e.state.Cash = e.state.Cash.Sub(signedQty.Mul(p.Fill.Price))
	e.ledger.ApplyFill(p.Side, p.Fill.Qty, p.Fill.Price, p.Fill.Fee)
	e.state.Position = e.ledger.Position()

	if order, ok := e.orders[p.OrderId]; ok && order.Status == common.OrderStatusOpen {
		order.Fills = append(order.Fills, p.Fill)
		order.Remaining = order.Remaining.Sub(p.Fill.Qty)
		if !order.Remaining.IsPos() {
			order.Status = common.OrderStatusFilled
		}
	}

	e.tradeLog = append(e.tradeLog, TradeLogEntry{
		TimeStamp: ev.TimeStamp(),
		Kind:      KindOrderFilled,
		OrderId:   p.OrderId,
		Side:      p.Side.String(),
		Qty:       p.Fill.Qty,
		Price:     p.Fill.Price,
		Fee:       p.Fill.Fee,
		Liquidity: p.Fill.Liquidity.String(),
		CashAfter: e.state.Cash,
		PosQty:    e.state.Position.Qty,
		AvgPrice:  e.state.Position.AvgPrice,
	})
}

func (e *Engine) onOrderCancelled(ev Event, p OrderCancelledPayload) {
	if order, ok := e.orders[p.OrderId]; ok && order.Status == common.OrderStatusOpen {
		order.Status = common.OrderStatusCancelled
	}

	e.tradeLog = append(e.tradeLog, TradeLogEntry{
		TimeStamp: ev.TimeStamp(),
		Kind:      ev.Kind,
		OrderId:   p.OrderId,
		Reason:    p.Reason,
	})
}

func (e *Engine) onFunding(ev Event, p FundingPayload) {
	pos := e.ledger.Position()
	if pos.IsFlat() {
		// Position closed before the boundary, nothing to pay.
		e.fundingScheduled = false
		return
	}

	rate := p.Rate
	if rate.IsZero() {
		rate = e.params.FundingRate
	}
	amount := p.Amount
	if amount.IsZero() {
		snap := risk.MarginSnapshot(pos, e.state.MarkPrice,
			e.params.InitialMarginRate, e.params.MaintenanceMarginRate)
		amount = snap.PositionNotional.Mul(rate).Neg()
	}

	e.state.Cash = e.state.Cash.Add(amount)

	e.tradeLog = append(e.tradeLog, TradeLogEntry{
		TimeStamp: ev.TimeStamp(),
		Kind:      ev.Kind,
		Amount:    amount,
		CashAfter: e.state.Cash,
	})

	e.evalRisk(ev.Time)

	next := ev.Time + e.params.FundingInterval.Milliseconds()
	if e.params.FundingConfigured() && next <= e.params.End.UnixMilli() {
		e.sched.Enqueue(NewEventAt(next, FundingPayload{Rate: rate}))
	} else {
		e.fundingScheduled = false
	}
}

func (e *Engine) onMarginUpdate(ev Event, p MarginUpdatePayload) {
	e.state.Margin = p.Margin
	e.state.MaintenanceMargin = p.MaintenanceMargin
	e.state.UnrealizedPnL = p.UnrealizedPnL

	e.tradeLog = append(e.tradeLog, TradeLogEntry{
		TimeStamp: ev.TimeStamp(),
		Kind:      ev.Kind,
		Margin:    p.Margin,
		Maint:     p.MaintenanceMargin,
		UPnL:      p.UnrealizedPnL,
	})
}

func (e *Engine) onLiquidated(ev Event, p LiquidatedPayload) {
	pos := e.ledger.Position()
	if !pos.IsFlat() {
		side := common.SideSell
		if pos.IsShort() {
			side = common.SideBuy
		}
		// Force-close the full remaining quantity at the liquidation price.
		e.applyFill(ev, OrderFilledPayload{
			Side: side,
			Fill: common.Fill{
				Qty:       pos.Qty.Abs(),
				Price:     p.Price,
				Liquidity: common.LiquidityTaker,
				TimeStamp: ev.TimeStamp(),
			},
		})
	}

	e.state.Cash = e.state.Cash.Sub(p.Penalty)
	e.state.Liquidated = true

	e.tradeLog = append(e.tradeLog, TradeLogEntry{
		TimeStamp: ev.TimeStamp(),
		Kind:      ev.Kind,
		Price:     p.Price,
		Amount:    p.Penalty.Neg(),
		CashAfter: e.state.Cash,
		Reason:    "maintenance_margin_breach",
	})

	e.logger.Warn("account liquidated",
		zap.String("component", engineComponentName),
		zap.String("price", p.Price.String()),
		zap.String("penalty", p.Penalty.String()))
}

// anchorFunding starts the funding clock at the first market event processed
// while funding is relevant: configured rate and interval plus an open
// position. The chain keeps itself alive from onFunding; fundingScheduled
// means a funding event is pending in the queue.
func (e *Engine) anchorFunding(nowMs int64) {
	if !e.params.FundingConfigured() || e.fundingScheduled {
		return
	}
	if e.ledger.Position().IsFlat() {
		return
	}
	// Never schedule past the end of the run, or the chain would keep the
	// queue alive forever.
	next := nowMs + e.params.FundingInterval.Milliseconds()
	if next > e.params.End.UnixMilli() {
		return
	}
	e.fundingScheduled = true
	e.sched.Enqueue(NewEventAt(next, FundingPayload{Rate: e.params.FundingRate}))
}

// evalRisk recomputes the margin snapshot and schedules the liquidation
// cascade when projected equity falls below the maintenance requirement.
func (e *Engine) evalRisk(nowMs int64) {
	if !e.params.MarketType.MarginBearing() {
		return
	}

	pos := e.ledger.Position()
	snap := risk.MarginSnapshot(pos, e.state.MarkPrice,
		e.params.InitialMarginRate, e.params.MaintenanceMarginRate)

	e.sched.Enqueue(NewEventAt(nowMs, MarginUpdatePayload{
		Margin:            snap.InitialMargin,
		MaintenanceMargin: snap.MaintenanceMargin,
		UnrealizedPnL:     snap.UnrealizedPnL,
	}))

	if !e.liquidationPending && risk.ShouldLiquidate(e.state.Cash, pos, snap) {
		e.liquidationPending = true
		e.sched.Enqueue(NewEventAt(nowMs, LiquidatedPayload{
			Price:   e.state.MarkPrice,
			Penalty: risk.Penalty(snap.PositionNotional, e.params.LiquidationPenaltyRate),
		}))
	}
}

func (e *Engine) recomputeEquity() {
	upnl := risk.UnrealizedPnl(e.ledger.Position(), e.state.MarkPrice)
	e.state.UnrealizedPnL = upnl
	e.state.Equity = e.state.Cash.Add(upnl)
	e.state.Position = e.ledger.Position()
}
