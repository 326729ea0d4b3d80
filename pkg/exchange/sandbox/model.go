package sandbox

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/exchange"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

const modelComponentName = "exchange.sandbox.model"

// DefaultModel is the reference execution model. Every signal becomes an
// immediate market fill at the mark price, with latency and slippage drawn
// from the run's seeded random source so runs stay reproducible.
type DefaultModel struct {
	instrument exchange.Instrument

	maxLatency    time.Duration
	maxSlippageBp float64

	orderIdCounter common.OrderId
}

func NewDefaultModel(instrument exchange.Instrument) *DefaultModel {
	return &DefaultModel{
		instrument:    instrument,
		maxLatency:    100 * time.Millisecond,
		maxSlippageBp: 5,
	}
}

func (m *DefaultModel) ResetRun(engine.RunParameters) {
	m.orderIdCounter = 0
}

func (m *DefaultModel) OnMarketEvent(engine.Event, engine.Context) []engine.Event {
	return nil
}

func (m *DefaultModel) OnSignal(sig common.Signal, rc engine.Context) []engine.Event {
	now := rc.TimeStamp
	qty := sig.Qty.QuantizeDown(m.instrument.LotStep)

	m.orderIdCounter++
	order := common.Order{
		Id:         m.orderIdCounter,
		Side:       sig.Side,
		Qty:        qty,
		Remaining:  qty,
		Status:     common.OrderStatusOpen,
		CreatedAt:  now,
		ActivateAt: now,
		Source:     modelComponentName,
		Symbol:     sig.Symbol,
		TimeStamp:  now,
	}
	events := []engine.Event{engine.NewEvent(now, engine.OrderSubmittedPayload{Order: order})}

	if !qty.IsPos() {
		return append(events, engine.NewEvent(now, engine.OrderCancelledPayload{
			OrderId: order.Id,
			Reason:  ReasonInvalidQty,
		}))
	}
	ref := rc.MarkPrice
	if ref.IsZero() {
		return append(events, engine.NewEvent(now, engine.OrderCancelledPayload{
			OrderId: order.Id,
			Reason:  ReasonInvalidQty,
		}))
	}

	// Draw order is fixed: latency first, then slippage.
	latency := rc.Rand.DurationRange(0, m.maxLatency)
	bp := rc.Rand.Range(-m.maxSlippageBp, m.maxSlippageBp)

	price := ref.Mul(fixed.FromFloat64(1 + bp/10000))
	if sig.Side == common.SideBuy {
		price = price.QuantizeUp(m.instrument.TickSize)
	} else {
		price = price.QuantizeDown(m.instrument.TickSize)
	}

	at := now.Add(latency)
	return append(events, engine.NewEvent(at, engine.OrderFilledPayload{
		OrderId: order.Id,
		Side:    sig.Side,
		Fill: common.Fill{
			Qty:       qty,
			Price:     price,
			Fee:       qty.Mul(price).Mul(m.instrument.TakerFeeRate),
			Liquidity: common.LiquidityTaker,
			TimeStamp: at,
		},
	}))
}
