package sandbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/utility"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func TestDefaultModel_FillWithinLatencyAndSlippageBounds(t *testing.T) {
	m := NewDefaultModel(testInstrument)
	now := testTime(0)

	events := m.OnSignal(common.Signal{Side: common.SideBuy, Qty: fixed.One},
		engine.Context{TimeStamp: now, MarkPrice: fixed.Hundred, Rand: utility.NewRand(7)})
	require.Len(t, events, 2)

	assert.Equal(t, engine.KindOrderSubmitted, events[0].Kind)
	require.Equal(t, engine.KindOrderFilled, events[1].Kind)

	at := events[1].TimeStamp()
	assert.False(t, at.Before(now))
	assert.False(t, at.After(now.Add(100*time.Millisecond)))

	fill := events[1].Payload.(engine.OrderFilledPayload)
	lo := fixed.Hundred.Mul(fixed.MustFromString("0.9995"))
	hi := fixed.Hundred.Mul(fixed.MustFromString("1.0005")).Add(testInstrument.TickSize)
	assert.True(t, fill.Fill.Price.Gte(lo), "price %s below slippage floor", fill.Fill.Price)
	assert.True(t, fill.Fill.Price.Lte(hi), "price %s above slippage ceiling", fill.Fill.Price)
	assert.Equal(t, common.LiquidityTaker, fill.Fill.Liquidity)
}

func TestDefaultModel_SameSeedSameFill(t *testing.T) {
	now := testTime(0)
	sig := common.Signal{Side: common.SideSell, Qty: fixed.Two}

	run := func() []engine.Event {
		m := NewDefaultModel(testInstrument)
		return m.OnSignal(sig, engine.Context{TimeStamp: now, MarkPrice: fixed.Hundred, Rand: utility.NewRand(1234)})
	}

	a, b := run(), run()
	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.Equal(t, a[1].Time, b[1].Time)
	assert.True(t, a[1].Payload.(engine.OrderFilledPayload).Fill.Price.Eq(
		b[1].Payload.(engine.OrderFilledPayload).Fill.Price))
}

func TestDefaultModel_NoMarkPriceCancels(t *testing.T) {
	m := NewDefaultModel(testInstrument)
	now := testTime(0)

	events := m.OnSignal(common.Signal{Side: common.SideBuy, Qty: fixed.One},
		engine.Context{TimeStamp: now, Rand: utility.NewRand(1)})
	require.Len(t, events, 2)
	assert.Equal(t, engine.KindOrderCancelled, events[1].Kind)
}

func TestDefaultModel_ResetRunRestartsOrderIds(t *testing.T) {
	m := NewDefaultModel(testInstrument)
	now := testTime(0)
	rc := engine.Context{TimeStamp: now, MarkPrice: fixed.Hundred, Rand: utility.NewRand(1)}

	m.OnSignal(common.Signal{Side: common.SideBuy, Qty: fixed.One}, rc)
	m.ResetRun(engine.RunParameters{})

	events := m.OnSignal(common.Signal{Side: common.SideBuy, Qty: fixed.One}, rc)
	assert.Equal(t, common.OrderId(1), events[0].Payload.(engine.OrderSubmittedPayload).Order.Id)
}
