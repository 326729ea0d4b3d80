package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

var auditStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func fillEntry(offset time.Duration, side string, qty, price, fee fixed.Point) engine.TradeLogEntry {
	return engine.TradeLogEntry{
		TimeStamp: auditStart.Add(offset),
		Kind:      engine.KindOrderFilled,
		Side:      side,
		Qty:       qty,
		Price:     price,
		Fee:       fee,
	}
}

func TestAudit_RebuildsRoundTrips(t *testing.T) {
	a := NewAudit()
	a.Consume(engine.Result{
		TradeLog: []engine.TradeLogEntry{
			// Winner: buy 1 at 100, sell at 110, fees 0.1 each leg.
			fillEntry(0, "buy", fixed.One, fixed.Hundred, fixed.New(1, 1)),
			fillEntry(time.Hour, "sell", fixed.One, fixed.New(110, 0), fixed.New(1, 1)),
			// Loser: short 2 at 110, cover at 115, no fees.
			fillEntry(2*time.Hour, "sell", fixed.Two, fixed.New(110, 0), fixed.Zero),
			fillEntry(3*time.Hour, "buy", fixed.Two, fixed.New(115, 0), fixed.Zero),
		},
	})

	require.Len(t, a.trades, 2)
	assert.True(t, a.trades[0].Profit.Eq(fixed.MustFromString("9.8")),
		"winner profit %s", a.trades[0].Profit.String())
	assert.True(t, a.trades[1].Profit.Eq(fixed.New(-10, 0)),
		"loser profit %s", a.trades[1].Profit.String())
	assert.Equal(t, time.Hour, a.trades[0].CloseTime.Sub(a.trades[0].OpenTime))
}

func TestAudit_ReportCountsAndRatios(t *testing.T) {
	a := NewAudit()
	a.Consume(engine.Result{
		TradeLog: []engine.TradeLogEntry{
			fillEntry(0, "buy", fixed.One, fixed.Hundred, fixed.Zero),
			fillEntry(time.Hour, "sell", fixed.One, fixed.New(110, 0), fixed.Zero),
			fillEntry(2*time.Hour, "buy", fixed.One, fixed.New(110, 0), fixed.Zero),
			fillEntry(3*time.Hour, "sell", fixed.One, fixed.New(105, 0), fixed.Zero),
		},
		EquitySeries: []engine.EquityPoint{
			{TimeStamp: auditStart, Equity: fixed.Thousand},
			{TimeStamp: auditStart.Add(4 * time.Hour), Equity: fixed.New(1005, 0)},
		},
	})

	report := a.GenerateReport()

	assert.Equal(t, 2, report.TotalTrades)
	assert.Equal(t, 1, report.WinningTrades)
	assert.Equal(t, 1, report.LosingTrades)
	assert.True(t, report.WinRate.Eq(fixed.New(50, 0)), "win rate %s", report.WinRate.String())
	assert.True(t, report.AverageWin.Eq(fixed.Ten))
	assert.True(t, report.AverageLoss.Eq(fixed.New(5, 0)))
	assert.True(t, report.ProfitFactor.Eq(fixed.Two))
	assert.True(t, report.TotalProfit.Eq(fixed.New(5, 1)), "total profit %s%%", report.TotalProfit.String())
}

func TestAudit_MaxDrawdown(t *testing.T) {
	a := NewAudit()
	a.Consume(engine.Result{
		EquitySeries: []engine.EquityPoint{
			{TimeStamp: auditStart, Equity: fixed.Hundred},
			{TimeStamp: auditStart.Add(time.Hour), Equity: fixed.New(120, 0)},
			{TimeStamp: auditStart.Add(2 * time.Hour), Equity: fixed.New(90, 0)},
			{TimeStamp: auditStart.Add(3 * time.Hour), Equity: fixed.New(110, 0)},
		},
	})

	report := a.GenerateReport()
	// Peak 120 to trough 90 is a 25% drawdown.
	assert.True(t, report.MaxDrawdown.Eq(fixed.New(25, 0)), "max drawdown %s", report.MaxDrawdown.String())
}

func TestAudit_ThinsEquitySnapshots(t *testing.T) {
	a := NewAudit()

	points := make([]engine.EquityPoint, 0, 100)
	for i := 0; i < 100; i++ {
		points = append(points, engine.EquityPoint{
			TimeStamp: auditStart.Add(time.Duration(i) * time.Second),
			Equity:    fixed.Hundred,
		})
	}
	a.Consume(engine.Result{EquitySeries: points})

	// 100 seconds of one-second samples thin to the minute boundaries.
	assert.Len(t, a.equities, 2)
}

func TestAudit_EmptyResult(t *testing.T) {
	a := NewAudit()
	report := a.GenerateReport()
	assert.Equal(t, 0, report.TotalTrades)
	assert.True(t, report.FinalEquity.IsZero())
}
