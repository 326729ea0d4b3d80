package position

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func p(s string) fixed.Point {
	return fixed.MustFromString(s)
}

func TestLedger_OpenFromFlat(t *testing.T) {
	l := NewLedger()

	realized := l.ApplyFill(common.SideBuy, p("2"), p("100"), p("0.2"))

	assert.Equal(t, "-0.2", realized.String())
	assert.Equal(t, "2", l.Position().Qty.String())
	assert.Equal(t, "100", l.Position().AvgPrice.String())
}

func TestLedger_SameDirectionBlendsAverage(t *testing.T) {
	l := NewLedger()

	l.ApplyFill(common.SideBuy, p("1"), p("100"), fixed.Zero)
	realized := l.ApplyFill(common.SideBuy, p("1"), p("110"), fixed.Zero)

	assert.True(t, realized.IsZero())
	assert.Equal(t, "2", l.Position().Qty.String())
	assert.Equal(t, "105", l.Position().AvgPrice.String())
}

func TestLedger_ReduceRealizesPnl(t *testing.T) {
	l := NewLedger()

	l.ApplyFill(common.SideBuy, p("3"), p("100"), fixed.Zero)
	realized := l.ApplyFill(common.SideSell, p("1"), p("110"), p("0.1"))

	assert.Equal(t, "9.9", realized.String())
	assert.Equal(t, "2", l.Position().Qty.String())
	assert.Equal(t, "100", l.Position().AvgPrice.String())
}

func TestLedger_ShortReduceRealizesPnl(t *testing.T) {
	l := NewLedger()

	l.ApplyFill(common.SideSell, p("2"), p("100"), fixed.Zero)
	realized := l.ApplyFill(common.SideBuy, p("1"), p("90"), fixed.Zero)

	assert.Equal(t, "10", realized.String())
	assert.Equal(t, "-1", l.Position().Qty.String())
	assert.Equal(t, "100", l.Position().AvgPrice.String())
}

func TestLedger_CloseToFlatResetsAverage(t *testing.T) {
	l := NewLedger()

	l.ApplyFill(common.SideBuy, p("2"), p("100"), fixed.Zero)
	l.ApplyFill(common.SideSell, p("2"), p("95"), fixed.Zero)

	assert.True(t, l.Position().IsFlat())
	assert.True(t, l.Position().AvgPrice.IsZero())
	assert.Equal(t, "-10", l.Position().RealizedPnL.String())
}

func TestLedger_FlipRestartsAtFillPrice(t *testing.T) {
	l := NewLedger()

	l.ApplyFill(common.SideBuy, p("1"), p("100"), fixed.Zero)
	realized := l.ApplyFill(common.SideSell, p("3"), p("105"), fixed.Zero)

	// Realizes on the 1 closed unit only.
	assert.Equal(t, "5", realized.String())
	assert.Equal(t, "-2", l.Position().Qty.String())
	assert.Equal(t, "105", l.Position().AvgPrice.String())
}

func TestLedger_AvgPriceZeroIffFlat(t *testing.T) {
	l := NewLedger()

	fills := []struct {
		side  common.Side
		qty   string
		price string
	}{
		{common.SideBuy, "1", "100"},
		{common.SideSell, "2", "101"},
		{common.SideSell, "1", "99"},
		{common.SideBuy, "2", "98"},
		{common.SideBuy, "3", "97"},
		{common.SideSell, "3", "96"},
	}

	for _, f := range fills {
		l.ApplyFill(f.side, p(f.qty), p(f.price), fixed.Zero)
		pos := l.Position()
		assert.Equal(t, pos.Qty.IsZero(), pos.AvgPrice.IsZero(),
			"avg price must be zero exactly when flat, got qty=%s avg=%s",
			pos.Qty.String(), pos.AvgPrice.String())
	}
}

func TestLedger_Reset(t *testing.T) {
	l := NewLedger()
	l.ApplyFill(common.SideBuy, p("1"), p("100"), fixed.Zero)
	l.Reset()

	assert.True(t, l.Position().IsFlat())
	assert.True(t, l.Position().RealizedPnL.IsZero())
}
