package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/exchange"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func TestSlippage_Fixed(t *testing.T) {
	m := FixedSlippage{Amount: fixed.PointFive}
	pointEq(t, "0.5", m.Offset(fixed.Hundred, fixed.One, exchange.Book{}))
}

func TestSlippage_Spread(t *testing.T) {
	book := exchange.NewBook(
		[]exchange.Level{{Price: fixed.New(99, 0), Qty: fixed.One}},
		[]exchange.Level{{Price: fixed.New(101, 0), Qty: fixed.One}},
	)

	m := SpreadSlippage{Fraction: fixed.PointFive}
	pointEq(t, "1", m.Offset(fixed.Hundred, fixed.One, book))

	assert.True(t, m.Offset(fixed.Hundred, fixed.One, exchange.Book{}).IsZero(),
		"one-sided book has no spread")
}

func TestSlippage_Liquidity(t *testing.T) {
	m := LiquiditySlippage{
		Base:      fixed.New(1, 1),
		Impact:    fixed.New(2, 1),
		AvgVolume: fixed.Ten,
	}
	// 0.1 + 0.2 * 5 / 10
	pointEq(t, "0.2", m.Offset(fixed.Hundred, fixed.New(5, 0), exchange.Book{}))

	m.AvgVolume = fixed.Zero
	pointEq(t, "0.1", m.Offset(fixed.Hundred, fixed.New(5, 0), exchange.Book{}))
}

func TestSlippage_AppliesAgainstTaker(t *testing.T) {
	pointEq(t, "101", applySlippage(fixed.Hundred, fixed.One, common.SideBuy))
	pointEq(t, "99", applySlippage(fixed.Hundred, fixed.One, common.SideSell))
}
