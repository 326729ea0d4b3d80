package indicators

import (
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Atr is a Wilder-smoothed average true range over candle input.
type Atr struct {
	windowSize int

	lastClose  fixed.Point
	lastAtr    fixed.Point
	currentAtr fixed.Point
	currentTr  fixed.Point
}

func NewAtr(windowSize int) *Atr {
	return &Atr{
		windowSize: windowSize,

		lastClose:  fixed.Zero,
		lastAtr:    fixed.Zero,
		currentAtr: fixed.Zero,
		currentTr:  fixed.Zero,
	}
}

func (a *Atr) OnCandle(c common.Candle) {
	defer func() {
		a.lastClose = c.Close
	}()

	if a.lastClose.IsZero() {
		return
	}

	hl := c.High.Sub(c.Low).Abs()
	hc := c.High.Sub(a.lastClose).Abs()
	lc := c.Low.Sub(a.lastClose).Abs()

	a.currentTr = hl
	if hc.Gt(a.currentTr) {
		a.currentTr = hc
	}
	if lc.Gt(a.currentTr) {
		a.currentTr = lc
	}

	if a.lastAtr.IsZero() {
		a.currentAtr = a.currentTr
	} else {
		a.currentAtr = a.lastAtr.MulInt(a.windowSize - 1).Add(a.currentTr).DivInt(a.windowSize)
	}

	a.lastAtr = a.currentAtr
}

func (a *Atr) Value() fixed.Point {
	return a.currentAtr
}

func (a *Atr) TrueRange() fixed.Point {
	return a.currentTr
}

func (a *Atr) Ready() bool {
	return !a.lastAtr.IsZero()
}

func (a *Atr) Reset() {
	a.lastClose = fixed.Zero
	a.lastAtr = fixed.Zero
	a.currentAtr = fixed.Zero
	a.currentTr = fixed.Zero
}
