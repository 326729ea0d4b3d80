package indicators

import (
	"testing"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func candle(high, low, close float64) common.Candle {
	return common.Candle{
		High:  fixed.FromFloat64(high),
		Low:   fixed.FromFloat64(low),
		Close: fixed.FromFloat64(close),
	}
}

func Test_NewAtr(t *testing.T) {
	atr := NewAtr(14)

	if atr.windowSize != 14 {
		t.Errorf("Expected windowSize %d, got %d", 14, atr.windowSize)
	}

	if !atr.lastClose.IsZero() {
		t.Error("Expected lastClose to be zero")
	}

	if atr.Ready() {
		t.Error("Expected ATR to not be ready initially")
	}
}

func TestAtr_FirstCandle(t *testing.T) {
	atr := NewAtr(14)

	atr.OnCandle(candle(100.0, 95.0, 98.0))

	if atr.Ready() {
		t.Error("Expected ATR to not be ready after first candle")
	}

	if !atr.TrueRange().IsZero() {
		t.Error("Expected true range to be zero after first candle")
	}
}

func TestAtr_MultipleCandles(t *testing.T) {
	atr := NewAtr(3)

	candles := []common.Candle{
		candle(100.0, 95.0, 98.0),
		candle(102.0, 97.0, 101.0),
		candle(104.0, 99.0, 102.0),
		candle(103.0, 100.0, 101.0),
	}

	for _, c := range candles {
		atr.OnCandle(c)
	}

	if !atr.Ready() {
		t.Error("Expected ATR to be ready")
	}

	expectedAtr := fixed.FromFloat64(13.0).DivInt(3)
	if !atr.Value().Eq(expectedAtr) {
		t.Errorf("Expected final ATR %v, got %v", expectedAtr, atr.Value())
	}
}

func TestAtr_Reset(t *testing.T) {
	atr := NewAtr(14)

	atr.OnCandle(candle(100.0, 95.0, 98.0))
	atr.OnCandle(candle(102.0, 97.0, 101.0))

	if !atr.Ready() {
		t.Error("Expected ATR to be ready before reset")
	}

	atr.Reset()

	if atr.Ready() {
		t.Error("Expected ATR to not be ready after reset")
	}

	if !atr.Value().IsZero() {
		t.Error("Expected ATR value to be zero after reset")
	}
}

func TestAtr_ZeroValues(t *testing.T) {
	atr := NewAtr(14)

	atr.OnCandle(candle(0, 0, 0))

	if atr.Ready() {
		t.Error("Expected ATR to not be ready with zero candle")
	}
}
