package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

var (
	ErrMissingSymbol    = errors.New("symbol is required")
	ErrMissingTimeFrame = errors.New("timeframe is required")
	ErrInvalidTimeRange = errors.New("start time is after end time")
	ErrNegativeCash     = errors.New("initial cash cannot be negative")
)

// RunParameters is the input contract of a single run. Seed is integral by
// construction; market-type specific fields are ignored for spot markets.
type RunParameters struct {
	Symbol      string
	TimeFrame   string
	MarketType  common.MarketType
	Start       time.Time
	End         time.Time
	InitialCash fixed.Point
	Seed        int64

	FundingRate            fixed.Point
	FundingInterval        time.Duration
	InitialMarginRate      fixed.Point
	MaintenanceMarginRate  fixed.Point
	LiquidationPenaltyRate fixed.Point
}

func (p RunParameters) Validate() error {
	if p.Symbol == "" {
		return ErrMissingSymbol
	}
	if p.TimeFrame == "" {
		return ErrMissingTimeFrame
	}
	if !p.MarketType.Valid() {
		return fmt.Errorf("invalid market type %q", p.MarketType)
	}
	if p.Start.IsZero() || p.End.IsZero() {
		return errors.New("start and end times are required")
	}
	if p.Start.After(p.End) {
		return ErrInvalidTimeRange
	}
	if p.InitialCash.IsNeg() {
		return ErrNegativeCash
	}
	if p.FundingInterval < 0 {
		return errors.New("funding interval cannot be negative")
	}
	return nil
}

// FundingConfigured reports whether periodic funding applies to this run.
func (p RunParameters) FundingConfigured() bool {
	return p.MarketType.MarginBearing() && !p.FundingRate.IsZero() && p.FundingInterval > 0
}
