package main

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/data/synthetic"
	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/exchange"
	"github.com/peter-kozarec/replay/pkg/middleware"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

const (
	Development = true
	LogLevel    = "info"

	// ResultDatabase empty skips result persistence.
	ResultDatabase = "replay_results.db"

	FastWindow = 50
	SlowWindow = 200

	OrderLatency  = 50 * time.Millisecond
	CancelLatency = 50 * time.Millisecond

	MonitorEvents = middleware.MonitorFills | middleware.MonitorCancellations | middleware.MonitorLiquidations
)

var (
	SimulationStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	SimulationEnd   = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	Exposure               = fixed.One
	SlippageSpreadFraction = fixed.PointFive

	Instrument = exchange.Instrument{
		Symbol:       "BTCUSD",
		TickSize:     fixed.New(1, 1),
		LotStep:      fixed.New(1, 3),
		MinQty:       fixed.New(1, 3),
		MinNotional:  fixed.Ten,
		MakerFeeRate: fixed.New(2, 4),
		TakerFeeRate: fixed.New(5, 4),
	}

	DataConfig = synthetic.GBMConfig{
		StartPrice:      fixed.FromInt(40_000, 0),
		FullSpread:      fixed.Two,
		Mu:              0.05,
		Sigma:           0.6,
		AvgTickInterval: time.Second,
		AvgVolume:       fixed.Ten,
		PriceDigits:     1,
		VolumeDigits:    3,
	}

	Parameters = engine.RunParameters{
		Symbol:      "BTCUSD",
		TimeFrame:   "tick",
		MarketType:  common.MarketPerpetual,
		Start:       SimulationStart,
		End:         SimulationEnd,
		InitialCash: fixed.FromInt(100_000, 0),
		Seed:        42,

		FundingRate:            fixed.New(1, 4),
		FundingInterval:        8 * time.Hour,
		InitialMarginRate:      fixed.New(1, 1),
		MaintenanceMarginRate:  fixed.New(5, 2),
		LiquidationPenaltyRate: fixed.New(1, 2),
	}
)
