package synthetic

import (
	"context"
	"errors"
	"time"

	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/utility"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// GBMConfig shapes the generated price process. Mu and Sigma are annualized.
type GBMConfig struct {
	StartPrice fixed.Point
	FullSpread fixed.Point
	Mu         float64
	Sigma      float64

	AvgTickInterval time.Duration
	AvgVolume       fixed.Point
	PriceDigits     int
	VolumeDigits    int
}

// Adapter generates a synthetic tick stream for the run's time range. The
// generator is reseeded from the run seed on every load, so the same
// parameters always produce the same stream.
type Adapter struct {
	cfg GBMConfig
}

func NewAdapter(cfg GBMConfig) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Load(ctx context.Context, params engine.RunParameters) ([]engine.RawEvent, error) {
	if !a.cfg.StartPrice.IsPos() {
		return nil, errors.New("start price must be positive")
	}

	interval := a.cfg.AvgTickInterval
	if interval <= 0 {
		interval = time.Second
	}

	secondsPerYear := 365.25 * 24 * 3600
	deltaT := fixed.FromFloat64(interval.Seconds() / secondsPerYear)
	steps := int64(params.End.Sub(params.Start)/interval) + 1

	gen := NewTickGenerator(
		params.Symbol,
		utility.NewRand(params.Seed),
		params.Start,
		a.cfg.StartPrice,
		a.cfg.FullSpread,
		fixed.FromFloat64(a.cfg.Mu),
		fixed.FromFloat64(a.cfg.Sigma),
		deltaT,
		steps,
	)

	avgVolume := a.cfg.AvgVolume
	if !avgVolume.IsPos() {
		avgVolume = fixed.One
	}
	gen.SetTickParameters(interval, 0.3, avgVolume, 0.5)
	gen.SetPriceDigits(a.cfg.PriceDigits)
	gen.SetVolumeDigits(a.cfg.VolumeDigits)

	var events []engine.RawEvent
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tick, err := gen.GetNext()
		if err != nil {
			if errors.Is(err, ErrEof) {
				return events, nil
			}
			return nil, err
		}
		if tick.TimeStamp.After(params.End) {
			return events, nil
		}
		t := tick
		events = append(events, engine.RawEvent{
			Kind:      "market-tick",
			TimeStamp: t.TimeStamp,
			Tick:      &t,
		})
	}
}
