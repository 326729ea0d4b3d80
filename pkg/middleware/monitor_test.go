package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
)

type signalOnTick struct {
	resets int
}

func (s *signalOnTick) OnEvent(ev engine.Event, _ engine.Context) []engine.Event {
	if ev.Kind != engine.KindMarketTick {
		return nil
	}
	return []engine.Event{engine.NewEventAt(ev.Time, engine.SignalPayload{
		Signal: common.Signal{Side: common.SideBuy},
	})}
}

func (s *signalOnTick) ResetRun(engine.RunParameters) {
	s.resets++
}

func TestMonitor_LogsOnlyFlaggedKinds(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	monitor := NewMonitor(zap.New(core), MonitorSignals)

	wrapped := monitor.WithStrategy(&signalOnTick{})
	wrapped.OnEvent(engine.NewEventAt(0, engine.TickPayload{}), engine.Context{})

	// The tick is filtered out, the emitted signal is logged.
	assert.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "event", entry.Message)
	assert.Equal(t, "signal-generated", entry.ContextMap()["kind"])
}

func TestMonitor_AllFlagLogsEverything(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	monitor := NewMonitor(zap.New(core), MonitorAll)

	wrapped := monitor.WithStrategy(&signalOnTick{})
	wrapped.OnEvent(engine.NewEventAt(0, engine.TickPayload{}), engine.Context{})

	assert.Equal(t, 2, logs.Len())
}

func TestMonitor_ForwardsRunReset(t *testing.T) {
	inner := &signalOnTick{}
	wrapped := NewMonitor(zap.NewNop(), MonitorNone).WithStrategy(inner)

	r, ok := wrapped.(engine.RunResetter)
	assert.True(t, ok)
	r.ResetRun(engine.RunParameters{})
	assert.Equal(t, 1, inner.resets)
}

func TestTelemetry_CountsObservedAndEmitted(t *testing.T) {
	telemetry := NewTelemetry(zap.NewNop())
	wrapped := telemetry.WithStrategy(&signalOnTick{})

	for i := 0; i < 3; i++ {
		wrapped.OnEvent(engine.NewEventAt(int64(i), engine.TickPayload{}), engine.Context{})
	}

	assert.Equal(t, int64(3), telemetry.observed[engine.KindMarketTick])
	assert.Equal(t, int64(3), telemetry.emitted[engine.KindSignalGenerated])
}

func TestPerformance_AccumulatesDurations(t *testing.T) {
	perf := NewPerformance(zap.NewNop())
	wrapped := perf.WithStrategy(&signalOnTick{})

	wrapped.OnEvent(engine.NewEventAt(0, engine.TickPayload{}), engine.Context{})
	wrapped.OnEvent(engine.NewEventAt(1, engine.TickPayload{}), engine.Context{})

	assert.Equal(t, int64(2), perf.strategyCalls)
	assert.GreaterOrEqual(t, perf.strategyDur, time.Duration(0))
}
