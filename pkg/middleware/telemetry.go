package middleware

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
)

// Telemetry counts the events observed by and emitted from the wrapped
// collaborators, per kind.
type Telemetry struct {
	logger *zap.Logger

	observed [engine.KindLiquidated + 1]int64
	emitted  [engine.KindLiquidated + 1]int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithStrategy(next engine.Strategy) engine.Strategy {
	return &countedStrategy{telemetry: t, next: next}
}

func (t *Telemetry) WithExecution(next engine.Execution) engine.Execution {
	return &countedExecution{telemetry: t, next: next}
}

func (t *Telemetry) countObserved(kind engine.Kind) {
	if int(kind) < len(t.observed) {
		t.observed[kind]++
	}
}

func (t *Telemetry) countEmitted(events []engine.Event) {
	for _, ev := range events {
		if int(ev.Kind) < len(t.emitted) {
			t.emitted[ev.Kind]++
		}
	}
}

func (t *Telemetry) PrintStatistics() {
	var fields []zap.Field
	for kind := engine.KindMarketTick; kind <= engine.KindLiquidated; kind++ {
		if t.observed[kind] > 0 {
			fields = append(fields, zap.Int64("observed_"+kind.String(), t.observed[kind]))
		}
		if t.emitted[kind] > 0 {
			fields = append(fields, zap.Int64("emitted_"+kind.String(), t.emitted[kind]))
		}
	}
	t.logger.Info("event statistics", fields...)
}

type countedStrategy struct {
	telemetry *Telemetry
	next      engine.Strategy
}

func (s *countedStrategy) OnEvent(ev engine.Event, rc engine.Context) []engine.Event {
	s.telemetry.countObserved(ev.Kind)
	out := s.next.OnEvent(ev, rc)
	s.telemetry.countEmitted(out)
	return out
}

func (s *countedStrategy) ResetRun(params engine.RunParameters) {
	resetRun(s.next, params)
}

type countedExecution struct {
	telemetry *Telemetry
	next      engine.Execution
}

func (e *countedExecution) OnSignal(sig common.Signal, rc engine.Context) []engine.Event {
	e.telemetry.countObserved(engine.KindSignalGenerated)
	out := e.next.OnSignal(sig, rc)
	e.telemetry.countEmitted(out)
	return out
}

func (e *countedExecution) OnMarketEvent(ev engine.Event, rc engine.Context) []engine.Event {
	out := e.next.OnMarketEvent(ev, rc)
	e.telemetry.countEmitted(out)
	return out
}

func (e *countedExecution) ResetRun(params engine.RunParameters) {
	resetRun(e.next, params)
}
