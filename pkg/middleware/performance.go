package middleware

import (
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
)

// Performance accumulates wall-clock time spent inside the wrapped
// collaborators. Timing uses the real clock, not simulation time, so it
// measures the cost of the run rather than its simulated behavior.
type Performance struct {
	logger *zap.Logger

	strategyCalls      int64
	strategyDur        time.Duration
	signalCalls        int64
	signalDur          time.Duration
	marketEventCalls   int64
	marketEventHandDur time.Duration
}

func NewPerformance(logger *zap.Logger) *Performance {
	return &Performance{
		logger: logger,
	}
}

func (p *Performance) WithStrategy(next engine.Strategy) engine.Strategy {
	return &timedStrategy{perf: p, next: next}
}

func (p *Performance) WithExecution(next engine.Execution) engine.Execution {
	return &timedExecution{perf: p, next: next}
}

func (p *Performance) PrintStatistics() {
	var fields []zap.Field
	if p.strategyCalls > 0 {
		fields = append(fields,
			zap.Duration("strategy_avg_duration", p.strategyDur/time.Duration(p.strategyCalls)),
			zap.Duration("strategy_total_duration", p.strategyDur))
	}
	if p.signalCalls > 0 {
		fields = append(fields,
			zap.Duration("signal_avg_duration", p.signalDur/time.Duration(p.signalCalls)),
			zap.Duration("signal_total_duration", p.signalDur))
	}
	if p.marketEventCalls > 0 {
		fields = append(fields,
			zap.Duration("execution_avg_duration", p.marketEventHandDur/time.Duration(p.marketEventCalls)),
			zap.Duration("execution_total_duration", p.marketEventHandDur))
	}
	p.logger.Info("performance statistics", fields...)
}

type timedStrategy struct {
	perf *Performance
	next engine.Strategy
}

func (s *timedStrategy) OnEvent(ev engine.Event, rc engine.Context) []engine.Event {
	start := time.Now()
	out := s.next.OnEvent(ev, rc)
	s.perf.strategyCalls++
	s.perf.strategyDur += time.Since(start)
	return out
}

func (s *timedStrategy) ResetRun(params engine.RunParameters) {
	resetRun(s.next, params)
}

type timedExecution struct {
	perf *Performance
	next engine.Execution
}

func (e *timedExecution) OnSignal(sig common.Signal, rc engine.Context) []engine.Event {
	start := time.Now()
	out := e.next.OnSignal(sig, rc)
	e.perf.signalCalls++
	e.perf.signalDur += time.Since(start)
	return out
}

func (e *timedExecution) OnMarketEvent(ev engine.Event, rc engine.Context) []engine.Event {
	start := time.Now()
	out := e.next.OnMarketEvent(ev, rc)
	e.perf.marketEventCalls++
	e.perf.marketEventHandDur += time.Since(start)
	return out
}

func (e *timedExecution) ResetRun(params engine.RunParameters) {
	resetRun(e.next, params)
}
