package middleware

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorTicks
	MonitorCandles
	MonitorSignals
	MonitorOrders
	MonitorFills
	MonitorCancellations
	MonitorFunding
	MonitorMargin
	MonitorLiquidations
)

// Monitor logs the events flowing through a wrapped collaborator, filtered
// by kind flags. Purely observational, events pass through untouched.
type Monitor struct {
	logger *zap.Logger
	flags  MonitorFlags
}

func NewMonitor(logger *zap.Logger, flags MonitorFlags) *Monitor {
	return &Monitor{
		logger: logger,
		flags:  flags,
	}
}

func (m *Monitor) WithStrategy(next engine.Strategy) engine.Strategy {
	return &monitoredStrategy{monitor: m, next: next}
}

func (m *Monitor) WithExecution(next engine.Execution) engine.Execution {
	return &monitoredExecution{monitor: m, next: next}
}

func (m *Monitor) enabled(kind engine.Kind) bool {
	if m.flags&MonitorAll != 0 {
		return true
	}
	switch kind {
	case engine.KindMarketTick:
		return m.flags&MonitorTicks != 0
	case engine.KindMarketCandle:
		return m.flags&MonitorCandles != 0
	case engine.KindSignalGenerated:
		return m.flags&MonitorSignals != 0
	case engine.KindOrderSubmitted:
		return m.flags&MonitorOrders != 0
	case engine.KindOrderFilled:
		return m.flags&MonitorFills != 0
	case engine.KindOrderCancelled:
		return m.flags&MonitorCancellations != 0
	case engine.KindFundingPayment:
		return m.flags&MonitorFunding != 0
	case engine.KindMarginUpdate:
		return m.flags&MonitorMargin != 0
	case engine.KindLiquidated:
		return m.flags&MonitorLiquidations != 0
	}
	return false
}

func (m *Monitor) observe(ev engine.Event) {
	if m.enabled(ev.Kind) {
		m.logger.Info("event",
			zap.Stringer("kind", ev.Kind),
			zap.Time("ts", ev.TimeStamp()))
	}
}

func (m *Monitor) observeAll(events []engine.Event) {
	for _, ev := range events {
		m.observe(ev)
	}
}

type monitoredStrategy struct {
	monitor *Monitor
	next    engine.Strategy
}

func (s *monitoredStrategy) OnEvent(ev engine.Event, rc engine.Context) []engine.Event {
	s.monitor.observe(ev)
	out := s.next.OnEvent(ev, rc)
	s.monitor.observeAll(out)
	return out
}

func (s *monitoredStrategy) ResetRun(params engine.RunParameters) {
	resetRun(s.next, params)
}

type monitoredExecution struct {
	monitor *Monitor
	next    engine.Execution
}

func (e *monitoredExecution) OnSignal(sig common.Signal, rc engine.Context) []engine.Event {
	out := e.next.OnSignal(sig, rc)
	e.monitor.observeAll(out)
	return out
}

func (e *monitoredExecution) OnMarketEvent(ev engine.Event, rc engine.Context) []engine.Event {
	out := e.next.OnMarketEvent(ev, rc)
	e.monitor.observeAll(out)
	return out
}

func (e *monitoredExecution) ResetRun(params engine.RunParameters) {
	resetRun(e.next, params)
}

// resetRun forwards the per-run reset through the decorator so wrapping does
// not hide the inner collaborator from the engine.
func resetRun(inner any, params engine.RunParameters) {
	if r, ok := inner.(engine.RunResetter); ok {
		r.ResetRun(params)
	}
}
