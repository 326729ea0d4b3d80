package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/tools/position"
	"github.com/peter-kozarec/replay/pkg/utility"
)

const engineComponentName = "engine"

var (
	ErrNotConfigured  = errors.New("engine is not configured")
	ErrAlreadyRunning = errors.New("engine run already in progress")
)

type runState int

const (
	stateConfiguring runState = iota
	stateRunning
	stateTerminal
)

// RunResetter is an optional collaborator upgrade. Stateful strategies and
// execution models implement it so consecutive runs with the same seed stay
// reproducible.
type RunResetter interface {
	ResetRun(params RunParameters)
}

// Engine owns the account state and the event queue of one run. Collaborators
// are invoked synchronously and communicate only through returned or
// enqueued events.
type Engine struct {
	logger *zap.Logger

	adapter   Adapter
	strategy  Strategy
	execution Execution

	run    runState
	params RunParameters
	state  common.AccountState
	ledger *position.Ledger
	sched  *Scheduler
	rng    *utility.Rand

	tradeLog     []TradeLogEntry
	equitySeries []EquityPoint

	orders map[common.OrderId]*common.Order

	fundingScheduled   bool
	liquidationPending bool
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
		ledger: position.NewLedger(),
	}
}

// Configure attaches the run collaborators. May be called again between runs.
func (e *Engine) Configure(adapter Adapter, strategy Strategy, execution Execution) {
	e.adapter = adapter
	e.strategy = strategy
	e.execution = execution
	e.run = stateConfiguring
}

// Run replays the adapter's event stream against the configured strategy and
// execution model. It either returns the complete accounting trajectory or a
// single descriptive error with no partial output.
func (e *Engine) Run(ctx context.Context, params RunParameters) (Result, error) {
	if e.adapter == nil || e.strategy == nil || e.execution == nil {
		return Result{}, ErrNotConfigured
	}
	if e.run == stateRunning {
		return Result{}, ErrAlreadyRunning
	}
	if err := params.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid run parameters: %w", err)
	}

	e.reset(params)
	e.run = stateRunning
	defer func() { e.run = stateTerminal }()

	raw, err := e.adapter.Load(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("adapter load: %w", err)
	}
	if err := e.seed(raw); err != nil {
		return Result{}, err
	}

	e.logger.Info("run started",
		zap.String("component", engineComponentName),
		zap.Stringer("execution_id", utility.GetExecutionID()),
		zap.String("symbol", params.Symbol),
		zap.String("market_type", string(params.MarketType)),
		zap.Int("events", e.sched.Len()))

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		ev, ok := e.sched.Next()
		if !ok {
			break
		}
		if err := e.dispatch(ev); err != nil {
			return Result{}, err
		}
		e.recomputeEquity()
		e.equitySeries = append(e.equitySeries, EquityPoint{
			TimeStamp: ev.TimeStamp(),
			Equity:    e.state.Equity,
			Cash:      e.state.Cash,
			Margin:    e.state.Margin,
			Maint:     e.state.MaintenanceMargin,
			PosQty:    e.state.Position.Qty,
			AvgPrice:  e.state.Position.AvgPrice,
			LastPrice: e.state.LastPrice,
			MarkPrice: e.state.MarkPrice,
		})
		if e.state.Liquidated {
			// Terminal for the run, remaining events are not drained.
			break
		}
	}

	e.logger.Info("run finished",
		zap.String("component", engineComponentName),
		zap.Int("trade_log_entries", len(e.tradeLog)),
		zap.Bool("liquidated", e.state.Liquidated))

	return Result{
		TradeLog:     e.tradeLog,
		EquitySeries: e.equitySeries,
		Final:        e.state,
	}, nil
}

func (e *Engine) reset(params RunParameters) {
	e.params = params
	e.sched = NewScheduler()
	e.rng = utility.NewRand(params.Seed)
	e.ledger.Reset()
	e.state = common.AccountState{Cash: params.InitialCash, Equity: params.InitialCash}
	e.tradeLog = nil
	e.equitySeries = nil
	e.orders = make(map[common.OrderId]*common.Order)
	e.fundingScheduled = false
	e.liquidationPending = false

	if r, ok := e.strategy.(RunResetter); ok {
		r.ResetRun(params)
	}
	if r, ok := e.execution.(RunResetter); ok {
		r.ResetRun(params)
	}
}

// seed normalizes the adapter's raw events and enqueues them.
func (e *Engine) seed(raw []RawEvent) error {
	events := make([]Event, 0, len(raw))
	for i, r := range raw {
		ev, err := normalize(r)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	e.sched.Enqueue(events...)
	return nil
}

func normalize(raw RawEvent) (Event, error) {
	if raw.Kind == "" {
		return Event{}, errors.New("event is missing its kind")
	}
	kind, err := ParseKind(raw.Kind)
	if err != nil {
		return Event{}, err
	}
	if raw.TimeStamp.IsZero() {
		return Event{}, fmt.Errorf("%s event is missing its timestamp", kind)
	}

	switch kind {
	case KindMarketTick:
		if raw.Tick == nil {
			return Event{}, errors.New("market-tick event is missing its tick payload")
		}
		tick := *raw.Tick
		if tick.TimeStamp.IsZero() {
			tick.TimeStamp = raw.TimeStamp
		}
		return NewEvent(raw.TimeStamp, TickPayload{Tick: tick}), nil
	case KindMarketCandle:
		if raw.Candle == nil {
			return Event{}, errors.New("market-candle event is missing its candle payload")
		}
		candle := *raw.Candle
		if candle.TimeStamp.IsZero() {
			candle.TimeStamp = raw.TimeStamp
		}
		return NewEvent(raw.TimeStamp, CandlePayload{Candle: candle}), nil
	default:
		return Event{}, fmt.Errorf("adapter produced non-market event kind %q", raw.Kind)
	}
}

func (e *Engine) context(ev Event) Context {
	return Context{
		State:     e.state,
		Params:    e.params,
		TimeStamp: ev.TimeStamp(),
		MarkPrice: e.state.MarkPrice,
		Rand:      e.rng,
		enq:       e.sched,
	}
}

func (e *Engine) dispatch(ev Event) error {
	switch p := ev.Payload.(type) {
	case TickPayload:
		e.onMarketData(ev, p.Tick.Mid())
	case CandlePayload:
		e.onMarketData(ev, p.Candle.Close)
	case SignalPayload:
		rc := e.context(ev)
		e.sched.Enqueue(e.execution.OnSignal(p.Signal, rc)...)
	case OrderSubmittedPayload:
		e.onOrderSubmitted(ev, p)
	case OrderFilledPayload:
		e.applyFill(ev, p)
		e.evalRisk(ev.Time)
	case OrderCancelledPayload:
		e.onOrderCancelled(ev, p)
	case FundingPayload:
		e.onFunding(ev, p)
	case MarginUpdatePayload:
		e.onMarginUpdate(ev, p)
	case LiquidatedPayload:
		e.onLiquidated(ev, p)
	default:
		return fmt.Errorf("unsupported event kind %v reached dispatch", ev.Kind)
	}
	return nil
}

