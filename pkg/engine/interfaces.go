package engine

import (
	"context"
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
)

// RawEvent is what adapters hand the engine: a kind tag, a timestamp and the
// matching payload. Normalization rejects events with an unknown kind or a
// missing timestamp.
type RawEvent struct {
	Kind      string
	TimeStamp time.Time
	Tick      *common.Tick
	Candle    *common.Candle
}

// Adapter loads the raw event stream for a run. Events may arrive unordered;
// the scheduler restores total order.
type Adapter interface {
	Load(ctx context.Context, params RunParameters) ([]RawEvent, error)
}

// Strategy reacts to market events. It never mutates engine state; it
// communicates through returned events or the context's enqueue capability.
type Strategy interface {
	OnEvent(ev Event, rc Context) []Event
}

// Execution turns signals into order lifecycle events and drives resting
// orders on every market event. A default implementation ships in
// pkg/exchange/sandbox.
type Execution interface {
	OnSignal(sig common.Signal, rc Context) []Event
	OnMarketEvent(ev Event, rc Context) []Event
}
