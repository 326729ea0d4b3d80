package duckdb

import (
	"context"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
)

// Adapter exposes a duckdb tick table as a replay event stream.
type Adapter struct {
	reader *Reader
}

func NewAdapter(reader *Reader) *Adapter {
	return &Adapter{reader: reader}
}

func (a *Adapter) Load(ctx context.Context, params engine.RunParameters) ([]engine.RawEvent, error) {
	var events []engine.RawEvent
	err := a.reader.LoadTicks(ctx, params.Symbol, params.Start, params.End, func(tick common.Tick) error {
		t := tick
		events = append(events, engine.RawEvent{
			Kind:      "market-tick",
			TimeStamp: t.TimeStamp,
			Tick:      &t,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
