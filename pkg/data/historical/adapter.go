package historical

import (
	"context"
	"errors"

	"github.com/peter-kozarec/replay/pkg/engine"
)

// Adapter feeds a binary tick file into the replay engine. The file must be
// time-ordered; range selection comes from the run parameters.
type Adapter struct {
	source *Source[BinaryTick]
}

func NewAdapter(source *Source[BinaryTick]) *Adapter {
	return &Adapter{source: source}
}

func (a *Adapter) Load(ctx context.Context, params engine.RunParameters) ([]engine.RawEvent, error) {
	reader := NewTickReader(a.source, params.Symbol, params.Start, params.End)

	var events []engine.RawEvent
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tick, err := reader.GetNext()
		if err != nil {
			if errors.Is(err, ErrEof) {
				return events, nil
			}
			return nil, err
		}
		t := tick
		events = append(events, engine.RawEvent{
			Kind:      "market-tick",
			TimeStamp: t.TimeStamp,
			Tick:      &t,
		})
	}
}
