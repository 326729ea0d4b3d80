package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
)

const adapterComponentName = "data.stream.adapter"

// Message is one recorded market observation on the wire. Kind selects the
// payload the same way adapter events do.
type Message struct {
	Kind      string         `json:"kind"`
	TimeStamp time.Time      `json:"ts"`
	Tick      *common.Tick   `json:"tick,omitempty"`
	Candle    *common.Candle `json:"candle,omitempty"`
}

// Adapter replays a recorded session served over a websocket. The stream is
// drained completely before the run starts, so replay determinism does not
// depend on network timing.
type Adapter struct {
	logger *zap.Logger
	url    string
	dialer *websocket.Dialer
}

func NewAdapter(logger *zap.Logger, url string) *Adapter {
	return &Adapter{
		logger: logger,
		url:    url,
		dialer: websocket.DefaultDialer,
	}
}

func (a *Adapter) Load(ctx context.Context, params engine.RunParameters) ([]engine.RawEvent, error) {
	conn, _, err := a.dialer.DialContext(ctx, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to dial %q: %w", a.url, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	a.logger.Debug("session stream connected",
		zap.String("component", adapterComponentName),
		zap.String("url", a.url))

	var events []engine.RawEvent
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if closedNormally(err) {
				return events, nil
			}
			return nil, fmt.Errorf("unable to read session message: %w", err)
		}

		if msg.TimeStamp.Before(params.Start) {
			continue
		}
		if msg.TimeStamp.After(params.End) {
			return events, nil
		}

		events = append(events, engine.RawEvent{
			Kind:      msg.Kind,
			TimeStamp: msg.TimeStamp,
			Tick:      msg.Tick,
			Candle:    msg.Candle,
		})
	}
}

func closedNormally(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return false
}
