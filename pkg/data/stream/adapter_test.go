package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

var sessionStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sessionTick(ts time.Time, bid, ask string) Message {
	return Message{
		Kind:      "market-tick",
		TimeStamp: ts,
		Tick: &common.Tick{
			Symbol:    "BTCUSD",
			Bid:       fixed.MustFromString(bid),
			Ask:       fixed.MustFromString(ask),
			TimeStamp: ts,
		},
	}
}

func serveSession(t *testing.T, messages []Message) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() {
			_ = conn.Close()
		}()

		for _, msg := range messages {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)

		// Wait for the peer's close response so the handler does not tear
		// down the connection before the client drains the stream.
		_, _, _ = conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func sessionParams(start, end time.Time) engine.RunParameters {
	return engine.RunParameters{
		Symbol:      "BTCUSD",
		Start:       start,
		End:         end,
		InitialCash: fixed.Thousand,
	}
}

func TestStreamAdapter_LoadDrainsSession(t *testing.T) {
	url := serveSession(t, []Message{
		sessionTick(sessionStart, "100.0", "100.2"),
		sessionTick(sessionStart.Add(time.Second), "100.1", "100.3"),
		sessionTick(sessionStart.Add(2*time.Second), "100.2", "100.4"),
	})

	adapter := NewAdapter(zap.NewNop(), url)
	events, err := adapter.Load(context.Background(), sessionParams(sessionStart, sessionStart.Add(time.Minute)))
	require.NoError(t, err)
	require.Len(t, events, 3)

	for i, ev := range events {
		assert.Equal(t, "market-tick", ev.Kind)
		require.NotNil(t, ev.Tick)
		assert.Equal(t, "BTCUSD", ev.Tick.Symbol)
		assert.Equal(t, sessionStart.Add(time.Duration(i)*time.Second), ev.TimeStamp)
	}
	assert.True(t, events[0].Tick.Bid.Eq(fixed.MustFromString("100.0")))
	assert.True(t, events[2].Tick.Ask.Eq(fixed.MustFromString("100.4")))
}

func TestStreamAdapter_SkipsMessagesBeforeStart(t *testing.T) {
	url := serveSession(t, []Message{
		sessionTick(sessionStart.Add(-time.Second), "99.0", "99.2"),
		sessionTick(sessionStart, "100.0", "100.2"),
	})

	adapter := NewAdapter(zap.NewNop(), url)
	events, err := adapter.Load(context.Background(), sessionParams(sessionStart, sessionStart.Add(time.Minute)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, sessionStart, events[0].TimeStamp)
}

func TestStreamAdapter_StopsPastEnd(t *testing.T) {
	end := sessionStart.Add(time.Second)
	url := serveSession(t, []Message{
		sessionTick(sessionStart, "100.0", "100.2"),
		sessionTick(end, "100.1", "100.3"),
		sessionTick(end.Add(time.Second), "100.2", "100.4"),
	})

	adapter := NewAdapter(zap.NewNop(), url)
	events, err := adapter.Load(context.Background(), sessionParams(sessionStart, end))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, end, events[1].TimeStamp)
}

func TestStreamAdapter_CandleMessages(t *testing.T) {
	ts := sessionStart.Add(time.Minute)
	url := serveSession(t, []Message{
		{
			Kind:      "market-candle",
			TimeStamp: ts,
			Candle: &common.Candle{
				Open:      fixed.MustFromString("100"),
				High:      fixed.MustFromString("101"),
				Low:       fixed.MustFromString("99"),
				Close:     fixed.MustFromString("100.5"),
				Volume:    fixed.MustFromString("12"),
				Symbol:    "BTCUSD",
				TimeStamp: ts,
			},
		},
	})

	adapter := NewAdapter(zap.NewNop(), url)
	events, err := adapter.Load(context.Background(), sessionParams(sessionStart, sessionStart.Add(time.Hour)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Candle)
	assert.Nil(t, events[0].Tick)
	assert.True(t, events[0].Candle.Close.Eq(fixed.MustFromString("100.5")))
}

func TestStreamAdapter_DialFailure(t *testing.T) {
	adapter := NewAdapter(zap.NewNop(), "ws://127.0.0.1:1/session")
	_, err := adapter.Load(context.Background(), sessionParams(sessionStart, sessionStart.Add(time.Minute)))
	require.Error(t, err)
}
