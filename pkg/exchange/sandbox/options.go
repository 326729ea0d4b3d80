package sandbox

import (
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/exchange"
)

type Option func(*Simulator)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

func WithSlippageModel(model SlippageModel) Option {
	return func(s *Simulator) {
		s.slippage = model
	}
}

// WithOrderLatency delays limit order activation after submission.
func WithOrderLatency(latency time.Duration) Option {
	return func(s *Simulator) {
		s.orderLatency = latency
	}
}

// WithCancelLatency delays the instant a cancel request becomes effective.
func WithCancelLatency(latency time.Duration) Option {
	return func(s *Simulator) {
		s.cancelLatency = latency
	}
}

// WithOrderTTL expires resting limit orders that outlive the duration.
func WithOrderTTL(ttl time.Duration) Option {
	return func(s *Simulator) {
		s.orderTTL = ttl
	}
}

// WithOrderMode selects passive or aggressive matching for limit orders.
func WithOrderMode(mode common.OrderMode) Option {
	return func(s *Simulator) {
		s.orderMode = mode
	}
}

// WithBookBuilder replaces the default single-level book derived from each
// tick, e.g. to supply deeper synthetic liquidity.
func WithBookBuilder(builder func(common.Tick) exchange.Book) Option {
	return func(s *Simulator) {
		s.bookBuilder = builder
	}
}
