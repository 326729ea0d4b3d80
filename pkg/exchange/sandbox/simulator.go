package sandbox

import (
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/exchange"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

const simulatorComponentName = "exchange.sandbox.simulator"

// Rejection and cancellation reasons surfaced in order-cancelled events.
const (
	ReasonInvalidQty  = "invalid_qty"
	ReasonMinQty      = "min_qty_violation"
	ReasonMaxQty      = "max_qty_violation"
	ReasonMinNotional = "min_notional_violation"
	ReasonUserCancel  = "user_cancel"
	ReasonTTLTimeout  = "ttl_timeout"
)

type FillState int

const (
	FillStateRejected FillState = iota
	FillStatePartial
	FillStateFilled
)

func (s FillState) String() string {
	switch s {
	case FillStateRejected:
		return "rejected"
	case FillStatePartial:
		return "partial"
	}
	return "filled"
}

// FillResult is the outcome of one market-order simulation. Qty is the
// lot-rounded working quantity, Remaining what neither the book nor the
// synthetic fallback could absorb.
type FillResult struct {
	State     FillState
	Reason    string
	Qty       fixed.Point
	Remaining fixed.Point
	Fills     []common.Fill
}

// Simulator is a deterministic fill model. Market signals execute against the
// last observed book with a synthetic slippage fallback, limit signals rest
// as orders swept on every market event. It implements engine.Execution.
type Simulator struct {
	logger     *zap.Logger
	instrument exchange.Instrument

	slippage      SlippageModel
	orderLatency  time.Duration
	cancelLatency time.Duration
	orderTTL      time.Duration
	orderMode     common.OrderMode
	bookBuilder   func(common.Tick) exchange.Book

	orderIdCounter common.OrderId
	openOrders     []*common.Order

	lastBook exchange.Book
	lastMid  fixed.Point
}

func NewSimulator(instrument exchange.Instrument, options ...Option) *Simulator {
	s := &Simulator{
		logger:      zap.NewNop(),
		instrument:  instrument,
		bookBuilder: exchange.FromTick,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// ResetRun clears all per-run state so consecutive runs start from identical
// order ids and an empty book.
func (s *Simulator) ResetRun(engine.RunParameters) {
	s.orderIdCounter = 0
	s.openOrders = nil
	s.lastBook = exchange.Book{}
	s.lastMid = fixed.Zero
}

func (s *Simulator) OnSignal(sig common.Signal, rc engine.Context) []engine.Event {
	if sig.LimitPrice.IsZero() {
		return s.submitMarket(sig, rc)
	}
	return s.submitLimit(sig, rc)
}

func (s *Simulator) OnMarketEvent(ev engine.Event, rc engine.Context) []engine.Event {
	switch p := ev.Payload.(type) {
	case engine.TickPayload:
		s.lastBook = s.bookBuilder(p.Tick)
		s.lastMid = p.Tick.Mid()
	case engine.CandlePayload:
		level := []exchange.Level{{Price: p.Candle.Close, Qty: p.Candle.Volume}}
		s.lastBook = exchange.NewBook(level, level)
		s.lastMid = p.Candle.Close
	default:
		return nil
	}
	return s.sweep(rc.TimeStamp)
}

// RequestCancel marks an open order for cancellation. The cancel becomes
// effective after the configured cancel latency and is honored at the next
// market event, so fills occurring before that instant win the race.
func (s *Simulator) RequestCancel(id common.OrderId, now time.Time) bool {
	for _, order := range s.openOrders {
		if order.Id == id && order.Status == common.OrderStatusOpen && order.CancelRequestedAt.IsZero() {
			order.CancelRequestedAt = now
			order.CancelEffectiveAt = now.Add(s.cancelLatency)
			return true
		}
	}
	return false
}

// OpenOrders returns the resting orders in submission order.
func (s *Simulator) OpenOrders() []common.Order {
	out := make([]common.Order, 0, len(s.openOrders))
	for _, order := range s.openOrders {
		out = append(out, *order)
	}
	return out
}

func (s *Simulator) submitMarket(sig common.Signal, rc engine.Context) []engine.Event {
	now := rc.TimeStamp
	ref := rc.MarkPrice
	if ref.IsZero() {
		ref = s.lastMid
	}

	res := s.MarketFill(sig.Side, sig.Qty, s.lastBook, ref, now)

	s.orderIdCounter++
	order := common.Order{
		Id:         s.orderIdCounter,
		Side:       sig.Side,
		Qty:        res.Qty,
		Remaining:  res.Qty,
		Status:     common.OrderStatusOpen,
		CreatedAt:  now,
		ActivateAt: now,
		Source:     simulatorComponentName,
		Symbol:     sig.Symbol,
		TimeStamp:  now,
	}
	if res.State == FillStateRejected {
		order.Qty = sig.Qty
		order.Remaining = sig.Qty
	}

	events := []engine.Event{engine.NewEvent(now, engine.OrderSubmittedPayload{Order: order})}

	if res.State == FillStateRejected {
		s.logger.Debug("market order rejected",
			zap.String("component", simulatorComponentName),
			zap.Int64("order_id", order.Id),
			zap.String("reason", res.Reason))
		return append(events, engine.NewEvent(now, engine.OrderCancelledPayload{
			OrderId: order.Id,
			Reason:  res.Reason,
		}))
	}

	for _, fill := range res.Fills {
		events = append(events, engine.NewEvent(now, engine.OrderFilledPayload{
			OrderId: order.Id,
			Side:    sig.Side,
			Fill:    fill,
		}))
	}
	return events
}

func (s *Simulator) submitLimit(sig common.Signal, rc engine.Context) []engine.Event {
	now := rc.TimeStamp
	rounded, reason := s.validate(sig.Qty, sig.LimitPrice)

	s.orderIdCounter++
	order := &common.Order{
		Id:         s.orderIdCounter,
		Side:       sig.Side,
		Qty:        rounded,
		Remaining:  rounded,
		LimitPrice: sig.LimitPrice,
		Mode:       s.orderMode,
		Status:     common.OrderStatusOpen,
		CreatedAt:  now,
		ActivateAt: now.Add(s.orderLatency),
		Source:     simulatorComponentName,
		Symbol:     sig.Symbol,
		TimeStamp:  now,
	}
	if s.orderTTL > 0 {
		order.ExpireAt = now.Add(s.orderTTL)
	}

	events := []engine.Event{engine.NewEvent(now, engine.OrderSubmittedPayload{Order: *order})}

	if reason != "" {
		order.Qty = sig.Qty
		order.Status = common.OrderStatusCancelled
		return append(events, engine.NewEvent(now, engine.OrderCancelledPayload{
			OrderId: order.Id,
			Reason:  reason,
		}))
	}

	s.openOrders = append(s.openOrders, order)
	return events
}

// MarketFill simulates an immediate order of the given quantity against the
// book. Liquidity is consumed best-first; whatever the book cannot absorb is
// priced by the slippage model off the reference price. All fills are taker.
func (s *Simulator) MarketFill(side common.Side, qty fixed.Point, book exchange.Book, ref fixed.Point, now time.Time) FillResult {
	rounded, reason := s.validate(qty, ref)
	if reason != "" {
		return FillResult{State: FillStateRejected, Reason: reason, Qty: rounded}
	}

	remaining := rounded
	var fills []common.Fill

	for _, level := range book.SideLevels(side) {
		if !remaining.IsPos() {
			break
		}
		if !level.Qty.IsPos() {
			continue
		}
		take := fixed.Min(remaining, level.Qty)
		price := s.roundPrice(level.Price, side)
		fills = append(fills, common.Fill{
			Qty:       take,
			Price:     price,
			Fee:       take.Mul(price).Mul(s.instrument.TakerFeeRate),
			Liquidity: common.LiquidityTaker,
			TimeStamp: now,
		})
		remaining = remaining.Sub(take)
	}

	if remaining.IsPos() && s.slippage != nil && !ref.IsZero() {
		offset := s.slippage.Offset(ref, remaining, book)
		price := s.roundPrice(applySlippage(ref, offset, side), side)
		fills = append(fills, common.Fill{
			Qty:       remaining,
			Price:     price,
			Fee:       remaining.Mul(price).Mul(s.instrument.TakerFeeRate),
			Liquidity: common.LiquidityTaker,
			TimeStamp: now,
		})
		remaining = fixed.Zero
	}

	state := FillStateFilled
	if remaining.IsPos() {
		state = FillStatePartial
	}
	return FillResult{State: state, Qty: rounded, Remaining: remaining, Fills: fills}
}

// validate lot-rounds the quantity down and applies the instrument limits to
// the rounded value. An empty reason means the order passes.
func (s *Simulator) validate(qty, ref fixed.Point) (fixed.Point, string) {
	rounded := qty.QuantizeDown(s.instrument.LotStep)
	if !rounded.IsPos() {
		return rounded, ReasonInvalidQty
	}
	if s.instrument.MinQty.IsPos() && rounded.Lt(s.instrument.MinQty) {
		return rounded, ReasonMinQty
	}
	if s.instrument.MaxQty.IsPos() && rounded.Gt(s.instrument.MaxQty) {
		return rounded, ReasonMaxQty
	}
	if s.instrument.MinNotional.IsPos() && !ref.IsZero() && rounded.Mul(ref).Lt(s.instrument.MinNotional) {
		return rounded, ReasonMinNotional
	}
	return rounded, ""
}

// roundPrice snaps a fill price to the tick grid, always against the taker.
func (s *Simulator) roundPrice(price fixed.Point, side common.Side) fixed.Point {
	if side == common.SideBuy {
		return price.QuantizeUp(s.instrument.TickSize)
	}
	return price.QuantizeDown(s.instrument.TickSize)
}

// sweep evaluates resting orders in submission order against the current
// book. Per order: effective cancels first, then TTL expiry, then matching.
func (s *Simulator) sweep(now time.Time) []engine.Event {
	if len(s.openOrders) == 0 {
		return nil
	}

	book := exchange.NewBook(s.lastBook.Bids, s.lastBook.Asks)
	var events []engine.Event
	keep := make([]*common.Order, 0, len(s.openOrders))

	for _, order := range s.openOrders {
		if order.Status != common.OrderStatusOpen {
			continue
		}
		if !order.Active(now) {
			keep = append(keep, order)
			continue
		}
		if order.CancelDue(now) {
			order.Status = common.OrderStatusCancelled
			events = append(events, engine.NewEvent(now, engine.OrderCancelledPayload{
				OrderId: order.Id,
				Reason:  ReasonUserCancel,
			}))
			continue
		}
		if order.Expired(now) {
			order.Status = common.OrderStatusCancelled
			events = append(events, engine.NewEvent(now, engine.OrderCancelledPayload{
				OrderId: order.Id,
				Reason:  ReasonTTLTimeout,
			}))
			continue
		}

		for _, fill := range s.matchLimit(order, &book, now) {
			events = append(events, engine.NewEvent(now, engine.OrderFilledPayload{
				OrderId: order.Id,
				Side:    order.Side,
				Fill:    fill,
			}))
		}
		if order.Status == common.OrderStatusOpen {
			keep = append(keep, order)
		}
	}

	s.openOrders = keep
	return events
}

// matchLimit consumes book liquidity priced at or better than the order's
// limit. Passive orders require the book to cross first and earn the maker
// fee; aggressive orders take whatever is within their limit at taker fee.
// The book is mutated so later orders in the same sweep see reduced depth.
func (s *Simulator) matchLimit(order *common.Order, book *exchange.Book, now time.Time) []common.Fill {
	if order.Mode == common.OrderModePassive && !crossed(order, *book) {
		return nil
	}

	liquidity := common.LiquidityTaker
	feeRate := s.instrument.TakerFeeRate
	if order.Mode == common.OrderModePassive {
		liquidity = common.LiquidityMaker
		feeRate = s.instrument.MakerFeeRate
	}

	levels := book.Asks
	if order.Side == common.SideSell {
		levels = book.Bids
	}

	var fills []common.Fill
	for i := range levels {
		if !order.Remaining.IsPos() {
			break
		}
		level := &levels[i]
		if !level.Qty.IsPos() {
			continue
		}
		if order.Side == common.SideBuy && level.Price.Gt(order.LimitPrice) {
			break
		}
		if order.Side == common.SideSell && level.Price.Lt(order.LimitPrice) {
			break
		}

		take := fixed.Min(order.Remaining, level.Qty)
		price := s.roundPrice(level.Price, order.Side)
		// Tick rounding must not breach the limit.
		if order.Side == common.SideBuy {
			price = fixed.Min(price, order.LimitPrice)
		} else {
			price = fixed.Max(price, order.LimitPrice)
		}

		fill := common.Fill{
			Qty:       take,
			Price:     price,
			Fee:       take.Mul(price).Mul(feeRate),
			Liquidity: liquidity,
			TimeStamp: now,
		}
		fills = append(fills, fill)
		order.Fills = append(order.Fills, fill)
		order.Remaining = order.Remaining.Sub(take)
		level.Qty = level.Qty.Sub(take)
	}

	if !order.Remaining.IsPos() {
		order.Status = common.OrderStatusFilled
	}
	return fills
}

func crossed(order *common.Order, book exchange.Book) bool {
	if order.Side == common.SideBuy {
		ask, ok := book.BestAsk()
		return ok && ask.Price.Lte(order.LimitPrice)
	}
	bid, ok := book.BestBid()
	return ok && bid.Price.Gte(order.LimitPrice)
}
