package exchange

import (
	"sort"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type Level struct {
	Price fixed.Point `json:"price"`
	Qty   fixed.Point `json:"qty"`
}

// Book is a shallow depth snapshot. Bids are held best-first (descending
// price), asks best-first (ascending price).
type Book struct {
	Bids []Level `json:"bids"`
	Asks []Level `json:"asks"`
}

func NewBook(bids, asks []Level) Book {
	b := Book{
		Bids: append([]Level(nil), bids...),
		Asks: append([]Level(nil), asks...),
	}
	sort.SliceStable(b.Bids, func(i, j int) bool { return b.Bids[i].Price.Gt(b.Bids[j].Price) })
	sort.SliceStable(b.Asks, func(i, j int) bool { return b.Asks[i].Price.Lt(b.Asks[j].Price) })
	return b
}

// FromTick builds a single-level book out of a quote observation.
func FromTick(tick common.Tick) Book {
	var b Book
	if !tick.Bid.IsZero() {
		b.Bids = []Level{{Price: tick.Bid, Qty: tick.BidVolume}}
	}
	if !tick.Ask.IsZero() {
		b.Asks = []Level{{Price: tick.Ask, Qty: tick.AskVolume}}
	}
	return b
}

func (b Book) BestBid() (Level, bool) {
	if len(b.Bids) == 0 {
		return Level{}, false
	}
	return b.Bids[0], true
}

func (b Book) BestAsk() (Level, bool) {
	if len(b.Asks) == 0 {
		return Level{}, false
	}
	return b.Asks[0], true
}

func (b Book) Spread() fixed.Point {
	bid, okB := b.BestBid()
	ask, okA := b.BestAsk()
	if !okB || !okA {
		return fixed.Zero
	}
	return ask.Price.Sub(bid.Price)
}

// SideLevels returns the levels a taker of the given side consumes.
func (b Book) SideLevels(side common.Side) []Level {
	if side == common.SideBuy {
		return b.Asks
	}
	return b.Bids
}
