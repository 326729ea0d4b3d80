package common

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type Tick struct {
	Bid       fixed.Point `json:"bid"`
	Ask       fixed.Point `json:"ask"`
	BidVolume fixed.Point `json:"bid_volume,omitempty"`
	AskVolume fixed.Point `json:"ask_volume,omitempty"`

	Source    string    `json:"src,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	TimeStamp time.Time `json:"ts"`
}

// Mid is the bid/ask midpoint, falling back to whichever side is set.
func (t Tick) Mid() fixed.Point {
	if t.Bid.IsZero() {
		return t.Ask
	}
	if t.Ask.IsZero() {
		return t.Bid
	}
	return t.Bid.Add(t.Ask).Div(fixed.Two)
}

func (t Tick) Spread() fixed.Point {
	return t.Ask.Sub(t.Bid)
}
