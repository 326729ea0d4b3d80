package common

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Signal is a strategy's trade intent. A zero LimitPrice requests a market
// execution, otherwise the execution model may rest a limit order.
type Signal struct {
	Side       Side        `json:"side"`
	Qty        fixed.Point `json:"qty"`
	LimitPrice fixed.Point `json:"limit_price,omitempty"`
	Comment    string      `json:"comment,omitempty"`

	Source    string    `json:"src,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	TimeStamp time.Time `json:"ts"`
}
