package common

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type Candle struct {
	Open   fixed.Point `json:"open"`
	High   fixed.Point `json:"high"`
	Low    fixed.Point `json:"low"`
	Close  fixed.Point `json:"close"`
	Volume fixed.Point `json:"volume"`

	Period    time.Duration `json:"period,omitempty"`
	Source    string        `json:"src,omitempty"`
	Symbol    string        `json:"symbol,omitempty"`
	TimeStamp time.Time     `json:"ts"`
}
