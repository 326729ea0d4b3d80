package historical

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// BinaryTick is the on-disk record layout: nanosecond timestamp followed by
// four float64 quote fields.
type BinaryTick struct {
	TimeStamp int64
	Bid       float64
	Ask       float64
	BidVolume float64
	AskVolume float64
}

func (b BinaryTick) ToTick(tick *common.Tick) {
	tick.TimeStamp = time.Unix(0, b.TimeStamp).UTC()
	tick.Bid = fixed.FromFloat64(b.Bid)
	tick.Ask = fixed.FromFloat64(b.Ask)
	tick.BidVolume = fixed.FromFloat64(b.BidVolume)
	tick.AskVolume = fixed.FromFloat64(b.AskVolume)
}
