package indicators

import (
	"errors"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type ZScore struct {
	data *fixed.RingBuffer
}

func NewZScore(windowSize int) *ZScore {
	return &ZScore{
		data: fixed.NewRingBuffer(windowSize),
	}
}

func (z *ZScore) Add(p fixed.Point) {
	z.data.Add(p)
}

func (z *ZScore) Value() (fixed.Point, error) {
	if !z.Ready() {
		return fixed.Point{}, errors.New("not enough data")
	}

	values := z.data.Values()
	mean := fixed.Mean(values)
	stdDev := fixed.StdDev(values, mean)
	if stdDev.IsZero() {
		return fixed.Point{}, errors.New("window has no variance")
	}

	return z.data.Latest().Sub(mean).Div(stdDev), nil
}

func (z *ZScore) Ready() bool {
	return z.data.IsFull()
}

func (z *ZScore) Reset() {
	z.data.Clear()
}
