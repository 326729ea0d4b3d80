package indicators

import (
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Sma is a simple moving average over the last windowSize observations.
type Sma struct {
	data *fixed.RingBuffer
}

func NewSma(windowSize int) *Sma {
	return &Sma{
		data: fixed.NewRingBuffer(windowSize),
	}
}

func (s *Sma) Add(p fixed.Point) {
	s.data.Add(p)
}

func (s *Sma) Value() fixed.Point {
	return s.data.Mean()
}

func (s *Sma) Ready() bool {
	return s.data.IsFull()
}

func (s *Sma) Reset() {
	s.data.Clear()
}
