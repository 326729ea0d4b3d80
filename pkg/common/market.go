package common

import "fmt"

type MarketType string

const (
	MarketSpot      MarketType = "spot"
	MarketFutures   MarketType = "futures"
	MarketPerpetual MarketType = "perpetual"
)

func (m MarketType) Valid() bool {
	switch m {
	case MarketSpot, MarketFutures, MarketPerpetual:
		return true
	}
	return false
}

// MarginBearing reports whether margin and funding mechanics apply.
func (m MarketType) MarginBearing() bool {
	return m == MarketFutures || m == MarketPerpetual
}

type Side int

const (
	SideBuy Side = iota
	SideSell
)

// Sign is +1 for buys and -1 for sells.
func (s Side) Sign() int {
	if s == SideBuy {
		return 1
	}
	return -1
}

func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func ParseSide(v string) (Side, error) {
	switch v {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	}
	return SideBuy, fmt.Errorf("unknown side %q", v)
}
