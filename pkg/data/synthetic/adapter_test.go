package synthetic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func gbmParams(seed int64) engine.RunParameters {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return engine.RunParameters{
		Symbol:      "EURUSD",
		Start:       start,
		End:         start.Add(time.Minute),
		InitialCash: fixed.Thousand,
		Seed:        seed,
	}
}

func gbmConfig() GBMConfig {
	return GBMConfig{
		StartPrice:      fixed.MustFromString("1.10"),
		FullSpread:      fixed.MustFromString("0.0002"),
		Mu:              0.02,
		Sigma:           0.1,
		AvgTickInterval: time.Second,
		AvgVolume:       fixed.Hundred,
		PriceDigits:     5,
		VolumeDigits:    0,
	}
}

func TestSyntheticAdapter_SameSeedSameStream(t *testing.T) {
	adapter := NewAdapter(gbmConfig())

	first, err := adapter.Load(context.Background(), gbmParams(42))
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := adapter.Load(context.Background(), gbmParams(42))
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		require.NotNil(t, first[i].Tick)
		require.NotNil(t, second[i].Tick)
		assert.Equal(t, first[i].TimeStamp, second[i].TimeStamp)
		assert.True(t, first[i].Tick.Bid.Eq(second[i].Tick.Bid))
		assert.True(t, first[i].Tick.Ask.Eq(second[i].Tick.Ask))
	}
}

func TestSyntheticAdapter_SeedChangesStream(t *testing.T) {
	adapter := NewAdapter(gbmConfig())

	first, err := adapter.Load(context.Background(), gbmParams(1))
	require.NoError(t, err)
	second, err := adapter.Load(context.Background(), gbmParams(2))
	require.NoError(t, err)

	diverged := len(first) != len(second)
	for i := 0; !diverged && i < len(first); i++ {
		if !first[i].Tick.Bid.Eq(second[i].Tick.Bid) {
			diverged = true
		}
	}
	assert.True(t, diverged, "different seeds should produce different streams")
}

func TestSyntheticAdapter_StaysWithinRange(t *testing.T) {
	adapter := NewAdapter(gbmConfig())
	params := gbmParams(7)

	events, err := adapter.Load(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	for _, ev := range events {
		assert.Equal(t, "market-tick", ev.Kind)
		assert.False(t, ev.TimeStamp.After(params.End))
		require.NotNil(t, ev.Tick)
		assert.True(t, ev.Tick.Bid.Lt(ev.Tick.Ask))
	}
}

func TestSyntheticAdapter_RejectsZeroStartPrice(t *testing.T) {
	adapter := NewAdapter(GBMConfig{})
	_, err := adapter.Load(context.Background(), gbmParams(1))
	require.Error(t, err)
}
