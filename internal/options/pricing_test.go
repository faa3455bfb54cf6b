package options

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Advisor/models"
)

func TestPremiumMonotonicInIV(t *testing.T) {
	low, err := Price(100, 100, 30, 20, true)
	require.NoError(t, err)
	high, err := Price(100, 100, 30, 40, true)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, low.Premium, 0.0)
	assert.GreaterOrEqual(t, high.Premium, low.Premium)
}

func TestPremiumMonotonicInTime(t *testing.T) {
	short, err := Price(100, 100, 7, 30, true)
	require.NoError(t, err)
	long, err := Price(100, 100, 60, 30, true)
	require.NoError(t, err)

	assert.Greater(t, long.Premium, short.Premium)
	assert.Greater(t, long.Vega, short.Vega)
	assert.Less(t, long.Theta, short.Theta)
}

func TestDeltaMovesWithMoneyness(t *testing.T) {
	atm, err := Price(100, 100, 30, 30, true)
	require.NoError(t, err)
	itm, err := Price(150, 100, 30, 30, true)
	require.NoError(t, err)
	deep, err := Price(400, 100, 30, 30, true)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, atm.Delta, 1e-9)
	assert.Greater(t, itm.Delta, atm.Delta)
	// Clipped just inside the boundary, never exactly 1.
	assert.InDelta(t, 0.99, deep.Delta, 1e-9)

	put, err := Price(100, 100, 30, 30, false)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, put.Delta, 1e-9)
	assert.GreaterOrEqual(t, put.Delta, -0.99)
	assert.LessOrEqual(t, put.Delta, -0.01)
}

func TestIntrinsicAndBreakEven(t *testing.T) {
	call, err := Price(110, 100, 30, 30, true)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, call.IntrinsicValue, 1e-9)
	assert.InDelta(t, call.IntrinsicValue+call.TimeValue, call.Premium, 1e-9)
	assert.InDelta(t, 100+call.Premium, call.BreakEven, 1e-9)

	put, err := Price(90, 100, 30, 30, false)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, put.IntrinsicValue, 1e-9)
	assert.InDelta(t, 100-put.Premium, put.BreakEven, 1e-9)

	otmCall, err := Price(90, 100, 30, 30, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, otmCall.IntrinsicValue, 1e-9)
	assert.Greater(t, otmCall.Premium, 0.0)
}

func TestPriceZeroStrike(t *testing.T) {
	// strike<=0 falls back to moneyness 1 instead of dividing by zero.
	m, err := Price(100, 0, 30, 30, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, m.Delta, 1e-9)
}

func TestPriceBadInput(t *testing.T) {
	_, err := Price(math.NaN(), 100, 30, 30, true)
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestSuggestStrikes(t *testing.T) {
	tests := []struct {
		name      string
		direction models.Direction
		check     func(t *testing.T, strikes []float64)
	}{
		{
			name:      "bullish ladder leans above spot",
			direction: models.DirectionBullish,
			check: func(t *testing.T, strikes []float64) {
				assert.Less(t, strikes[0], 100.0)
				assert.Greater(t, strikes[1], 100.0)
				assert.Greater(t, strikes[3], strikes[2])
			},
		},
		{
			name:      "bearish ladder leans below spot",
			direction: models.DirectionBearish,
			check: func(t *testing.T, strikes []float64) {
				assert.Greater(t, strikes[0], 100.0)
				assert.Less(t, strikes[1], 100.0)
				assert.Less(t, strikes[3], strikes[2])
			},
		},
		{
			name:      "neutral ladder brackets the money",
			direction: models.DirectionNeutral,
			check: func(t *testing.T, strikes []float64) {
				assert.InDelta(t, 100.0, strikes[1], 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strikes := SuggestStrikes(100, 30, tt.direction, 30)
			require.Len(t, strikes, 4)
			for _, s := range strikes {
				_, frac := math.Modf(s * 2)
				assert.InDeltaf(t, 0.0, frac, 1e-9, "strike %v not on a half-unit grid", s)
			}
			tt.check(t, strikes)
		})
	}
}

func TestSuggestStrikesRounding(t *testing.T) {
	strikes := SuggestStrikes(101.3, 30, models.DirectionBullish, 30)
	// 101.3 * 0.98 = 99.274 rounds to the nearest half-unit.
	assert.InDelta(t, 99.5, strikes[0], 1e-9)
}
