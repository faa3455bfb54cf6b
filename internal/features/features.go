// Package features derives the flat feature mapping consumed by the scoring
// models from a market snapshot and optional short-interest data.
package features

import (
	"errors"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/models"
)

// ErrBadSnapshot reports a snapshot with non-finite price fields.
var ErrBadSnapshot = errors.New("features: snapshot contains non-finite values")

// Bank derives feature sets. Stateless apart from the sampler.
type Bank struct {
	sampler Sampler
	logger  zerolog.Logger
}

// NewBank creates a feature bank using the given sampler for synthetic
// indicator values.
func NewBank(sampler Sampler) *Bank {
	return &Bank{
		sampler: sampler,
		logger:  log.With().Str("component", "features").Logger(),
	}
}

// Technical derives price/volume features from a snapshot.
// Never fails the caller with a partial mapping: on bad input it returns an
// empty set alongside the error.
func (b *Bank) Technical(snap models.MarketSnapshot) (models.FeatureSet, error) {
	if !finite(snap.Price) || !finite(snap.High) || !finite(snap.Low) {
		b.logger.Warn().Str("ticker", snap.Ticker).Msg("non-finite snapshot values")
		return models.FeatureSet{}, ErrBadSnapshot
	}

	f := models.FeatureSet{
		"price_momentum": b.sampler.Normal(0, 0.1),
	}

	if snap.Volume > 0 {
		f["volume_ratio"] = math.Min(float64(snap.Volume)/1_000_000, 10)
	} else {
		f["volume_ratio"] = 0
	}

	if snap.Price > 0 {
		f["volatility"] = math.Abs(snap.High-snap.Low) / snap.Price
	} else {
		f["volatility"] = 0
	}

	if snap.High > snap.Low {
		f["price_position"] = clamp((snap.Price-snap.Low)/(snap.High-snap.Low), 0, 1)
	} else {
		f["price_position"] = 0.5
	}

	// Momentum oscillators, clipped to their canonical ranges.
	f["rsi_14"] = clamp(b.sampler.Normal(50, 15), 0, 100)
	f["macd_signal"] = b.sampler.Normal(0, 0.05)
	f["bollinger_position"] = clamp(b.sampler.Normal(0.5, 0.2), 0, 1)
	f["stoch_k"] = clamp(b.sampler.Normal(50, 20), 0, 100)

	// Volume-price indicators.
	f["vwap_deviation"] = b.sampler.Normal(0, 0.02)
	f["money_flow_index"] = clamp(b.sampler.Normal(50, 15), 0, 100)
	f["on_balance_volume"] = b.sampler.Normal(0, 0.1)

	return f, nil
}

// Options derives options-market features for a ticker. Short-interest
// fields are copied through verbatim when provided.
func (b *Bank) Options(ticker string, short *models.ShortInterest) (models.FeatureSet, error) {
	f := models.FeatureSet{
		"implied_volatility": clamp(b.sampler.Normal(30, 10), 10, 100),
		"iv_rank":            clamp(b.sampler.Normal(50, 20), 0, 100),
		"iv_percentile":      clamp(b.sampler.Normal(50, 25), 0, 100),
		"put_call_ratio":     clamp(b.sampler.Normal(1.0, 0.3), 0.3, 3.0),
		"gamma_exposure":     b.sampler.Normal(0, 1_000_000),
		"delta_exposure":     b.sampler.Normal(0, 500_000),
	}

	if short != nil {
		f["short_interest"] = short.ShortInterestPercent
		f["utilization_rate"] = short.UtilizationRate
		f["cost_to_borrow"] = short.CostToBorrow
		f["days_to_cover"] = short.DaysToCover
	}

	b.logger.Debug().Str("ticker", ticker).Int("count", len(f)).Msg("derived options features")
	return f, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
