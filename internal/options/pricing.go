// Package options approximates option premiums and Greeks with closed-form
// heuristics. The contract is monotonicity (premium grows with IV and time,
// delta moves toward +/-1 deeper in the money), not agreement with a real
// pricing model.
package options

import (
	"errors"
	"math"

	"github.com/Alias1177/Advisor/models"
)

// ErrBadInput reports non-finite pricing inputs.
var ErrBadInput = errors.New("options: non-finite pricing input")

// Price approximates premium and Greeks for one (strike, expiry, right)
// combination. iv is in percent, e.g. 35 for 35%.
func Price(spot, strike float64, expiryDays int, iv float64, isCall bool) (models.OptionMetrics, error) {
	if math.IsNaN(spot) || math.IsNaN(strike) || math.IsNaN(iv) ||
		math.IsInf(spot, 0) || math.IsInf(strike, 0) || math.IsInf(iv, 0) {
		return models.OptionMetrics{}, ErrBadInput
	}

	moneyness := 1.0
	if strike > 0 {
		moneyness = spot / strike
	}
	timeDecay := math.Max(0.01, float64(expiryDays)/365)

	// Linear delta around +/-0.5, kept a hair inside the exact boundary.
	var delta float64
	if isCall {
		delta = clamp(0.5+(moneyness-1)*0.5, 0.01, 0.99)
	} else {
		delta = clamp(-0.5-(moneyness-1)*0.5, -0.99, -0.01)
	}

	gamma := clamp(0.1/(math.Abs(moneyness-1)+0.1), 0.01, 0.5)
	theta := -0.05 * timeDecay
	vega := 0.1 * math.Sqrt(timeDecay)

	var intrinsic float64
	if isCall {
		intrinsic = math.Max(0, spot-strike)
	} else {
		intrinsic = math.Max(0, strike-spot)
	}

	timeValue := iv / 100 * spot * math.Sqrt(timeDecay) * 0.4
	premium := intrinsic + timeValue

	breakEven := strike + premium
	if !isCall {
		breakEven = strike - premium
	}

	return models.OptionMetrics{
		Premium:        premium,
		Delta:          delta,
		Gamma:          gamma,
		Theta:          theta,
		Vega:           vega,
		IntrinsicValue: intrinsic,
		TimeValue:      timeValue,
		BreakEven:      breakEven,
	}, nil
}

// SuggestStrikes proposes four strike prices around spot for the given
// directional bias: ITM through further OTM for a directional call/put, a
// symmetric ladder around the money for neutral strategies. Strikes are
// rounded to the nearest half-unit.
func SuggestStrikes(spot, iv float64, direction models.Direction, expiryDays int) []float64 {
	var offsets [4]float64
	switch direction {
	case models.DirectionBullish:
		offsets = [4]float64{0.98, 1.02, 1.05, 1.10}
	case models.DirectionBearish:
		offsets = [4]float64{1.02, 0.98, 0.95, 0.90}
	default:
		offsets = [4]float64{0.95, 1.00, 1.05, 1.10}
	}

	strikes := make([]float64, 0, len(offsets))
	for _, off := range offsets {
		strikes = append(strikes, math.Round(spot*off*2)/2)
	}
	return strikes
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
