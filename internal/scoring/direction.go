package scoring

import (
	"math"
	"time"

	"github.com/Alias1177/Advisor/models"
)

// PredictDirection scores the directional bias of the feature set.
// On bad input it returns the neutral default prediction together with the
// error, so callers can log without losing a usable value.
func (s *Scorer) PredictDirection(f models.FeatureSet) (models.DirectionPrediction, error) {
	momentum := f.Get("price_momentum", 0)
	volume := math.Min(f.Get("volume_ratio", 0)/5, 1)
	rsi := (f.Get("rsi_14", 50) - 50) / 50

	raw := momentum*0.4 + volume*0.3 + rsi*0.3
	probability := sigmoid(raw * 3)
	if !finite(probability) {
		s.logger.Warn().Float64("raw", raw).Msg("direction score not finite")
		return s.neutralDirection(), ErrBadFeatures
	}

	direction := models.DirectionNeutral
	if probability > 0.6 {
		direction = models.DirectionBullish
	} else if probability < 0.4 {
		direction = models.DirectionBearish
	}

	confidence := math.Abs(probability-0.5) * 2

	strength := models.StrengthWeak
	if confidence > 0.7 {
		strength = models.StrengthStrong
	} else if confidence > 0.4 {
		strength = models.StrengthModerate
	}

	return models.DirectionPrediction{
		Direction:     direction,
		Probability:   probability,
		Confidence:    confidence,
		Strength:      strength,
		ModelAccuracy: s.direction.Accuracy,
		Timestamp:     time.Now(),
	}, nil
}

func (s *Scorer) neutralDirection() models.DirectionPrediction {
	return models.DirectionPrediction{
		Direction:     models.DirectionNeutral,
		Probability:   0.5,
		Confidence:    0,
		Strength:      models.StrengthWeak,
		ModelAccuracy: s.direction.Accuracy,
		Timestamp:     time.Now(),
	}
}
