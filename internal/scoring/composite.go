package scoring

import (
	"math"

	"github.com/Alias1177/Advisor/models"
)

// Prediction weights for the composite score.
const (
	priceWeight      = 0.4
	volatilityWeight = 0.3
	flowWeight       = 0.3
)

// Compose combines the three predictions into one overall rating.
// The risk-adjusted score rewards confident but non-extreme directional
// calls: a maxed-out directional score zeroes it.
func (s *Scorer) Compose(
	dir models.DirectionPrediction,
	vol models.VolatilityPrediction,
	flow models.FlowPrediction,
) (models.CompositeRating, error) {

	priceSign := directionSign(dir.Direction)
	optionsSign := flowSign(flow.FlowDirection)

	directionalScore := float64(priceSign)*dir.Confidence*priceWeight +
		float64(optionsSign)*flow.FlowStrength*flowWeight

	opportunityScore := dir.Confidence*priceWeight +
		vol.ExpansionProbability*volatilityWeight +
		flow.FlowStrength*flowWeight
	opportunityScore = clip(opportunityScore, 0, 1)

	if !finite(directionalScore, opportunityScore) {
		s.logger.Warn().Msg("composite score not finite")
		return DefaultRating(), ErrBadFeatures
	}

	overall := models.DirectionNeutral
	if directionalScore > 0.2 {
		overall = models.DirectionBullish
	} else if directionalScore < -0.2 {
		overall = models.DirectionBearish
	}

	return models.CompositeRating{
		OverallDirection:  overall,
		ConfidenceScore:   opportunityScore,
		Rating:            ratingFor(opportunityScore),
		OpportunityLevel:  opportunityLevel(opportunityScore),
		RiskAdjustedScore: opportunityScore * (1 - math.Abs(directionalScore)),
		Components: models.ScoreComponents{
			PriceImpact:      dir.Confidence * priceWeight,
			VolatilityImpact: vol.ExpansionProbability * volatilityWeight,
			OptionsImpact:    flow.FlowStrength * flowWeight,
		},
	}, nil
}

// DefaultRating is the safe fallback when composition fails.
func DefaultRating() models.CompositeRating {
	return models.CompositeRating{
		OverallDirection: models.DirectionNeutral,
		ConfidenceScore:  0.5,
		Rating:           models.RatingC,
		OpportunityLevel: models.OpportunityLow,
	}
}

// ratingFor maps a confidence score to a letter grade. Thresholds are
// strict and evaluated highest-first.
func ratingFor(score float64) models.Rating {
	switch {
	case score > 0.8:
		return models.RatingAPlus
	case score > 0.7:
		return models.RatingA
	case score > 0.6:
		return models.RatingBPlus
	case score > 0.5:
		return models.RatingB
	case score > 0.4:
		return models.RatingCPlus
	default:
		return models.RatingC
	}
}

func opportunityLevel(score float64) models.OpportunityLevel {
	switch {
	case score > 0.7:
		return models.OpportunityHigh
	case score > 0.5:
		return models.OpportunityMedium
	default:
		return models.OpportunityLow
	}
}

func directionSign(d models.Direction) int {
	switch d {
	case models.DirectionBullish:
		return 1
	case models.DirectionBearish:
		return -1
	default:
		return 0
	}
}

func flowSign(d models.FlowDirection) int {
	switch d {
	case models.FlowBullish:
		return 1
	case models.FlowBearish:
		return -1
	default:
		return 0
	}
}
