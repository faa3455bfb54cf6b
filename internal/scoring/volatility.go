package scoring

import (
	"math"
	"time"

	"github.com/Alias1177/Advisor/models"
)

// PredictVolatility forecasts whether the volatility regime will expand or
// contract. Gamma exposure pushes the expansion probability up since large
// dealer gamma amplifies moves.
func (s *Scorer) PredictVolatility(f models.FeatureSet) (models.VolatilityPrediction, error) {
	ivRank := f.Get("iv_rank", 50)
	gammaImpact := math.Abs(f.Get("gamma_exposure", 0)) / 1_000_000

	expansionProb := sigmoid((ivRank - 30) / 10)
	expansionProb += gammaImpact * 0.1
	expansionProb = clip(expansionProb, 0, 1)
	if !finite(expansionProb) {
		s.logger.Warn().Float64("iv_rank", ivRank).Msg("volatility score not finite")
		return s.stableVolatility(), ErrBadFeatures
	}

	prediction := models.VolatilityStable
	if expansionProb > 0.6 {
		prediction = models.VolatilityExpansion
	} else if expansionProb < 0.4 {
		prediction = models.VolatilityContraction
	}

	return models.VolatilityPrediction{
		Prediction:           prediction,
		ExpansionProbability: expansionProb,
		CurrentIVRank:        ivRank,
		ExpectedVolChange:    (expansionProb - 0.5) * 0.1,
		ModelAccuracy:        s.volatility.Accuracy,
		Timestamp:            time.Now(),
	}, nil
}

func (s *Scorer) stableVolatility() models.VolatilityPrediction {
	return models.VolatilityPrediction{
		Prediction:           models.VolatilityStable,
		ExpansionProbability: 0.5,
		CurrentIVRank:        50,
		ModelAccuracy:        s.volatility.Accuracy,
		Timestamp:            time.Now(),
	}
}
