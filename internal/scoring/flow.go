package scoring

import (
	"math"
	"time"

	"github.com/Alias1177/Advisor/models"
)

// AnalyzeFlow reads the directional bias out of options-market positioning.
// A low put/call ratio and positive gamma lean bullish; stretched IV
// percentile is treated as a contrarian signal.
func (s *Scorer) AnalyzeFlow(f models.FeatureSet) (models.FlowPrediction, error) {
	putCallRatio := f.Get("put_call_ratio", 1.0)
	gammaExposure := f.Get("gamma_exposure", 0)
	ivPercentile := f.Get("iv_percentile", 50)

	bullishFlow := 1 / (1 + putCallRatio)
	gammaBias := math.Tanh(gammaExposure / 1_000_000)
	ivContrarian := (100 - ivPercentile) / 100

	score := bullishFlow*0.4 + gammaBias*0.3 + ivContrarian*0.3
	if !finite(score) {
		s.logger.Warn().Float64("put_call_ratio", putCallRatio).Msg("flow score not finite")
		return s.neutralFlow(), ErrBadFeatures
	}

	direction := models.FlowNeutral
	if score > 0.6 {
		direction = models.FlowBullish
	} else if score < 0.4 {
		direction = models.FlowBearish
	}

	sentiment := models.SentimentNeutral
	if ivPercentile < 25 {
		sentiment = models.SentimentGreedy
	} else if ivPercentile > 75 {
		sentiment = models.SentimentFearful
	}

	return models.FlowPrediction{
		FlowDirection: direction,
		FlowStrength:  math.Abs(score-0.5) * 2,
		PutCallRatio:  putCallRatio,
		GammaImpact:   gammaBias,
		Sentiment:     sentiment,
		ModelAccuracy: s.flow.Accuracy,
		Timestamp:     time.Now(),
	}, nil
}

func (s *Scorer) neutralFlow() models.FlowPrediction {
	return models.FlowPrediction{
		FlowDirection: models.FlowNeutral,
		FlowStrength:  0,
		PutCallRatio:  1.0,
		Sentiment:     models.SentimentNeutral,
		ModelAccuracy: s.flow.Accuracy,
		Timestamp:     time.Now(),
	}
}
