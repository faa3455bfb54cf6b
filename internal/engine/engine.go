// Package engine wires the feature bank, the scorers and the recommendation
// builder into one per-ticker analysis pipeline. Engines are constructed
// explicitly and are safe for concurrent use: the pipeline has no shared
// mutable state beyond the sampler, which synchronizes itself.
package engine

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/features"
	"github.com/Alias1177/Advisor/internal/recommend"
	"github.com/Alias1177/Advisor/internal/scoring"
	"github.com/Alias1177/Advisor/models"
)

// ModelVersion is attached to every analysis.
const ModelVersion = "2.1.0"

// Engine runs the scoring pipeline for one ticker at a time.
type Engine struct {
	bank    *features.Bank
	scorer  *scoring.Scorer
	builder *recommend.Builder
	logger  zerolog.Logger
}

// New creates an engine. The sampler feeds both the feature bank and the
// option-leg pricing inside the builder.
func New(sampler features.Sampler) *Engine {
	return &Engine{
		bank:    features.NewBank(sampler),
		scorer:  scoring.NewScorer(),
		builder: recommend.NewBuilder(sampler),
		logger:  log.With().Str("component", "engine").Logger(),
	}
}

// Analyze runs the full scoring pipeline. Stage failures are logged and
// replaced with the documented neutral defaults; an Analysis is always
// returned.
func (e *Engine) Analyze(snap models.MarketSnapshot, short *models.ShortInterest) models.Analysis {
	technical, err := e.bank.Technical(snap)
	if err != nil {
		e.logger.Warn().Err(err).Str("ticker", snap.Ticker).Msg("technical features failed")
		technical = models.FeatureSet{}
	}
	optionsFeatures, err := e.bank.Options(snap.Ticker, short)
	if err != nil {
		e.logger.Warn().Err(err).Str("ticker", snap.Ticker).Msg("options features failed")
		optionsFeatures = models.FeatureSet{}
	}
	merged := technical.Merge(optionsFeatures)

	direction, err := e.scorer.PredictDirection(merged)
	if err != nil {
		e.logger.Warn().Err(err).Str("ticker", snap.Ticker).Msg("direction prediction defaulted")
	}
	volatility, err := e.scorer.PredictVolatility(merged)
	if err != nil {
		e.logger.Warn().Err(err).Str("ticker", snap.Ticker).Msg("volatility prediction defaulted")
	}
	flow, err := e.scorer.AnalyzeFlow(merged)
	if err != nil {
		e.logger.Warn().Err(err).Str("ticker", snap.Ticker).Msg("flow analysis defaulted")
	}

	composite, err := e.scorer.Compose(direction, volatility, flow)
	if err != nil {
		e.logger.Warn().Err(err).Str("ticker", snap.Ticker).Msg("composite rating defaulted")
	}

	return models.Analysis{
		Ticker:             snap.Ticker,
		PricePrediction:    direction,
		VolatilityForecast: volatility,
		OptionsFlow:        flow,
		CompositeScore:     composite,
		Features:           merged,
		ModelVersion:       ModelVersion,
		Timestamp:          time.Now(),
	}
}

// Recommend builds the ranked trade proposals for a prior analysis.
func (e *Engine) Recommend(
	snap models.MarketSnapshot,
	analysis models.Analysis,
	accountSize float64,
	level models.RiskLevel,
) []models.TradeRecommendation {
	return e.builder.Generate(snap, analysis, accountSize, level)
}
