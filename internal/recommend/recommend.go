// Package recommend turns a composite rating into sized, ranked trade
// proposals subject to a risk-profile policy.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/features"
	"github.com/Alias1177/Advisor/internal/options"
	"github.com/Alias1177/Advisor/models"
)

const maxRecommendations = 5

// Builder generates trade recommendations. The sampler supplies the
// implied-volatility placeholder used to price option legs.
type Builder struct {
	sampler features.Sampler
	logger  zerolog.Logger
}

// NewBuilder creates a recommendation builder.
func NewBuilder(sampler features.Sampler) *Builder {
	return &Builder{
		sampler: sampler,
		logger:  log.With().Str("component", "recommend").Logger(),
	}
}

// Generate produces at most five recommendations for one analysis, sorted
// by confidence score descending. Each sub-generator gates itself; a failed
// sub-generator is dropped without aborting the others. Callers must not
// assume a non-empty result.
func (b *Builder) Generate(
	snap models.MarketSnapshot,
	analysis models.Analysis,
	accountSize float64,
	level models.RiskLevel,
) []models.TradeRecommendation {

	price := snap.Price
	confidence := analysis.CompositeScore.ConfidenceScore
	if price <= 0 || confidence < 0.4 {
		return nil
	}

	var recs []models.TradeRecommendation
	recs = append(recs, b.equityLeg(snap, analysis, accountSize, level)...)
	recs = append(recs, b.optionLeg(snap, analysis, accountSize, level)...)
	recs = append(recs, b.straddle(snap, analysis, accountSize, level)...)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].ConfidenceScore > recs[j].ConfidenceScore
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// equityLeg emits a stock long/short when the directional signal clears the
// 0.6 confidence bar.
func (b *Builder) equityLeg(
	snap models.MarketSnapshot,
	analysis models.Analysis,
	accountSize float64,
	level models.RiskLevel,
) []models.TradeRecommendation {

	price := snap.Price
	direction := analysis.PricePrediction.Direction
	confidence := analysis.CompositeScore.ConfidenceScore
	rating := analysis.CompositeScore.Rating
	params := ParamsFor(level)

	// Sized against a fixed 15% stop distance.
	positionSize := int(accountSize * params.MaxRiskPct / (price * 0.15))

	switch {
	case direction == models.DirectionBullish && confidence > 0.6:
		target := price * (1 + confidence*0.2)
		stop := price * 0.85
		maxRisk := float64(positionSize) * price * 0.15
		maxReward := float64(positionSize) * (target - price)
		riskReward := 0.0
		if maxRisk > 0 {
			riskReward = maxReward / maxRisk
		}

		return []models.TradeRecommendation{{
			Ticker:              snap.Ticker,
			TradeType:           models.TradeStockLong,
			Direction:           models.DirectionBullish,
			EntryPrice:          price,
			TargetPrice:         target,
			StopLoss:            stop,
			PositionSize:        positionSize,
			RiskRewardRatio:     riskReward,
			ProbabilityOfProfit: confidence,
			MaxRisk:             maxRisk,
			MaxReward:           maxReward,
			TimeHorizon:         "2-4 weeks",
			ConfidenceScore:     confidence,
			Rating:              rating,
			StrategyDescription: fmt.Sprintf("Long %s based on bullish model prediction with %.1f%% confidence", snap.Ticker, confidence*100),
			RiskLevel:           level,
			Reasons: []string{
				fmt.Sprintf("Model shows %.1f%% bullish probability", confidence*100),
				fmt.Sprintf("Rating: %s", rating),
				fmt.Sprintf("Target: %.1f%% upside", (target/price-1)*100),
			},
		}}

	case direction == models.DirectionBearish && confidence > 0.6:
		target := price * (1 - confidence*0.15)
		stop := price * 1.15
		maxRisk := float64(positionSize) * price * 0.15
		maxReward := float64(positionSize) * (price - target)
		riskReward := 0.0
		if maxRisk > 0 {
			riskReward = maxReward / maxRisk
		}

		return []models.TradeRecommendation{{
			Ticker:              snap.Ticker,
			TradeType:           models.TradeStockShort,
			Direction:           models.DirectionBearish,
			EntryPrice:          price,
			TargetPrice:         target,
			StopLoss:            stop,
			PositionSize:        positionSize,
			RiskRewardRatio:     riskReward,
			ProbabilityOfProfit: confidence,
			MaxRisk:             maxRisk,
			MaxReward:           maxReward,
			TimeHorizon:         "2-4 weeks",
			ConfidenceScore:     confidence,
			Rating:              rating,
			StrategyDescription: fmt.Sprintf("Short %s based on bearish model prediction with %.1f%% confidence", snap.Ticker, confidence*100),
			RiskLevel:           level,
			Reasons: []string{
				fmt.Sprintf("Model shows %.1f%% bearish probability", confidence*100),
				fmt.Sprintf("Rating: %s", rating),
				fmt.Sprintf("Target: %.1f%% downside", (1-target/price)*100),
			},
		}}
	}

	return nil
}

// optionLeg emits a single-leg call or put at the slightly-OTM suggested
// strike when the composite confidence clears 0.5.
func (b *Builder) optionLeg(
	snap models.MarketSnapshot,
	analysis models.Analysis,
	accountSize float64,
	level models.RiskLevel,
) []models.TradeRecommendation {

	price := snap.Price
	direction := analysis.PricePrediction.Direction
	confidence := analysis.CompositeScore.ConfidenceScore
	rating := analysis.CompositeScore.Rating
	params := ParamsFor(level)

	if confidence <= 0.5 {
		return nil
	}
	if direction != models.DirectionBullish && direction != models.DirectionBearish {
		return nil
	}

	iv := clamp(b.sampler.Normal(35, 10), 15, 80)
	const expiryDays = 30

	strikes := options.SuggestStrikes(price, iv, direction, expiryDays)
	strike := strikes[1] // slightly out of the money

	isCall := direction == models.DirectionBullish
	metrics, err := options.Price(price, strike, expiryDays, iv, isCall)
	if err != nil {
		b.logger.Warn().Err(err).Str("ticker", snap.Ticker).Msg("option pricing failed, dropping leg")
		return nil
	}

	premium := metrics.Premium
	if premium <= 0 {
		premium = price * 0.05
	}

	contracts := int(accountSize * params.MaxRiskPct / (premium * 100))
	if contracts < 1 {
		contracts = 1
	}

	maxRisk := float64(contracts) * premium * 100
	maxReward := maxRisk * 3 // fixed 3:1 reward heuristic

	tradeType := models.TradeCallBuy
	side := "calls"
	if !isCall {
		tradeType = models.TradePutBuy
		side = "puts"
	}

	return []models.TradeRecommendation{{
		Ticker:              snap.Ticker,
		TradeType:           tradeType,
		Direction:           direction,
		EntryPrice:          premium,
		TargetPrice:         premium * 2,
		StopLoss:            premium * 0.5,
		PositionSize:        contracts,
		RiskRewardRatio:     3.0,
		ProbabilityOfProfit: confidence * 0.8,
		MaxRisk:             maxRisk,
		MaxReward:           maxReward,
		TimeHorizon:         fmt.Sprintf("%d days", expiryDays),
		ConfidenceScore:     confidence * 0.9,
		Rating:              rating,
		StrategyDescription: fmt.Sprintf("Buy $%.2f %s based on %s model prediction", strike, side, strings.ToLower(string(direction))),
		RiskLevel:           level,
		Reasons: []string{
			fmt.Sprintf("Model %s with %.1f%% confidence", strings.ToLower(string(direction)), confidence*100),
			fmt.Sprintf("Strike $%.2f offers good risk/reward", strike),
			fmt.Sprintf("Implied volatility: %.1f%%", iv),
		},
		ExpiryDate:   time.Now().AddDate(0, 0, expiryDays).Format("2006-01-02"),
		StrikePrices: []float64{strike},
		Premium:      premium,
		Greeks:       &metrics,
	}}
}

// straddle emits an at-the-money straddle when expansion is forecast with
// composite confidence above 0.6.
func (b *Builder) straddle(
	snap models.MarketSnapshot,
	analysis models.Analysis,
	accountSize float64,
	level models.RiskLevel,
) []models.TradeRecommendation {

	price := snap.Price
	confidence := analysis.CompositeScore.ConfidenceScore
	if analysis.VolatilityForecast.Prediction != models.VolatilityExpansion || confidence <= 0.6 {
		return nil
	}

	atmStrike := math.Round(price)
	iv := clamp(b.sampler.Normal(30, 8), 15, 60)
	const expiryDays = 21

	callMetrics, callErr := options.Price(price, atmStrike, expiryDays, iv, true)
	putMetrics, putErr := options.Price(price, atmStrike, expiryDays, iv, false)
	if callErr != nil || putErr != nil {
		b.logger.Warn().Str("ticker", snap.Ticker).Msg("straddle pricing failed, dropping leg")
		return nil
	}

	totalPremium := callMetrics.Premium + putMetrics.Premium
	if totalPremium <= 0 {
		return nil
	}

	contracts := int(accountSize * 0.03 / (totalPremium * 100))
	if contracts < 1 {
		contracts = 1
	}

	maxRisk := float64(contracts) * totalPremium * 100
	maxReward := maxRisk * 2 // fixed 2:1 reward heuristic

	return []models.TradeRecommendation{{
		Ticker:              snap.Ticker,
		TradeType:           models.TradeStraddle,
		Direction:           models.DirectionNeutral,
		EntryPrice:          totalPremium,
		TargetPrice:         totalPremium * 1.5,
		StopLoss:            totalPremium * 0.6,
		PositionSize:        contracts,
		RiskRewardRatio:     2.0,
		ProbabilityOfProfit: 0.65,
		MaxRisk:             maxRisk,
		MaxReward:           maxReward,
		TimeHorizon:         fmt.Sprintf("%d days", expiryDays),
		ConfidenceScore:     confidence * 0.8,
		Rating:              analysis.CompositeScore.Rating,
		StrategyDescription: "Long straddle to profit from predicted volatility expansion",
		RiskLevel:           level,
		Reasons: []string{
			fmt.Sprintf("Model predicts volatility expansion with %.1f%% confidence", confidence*100),
			fmt.Sprintf("ATM straddle at $%.0f", atmStrike),
			"Benefits from movement in either direction",
		},
		ExpiryDate:   time.Now().AddDate(0, 0, expiryDays).Format("2006-01-02"),
		StrikePrices: []float64{atmStrike, atmStrike},
		Premium:      totalPremium,
	}}
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
