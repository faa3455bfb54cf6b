package models

import (
	"time"
)

// MarketSnapshot is a single quote-level observation for one instrument.
type MarketSnapshot struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
}

// ShortInterest holds optional short-interest data for a ticker.
// Field spellings follow the upstream provider payload.
type ShortInterest struct {
	ShortInterestPercent float64 `json:"shortInterestPercent"`
	UtilizationRate      float64 `json:"utilizationRate"`
	CostToBorrow         float64 `json:"costToBorrow"`
	DaysToCover          float64 `json:"daysToCover"`
}

// FeatureSet maps feature names to numeric values.
type FeatureSet map[string]float64

// Get returns the named feature, or def when the feature is absent.
func (f FeatureSet) Get(key string, def float64) float64 {
	if v, ok := f[key]; ok {
		return v
	}
	return def
}

// Merge returns a new FeatureSet containing f overlaid with other.
func (f FeatureSet) Merge(other FeatureSet) FeatureSet {
	merged := make(FeatureSet, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Direction is a directional call on an instrument.
type Direction string

const (
	DirectionBullish Direction = "BULLISH"
	DirectionBearish Direction = "BEARISH"
	DirectionNeutral Direction = "NEUTRAL"
)

// SignalStrength tiers a prediction's confidence.
type SignalStrength string

const (
	StrengthStrong   SignalStrength = "STRONG"
	StrengthModerate SignalStrength = "MODERATE"
	StrengthWeak     SignalStrength = "WEAK"
)

// DirectionPrediction is the price-direction model output.
type DirectionPrediction struct {
	Direction     Direction      `json:"direction"`
	Probability   float64        `json:"probability"`
	Confidence    float64        `json:"confidence"`
	Strength      SignalStrength `json:"strength"`
	ModelAccuracy float64        `json:"model_accuracy"`
	Timestamp     time.Time      `json:"timestamp"`
}

// VolatilityOutlook classifies the expected volatility regime.
type VolatilityOutlook string

const (
	VolatilityExpansion   VolatilityOutlook = "EXPANSION"
	VolatilityContraction VolatilityOutlook = "CONTRACTION"
	VolatilityStable      VolatilityOutlook = "STABLE"
)

// VolatilityPrediction is the volatility-forecast model output.
type VolatilityPrediction struct {
	Prediction           VolatilityOutlook `json:"prediction"`
	ExpansionProbability float64           `json:"expansion_probability"`
	CurrentIVRank        float64           `json:"current_iv_rank"`
	ExpectedVolChange    float64           `json:"expected_vol_change"`
	ModelAccuracy        float64           `json:"model_accuracy"`
	Timestamp            time.Time         `json:"timestamp"`
}

// FlowDirection is the directional bias read from options flow.
type FlowDirection string

const (
	FlowBullish FlowDirection = "BULLISH_FLOW"
	FlowBearish FlowDirection = "BEARISH_FLOW"
	FlowNeutral FlowDirection = "NEUTRAL_FLOW"
)

// FlowSentiment tags the crowd positioning implied by IV percentile.
type FlowSentiment string

const (
	SentimentGreedy  FlowSentiment = "GREEDY"
	SentimentFearful FlowSentiment = "FEARFUL"
	SentimentNeutral FlowSentiment = "NEUTRAL"
)

// FlowPrediction is the options-flow model output.
type FlowPrediction struct {
	FlowDirection FlowDirection `json:"flow_direction"`
	FlowStrength  float64       `json:"flow_strength"`
	PutCallRatio  float64       `json:"put_call_ratio"`
	GammaImpact   float64       `json:"gamma_impact"`
	Sentiment     FlowSentiment `json:"sentiment"`
	ModelAccuracy float64       `json:"model_accuracy"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Rating is the composite letter grade.
type Rating string

const (
	RatingAPlus Rating = "A+"
	RatingA     Rating = "A"
	RatingBPlus Rating = "B+"
	RatingB     Rating = "B"
	RatingCPlus Rating = "C+"
	RatingC     Rating = "C"
)

// OpportunityLevel buckets the composite confidence.
type OpportunityLevel string

const (
	OpportunityHigh   OpportunityLevel = "HIGH"
	OpportunityMedium OpportunityLevel = "MEDIUM"
	OpportunityLow    OpportunityLevel = "LOW"
)

// ScoreComponents breaks the composite score down per model.
type ScoreComponents struct {
	PriceImpact      float64 `json:"price_impact"`
	VolatilityImpact float64 `json:"volatility_impact"`
	OptionsImpact    float64 `json:"options_impact"`
}

// CompositeRating combines the three predictions into one overall call.
// Immutable once computed.
type CompositeRating struct {
	OverallDirection  Direction        `json:"overall_direction"`
	ConfidenceScore   float64          `json:"confidence_score"`
	Rating            Rating           `json:"rating"`
	OpportunityLevel  OpportunityLevel `json:"opportunity_level"`
	RiskAdjustedScore float64          `json:"risk_adjusted_score"`
	Components        ScoreComponents  `json:"components"`
}

// OptionMetrics holds approximate pricing and Greeks for one contract.
type OptionMetrics struct {
	Premium        float64 `json:"premium"`
	Delta          float64 `json:"delta"`
	Gamma          float64 `json:"gamma"`
	Theta          float64 `json:"theta"`
	Vega           float64 `json:"vega"`
	IntrinsicValue float64 `json:"intrinsic_value"`
	TimeValue      float64 `json:"time_value"`
	BreakEven      float64 `json:"break_even"`
}

// TradeType enumerates the supported strategies.
type TradeType string

const (
	TradeStockLong      TradeType = "stock_long"
	TradeStockShort     TradeType = "stock_short"
	TradeCallBuy        TradeType = "call_buy"
	TradePutBuy         TradeType = "put_buy"
	TradeCallSpread     TradeType = "call_spread"
	TradePutSpread      TradeType = "put_spread"
	TradeIronCondor     TradeType = "iron_condor"
	TradeStraddle       TradeType = "straddle"
	TradeStrangle       TradeType = "strangle"
	TradeCalendarSpread TradeType = "calendar_spread"
)

// RiskLevel selects a risk-profile policy.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskModerate     RiskLevel = "moderate"
	RiskAggressive   RiskLevel = "aggressive"
	RiskSpeculation  RiskLevel = "speculation"
)

// TradeRecommendation is one sized, ranked trade proposal.
// Value object, never mutated after creation.
type TradeRecommendation struct {
	Ticker              string         `json:"ticker"`
	TradeType           TradeType      `json:"trade_type"`
	Direction           Direction      `json:"direction"`
	EntryPrice          float64        `json:"entry_price"`
	TargetPrice         float64        `json:"target_price"`
	StopLoss            float64        `json:"stop_loss"`
	PositionSize        int            `json:"position_size"`
	RiskRewardRatio     float64        `json:"risk_reward_ratio"`
	ProbabilityOfProfit float64        `json:"probability_of_profit"`
	MaxRisk             float64        `json:"max_risk"`
	MaxReward           float64        `json:"max_reward"`
	TimeHorizon         string         `json:"time_horizon"`
	ConfidenceScore     float64        `json:"confidence_score"`
	Rating              Rating         `json:"rating"`
	StrategyDescription string         `json:"strategy_description"`
	RiskLevel           RiskLevel      `json:"risk_level"`
	Reasons             []string       `json:"reasons"`
	ExpiryDate          string         `json:"expiry_date,omitempty"`
	StrikePrices        []float64      `json:"strike_prices,omitempty"`
	Premium             float64        `json:"premium,omitempty"`
	Greeks              *OptionMetrics `json:"greeks,omitempty"`
}

// Analysis is the full scoring output for one ticker.
type Analysis struct {
	Ticker             string               `json:"ticker"`
	PricePrediction    DirectionPrediction  `json:"price_prediction"`
	VolatilityForecast VolatilityPrediction `json:"volatility_forecast"`
	OptionsFlow        FlowPrediction       `json:"options_flow"`
	CompositeScore     CompositeRating      `json:"composite_score"`
	Features           FeatureSet           `json:"features"`
	ModelVersion       string               `json:"model_version"`
	Timestamp          time.Time            `json:"timestamp"`
}
