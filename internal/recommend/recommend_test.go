package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Advisor/internal/features"
	"github.com/Alias1177/Advisor/models"
)

func testAnalysis(direction models.Direction, confidence float64, vol models.VolatilityOutlook) models.Analysis {
	return models.Analysis{
		Ticker: "AAPL",
		PricePrediction: models.DirectionPrediction{
			Direction:  direction,
			Confidence: confidence,
		},
		VolatilityForecast: models.VolatilityPrediction{
			Prediction: vol,
		},
		CompositeScore: models.CompositeRating{
			OverallDirection: direction,
			ConfidenceScore:  confidence,
			Rating:           models.RatingBPlus,
		},
	}
}

func testSnapshot(price float64) models.MarketSnapshot {
	return models.MarketSnapshot{Ticker: "AAPL", Price: price, Volume: 1_000_000, High: price * 1.02, Low: price * 0.98}
}

func TestGenerateEarlyExit(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})

	tests := []struct {
		name       string
		price      float64
		confidence float64
	}{
		{"zero price", 0, 0.9},
		{"negative price", -5, 0.9},
		{"low confidence", 100, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := testAnalysis(models.DirectionBullish, tt.confidence, models.VolatilityExpansion)
			recs := builder.Generate(testSnapshot(tt.price), analysis, 100000, models.RiskModerate)
			assert.Empty(t, recs)
		})
	}
}

func TestEquityLongSizing(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})
	analysis := testAnalysis(models.DirectionBullish, 0.8, models.VolatilityStable)

	recs := builder.Generate(testSnapshot(100), analysis, 100000, models.RiskModerate)
	require.NotEmpty(t, recs)

	var long *models.TradeRecommendation
	for i := range recs {
		if recs[i].TradeType == models.TradeStockLong {
			long = &recs[i]
		}
	}
	require.NotNil(t, long, "expected a stock_long recommendation")

	assert.InDelta(t, 100.0, long.EntryPrice, 1e-9)
	assert.InDelta(t, 116.0, long.TargetPrice, 1e-9)
	assert.InDelta(t, 85.0, long.StopLoss, 1e-9)
	// 100000 * 0.05 / (100 * 0.15) truncated
	assert.Equal(t, 333, long.PositionSize)
	assert.InDelta(t, 4995.0, long.MaxRisk, 1e-9)
	assert.InDelta(t, 0.8, long.ProbabilityOfProfit, 1e-9)
	assert.Equal(t, models.DirectionBullish, long.Direction)
	assert.Equal(t, "2-4 weeks", long.TimeHorizon)
	assert.Len(t, long.Reasons, 3)
}

func TestEquityShort(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})
	analysis := testAnalysis(models.DirectionBearish, 0.7, models.VolatilityStable)

	recs := builder.Generate(testSnapshot(100), analysis, 100000, models.RiskModerate)
	require.NotEmpty(t, recs)

	var short *models.TradeRecommendation
	for i := range recs {
		if recs[i].TradeType == models.TradeStockShort {
			short = &recs[i]
		}
	}
	require.NotNil(t, short, "expected a stock_short recommendation")

	// target = 100 * (1 - 0.7*0.15)
	assert.InDelta(t, 89.5, short.TargetPrice, 1e-9)
	assert.InDelta(t, 115.0, short.StopLoss, 1e-9)
}

func TestEquityGatedBelowThreshold(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})
	analysis := testAnalysis(models.DirectionBullish, 0.55, models.VolatilityStable)

	recs := builder.Generate(testSnapshot(100), analysis, 100000, models.RiskModerate)
	for _, rec := range recs {
		assert.NotEqual(t, models.TradeStockLong, rec.TradeType)
		assert.NotEqual(t, models.TradeStockShort, rec.TradeType)
	}
}

func TestOptionLeg(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})
	analysis := testAnalysis(models.DirectionBullish, 0.7, models.VolatilityStable)

	recs := builder.Generate(testSnapshot(100), analysis, 100000, models.RiskModerate)

	var call *models.TradeRecommendation
	for i := range recs {
		if recs[i].TradeType == models.TradeCallBuy {
			call = &recs[i]
		}
	}
	require.NotNil(t, call, "expected a call_buy recommendation")

	// FixedSampler gives iv=35; slightly-OTM bullish strike is 102.
	require.Len(t, call.StrikePrices, 1)
	assert.InDelta(t, 102.0, call.StrikePrices[0], 1e-9)
	assert.Greater(t, call.Premium, 0.0)
	assert.Equal(t, 3.0, call.RiskRewardRatio)
	assert.InDelta(t, 0.7*0.8, call.ProbabilityOfProfit, 1e-9)
	assert.InDelta(t, 0.7*0.9, call.ConfidenceScore, 1e-9)
	assert.NotNil(t, call.Greeks)
	assert.NotEmpty(t, call.ExpiryDate)
	assert.GreaterOrEqual(t, call.PositionSize, 1)
}

func TestPutLegForBearish(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})
	analysis := testAnalysis(models.DirectionBearish, 0.7, models.VolatilityStable)

	recs := builder.Generate(testSnapshot(100), analysis, 100000, models.RiskModerate)

	found := false
	for _, rec := range recs {
		if rec.TradeType == models.TradePutBuy {
			found = true
			assert.InDelta(t, 98.0, rec.StrikePrices[0], 1e-9)
		}
	}
	assert.True(t, found, "expected a put_buy recommendation")
}

func TestStraddleGating(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})

	hasStraddle := func(recs []models.TradeRecommendation) bool {
		for _, rec := range recs {
			if rec.TradeType == models.TradeStraddle {
				return true
			}
		}
		return false
	}

	// Expansion forecast with high confidence emits the straddle.
	expansion := testAnalysis(models.DirectionNeutral, 0.7, models.VolatilityExpansion)
	assert.True(t, hasStraddle(builder.Generate(testSnapshot(100), expansion, 100000, models.RiskModerate)))

	// Stable forecast never does, regardless of confidence.
	stable := testAnalysis(models.DirectionBullish, 0.95, models.VolatilityStable)
	assert.False(t, hasStraddle(builder.Generate(testSnapshot(100), stable, 100000, models.RiskModerate)))

	// Expansion below the confidence bar doesn't either.
	weak := testAnalysis(models.DirectionNeutral, 0.55, models.VolatilityExpansion)
	assert.False(t, hasStraddle(builder.Generate(testSnapshot(100), weak, 100000, models.RiskModerate)))
}

func TestStraddleFields(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})
	analysis := testAnalysis(models.DirectionNeutral, 0.7, models.VolatilityExpansion)

	recs := builder.Generate(testSnapshot(100), analysis, 100000, models.RiskModerate)
	require.Len(t, recs, 1)

	straddle := recs[0]
	assert.Equal(t, models.TradeStraddle, straddle.TradeType)
	assert.Equal(t, models.DirectionNeutral, straddle.Direction)
	assert.Equal(t, []float64{100, 100}, straddle.StrikePrices)
	assert.InDelta(t, 0.65, straddle.ProbabilityOfProfit, 1e-9)
	assert.Equal(t, 2.0, straddle.RiskRewardRatio)
	assert.InDelta(t, 0.7*0.8, straddle.ConfidenceScore, 1e-9)
}

func TestGenerateSortedAndTruncated(t *testing.T) {
	builder := NewBuilder(features.FixedSampler{})
	analysis := testAnalysis(models.DirectionBullish, 0.8, models.VolatilityExpansion)

	recs := builder.Generate(testSnapshot(100), analysis, 100000, models.RiskModerate)
	require.LessOrEqual(t, len(recs), 5)
	require.Len(t, recs, 3) // equity + call + straddle

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].ConfidenceScore, recs[i].ConfidenceScore)
	}
	assert.Equal(t, models.TradeStockLong, recs[0].TradeType)
}

func TestParamsFor(t *testing.T) {
	assert.Equal(t, 0.02, ParamsFor(models.RiskConservative).MaxRiskPct)
	assert.Equal(t, 0.20, ParamsFor(models.RiskSpeculation).MaxRiskPct)
	// Unknown levels fall back to moderate.
	assert.Equal(t, ParamsFor(models.RiskModerate), ParamsFor(models.RiskLevel("yolo")))
}
