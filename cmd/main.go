package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/config"
	"github.com/Alias1177/Advisor/internal/api/marketdata"
	"github.com/Alias1177/Advisor/internal/engine"
	"github.com/Alias1177/Advisor/internal/features"
	"github.com/Alias1177/Advisor/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config failed")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	ticker := "AAPL"
	if len(os.Args) > 1 {
		ticker = strings.ToUpper(os.Args[1])
	}

	client := marketdata.NewClient(cfg)
	eng := engine.New(features.NewNormalSampler(uint64(time.Now().UnixNano())))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeout)*time.Second)
	defer cancel()

	snap, err := client.GetSnapshot(ctx, ticker)
	if err != nil {
		log.Fatal().Err(err).Str("ticker", ticker).Msg("fetch snapshot failed")
	}

	short, err := client.GetShortInterest(ctx, ticker)
	if err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Msg("short interest unavailable")
	}

	analysis := eng.Analyze(snap, short)
	recs := eng.Recommend(snap, analysis, cfg.AccountSize, models.RiskLevel(cfg.RiskProfile))

	printAnalysis(analysis)
	printRecommendations(recs)
}

func printAnalysis(a models.Analysis) {
	fmt.Printf("===== %s =====\n", a.Ticker)
	fmt.Printf("Direction:  %s (probability %.2f, confidence %.2f, %s)\n",
		a.PricePrediction.Direction, a.PricePrediction.Probability,
		a.PricePrediction.Confidence, a.PricePrediction.Strength)
	fmt.Printf("Volatility: %s (expansion probability %.2f)\n",
		a.VolatilityForecast.Prediction, a.VolatilityForecast.ExpansionProbability)
	fmt.Printf("Flow:       %s (strength %.2f, sentiment %s)\n",
		a.OptionsFlow.FlowDirection, a.OptionsFlow.FlowStrength, a.OptionsFlow.Sentiment)
	fmt.Printf("Composite:  %s %s confidence=%.2f opportunity=%s risk-adjusted=%.2f\n",
		a.CompositeScore.Rating, a.CompositeScore.OverallDirection,
		a.CompositeScore.ConfidenceScore, a.CompositeScore.OpportunityLevel,
		a.CompositeScore.RiskAdjustedScore)
}

func printRecommendations(recs []models.TradeRecommendation) {
	if len(recs) == 0 {
		fmt.Println("\nNo trade recommendations at current confidence.")
		return
	}

	fmt.Printf("\n===== RECOMMENDATIONS (%d) =====\n", len(recs))
	for i, rec := range recs {
		fmt.Printf("%d. [%s] %s %s\n", i+1, rec.Rating, rec.TradeType, rec.Direction)
		fmt.Printf("   %s\n", rec.StrategyDescription)
		fmt.Printf("   entry=%.2f target=%.2f stop=%.2f size=%d rr=%.1f pop=%.0f%%\n",
			rec.EntryPrice, rec.TargetPrice, rec.StopLoss,
			rec.PositionSize, rec.RiskRewardRatio, rec.ProbabilityOfProfit*100)
		for _, reason := range rec.Reasons {
			fmt.Printf("   - %s\n", reason)
		}
	}
}
