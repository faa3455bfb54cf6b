package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/config"
	"github.com/Alias1177/Advisor/internal/api/marketdata"
	"github.com/Alias1177/Advisor/internal/engine"
	"github.com/Alias1177/Advisor/internal/features"
	"github.com/Alias1177/Advisor/internal/scanner"
	"github.com/Alias1177/Advisor/models"
)

// One-shot scan over the configured tickers, broadcasting the top
// recommendations to the configured Telegram chat.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config failed")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN not set in environment")
	}
	if cfg.TelegramChatID == 0 {
		log.Fatal().Msg("TELEGRAM_CHAT_ID not set in environment")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing Telegram bot failed")
	}

	client := marketdata.NewClient(cfg)
	eng := engine.New(features.NewNormalSampler(uint64(time.Now().UnixNano())))
	scan := scanner.New(client, eng, nil, cfg.ScanWorkers)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	results := scan.Scan(ctx, cfg.ScanTickers, cfg.AccountSize, models.RiskLevel(cfg.RiskProfile))
	if len(results) == 0 {
		log.Warn().Msg("scan produced no results, nothing to broadcast")
		return
	}

	msg := tgbotapi.NewMessage(cfg.TelegramChatID, formatMessage(results))
	msg.ParseMode = "Markdown"

	if _, err := bot.Send(msg); err != nil {
		log.Fatal().Err(err).Msg("sending broadcast failed")
	}
	log.Info().Int("results", len(results)).Msg("broadcast sent")
}

// formatMessage renders the top three scan results with their best trade.
func formatMessage(results []scanner.Result) string {
	var b strings.Builder
	b.WriteString("📊 *Market Scan Results*\n\n")

	top := results
	if len(top) > 3 {
		top = top[:3]
	}

	for _, res := range top {
		composite := res.Analysis.CompositeScore
		fmt.Fprintf(&b, "*%s*: %s %s (confidence %.0f%%)\n",
			res.Ticker, composite.Rating, composite.OverallDirection,
			composite.ConfidenceScore*100)

		if len(res.Recommendations) > 0 {
			rec := res.Recommendations[0]
			fmt.Fprintf(&b, "→ %s: entry %.2f, target %.2f, stop %.2f\n",
				rec.TradeType, rec.EntryPrice, rec.TargetPrice, rec.StopLoss)
		}
		b.WriteString("\n")
	}

	b.WriteString("_Not financial advice._")
	return b.String()
}
