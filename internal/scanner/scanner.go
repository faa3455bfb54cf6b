// Package scanner evaluates a list of tickers concurrently and ranks the
// results by composite confidence.
package scanner

import (
	"context"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/engine"
	"github.com/Alias1177/Advisor/models"
)

// Provider supplies market data for one ticker.
type Provider interface {
	GetSnapshot(ctx context.Context, ticker string) (models.MarketSnapshot, error)
	GetShortInterest(ctx context.Context, ticker string) (*models.ShortInterest, error)
}

// Store persists scan output. Optional.
type Store interface {
	SaveAnalysis(a models.Analysis) error
	SaveRecommendations(recs []models.TradeRecommendation) error
}

// Result is the scan output for one ticker.
type Result struct {
	Ticker          string                       `json:"ticker"`
	Analysis        models.Analysis              `json:"analysis"`
	Recommendations []models.TradeRecommendation `json:"recommendations"`
}

// Scanner runs the analysis pipeline over many tickers. Each ticker is an
// independent request; workers share nothing but the engine, which is safe
// for concurrent use.
type Scanner struct {
	provider Provider
	engine   *engine.Engine
	store    Store // may be nil
	workers  int
	logger   zerolog.Logger
}

// New creates a scanner. store may be nil to skip persistence.
func New(provider Provider, eng *engine.Engine, store Store, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		provider: provider,
		engine:   eng,
		store:    store,
		workers:  workers,
		logger:   log.With().Str("component", "scanner").Logger(),
	}
}

// Scan analyzes every ticker and returns results sorted by composite
// confidence descending. Tickers that fail to fetch are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, tickers []string, accountSize float64, level models.RiskLevel) []Result {
	jobs := make(chan string)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range jobs {
				if res, ok := s.scanOne(ctx, ticker, accountSize, level); ok {
					results <- res
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, ticker := range tickers {
			select {
			case jobs <- ticker:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var collected []Result
	for res := range results {
		collected = append(collected, res)
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Analysis.CompositeScore.ConfidenceScore >
			collected[j].Analysis.CompositeScore.ConfidenceScore
	})
	return collected
}

func (s *Scanner) scanOne(ctx context.Context, ticker string, accountSize float64, level models.RiskLevel) (Result, bool) {
	snap, err := s.provider.GetSnapshot(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("snapshot fetch failed, skipping")
		return Result{}, false
	}

	short, err := s.provider.GetShortInterest(ctx, ticker)
	if err != nil {
		// Short interest is optional; analyze without it.
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("short interest unavailable")
		short = nil
	}

	analysis := s.engine.Analyze(snap, short)
	recs := s.engine.Recommend(snap, analysis, accountSize, level)

	if s.store != nil {
		if err := s.store.SaveAnalysis(analysis); err != nil {
			s.logger.Error().Err(err).Str("ticker", ticker).Msg("saving analysis failed")
		}
		if err := s.store.SaveRecommendations(recs); err != nil {
			s.logger.Error().Err(err).Str("ticker", ticker).Msg("saving recommendations failed")
		}
	}

	return Result{Ticker: ticker, Analysis: analysis, Recommendations: recs}, true
}

// Schedule runs Scan on the given cron spec until the returned cron is
// stopped. Results are handed to onComplete.
func (s *Scanner) Schedule(
	spec string,
	tickers []string,
	accountSize float64,
	level models.RiskLevel,
	onComplete func([]Result),
) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		results := s.Scan(context.Background(), tickers, accountSize, level)
		s.logger.Info().Int("tickers", len(tickers)).Int("results", len(results)).Msg("scheduled scan complete")
		if onComplete != nil {
			onComplete(results)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
