// Package server exposes the analysis and recommendation pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/engine"
	"github.com/Alias1177/Advisor/internal/scanner"
	"github.com/Alias1177/Advisor/models"
)

// Provider supplies market data for one ticker.
type Provider interface {
	GetSnapshot(ctx context.Context, ticker string) (models.MarketSnapshot, error)
	GetShortInterest(ctx context.Context, ticker string) (*models.ShortInterest, error)
}

// Store reads persisted recommendations. Optional.
type Store interface {
	RecentRecommendations(limit int) ([]models.TradeRecommendation, error)
}

// Config holds server dependencies.
type Config struct {
	Provider           Provider
	Engine             *engine.Engine
	Scanner            *scanner.Scanner
	Store              Store // may be nil
	Port               int
	DefaultAccountSize float64
	DefaultRiskProfile models.RiskLevel
}

// Server is the HTTP API server.
type Server struct {
	router             *chi.Mux
	server             *http.Server
	provider           Provider
	engine             *engine.Engine
	scanner            *scanner.Scanner
	store              Store
	defaultAccountSize float64
	defaultRiskProfile models.RiskLevel
	logger             zerolog.Logger
}

// New creates the server and mounts all routes.
func New(cfg Config) *Server {
	s := &Server{
		router:             chi.NewRouter(),
		provider:           cfg.Provider,
		engine:             cfg.Engine,
		scanner:            cfg.Scanner,
		store:              cfg.Store,
		defaultAccountSize: cfg.DefaultAccountSize,
		defaultRiskProfile: cfg.DefaultRiskProfile,
		logger:             log.With().Str("component", "server").Logger(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/analysis/{ticker}", s.handleAnalysis)
		r.Get("/recommendations/recent", s.handleRecentRecommendations)
		r.Get("/recommendations/{ticker}", s.handleRecommendations)
		r.Post("/scan", s.handleScan)
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

// Router returns the underlying router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	return s.server.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
