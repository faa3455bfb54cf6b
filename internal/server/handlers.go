package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Alias1177/Advisor/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalysis runs the scoring pipeline for one ticker.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	snap, err := s.provider.GetSnapshot(r.Context(), ticker)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("snapshot fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch market data")
		return
	}

	short, err := s.provider.GetShortInterest(r.Context(), ticker)
	if err != nil {
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("short interest unavailable")
		short = nil
	}

	analysis := s.engine.Analyze(snap, short)
	writeJSON(w, http.StatusOK, analysis)
}

type recommendationsResponse struct {
	Ticker          string                       `json:"ticker"`
	Analysis        models.Analysis              `json:"analysis"`
	Recommendations []models.TradeRecommendation `json:"recommendations"`
}

// handleRecommendations runs the full pipeline and returns the ranked
// trade proposals.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	accountSize := s.defaultAccountSize
	if raw := r.URL.Query().Get("account"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			accountSize = v
		}
	}
	level := s.defaultRiskProfile
	if raw := r.URL.Query().Get("risk"); raw != "" {
		level = models.RiskLevel(strings.ToLower(raw))
	}

	snap, err := s.provider.GetSnapshot(r.Context(), ticker)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("snapshot fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch market data")
		return
	}

	short, err := s.provider.GetShortInterest(r.Context(), ticker)
	if err != nil {
		short = nil
	}

	analysis := s.engine.Analyze(snap, short)
	recs := s.engine.Recommend(snap, analysis, accountSize, level)

	writeJSON(w, http.StatusOK, recommendationsResponse{
		Ticker:          ticker,
		Analysis:        analysis,
		Recommendations: recs,
	})
}

type scanRequest struct {
	Tickers     []string `json:"tickers"`
	AccountSize float64  `json:"account_size"`
	RiskProfile string   `json:"risk_profile"`
}

// handleScan runs a mass scan over the requested tickers.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Tickers) == 0 {
		writeError(w, http.StatusBadRequest, "tickers is required")
		return
	}

	accountSize := req.AccountSize
	if accountSize <= 0 {
		accountSize = s.defaultAccountSize
	}
	level := s.defaultRiskProfile
	if req.RiskProfile != "" {
		level = models.RiskLevel(strings.ToLower(req.RiskProfile))
	}

	results := s.scanner.Scan(r.Context(), req.Tickers, accountSize, level)
	writeJSON(w, http.StatusOK, results)
}

// handleRecentRecommendations serves persisted recommendations.
func (s *Server) handleRecentRecommendations(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	recs, err := s.store.RecentRecommendations(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("reading recent recommendations failed")
		writeError(w, http.StatusInternalServerError, "failed to read recommendations")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
