package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Advisor/internal/engine"
	"github.com/Alias1177/Advisor/internal/features"
	"github.com/Alias1177/Advisor/internal/scanner"
	"github.com/Alias1177/Advisor/models"
)

type stubProvider struct {
	snapshots map[string]models.MarketSnapshot
}

func (p *stubProvider) GetSnapshot(_ context.Context, ticker string) (models.MarketSnapshot, error) {
	snap, ok := p.snapshots[ticker]
	if !ok {
		return models.MarketSnapshot{}, errors.New("quote unavailable")
	}
	return snap, nil
}

func (p *stubProvider) GetShortInterest(_ context.Context, _ string) (*models.ShortInterest, error) {
	return nil, nil
}

type stubStore struct {
	recs []models.TradeRecommendation
	err  error
}

func (s *stubStore) RecentRecommendations(_ int) ([]models.TradeRecommendation, error) {
	return s.recs, s.err
}

func newTestServer(store Store) *Server {
	provider := &stubProvider{snapshots: map[string]models.MarketSnapshot{
		"AAPL": {Ticker: "AAPL", Price: 185.50, Volume: 2_000_000, High: 187, Low: 184},
		"MSFT": {Ticker: "MSFT", Price: 410, Volume: 4_000_000, High: 414, Low: 406},
	}}
	eng := engine.New(features.FixedSampler{})
	return New(Config{
		Provider:           provider,
		Engine:             eng,
		Scanner:            scanner.New(provider, eng, nil, 2),
		Store:              store,
		Port:               0,
		DefaultAccountSize: 100000,
		DefaultRiskProfile: models.RiskModerate,
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalysisEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/aapl", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var analysis models.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "AAPL", analysis.Ticker)
	assert.Equal(t, engine.ModelVersion, analysis.ModelVersion)
	assert.NotEmpty(t, analysis.Features)
	assert.NotEmpty(t, analysis.CompositeScore.Rating)
}

func TestAnalysisUnknownTicker(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/NOPE", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to fetch market data")
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations/MSFT?account=50000&risk=aggressive", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Ticker          string                       `json:"ticker"`
		Analysis        models.Analysis              `json:"analysis"`
		Recommendations []models.TradeRecommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "MSFT", resp.Ticker)
	assert.Equal(t, "MSFT", resp.Analysis.Ticker)
	assert.LessOrEqual(t, len(resp.Recommendations), 5)
	for _, r := range resp.Recommendations {
		assert.Equal(t, models.RiskAggressive, r.RiskLevel)
	}
}

func TestScanEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	body := strings.NewReader(`{"tickers":["AAPL","MSFT","NOPE"],"account_size":50000,"risk_profile":"conservative"}`)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scan", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var results []scanner.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	// The unknown ticker is skipped, not reported as an error.
	require.Len(t, results, 2)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t,
			results[i-1].Analysis.CompositeScore.ConfidenceScore,
			results[i].Analysis.CompositeScore.ConfidenceScore)
	}
}

func TestScanRejectsBadRequests(t *testing.T) {
	srv := newTestServer(nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"tickers":`},
		{"empty tickers", `{"tickers":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRecentRecommendationsWithoutStore(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations/recent", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecentRecommendations(t *testing.T) {
	store := &stubStore{recs: []models.TradeRecommendation{
		{Ticker: "AAPL", TradeType: models.TradeStockLong, ConfidenceScore: 0.8},
	}}
	srv := newTestServer(store)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations/recent?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var recs []models.TradeRecommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "AAPL", recs[0].Ticker)
}

func TestRecentRecommendationsStoreError(t *testing.T) {
	srv := newTestServer(&stubStore{err: errors.New("db down")})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations/recent", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
