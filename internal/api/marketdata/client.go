// Package marketdata fetches quote snapshots and short-interest data from
// the upstream market-data provider.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Alias1177/Advisor/config"
	"github.com/Alias1177/Advisor/models"
)

// Client is an HTTP client with rate limiting and retry.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	shortKey   string
	logger     zerolog.Logger
}

// NewClient creates a new provider client with rate limiting.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Every(time.Second), 5), // 5 requests per second
		baseURL:  cfg.APIBaseURL,
		apiKey:   cfg.APIKey,
		shortKey: cfg.ShortDataKey,
		logger:   log.With().Str("component", "marketdata").Logger(),
	}
}

type quoteResponse struct {
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
	Volume  int64   `json:"volume"`
	DayHigh float64 `json:"dayHigh"`
	DayLow  float64 `json:"dayLow"`
}

// GetSnapshot fetches the current quote for one ticker.
func (c *Client) GetSnapshot(ctx context.Context, ticker string) (models.MarketSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/v3/quote/%s?apikey=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return models.MarketSnapshot{}, fmt.Errorf("fetching quote for %s: %w", ticker, err)
	}

	var quotes []quoteResponse
	if err := json.Unmarshal(body, &quotes); err != nil {
		c.logger.Error().Err(err).Str("ticker", ticker).Msg("Error parsing quote JSON")
		return models.MarketSnapshot{}, fmt.Errorf("parsing quote JSON: %w", err)
	}
	if len(quotes) == 0 {
		return models.MarketSnapshot{}, fmt.Errorf("empty quote data for %s", ticker)
	}

	q := quotes[0]
	c.logger.Debug().Str("ticker", ticker).Float64("price", q.Price).Msg("Fetched quote")

	return models.MarketSnapshot{
		Ticker: q.Symbol,
		Price:  q.Price,
		Volume: q.Volume,
		High:   q.DayHigh,
		Low:    q.DayLow,
	}, nil
}

// GetShortInterest fetches short-interest data for one ticker. Returns
// (nil, nil) when no short-data key is configured: the feature layer treats
// missing short data as optional.
func (c *Client) GetShortInterest(ctx context.Context, ticker string) (*models.ShortInterest, error) {
	if c.shortKey == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/api/v4/short-interest?symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(ticker), url.QueryEscape(c.shortKey))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching short interest for %s: %w", ticker, err)
	}

	var short models.ShortInterest
	if err := json.Unmarshal(body, &short); err != nil {
		c.logger.Error().Err(err).Str("ticker", ticker).Msg("Error parsing short-interest JSON")
		return nil, fmt.Errorf("parsing short-interest JSON: %w", err)
	}

	return &short, nil
}

// get performs a rate-limited GET with exponential-backoff retries.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
