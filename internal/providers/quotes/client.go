// Package quotes fetches candle history for single symbols from the public
// chart JSON endpoint. It feeds the technical-signal calculators.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
	"github.com/rfarias/garimpo/pkg/redis"
)

// Client handles communication with the chart endpoint.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cache      *redis.Cache // nil disables caching
	baseURL    string
}

// NewClient creates a new quote client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cache *redis.Cache, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cache:      cache,
		baseURL:    baseURL,
	}
}

var _ contracts.QuoteProvider = (*Client)(nil)

type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns candles for a symbol, newest last. Results are cached
// briefly; intraday signals tolerate a few minutes of staleness.
func (c *Client) History(ctx context.Context, symbol, interval, period string) ([]contracts.Candle, error) {
	symbol = NormalizeSymbol(symbol)

	cacheKey := redis.CandleKey(symbol, interval, period)
	if c.cache != nil {
		var cached []contracts.Candle
		if found, err := c.cache.Get(ctx, cacheKey, &cached); err != nil {
			c.logger.WithError(err).Warn("Candle cache read failed")
		} else if found {
			return cached, nil
		}
	}

	params := url.Values{}
	params.Set("interval", interval)
	params.Set("range", period)
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope chartEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if envelope.Chart.Error != nil {
		return nil, fmt.Errorf("upstream error: %s", envelope.Chart.Error.Description)
	}
	if len(envelope.Chart.Result) == 0 || len(envelope.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, contracts.ErrNoData
	}

	result := envelope.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	candles := make([]contracts.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		// Null quotes decode to zero; a zero close is a holiday gap
		if quote.Close[i] == 0 {
			continue
		}
		candles = append(candles, contracts.Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      at(quote.Open, i),
			High:      at(quote.High, i),
			Low:       at(quote.Low, i),
			Close:     quote.Close[i],
			Volume:    atInt(quote.Volume, i),
		})
	}

	if c.cache != nil && len(candles) > 0 {
		if err := c.cache.Set(ctx, cacheKey, candles, redis.TTLShort); err != nil {
			c.logger.WithError(err).Warn("Candle cache write failed")
		}
	}

	return candles, nil
}

// NormalizeSymbol appends the B3 exchange suffix to bare Brazilian tickers
// (four letters plus a share-class digit, e.g. PETR4 -> PETR4.SA). Symbols
// that already carry an exchange suffix pass through unchanged.
func NormalizeSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	if isB3Ticker(symbol) {
		return symbol + ".SA"
	}
	return symbol
}

func isB3Ticker(symbol string) bool {
	if len(symbol) < 5 || len(symbol) > 6 {
		return false
	}
	for _, r := range symbol[:4] {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	for _, r := range symbol[4:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func atInt(values []int64, i int) int64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
