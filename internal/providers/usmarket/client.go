// Package usmarket builds a US fundamentals snapshot from two upstreams: a
// pipe-separated exchange symbol directory and a per-ticker fundamentals
// JSON endpoint. The full scan is the expensive path of the system; its
// cadence is controlled by the report layer's daily flag.
package usmarket

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/sector"
	"github.com/rfarias/garimpo/pkg/config"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
)

// fetchWorkers bounds concurrent per-ticker requests. The shared HTTP
// client's rate limiter does the actual pacing.
const fetchWorkers = 8

// Client handles communication with the US market upstreams.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.USMarketConfig
}

// NewClient creates a new US market client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.USMarketConfig) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

var _ contracts.FundamentalsProvider = (*Client)(nil)

// Snapshot lists the symbol directory, then fetches fundamentals per ticker
// with a bounded worker pool. Tickers that fail or miss the price and
// market-cap floors are skipped; a directory failure is fatal.
func (c *Client) Snapshot(ctx context.Context) ([]contracts.AssetRecord, error) {
	symbols, err := c.listSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbol directory: %w", err)
	}
	if c.cfg.MaxTickers > 0 && len(symbols) > c.cfg.MaxTickers {
		symbols = symbols[:c.cfg.MaxTickers]
	}

	var (
		mu      sync.Mutex
		records []contracts.AssetRecord
		wg      sync.WaitGroup
	)
	sem := make(chan struct{}, fetchWorkers)

	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			rec, err := c.fetchFundamentals(ctx, symbol)
			if err != nil {
				c.logger.WithError(err).WithField("symbol", symbol).Debug("Skipping ticker")
				return
			}
			if rec.Price < c.cfg.MinPrice {
				return
			}

			mu.Lock()
			records = append(records, *rec)
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	c.logger.WithFields(map[string]interface{}{
		"symbols": len(symbols),
		"records": len(records),
	}).Info("Fetched US market snapshot")

	return records, nil
}

// listSymbols parses the pipe-separated directory, dropping ETFs, test
// issues and the trailing file-creation footer.
func (c *Client) listSymbols(ctx context.Context) ([]string, error) {
	resp, err := c.httpClient.Get(ctx, c.cfg.DirectoryURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var (
		symbols   []string
		symbolCol = 0
		testCol   = -1
		etfCol    = -1
	)

	scanner := bufio.NewScanner(resp.Body)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "File Creation Time") {
			continue
		}

		fields := strings.Split(line, "|")
		if first {
			first = false
			for i, name := range fields {
				switch strings.TrimSpace(name) {
				case "Symbol", "ACT Symbol":
					symbolCol = i
				case "Test Issue":
					testCol = i
				case "ETF":
					etfCol = i
				}
			}
			continue
		}

		if testCol >= 0 && testCol < len(fields) && strings.TrimSpace(fields[testCol]) == "Y" {
			continue
		}
		if etfCol >= 0 && etfCol < len(fields) && strings.TrimSpace(fields[etfCol]) == "Y" {
			continue
		}

		symbol := strings.TrimSpace(fields[symbolCol])
		// Units, warrants and preferred shares carry $ or . qualifiers
		if symbol == "" || strings.ContainsAny(symbol, "$.") {
			continue
		}
		symbols = append(symbols, symbol)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	return symbols, nil
}

func (c *Client) fetchFundamentals(ctx context.Context, symbol string) (*contracts.AssetRecord, error) {
	url := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=summaryDetail,defaultKeyStatistics,financialData,assetProfile",
		c.cfg.QuoteBaseURL, symbol,
	)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	payload, err := decodeQuoteSummary(resp.Body)
	if err != nil {
		return nil, err
	}

	rec := payload.toAssetRecord(symbol)
	if rec.Sector == "" {
		rec.Sector = sector.Other
	}
	if payload.marketCap() < c.cfg.MinMarketCap {
		return nil, fmt.Errorf("market cap below floor")
	}
	return rec, nil
}
