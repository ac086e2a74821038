package usmarket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfarias/garimpo/pkg/config"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
)

const directoryFixture = `Symbol|Security Name|Market Category|Test Issue|Financial Status|Round Lot Size|ETF|NextShares
AAPL|Apple Inc. - Common Stock|Q|N|N|100|N|N
TSTQ|Test Listing|Q|Y|N|100|N|N
SPYQ|Some ETF Trust|G|N|N|100|Y|N
BRK.A|Berkshire Class A|Q|N|N|100|N|N
MSFT|Microsoft Corporation - Common Stock|Q|N|N|100|N|N
File Creation Time: 0824202522:01|||||||`

const quoteFixture = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {
        "dividendYield": {"raw": 0.0065},
        "trailingPE": {"raw": 28.4},
        "marketCap": {"raw": 2800000000000},
        "averageDailyVolume3Month": {"raw": 50000000}
      },
      "defaultKeyStatistics": {
        "priceToBook": {"raw": 35.2},
        "trailingEps": {"raw": 6.42},
        "enterpriseToEbitda": {"raw": 21.7}
      },
      "financialData": {
        "currentPrice": {"raw": 182.5},
        "returnOnEquity": {"raw": 1.45},
        "returnOnAssets": {"raw": 0.28},
        "profitMargins": {"raw": 0.25},
        "debtToEquity": {"raw": 170.0},
        "revenueGrowth": {"raw": 0.08}
      },
      "assetProfile": {"sector": "Technology"}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, directoryURL, quoteBaseURL string) *Client {
	t.Helper()
	return NewClient(
		httputil.New(logger.NewNop()),
		logger.NewNop(),
		config.USMarketConfig{
			DirectoryURL: directoryURL,
			QuoteBaseURL: quoteBaseURL,
			MaxTickers:   500,
			MinPrice:     5,
			MinMarketCap: 5e8,
		},
	)
}

func TestListSymbols(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(directoryFixture))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	symbols, err := client.listSymbols(context.Background())
	require.NoError(t, err)

	// Test issues, ETFs and qualified share classes are dropped
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
}

func TestSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/directory", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(directoryFixture))
	})
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/v10/finance/quoteSummary/")
		if symbol == "MSFT" {
			// One upstream failure must not fail the snapshot
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(quoteFixture))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL+"/directory", server.URL)
	records, err := client.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "AAPL", rec.Ticker)
	assert.Equal(t, "Technology", rec.Sector)
	assert.InDelta(t, 182.5, rec.Price, 1e-9)
	// Fractions are converted to percentages
	assert.InDelta(t, 0.65, rec.DividendYield, 1e-9)
	assert.InDelta(t, 145.0, rec.ReturnOnEquity, 1e-9)
	assert.InDelta(t, 25.0, rec.NetMargin, 1e-9)
	// Percent debt-to-equity becomes a ratio
	assert.InDelta(t, 1.7, rec.DebtToEquity, 1e-9)
	assert.InDelta(t, 182.5*50000000, rec.Liquidity, 1e-3)
}

func TestDecodeQuoteSummary_UpstreamError(t *testing.T) {
	payload := `{"quoteSummary": {"result": null, "error": {"description": "Quote not found"}}}`
	_, err := decodeQuoteSummary(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quote not found")
}
