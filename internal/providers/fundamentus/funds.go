package fundamentus

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
	"github.com/rfarias/garimpo/pkg/numparse"
)

const fundsPath = "/fii_resultado.php"

// FundsClient scrapes the real-estate fund (FII) listing. It shares the
// stock client's transport and base URL.
type FundsClient struct {
	*Client
}

// NewFundsClient creates a new FII listing client
func NewFundsClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *FundsClient {
	return &FundsClient{Client: NewClient(httpClient, log, baseURL)}
}

var _ contracts.FundsProvider = (*FundsClient)(nil)

var fundColumns = map[string]string{
	"papel":          "ticker",
	"segmento":       "sector",
	"cotação":        "price",
	"dividend yield": "dy",
	"p/vp":           "pb",
	"liquidez":       "liquidity",
}

// Snapshot fetches and parses the full FII listing.
func (c *FundsClient) Snapshot(ctx context.Context) ([]contracts.FundRecord, error) {
	html, err := c.fetchHTML(ctx, fundsPath)
	if err != nil {
		return nil, err
	}

	records, err := parseFundsTable(html)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(records)).Debug("Fetched funds snapshot")
	return records, nil
}

func parseFundsTable(html string) ([]contracts.FundRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table#tabelaResultado")
	if table.Length() == 0 {
		// The FII page has used both ids over time
		table = doc.Find("table#resultado")
	}
	if table.Length() == 0 {
		return nil, fmt.Errorf("results table not found in page")
	}

	index := headerIndex(table, fundColumns)
	if _, ok := index["ticker"]; !ok {
		return nil, fmt.Errorf("ticker column not found in results table")
	}

	records := make([]contracts.FundRecord, 0, 256)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		cell := func(field string) string {
			pos, ok := index[field]
			if !ok || pos >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(pos).Text())
		}

		ticker := strings.ToUpper(cell("ticker"))
		if ticker == "" {
			return
		}

		records = append(records, contracts.FundRecord{
			Ticker:        ticker,
			Sector:        cell("sector"),
			Price:         numparse.Parse(cell("price")),
			DividendYield: numparse.ParsePercent(cell("dy")),
			PriceToBook:   numparse.Parse(cell("pb")),
			Liquidity:     numparse.Parse(cell("liquidity")),
		})
	})

	return records, nil
}
