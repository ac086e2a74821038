package fundamentus

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/sector"
	"github.com/rfarias/garimpo/pkg/numparse"
)

const stocksPath = "/resultado.php"

// Snapshot fetches and parses the full stocks listing. One row per ticker;
// rows that fail to parse are skipped, not fatal.
func (c *Client) Snapshot(ctx context.Context) ([]contracts.AssetRecord, error) {
	html, err := c.fetchHTML(ctx, stocksPath)
	if err != nil {
		return nil, err
	}

	records, err := parseStocksTable(html)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(records)).Debug("Fetched stocks snapshot")
	return records, nil
}

var _ contracts.FundamentalsProvider = (*Client)(nil)

// stockColumns maps the header labels the listing page uses to the fields we
// read. Lookup is by normalized header text, never by position, so column
// reorders upstream do not corrupt the snapshot.
var stockColumns = map[string]string{
	"papel":             "ticker",
	"cotação":           "price",
	"p/l":               "pe",
	"p/vp":              "pb",
	"div.yield":         "dy",
	"ev/ebit":           "ev_ebit",
	"mrg. líq.":         "net_margin",
	"roic":              "roic",
	"roe":               "roe",
	"liq.2meses":        "liquidity",
	"dív.brut/ patrim.": "debt",
	"cresc. rec.5a":     "growth",
}

func parseStocksTable(html string) ([]contracts.AssetRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table#resultado")
	if table.Length() == 0 {
		return nil, fmt.Errorf("results table not found in page")
	}

	index := headerIndex(table, stockColumns)
	if _, ok := index["ticker"]; !ok {
		return nil, fmt.Errorf("ticker column not found in results table")
	}

	records := make([]contracts.AssetRecord, 0, 512)
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

		rec := contracts.AssetRecord{
			Ticker:          ticker,
			Sector:          sector.Classify(ticker),
			Price:           numparse.Parse(cell("price")),
			PriceToEarnings: numparse.Parse(cell("pe")),
			PriceToBook:     numparse.Parse(cell("pb")),
			DividendYield:   numparse.ParsePercent(cell("dy")),
			EVToEBIT:        numparse.Parse(cell("ev_ebit")),
			NetMargin:       numparse.ParsePercent(cell("net_margin")),
			ReturnOnCapital: numparse.ParsePercent(cell("roic")),
			ReturnOnEquity:  numparse.ParsePercent(cell("roe")),
			Liquidity:       numparse.Parse(cell("liquidity")),
			DebtToEquity:    numparse.Parse(cell("debt")),
			FiveYearGrowth:  numparse.ParsePercent(cell("growth")),
		}
		// The listing has no EPS column; derive it from price and P/E
		if rec.PriceToEarnings > 0 {
			rec.EarningsPerShare = rec.Price / rec.PriceToEarnings
		}

		records = append(records, rec)
	})

	return records, nil
}

// headerIndex resolves each wanted field to its column position by scanning
// the table header.
func headerIndex(table *goquery.Selection, columns map[string]string) map[string]int {
	index := make(map[string]int, len(columns))
	table.Find("thead th").Each(func(pos int, th *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(th.Text()))
		if field, ok := columns[label]; ok {
			index[field] = pos
		}
	})
	return index
}
