package usmarket

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rfarias/garimpo/internal/contracts"
)

// rawValue is the {raw, fmt} wrapper the fundamentals endpoint puts around
// every number. Only raw is read.
type rawValue struct {
	Raw float64 `json:"raw"`
}

type summaryDetail struct {
	DividendYield        rawValue `json:"dividendYield"` // fraction
	TrailingPE           rawValue `json:"trailingPE"`
	MarketCap            rawValue `json:"marketCap"`
	AverageDailyVolume3M rawValue `json:"averageDailyVolume3Month"`
}

type keyStatistics struct {
	PriceToBook        rawValue `json:"priceToBook"`
	TrailingEps        rawValue `json:"trailingEps"`
	EnterpriseToEbitda rawValue `json:"enterpriseToEbitda"`
}

type financialData struct {
	CurrentPrice   rawValue `json:"currentPrice"`
	ReturnOnEquity rawValue `json:"returnOnEquity"` // fraction
	ReturnOnAssets rawValue `json:"returnOnAssets"` // fraction
	ProfitMargins  rawValue `json:"profitMargins"`  // fraction
	DebtToEquity   rawValue `json:"debtToEquity"`   // percent
	RevenueGrowth  rawValue `json:"revenueGrowth"`  // fraction
}

type quoteSummaryResult struct {
	SummaryDetail summaryDetail `json:"summaryDetail"`
	KeyStatistics keyStatistics `json:"defaultKeyStatistics"`
	FinancialData financialData `json:"financialData"`
	AssetProfile  struct {
		Sector string `json:"sector"`
	} `json:"assetProfile"`
}

type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func decodeQuoteSummary(r io.Reader) (*quoteSummaryResult, error) {
	var envelope quoteSummaryEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("upstream error: %s", envelope.QuoteSummary.Error.Description)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("empty result")
	}
	return &envelope.QuoteSummary.Result[0], nil
}

func (q *quoteSummaryResult) marketCap() float64 {
	return q.SummaryDetail.MarketCap.Raw
}

// toAssetRecord maps the nested payload into the flat record the ranking
// engine consumes. Fractional ratios become percentages to match the
// Brazilian table's conventions; debt-to-equity arrives as a percentage and
// becomes a ratio.
func (q *quoteSummaryResult) toAssetRecord(symbol string) *contracts.AssetRecord {
	price := q.FinancialData.CurrentPrice.Raw
	return &contracts.AssetRecord{
		Ticker:           symbol,
		Sector:           q.AssetProfile.Sector,
		Price:            price,
		DividendYield:    q.SummaryDetail.DividendYield.Raw * 100,
		PriceToBook:      q.KeyStatistics.PriceToBook.Raw,
		PriceToEarnings:  q.SummaryDetail.TrailingPE.Raw,
		Liquidity:        q.SummaryDetail.AverageDailyVolume3M.Raw * price,
		ReturnOnEquity:   q.FinancialData.ReturnOnEquity.Raw * 100,
		ReturnOnCapital:  q.FinancialData.ReturnOnAssets.Raw * 100,
		NetMargin:        q.FinancialData.ProfitMargins.Raw * 100,
		DebtToEquity:     q.FinancialData.DebtToEquity.Raw / 100,
		EVToEBIT:         q.KeyStatistics.EnterpriseToEbitda.Raw,
		EarningsPerShare: q.KeyStatistics.TrailingEps.Raw,
		FiveYearGrowth:   q.FinancialData.RevenueGrowth.Raw * 100,
	}
}
