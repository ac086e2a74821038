package contracts

import "time"

// AssetRecord is one row of fundamentals for a single ticker at fetch time.
// Numeric fields are coerced to 0 at the provider boundary when the upstream
// value is absent or unparseable, so ranking code never sees NaN.
type AssetRecord struct {
	Ticker           string  `json:"ticker"`
	Sector           string  `json:"sector"`
	Price            float64 `json:"price"`
	DividendYield    float64 `json:"dividend_yield"` // percent
	PriceToBook      float64 `json:"price_to_book"`
	PriceToEarnings  float64 `json:"price_to_earnings"`
	Liquidity        float64 `json:"liquidity"` // avg daily traded value
	ReturnOnEquity   float64 `json:"return_on_equity"`  // percent
	ReturnOnCapital  float64 `json:"return_on_capital"` // percent
	NetMargin        float64 `json:"net_margin"`        // percent
	DebtToEquity     float64 `json:"debt_to_equity"`
	EVToEBIT         float64 `json:"ev_to_ebit"` // 0 means undefined
	EarningsPerShare float64 `json:"earnings_per_share"`
	FiveYearGrowth   float64 `json:"five_year_growth"` // percent
}

// ReportRow is one assembled output record: the asset plus one rank per
// strategy formula. Numeric fields are rounded to 2 decimals by the
// assembler.
type ReportRow struct {
	Ticker             string  `json:"ticker"`
	Sector             string  `json:"sector"`
	Price              float64 `json:"price"`
	DividendYield      float64 `json:"dividend_yield"`
	PriceToBook        float64 `json:"price_to_book"`
	PriceToEarnings    float64 `json:"price_to_earnings"`
	Liquidity          float64 `json:"liquidity"`
	IntrinsicValue     float64 `json:"intrinsic_value"`
	CeilingPrice       float64 `json:"ceiling_price"`
	RankValueQuality   int     `json:"rank_value_quality"`
	RankIntrinsic      int     `json:"rank_intrinsic"`
	RankYieldCeiling   int     `json:"rank_yield_ceiling"`
	RankSectorWeighted int     `json:"rank_sector_weighted"`
}

// RankingReport is the assembled output for one source at one point in time.
// Read-only once published for its date.
type RankingReport struct {
	Source      string      `json:"source"` // "br-stocks", "us-stocks"
	GeneratedAt time.Time   `json:"generated_at"`
	Rows        []ReportRow `json:"rows"`
}

// FundRecord is one row of the real-estate fund (FII) table.
type FundRecord struct {
	Ticker        string  `json:"ticker"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	DividendYield float64 `json:"dividend_yield"`
	PriceToBook   float64 `json:"price_to_book"`
	Liquidity     float64 `json:"liquidity"`
}

// FundRow is one assembled FII ranking record.
type FundRow struct {
	Ticker        string  `json:"ticker"`
	Sector        string  `json:"sector"`
	DividendYield float64 `json:"dividend_yield"`
	PriceToBook   float64 `json:"price_to_book"`
	Liquidity     float64 `json:"liquidity"`
	ShankRank     int     `json:"shank_rank"`
	ShankScore    float64 `json:"shank_score"`
	SmartRank     int     `json:"smart_rank"`
	SmartScore    float64 `json:"smart_score"`
}
