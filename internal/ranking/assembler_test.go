package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/pkg/logger"
)

func TestAssemble(t *testing.T) {
	records := []contracts.AssetRecord{
		{Ticker: "AAAA3", Sector: "Energia", Price: 10.456, DividendYield: 8.333, PriceToBook: 0.8, PriceToEarnings: 5, ReturnOnEquity: 15, ReturnOnCapital: 12, NetMargin: 20, DebtToEquity: 0.5, EVToEBIT: 4, EarningsPerShare: 2, FiveYearGrowth: 5},
		{Ticker: "BBBB4", Sector: "Varejo", Price: 20, DividendYield: 3, PriceToBook: 1.5, PriceToEarnings: 12, ReturnOnEquity: 9, ReturnOnCapital: 7, NetMargin: 8, DebtToEquity: 1.2, EVToEBIT: 9, EarningsPerShare: 1.6, FiveYearGrowth: 2},
	}

	engine := NewEngine(BRConfig(), logger.NewNop())
	scores := engine.Score(records)

	generatedAt := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	report, err := Assemble("br-stocks", records, scores, generatedAt)
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "br-stocks", report.Source)
	assert.Equal(t, generatedAt, report.GeneratedAt)

	row := report.Rows[0]
	assert.Equal(t, "AAAA3", row.Ticker)
	// Monetary/percentage fields are rounded to 2 decimals
	assert.Equal(t, 10.46, row.Price)
	assert.Equal(t, 8.33, row.DividendYield)
	// Every rank column is populated
	assert.GreaterOrEqual(t, row.RankValueQuality, 1)
	assert.GreaterOrEqual(t, row.RankIntrinsic, 1)
	assert.GreaterOrEqual(t, row.RankYieldCeiling, 1)
	assert.GreaterOrEqual(t, row.RankSectorWeighted, 1)
}

func TestAssemble_MissingScoreFailsLoudly(t *testing.T) {
	records := []contracts.AssetRecord{{Ticker: "GHOST3", Sector: "Outros"}}

	scores := &ScoreSet{
		ByFormula:      map[Formula]map[string]Score{},
		IntrinsicValue: map[string]float64{},
		CeilingPrice:   map[string]float64{},
	}
	for _, f := range Formulas {
		scores.ByFormula[f] = map[string]Score{}
	}

	_, err := Assemble("br-stocks", records, scores, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring inconsistency")
}

func TestAssemble_EmptyInput(t *testing.T) {
	engine := NewEngine(BRConfig(), logger.NewNop())
	scores := engine.Score(nil)

	report, err := Assemble("br-stocks", nil, scores, time.Now())
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.NotNil(t, report.Rows)
}

func TestSortRows(t *testing.T) {
	rows := []contracts.ReportRow{
		{Ticker: "A", RankValueQuality: 3, RankSectorWeighted: 1},
		{Ticker: "B", RankValueQuality: 1, RankSectorWeighted: 3},
		{Ticker: "C", RankValueQuality: 2, RankSectorWeighted: 2},
	}

	SortRows(rows, FormulaSectorWeighted)
	assert.Equal(t, "A", rows[0].Ticker)

	SortRows(rows, FormulaValueQuality)
	assert.Equal(t, "B", rows[0].Ticker)

	// Unknown key falls back to value-quality
	SortRows(rows, Formula("bogus"))
	assert.Equal(t, "B", rows[0].Ticker)
}

// End-to-end: filter drops the illiquid zero-yield asset, and the asset with
// higher yield, lower price-to-book and higher ROE wins the sector-weighted
// formula.
func TestRankingPipeline_EndToEnd(t *testing.T) {
	records := []contracts.AssetRecord{
		{Ticker: "A", Sector: "Outros", Price: 10, DividendYield: 8, PriceToBook: 0.8, Liquidity: 500000, PriceToEarnings: 10, ReturnOnEquity: 15, ReturnOnCapital: 12, NetMargin: 15, DebtToEquity: 0.5, EVToEBIT: 5, EarningsPerShare: 1},
		{Ticker: "B", Sector: "Outros", Price: 30, DividendYield: 2, PriceToBook: 1.5, Liquidity: 500000, PriceToEarnings: 20, ReturnOnEquity: 5, ReturnOnCapital: 4, NetMargin: 6, DebtToEquity: 1.5, EVToEBIT: 12, EarningsPerShare: 1.5},
		{Ticker: "C", Sector: "Outros", Price: 8, DividendYield: 0, PriceToBook: 1.0, Liquidity: 100000, PriceToEarnings: 8, ReturnOnEquity: 10, ReturnOnCapital: 8, NetMargin: 10, DebtToEquity: 1.0, EVToEBIT: 7, EarningsPerShare: 1},
	}

	filtered := Filter(records, DefaultFilterConfig())
	require.Len(t, filtered, 2, "C must be dropped by liquidity/yield filters")
	for _, rec := range filtered {
		assert.NotEqual(t, "C", rec.Ticker)
	}

	engine := NewEngine(BRConfig(), logger.NewNop())
	scores := engine.Score(filtered)
	report, err := Assemble("br-stocks", filtered, scores, time.Now())
	require.NoError(t, err)

	byTicker := make(map[string]contracts.ReportRow)
	for _, row := range report.Rows {
		byTicker[row.Ticker] = row
	}
	assert.Less(t, byTicker["A"].RankSectorWeighted, byTicker["B"].RankSectorWeighted)
}
