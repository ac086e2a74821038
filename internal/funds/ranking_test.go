package funds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfarias/garimpo/internal/contracts"
)

func TestFilter(t *testing.T) {
	cfg := DefaultFilterConfig()

	records := []contracts.FundRecord{
		{Ticker: "GOOD11", Sector: "Logística", DividendYield: 9, PriceToBook: 0.9, Liquidity: 800000},
		{Ticker: "ILLQ11", Sector: "Logística", DividendYield: 9, PriceToBook: 0.9, Liquidity: 50000},
		{Ticker: "NOPB11", Sector: "Logística", DividendYield: 9, PriceToBook: 0, Liquidity: 800000},
		{Ticker: "NODY11", Sector: "Logística", DividendYield: 0, PriceToBook: 0.9, Liquidity: 800000},
		{Ticker: "DEVL11", Sector: "Desenvolvimento Imobiliário", DividendYield: 9, PriceToBook: 0.9, Liquidity: 800000},
	}

	filtered := Filter(records, cfg)
	require.Len(t, filtered, 1)
	assert.Equal(t, "GOOD11", filtered[0].Ticker)

	// Idempotent
	assert.Equal(t, filtered, Filter(filtered, cfg))
}

func TestRank_ShankOrdering(t *testing.T) {
	// A: cheaper book and higher yield than B on every input
	records := []contracts.FundRecord{
		{Ticker: "BBBB11", Sector: "Shoppings", DividendYield: 6, PriceToBook: 1.2, Liquidity: 900000},
		{Ticker: "AAAA11", Sector: "Logística", DividendYield: 11, PriceToBook: 0.85, Liquidity: 900000},
	}

	rows := Rank(records, SortShank)
	require.Len(t, rows, 2)
	assert.Equal(t, "AAAA11", rows[0].Ticker)
	assert.Equal(t, 1, rows[0].ShankRank)
	assert.Equal(t, 2, rows[1].ShankRank)
}

func TestRank_SmartFavorsYieldAndDiscount(t *testing.T) {
	records := []contracts.FundRecord{
		{Ticker: "HIGH11", Sector: "Papel", DividendYield: 12, PriceToBook: 0.8, Liquidity: 1000000},
		{Ticker: "LOWW11", Sector: "Papel", DividendYield: 4, PriceToBook: 1.4, Liquidity: 1000000},
	}

	rows := Rank(records, SortSmart)
	require.Len(t, rows, 2)
	assert.Equal(t, "HIGH11", rows[0].Ticker)
	assert.Greater(t, rows[0].SmartScore, rows[1].SmartScore)
}

func TestRank_Empty(t *testing.T) {
	rows := Rank(nil, SortShank)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
