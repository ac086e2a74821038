package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfarias/garimpo/internal/contracts"
)

func TestFilter(t *testing.T) {
	cfg := DefaultFilterConfig()
	cfg.ExcludedSector = "Desenvolvimento"

	records := []contracts.AssetRecord{
		{Ticker: "GOOD1", Sector: "Energia", Liquidity: 500000, PriceToEarnings: 10, DividendYield: 6},
		{Ticker: "ILLIQ", Sector: "Energia", Liquidity: 100000, PriceToEarnings: 10, DividendYield: 6},
		{Ticker: "LOSS1", Sector: "Energia", Liquidity: 500000, PriceToEarnings: -2, DividendYield: 6},
		{Ticker: "NODIV", Sector: "Energia", Liquidity: 500000, PriceToEarnings: 10, DividendYield: 0},
		{Ticker: "WILD1", Sector: "Energia", Liquidity: 500000, PriceToEarnings: 10, DividendYield: 75},
		{Ticker: "DEV11", Sector: "Fundo de Desenvolvimento", Liquidity: 500000, PriceToEarnings: 10, DividendYield: 6},
		{Ticker: "", Sector: "Energia", Liquidity: 500000, PriceToEarnings: 10, DividendYield: 6},
	}

	filtered := Filter(records, cfg)
	require.Len(t, filtered, 1)
	assert.Equal(t, "GOOD1", filtered[0].Ticker)
}

func TestFilter_Idempotent(t *testing.T) {
	cfg := DefaultFilterConfig()

	records := []contracts.AssetRecord{
		{Ticker: "A", Liquidity: 300000, PriceToEarnings: 8, DividendYield: 5},
		{Ticker: "B", Liquidity: 150000, PriceToEarnings: 8, DividendYield: 5},
		{Ticker: "C", Liquidity: 300000, PriceToEarnings: 8, DividendYield: 2},
	}

	once := Filter(records, cfg)
	twice := Filter(once, cfg)
	assert.Equal(t, once, twice)
}

func TestFilter_Exhaustion(t *testing.T) {
	// A market with no qualifying assets is a valid outcome, not an error
	cfg := DefaultFilterConfig()
	records := []contracts.AssetRecord{
		{Ticker: "A", Liquidity: 0, PriceToEarnings: 8, DividendYield: 5},
	}
	filtered := Filter(records, cfg)
	assert.Empty(t, filtered)
	assert.NotNil(t, filtered)
}
