// Package funds ranks Brazilian real-estate funds (FIIs) with the shank and
// smart composites. FIIs share the eligibility rules of the stock pipeline
// but score on the smaller column set their table provides.
package funds

import (
	"math"
	"sort"
	"strings"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/ranking"
)

// SortKey selects the ordering of the assembled fund report.
type SortKey string

const (
	SortShank SortKey = "shank"
	SortSmart SortKey = "smart"
)

// FilterConfig defines the FII eligibility cut.
type FilterConfig struct {
	LiquidityFloor float64
	ExcludedSector string // substring, e.g. "Desenvolvimento"
}

// DefaultFilterConfig returns the standard FII cut: liquid, priced book,
// paying distributions, and not an under-development fund.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		LiquidityFloor: 200000,
		ExcludedSector: "Desenvolvimento",
	}
}

// Filter applies the FII eligibility cut. Idempotent.
func Filter(records []contracts.FundRecord, cfg FilterConfig) []contracts.FundRecord {
	out := make([]contracts.FundRecord, 0, len(records))
	for _, rec := range records {
		if rec.Ticker == "" {
			continue
		}
		if rec.Liquidity < cfg.LiquidityFloor {
			continue
		}
		if rec.PriceToBook <= 0 || rec.DividendYield <= 0 {
			continue
		}
		if cfg.ExcludedSector != "" &&
			strings.Contains(strings.ToLower(rec.Sector), strings.ToLower(cfg.ExcludedSector)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Rank computes both composites over a filtered table and returns rows
// ordered by the requested key.
//
// shank: rank(price-to-book asc) + rank(yield desc), dense-ranked ascending.
// smart: weighted blend of yield, book discount and log-dampened liquidity,
// dense-ranked descending (higher blend = better).
func Rank(records []contracts.FundRecord, sortBy SortKey) []contracts.FundRow {
	if len(records) == 0 {
		return []contracts.FundRow{}
	}

	yield := make([]float64, len(records))
	priceToBook := make([]float64, len(records))
	smart := make([]float64, len(records))

	for i, rec := range records {
		yield[i] = rec.DividendYield
		priceToBook[i] = rec.PriceToBook
		smart[i] = smartScore(rec)
	}

	rPB := ranking.DenseRank(priceToBook, false)
	rYield := ranking.DenseRank(yield, true)

	shank := make([]float64, len(records))
	for i := range records {
		shank[i] = float64(rPB[i] + rYield[i])
	}

	shankRank := ranking.DenseRank(shank, false)
	smartRank := ranking.DenseRank(smart, true)

	rows := make([]contracts.FundRow, len(records))
	for i, rec := range records {
		rows[i] = contracts.FundRow{
			Ticker:        rec.Ticker,
			Sector:        rec.Sector,
			DividendYield: round2(rec.DividendYield),
			PriceToBook:   round2(rec.PriceToBook),
			Liquidity:     rec.Liquidity,
			ShankRank:     shankRank[i],
			ShankScore:    round2(shank[i]),
			SmartRank:     smartRank[i],
			SmartScore:    round2(smart[i]),
		}
	}

	sortRows(rows, sortBy)
	return rows
}

// smartScore blends income, book discount and liquidity into one figure.
// Weights follow the original strategy sheet: income 50%, valuation 30%,
// liquidity 20%.
func smartScore(rec contracts.FundRecord) float64 {
	income := rec.DividendYield * 25 * 0.5
	valuation := ((1-rec.PriceToBook)*15 + 15) * 0.3
	liquidity := math.Log1p(rec.Liquidity) * 10 * 0.2
	return income + valuation + liquidity
}

func sortRows(rows []contracts.FundRow, sortBy SortKey) {
	key := func(r contracts.FundRow) int {
		if sortBy == SortSmart {
			return r.SmartRank
		}
		return r.ShankRank
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if key(rows[i]) != key(rows[j]) {
			return key(rows[i]) < key(rows[j])
		}
		return rows[i].Ticker < rows[j].Ticker
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
