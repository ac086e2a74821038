package ranking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rfarias/garimpo/internal/contracts"
)

// Assemble joins each asset with its rank from every formula and produces
// the published report. A ticker missing a score for any active formula is a
// scoring-engine bug, not a recoverable runtime condition, so it returns an
// error rather than a partial report.
func Assemble(source string, records []contracts.AssetRecord, scores *ScoreSet, generatedAt time.Time) (*contracts.RankingReport, error) {
	rows := make([]contracts.ReportRow, 0, len(records))

	for _, rec := range records {
		row := contracts.ReportRow{
			Ticker:          rec.Ticker,
			Sector:          rec.Sector,
			Price:           round2(rec.Price),
			DividendYield:   round2(rec.DividendYield),
			PriceToBook:     round2(rec.PriceToBook),
			PriceToEarnings: round2(rec.PriceToEarnings),
			Liquidity:       rec.Liquidity,
			IntrinsicValue:  round2(scores.IntrinsicValue[rec.Ticker]),
			CeilingPrice:    round2(scores.CeilingPrice[rec.Ticker]),
		}

		for _, formula := range Formulas {
			score, ok := scores.ByFormula[formula][rec.Ticker]
			if !ok {
				return nil, fmt.Errorf("scoring inconsistency: ticker %s has no %s score", rec.Ticker, formula)
			}
			switch formula {
			case FormulaValueQuality:
				row.RankValueQuality = score.Rank
			case FormulaIntrinsic:
				row.RankIntrinsic = score.Rank
			case FormulaYieldCeiling:
				row.RankYieldCeiling = score.Rank
			case FormulaSectorWeighted:
				row.RankSectorWeighted = score.Rank
			}
		}

		rows = append(rows, row)
	}

	return &contracts.RankingReport{
		Source:      source,
		GeneratedAt: generatedAt,
		Rows:        rows,
	}, nil
}

// SortRows orders report rows in place by the rank column matching the
// requested formula. Unknown sort keys fall back to value-quality.
func SortRows(rows []contracts.ReportRow, sortBy Formula) {
	key := func(r contracts.ReportRow) int {
		switch sortBy {
		case FormulaIntrinsic:
			return r.RankIntrinsic
		case FormulaYieldCeiling:
			return r.RankYieldCeiling
		case FormulaSectorWeighted:
			return r.RankSectorWeighted
		default:
			return r.RankValueQuality
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if key(rows[i]) != key(rows[j]) {
			return key(rows[i]) < key(rows[j])
		}
		return rows[i].Ticker < rows[j].Ticker
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
