package ranking

import (
	"math"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/sector"
	"github.com/rfarias/garimpo/pkg/logger"
)

// Formula identifies one independent scoring strategy.
type Formula string

const (
	FormulaValueQuality   Formula = "value-quality"
	FormulaIntrinsic      Formula = "intrinsic-value"
	FormulaYieldCeiling   Formula = "yield-ceiling"
	FormulaSectorWeighted Formula = "sector-weighted-yield"
)

// Formulas lists every active formula. Each filtered asset gets exactly one
// ScoreResult per entry.
var Formulas = []Formula{
	FormulaValueQuality,
	FormulaIntrinsic,
	FormulaYieldCeiling,
	FormulaSectorWeighted,
}

// IntrinsicVariant selects how the intrinsic-value estimate is derived.
type IntrinsicVariant int

const (
	// IntrinsicGrowthMultiple: EPS x (8.5 + 2 x growth) x 4.4 / 22.5.
	// Used for markets with a standard growth multiplier convention (B3).
	IntrinsicGrowthMultiple IntrinsicVariant = iota

	// IntrinsicBookValueSqrt: sqrt(22.5 x EPS x book value per share).
	// Used where the growth figure is unreliable (US scan).
	IntrinsicBookValueSqrt
)

// marginSentinel ranks assets without a positive intrinsic value last
// without ever dividing by zero.
const marginSentinel = -10

// sectorPenalty pushes value-quality-excluded sectors to the bottom of that
// formula while keeping them visible in the report.
const sectorPenalty = 10000

// EngineConfig holds the per-market formula constants.
type EngineConfig struct {
	Intrinsic IntrinsicVariant

	// CeilingDivisor converts price x yield(%) into the ceiling price:
	// 6 for the B3 convention (6% target yield), 4 for the US one
	// (price x dy/100 / 0.04).
	CeilingDivisor float64

	// IncludeMarginAndDebt adds the net-margin and debt terms to the
	// sector-weighted composite. Off for markets that don't supply them.
	IncludeMarginAndDebt bool

	// PreferredDiscount multiplies the sector-weighted composite for
	// assets in preferred sectors. Must be < 1 to reward them.
	PreferredDiscount float64
}

// BRConfig returns the engine constants for the B3 stock table.
func BRConfig() EngineConfig {
	return EngineConfig{
		Intrinsic:            IntrinsicGrowthMultiple,
		CeilingDivisor:       6,
		IncludeMarginAndDebt: true,
		PreferredDiscount:    0.8,
	}
}

// USConfig returns the engine constants for the US full-market scan.
func USConfig() EngineConfig {
	return EngineConfig{
		Intrinsic:            IntrinsicBookValueSqrt,
		CeilingDivisor:       4,
		IncludeMarginAndDebt: false,
		PreferredDiscount:    0.8,
	}
}

// Score is one asset's result under one formula.
type Score struct {
	RawScore float64
	Rank     int
}

// ScoreSet holds every formula's scores plus the derived per-asset values
// the assembler needs, all keyed by ticker.
type ScoreSet struct {
	ByFormula      map[Formula]map[string]Score
	IntrinsicValue map[string]float64
	CeilingPrice   map[string]float64
}

// Engine computes the formula scores over a filtered snapshot.
// Deterministic: the same input table always produces the same ranks.
type Engine struct {
	config EngineConfig
	logger *logger.Logger
}

// NewEngine creates a new scoring engine.
func NewEngine(config EngineConfig, log *logger.Logger) *Engine {
	return &Engine{
		config: config,
		logger: log,
	}
}

// Score computes all formulas for the filtered records.
func (e *Engine) Score(records []contracts.AssetRecord) *ScoreSet {
	set := &ScoreSet{
		ByFormula:      make(map[Formula]map[string]Score, len(Formulas)),
		IntrinsicValue: make(map[string]float64, len(records)),
		CeilingPrice:   make(map[string]float64, len(records)),
	}
	if len(records) == 0 {
		for _, f := range Formulas {
			set.ByFormula[f] = map[string]Score{}
		}
		return set
	}

	set.ByFormula[FormulaValueQuality] = e.scoreValueQuality(records)
	set.ByFormula[FormulaIntrinsic] = e.scoreIntrinsic(records, set.IntrinsicValue)
	set.ByFormula[FormulaYieldCeiling] = e.scoreYieldCeiling(records, set.CeilingPrice)
	set.ByFormula[FormulaSectorWeighted] = e.scoreSectorWeighted(records)

	e.logger.WithFields(map[string]interface{}{
		"assets":   len(records),
		"formulas": len(Formulas),
	}).Debug("Scoring completed")

	return set
}

// scoreValueQuality ranks by earnings yield plus return on capital, with a
// soft exclusion for sectors whose multiples aren't comparable.
func (e *Engine) scoreValueQuality(records []contracts.AssetRecord) map[string]Score {
	earningsYield := make([]float64, len(records))
	quality := make([]float64, len(records))
	for i, rec := range records {
		if rec.EVToEBIT > 0 {
			earningsYield[i] = 1 / rec.EVToEBIT
		}
		quality[i] = rec.ReturnOnCapital
	}

	rEY := DenseRank(earningsYield, true)
	rQ := DenseRank(quality, true)

	composite := make([]float64, len(records))
	for i, rec := range records {
		composite[i] = float64(rEY[i] + rQ[i])
		if sector.IsValueQualityExcluded(rec.Sector) {
			composite[i] += sectorPenalty
		}
	}

	return toScores(records, composite)
}

// scoreIntrinsic ranks by margin of safety over an intrinsic value estimate,
// combined with price-to-book. Fills intrinsicOut keyed by ticker.
func (e *Engine) scoreIntrinsic(records []contracts.AssetRecord, intrinsicOut map[string]float64) map[string]Score {
	margin := make([]float64, len(records))
	priceToBook := make([]float64, len(records))

	for i, rec := range records {
		vi := e.intrinsicValue(rec)
		intrinsicOut[rec.Ticker] = vi

		if vi > 0 {
			margin[i] = (vi - rec.Price) / vi
		} else {
			margin[i] = marginSentinel
		}
		priceToBook[i] = rec.PriceToBook
	}

	rMargin := DenseRank(margin, true)
	rPB := DenseRank(priceToBook, false)

	composite := make([]float64, len(records))
	for i := range records {
		composite[i] = float64(rMargin[i] + rPB[i])
	}

	return toScores(records, composite)
}

// intrinsicValue estimates fair value per the configured variant. Any
// non-positive input short-circuits to 0 (undefined estimate).
func (e *Engine) intrinsicValue(rec contracts.AssetRecord) float64 {
	switch e.config.Intrinsic {
	case IntrinsicBookValueSqrt:
		bookValuePerShare := 0.0
		if rec.PriceToBook > 0 {
			bookValuePerShare = rec.Price / rec.PriceToBook
		}
		if rec.EarningsPerShare > 0 && bookValuePerShare > 0 {
			return math.Sqrt(22.5 * rec.EarningsPerShare * bookValuePerShare)
		}
		return 0
	default: // IntrinsicGrowthMultiple
		if rec.EarningsPerShare > 0 {
			return rec.EarningsPerShare * (8.5 + 2*rec.FiveYearGrowth) * 4.4 / 22.5
		}
		return 0
	}
}

// scoreYieldCeiling ranks by upside to the price ceiling implied by the
// target yield. Fills ceilingOut keyed by ticker.
func (e *Engine) scoreYieldCeiling(records []contracts.AssetRecord, ceilingOut map[string]float64) map[string]Score {
	upside := make([]float64, len(records))
	yield := make([]float64, len(records))

	for i, rec := range records {
		ceiling := rec.Price * rec.DividendYield / e.config.CeilingDivisor
		ceilingOut[rec.Ticker] = ceiling

		if rec.Price > 0 {
			upside[i] = ceiling/rec.Price - 1
		}
		yield[i] = rec.DividendYield
	}

	rUpside := DenseRank(upside, true)
	rYield := DenseRank(yield, true)

	composite := make([]float64, len(records))
	for i := range records {
		composite[i] = float64(rUpside[i] + rYield[i])
	}

	return toScores(records, composite)
}

// scoreSectorWeighted ranks by a yield-weighted composite and rewards assets
// in preferred sectors with a composite discount before the final rank.
func (e *Engine) scoreSectorWeighted(records []contracts.AssetRecord) map[string]Score {
	n := len(records)
	yield := make([]float64, n)
	priceToBook := make([]float64, n)
	roe := make([]float64, n)
	debt := make([]float64, n)
	netMargin := make([]float64, n)

	for i, rec := range records {
		yield[i] = rec.DividendYield
		priceToBook[i] = rec.PriceToBook
		roe[i] = rec.ReturnOnEquity
		debt[i] = rec.DebtToEquity
		netMargin[i] = rec.NetMargin
	}

	rYield := DenseRank(yield, true)
	rPB := DenseRank(priceToBook, false)
	rROE := DenseRank(roe, true)

	var rDebt, rMargin []int
	if e.config.IncludeMarginAndDebt {
		rDebt = DenseRank(debt, false)
		rMargin = DenseRank(netMargin, true)
	}

	composite := make([]float64, n)
	for i, rec := range records {
		c := float64(2*rYield[i] + rPB[i] + rROE[i])
		if e.config.IncludeMarginAndDebt {
			c += float64(rDebt[i] + rMargin[i])
		}
		if sector.IsPreferred(rec.Sector) {
			c *= e.config.PreferredDiscount
		}
		composite[i] = c
	}

	return toScores(records, composite)
}

// toScores dense-ranks a composite (lower is better) and pairs it with its
// raw value per ticker.
func toScores(records []contracts.AssetRecord, composite []float64) map[string]Score {
	ranks := DenseRank(composite, false)
	scores := make(map[string]Score, len(records))
	for i, rec := range records {
		scores[rec.Ticker] = Score{
			RawScore: composite[i],
			Rank:     ranks[i],
		}
	}
	return scores
}
