package ranking

import (
	"strings"

	"github.com/rfarias/garimpo/internal/contracts"
)

// FilterConfig defines the market-eligibility cut applied once, before any
// formula runs. Every formula operates on the same filtered set.
type FilterConfig struct {
	// LiquidityFloor drops assets whose daily traded value is below it.
	LiquidityFloor float64

	// RequirePositiveEarnings drops loss-making companies (P/E <= 0)
	// before any formula runs.
	RequirePositiveEarnings bool

	// MaxYield drops yields at or above it; values that high are data
	// errors in the upstream table. 0 disables the cap.
	MaxYield float64

	// ExcludedSector drops assets whose sector contains this substring
	// (case-insensitive). Empty disables the check.
	ExcludedSector string
}

// DefaultFilterConfig returns the cut used for full-market equity scans.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		LiquidityFloor:          200000,
		RequirePositiveEarnings: true,
		MaxYield:                50,
	}
}

// Filter applies the eligibility cut. The yield filter is global: all four
// formulas assume income generation, so dy <= 0 rows are dropped for every
// formula, after coercion and together with the liquidity and sector cuts.
// Applying Filter to its own output is a no-op.
func Filter(records []contracts.AssetRecord, cfg FilterConfig) []contracts.AssetRecord {
	out := make([]contracts.AssetRecord, 0, len(records))
	for _, rec := range records {
		if !eligible(rec, cfg) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func eligible(rec contracts.AssetRecord, cfg FilterConfig) bool {
	if rec.Ticker == "" {
		return false
	}
	if rec.Liquidity < cfg.LiquidityFloor {
		return false
	}
	if cfg.RequirePositiveEarnings && rec.PriceToEarnings <= 0 {
		return false
	}
	if rec.DividendYield <= 0 {
		return false
	}
	if cfg.MaxYield > 0 && rec.DividendYield >= cfg.MaxYield {
		return false
	}
	if cfg.ExcludedSector != "" &&
		strings.Contains(strings.ToLower(rec.Sector), strings.ToLower(cfg.ExcludedSector)) {
		return false
	}
	return true
}
