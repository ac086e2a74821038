package signals

import "github.com/rfarias/garimpo/internal/contracts"

// gapTolerance matches historical gaps within this many percentage points
// of today's gap.
const gapTolerance = 0.2

// Fill-rate thresholds for the trade suggestion.
const (
	gapBuyThreshold  = 60.0
	gapSellThreshold = 40.0
)

// GapStats is the backtest summary for the newest session's opening gap.
type GapStats struct {
	GapPercent float64 `json:"gap_percent"` // today's open vs prior close
	Matches    int     `json:"matches"`     // similar historical gaps
	Filled     int     `json:"filled"`      // of those, how many closed the gap
	FillRate   float64 `json:"fill_rate"`   // percent
	Suggestion string  `json:"suggestion"`  // buy, sell, neutral
}

const (
	SuggestionBuy     = "buy"
	SuggestionSell    = "sell"
	SuggestionNeutral = "neutral"
)

// GapBacktest measures today's opening gap against every similar gap in the
// history and reports how often such gaps filled back to the prior close
// within the session. A high fill rate on a gap-down suggests buying the
// open; symmetric logic on gap-ups suggests selling into them.
func GapBacktest(candles []contracts.Candle) *GapStats {
	if len(candles) < 3 {
		return &GapStats{Suggestion: SuggestionNeutral}
	}

	last := len(candles) - 1
	todayGap := gapPercent(candles[last-1].Close, candles[last].Open)

	stats := &GapStats{
		GapPercent: round2(todayGap),
		Suggestion: SuggestionNeutral,
	}

	for i := 1; i < last; i++ {
		gap := gapPercent(candles[i-1].Close, candles[i].Open)
		if gap == 0 || abs(gap-todayGap) > gapTolerance {
			continue
		}
		stats.Matches++
		if gapFilled(candles[i-1].Close, candles[i]) {
			stats.Filled++
		}
	}

	if stats.Matches == 0 {
		return stats
	}

	stats.FillRate = round2(float64(stats.Filled) / float64(stats.Matches) * 100)
	switch {
	case stats.FillRate >= gapBuyThreshold:
		stats.Suggestion = SuggestionBuy
	case stats.FillRate <= gapSellThreshold:
		stats.Suggestion = SuggestionSell
	}

	return stats
}

func gapPercent(prevClose, open float64) float64 {
	if prevClose == 0 {
		return 0
	}
	return (open - prevClose) / prevClose * 100
}

// gapFilled reports whether the session traded back through the prior close.
func gapFilled(prevClose float64, day contracts.Candle) bool {
	if day.Open > prevClose {
		return day.Low <= prevClose
	}
	if day.Open < prevClose {
		return day.High >= prevClose
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
