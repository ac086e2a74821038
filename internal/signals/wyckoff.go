package signals

import "github.com/rfarias/garimpo/internal/contracts"

// Wyckoff phase labels. The heuristic reads a trading range from recent
// extremes and the long-trend direction from two moving averages.
const (
	PhaseAccumulation = "accumulation"
	PhaseMarkup       = "markup"
	PhaseDistribution = "distribution"
	PhaseMarkdown     = "markdown"
	PhaseRange        = "range"
	PhaseUndefined    = "undefined"
)

// rangeWindow is how many recent candles define support and resistance.
const rangeWindow = 60

// edgeTolerance widens the range edges: closes within 2% of an extreme
// count as testing it.
const edgeTolerance = 0.02

// WyckoffReading is the phase estimate for the newest candle.
type WyckoffReading struct {
	Phase      string  `json:"phase"`
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	Trend      string  `json:"trend"` // up, down, flat
}

// Wyckoff classifies the current phase from the last rangeWindow candles.
// Needs at least that much history; shorter input yields PhaseUndefined.
func Wyckoff(candles []contracts.Candle) *WyckoffReading {
	if len(candles) < rangeWindow {
		return &WyckoffReading{Phase: PhaseUndefined}
	}

	window := candles[len(candles)-rangeWindow:]
	support := lowestLow(window)
	resistance := highestHigh(window)
	last := candles[len(candles)-1].Close

	trend := trendDirection(candles)

	reading := &WyckoffReading{
		Support:    round2(support),
		Resistance: round2(resistance),
		Trend:      trend,
	}

	nearSupport := last <= support*(1+edgeTolerance)
	nearResistance := last >= resistance*(1-edgeTolerance)

	switch {
	case nearResistance && trend == "up":
		reading.Phase = PhaseMarkup
	case nearResistance:
		// Price at the top of the range without trend confirmation:
		// likely supply being distributed
		reading.Phase = PhaseDistribution
	case nearSupport && trend == "down":
		reading.Phase = PhaseMarkdown
	case nearSupport:
		reading.Phase = PhaseAccumulation
	default:
		reading.Phase = PhaseRange
	}

	return reading
}

// trendDirection compares the short and long simple moving averages.
func trendDirection(candles []contracts.Candle) string {
	short := sma(candles, 50)
	long := sma(candles, 200)
	if short == 0 || long == 0 {
		return "flat"
	}
	switch {
	case short > long*1.01:
		return "up"
	case short < long*0.99:
		return "down"
	default:
		return "flat"
	}
}

// sma returns the simple moving average of the last period closes, or 0
// when there is not enough history.
func sma(candles []contracts.Candle, period int) float64 {
	if period <= 0 || len(candles) < period {
		return 0
	}
	sum := 0.0
	for _, c := range candles[len(candles)-period:] {
		sum += c.Close
	}
	return sum / float64(period)
}
