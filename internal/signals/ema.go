// Package signals computes single-symbol technical readings from candle
// history. Every calculator is a pure function; fetching and caching live
// with the callers.
package signals

import (
	"math"

	"github.com/rfarias/garimpo/internal/contracts"
)

// emaPeriod is the moving-average length of the trend-turn setup.
const emaPeriod = 9

// priceOffset pads trigger and stop one cent beyond the reference candle.
const priceOffset = 0.01

// EMASignal is the state of the trend-turn entry setup on the last candle.
type EMASignal struct {
	Status       string  `json:"status"` // armed, triggered, waiting
	Direction    string  `json:"direction,omitempty"` // buy, sell
	EMA          float64 `json:"ema"`
	TriggerPrice float64 `json:"trigger_price,omitempty"`
	StopPrice    float64 `json:"stop_price,omitempty"`
}

const (
	StatusArmed     = "armed"
	StatusTriggered = "triggered"
	StatusWaiting   = "waiting"

	DirectionBuy  = "buy"
	DirectionSell = "sell"
)

// EMA returns the exponential moving average series for the closes with the
// given period. The first period-1 positions hold the progressive seed.
func EMA(candles []contracts.Candle, period int) []float64 {
	if len(candles) == 0 || period <= 0 {
		return nil
	}

	k := 2.0 / (float64(period) + 1)
	out := make([]float64, len(candles))
	out[0] = candles[0].Close
	for i := 1; i < len(candles); i++ {
		out[i] = candles[i].Close*k + out[i-1]*(1-k)
	}
	return out
}

// EMASetup evaluates the trend-turn entry on the newest candle: when the
// 9-period average turns from falling to rising, a buy is armed with the
// trigger one cent above that candle's high and the stop one cent below its
// low. The mirrored turn arms a sell. A later candle crossing the trigger
// marks the setup triggered.
func EMASetup(candles []contracts.Candle) *EMASignal {
	if len(candles) < emaPeriod+2 {
		return &EMASignal{Status: StatusWaiting}
	}

	ema := EMA(candles, emaPeriod)
	last := len(candles) - 1

	// Walk back to the most recent direction flip
	for i := last; i >= 2; i-- {
		prevFalling := ema[i-1] < ema[i-2]
		nowRising := ema[i] > ema[i-1]
		prevRising := ema[i-1] > ema[i-2]
		nowFalling := ema[i] < ema[i-1]

		if prevFalling && nowRising {
			signal := &EMASignal{
				Status:       StatusArmed,
				Direction:    DirectionBuy,
				EMA:          round2(ema[last]),
				TriggerPrice: round2(candles[i].High + priceOffset),
				StopPrice:    round2(candles[i].Low - priceOffset),
			}
			if i < last && highestHigh(candles[i+1:]) >= signal.TriggerPrice {
				signal.Status = StatusTriggered
			}
			return signal
		}
		if prevRising && nowFalling {
			signal := &EMASignal{
				Status:       StatusArmed,
				Direction:    DirectionSell,
				EMA:          round2(ema[last]),
				TriggerPrice: round2(candles[i].Low - priceOffset),
				StopPrice:    round2(candles[i].High + priceOffset),
			}
			if i < last && lowestLow(candles[i+1:]) <= signal.TriggerPrice {
				signal.Status = StatusTriggered
			}
			return signal
		}
	}

	return &EMASignal{Status: StatusWaiting, EMA: round2(ema[last])}
}

func highestHigh(candles []contracts.Candle) float64 {
	high := math.Inf(-1)
	for _, c := range candles {
		if c.High > high {
			high = c.High
		}
	}
	return high
}

func lowestLow(candles []contracts.Candle) float64 {
	low := math.Inf(1)
	for _, c := range candles {
		if c.Low < low {
			low = c.Low
		}
	}
	return low
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
