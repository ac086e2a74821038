package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfarias/garimpo/internal/contracts"
)

// candleSeries builds daily candles from close prices with a fixed 1% range
// around each close.
func candleSeries(closes ...float64) []contracts.Candle {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]contracts.Candle, len(closes))
	for i, close := range closes {
		candles[i] = contracts.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      close,
			High:      close * 1.01,
			Low:       close * 0.99,
			Close:     close,
			Volume:    1000000,
		}
	}
	return candles
}

func TestEMA(t *testing.T) {
	candles := candleSeries(10, 10, 10, 10, 10)
	ema := EMA(candles, 9)
	require.Len(t, ema, 5)
	// Constant closes give a constant average
	for _, v := range ema {
		assert.InDelta(t, 10.0, v, 1e-9)
	}

	assert.Nil(t, EMA(nil, 9))
	assert.Nil(t, EMA(candles, 0))
}

func TestEMASetup_BuyArmsOnTurn(t *testing.T) {
	// A decline long enough to pull the average down, then a reversal
	closes := []float64{20, 19.5, 19, 18.5, 18, 17.5, 17, 16.5, 16, 15.5, 15, 14.5, 14, 15, 16}
	signal := EMASetup(candleSeries(closes...))

	assert.Equal(t, DirectionBuy, signal.Direction)
	assert.Contains(t, []string{StatusArmed, StatusTriggered}, signal.Status)
	assert.Greater(t, signal.TriggerPrice, signal.StopPrice)
}

func TestEMASetup_SellArmsOnTurn(t *testing.T) {
	closes := []float64{10, 10.5, 11, 11.5, 12, 12.5, 13, 13.5, 14, 14.5, 15, 15.5, 16, 15, 14}
	signal := EMASetup(candleSeries(closes...))

	assert.Equal(t, DirectionSell, signal.Direction)
	assert.Less(t, signal.TriggerPrice, signal.StopPrice)
}

func TestEMASetup_ShortHistory(t *testing.T) {
	signal := EMASetup(candleSeries(10, 11, 12))
	assert.Equal(t, StatusWaiting, signal.Status)
}

func TestWyckoff_ShortHistory(t *testing.T) {
	reading := Wyckoff(candleSeries(10, 11, 12))
	assert.Equal(t, PhaseUndefined, reading.Phase)
}

func TestWyckoff_MarkupAtHighs(t *testing.T) {
	// 200 sessions climbing steadily: short average above long, price at
	// the top of the recent range
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 10 + float64(i)*0.1
	}
	reading := Wyckoff(candleSeries(closes...))

	assert.Equal(t, "up", reading.Trend)
	assert.Equal(t, PhaseMarkup, reading.Phase)
	assert.Greater(t, reading.Resistance, reading.Support)
}

func TestWyckoff_MarkdownAtLows(t *testing.T) {
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 50 - float64(i)*0.1
	}
	reading := Wyckoff(candleSeries(closes...))

	assert.Equal(t, "down", reading.Trend)
	assert.Equal(t, PhaseMarkdown, reading.Phase)
}

func TestWyckoff_RangeInMiddle(t *testing.T) {
	// Flat oscillation with the last close mid-range
	closes := make([]float64, 200)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 9
		} else {
			closes[i] = 11
		}
	}
	closes[199] = 10
	reading := Wyckoff(candleSeries(closes...))

	assert.Equal(t, PhaseRange, reading.Phase)
}

func TestGapBacktest_ShortHistory(t *testing.T) {
	stats := GapBacktest(candleSeries(10, 10.1))
	assert.Equal(t, SuggestionNeutral, stats.Suggestion)
	assert.Zero(t, stats.Matches)
}

func TestGapBacktest_FillRateBuy(t *testing.T) {
	// History of 1% gap-downs that always filled, then today gaps down 1%
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	var candles []contracts.Candle
	price := 100.0
	candles = append(candles, contracts.Candle{Timestamp: base, Open: price, High: price, Low: price, Close: price})
	for i := 1; i <= 10; i++ {
		open := price * 0.99 // 1% gap down
		candles = append(candles, contracts.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      open,
			High:      price * 1.001, // trades back through the prior close
			Low:       open * 0.998,
			Close:     price,
		})
	}
	// Today: same 1% gap down, outcome unknown
	candles = append(candles, contracts.Candle{
		Timestamp: base.AddDate(0, 0, 11),
		Open:      price * 0.99,
		High:      price * 0.995,
		Low:       price * 0.988,
		Close:     price * 0.992,
	})

	stats := GapBacktest(candles)
	require.Greater(t, stats.Matches, 0)
	assert.Equal(t, stats.Matches, stats.Filled)
	assert.InDelta(t, 100.0, stats.FillRate, 1e-9)
	assert.Equal(t, SuggestionBuy, stats.Suggestion)
	assert.InDelta(t, -1.0, stats.GapPercent, 1e-9)
}

func TestGapFilled(t *testing.T) {
	// Gap up that traded back down through the prior close
	assert.True(t, gapFilled(10, contracts.Candle{Open: 10.2, High: 10.3, Low: 9.9, Close: 10.1}))
	// Gap up that never filled
	assert.False(t, gapFilled(10, contracts.Candle{Open: 10.2, High: 10.5, Low: 10.1, Close: 10.4}))
	// Gap down that filled
	assert.True(t, gapFilled(10, contracts.Candle{Open: 9.8, High: 10.05, Low: 9.7, Close: 10.0}))
	// No gap
	assert.False(t, gapFilled(10, contracts.Candle{Open: 10, High: 10.2, Low: 9.9, Close: 10.1}))
}
