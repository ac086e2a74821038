package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/signals"
	"github.com/rfarias/garimpo/pkg/logger"
)

// SignalsHandler serves single-symbol technical readings.
type SignalsHandler struct {
	quotes contracts.QuoteProvider
	logger *logger.Logger
}

// NewSignalsHandler creates a new signals handler
func NewSignalsHandler(quotes contracts.QuoteProvider, log *logger.Logger) *SignalsHandler {
	return &SignalsHandler{
		quotes: quotes,
		logger: log,
	}
}

// GetEMA returns the trend-turn entry setup for a symbol
// GET /api/signals/ema/{symbol}?interval=1d&period=6mo
func (h *SignalsHandler) GetEMA(w http.ResponseWriter, r *http.Request) {
	candles, symbol, ok := h.history(w, r, "6mo")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"signal": signals.EMASetup(candles),
	})
}

// GetWyckoff returns the phase estimate for a symbol
// GET /api/signals/wyckoff/{symbol}?interval=1d&period=2y
func (h *SignalsHandler) GetWyckoff(w http.ResponseWriter, r *http.Request) {
	candles, symbol, ok := h.history(w, r, "2y")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"reading": signals.Wyckoff(candles),
	})
}

// GetGap returns the opening-gap backtest for a symbol
// GET /api/signals/gap/{symbol}?interval=1d&period=1y
func (h *SignalsHandler) GetGap(w http.ResponseWriter, r *http.Request) {
	candles, symbol, ok := h.history(w, r, "1y")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"stats":  signals.GapBacktest(candles),
	})
}

// history fetches candles for the request, writing the error response
// itself when something goes wrong.
func (h *SignalsHandler) history(w http.ResponseWriter, r *http.Request, defaultPeriod string) ([]contracts.Candle, string, bool) {
	symbol := mux.Vars(r)["symbol"]
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return nil, "", false
	}

	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "1d"
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = defaultPeriod
	}

	candles, err := h.quotes.History(r.Context(), symbol, interval, period)
	if err != nil {
		if errors.Is(err, contracts.ErrNoData) {
			respondError(w, http.StatusNotFound, "no history for symbol "+symbol)
			return nil, "", false
		}
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to fetch history")
		respondError(w, http.StatusBadGateway, "quote source unavailable")
		return nil, "", false
	}

	return candles, symbol, true
}
