package handlers

import (
	"errors"
	"net/http"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/funds"
	"github.com/rfarias/garimpo/pkg/logger"
)

// FundsHandler serves the real-estate fund (FII) ranking.
type FundsHandler struct {
	service *funds.Service
	logger  *logger.Logger
}

// NewFundsHandler creates a new funds handler
func NewFundsHandler(service *funds.Service, log *logger.Logger) *FundsHandler {
	return &FundsHandler{
		service: service,
		logger:  log,
	}
}

type fundsResponse struct {
	Sort    string               `json:"sort"`
	Rows    []contracts.FundRow  `json:"rows"`
	Message string               `json:"message,omitempty"`
}

// GetFunds returns the FII ranking
// GET /api/ranking/funds?sort=shank|smart&refresh=true
func (h *FundsHandler) GetFunds(w http.ResponseWriter, r *http.Request) {
	sortBy := funds.SortKey(r.URL.Query().Get("sort"))
	if sortBy != funds.SortSmart {
		sortBy = funds.SortShank
	}
	force := r.URL.Query().Get("refresh") == "true"

	rows, err := h.service.Rows(r.Context(), sortBy, force)
	if err != nil {
		if errors.Is(err, contracts.ErrNoData) {
			respondJSON(w, http.StatusOK, fundsResponse{
				Sort:    string(sortBy),
				Rows:    []contracts.FundRow{},
				Message: "no data available yet, try again shortly",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to build funds ranking")
		respondError(w, http.StatusServiceUnavailable, "funds ranking temporarily unavailable")
		return
	}

	respondJSON(w, http.StatusOK, fundsResponse{
		Sort: string(sortBy),
		Rows: rows,
	})
}
