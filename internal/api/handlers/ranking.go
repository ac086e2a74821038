package handlers

import (
	"errors"
	"net/http"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/ranking"
	"github.com/rfarias/garimpo/internal/report"
	"github.com/rfarias/garimpo/pkg/logger"
)

// RankingHandler serves the stock ranking reports.
type RankingHandler struct {
	stocks *report.Service // Brazilian market
	usa    *report.Service // US market, nil when not configured
	logger *logger.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(stocks, usa *report.Service, log *logger.Logger) *RankingHandler {
	return &RankingHandler{
		stocks: stocks,
		usa:    usa,
		logger: log,
	}
}

// rankingResponse is the report payload. Message is set only when the rows
// are empty for an operational reason the consumer should know about.
type rankingResponse struct {
	Source      string                `json:"source"`
	GeneratedAt string                `json:"generated_at,omitempty"`
	Rows        []contracts.ReportRow `json:"rows"`
	Message     string                `json:"message,omitempty"`
}

// GetStocks returns the Brazilian stock ranking
// GET /api/ranking/stocks?sort=value-quality|intrinsic-value|yield-ceiling|sector-weighted-yield&refresh=true
func (h *RankingHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.stocks, "br-stocks")
}

// GetUSA returns the US stock ranking
// GET /api/ranking/usa?sort=...&refresh=true
func (h *RankingHandler) GetUSA(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.usa, "us-stocks")
}

func (h *RankingHandler) serve(w http.ResponseWriter, r *http.Request, svc *report.Service, source string) {
	if svc == nil {
		respondError(w, http.StatusNotFound, "source not configured: "+source)
		return
	}

	force := r.URL.Query().Get("refresh") == "true"

	rep, err := svc.Report(r.Context(), force)
	if err != nil {
		if errors.Is(err, contracts.ErrNoData) {
			// No snapshot anywhere: empty result, not a failure
			respondJSON(w, http.StatusOK, rankingResponse{
				Source:  source,
				Rows:    []contracts.ReportRow{},
				Message: "no data available yet, try again shortly",
			})
			return
		}
		h.logger.WithError(err).WithField("source", source).Error("Failed to build ranking report")
		respondError(w, http.StatusServiceUnavailable, "ranking temporarily unavailable")
		return
	}

	rows := make([]contracts.ReportRow, len(rep.Rows))
	copy(rows, rep.Rows)
	ranking.SortRows(rows, ranking.Formula(r.URL.Query().Get("sort")))

	respondJSON(w, http.StatusOK, rankingResponse{
		Source:      rep.Source,
		GeneratedAt: rep.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Rows:        rows,
	})
}
