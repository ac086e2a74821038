package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/pkg/logger"
)

// CalendarHandler serves stored economic-calendar events. When no store is
// configured it falls through to the live feed.
type CalendarHandler struct {
	store    contracts.CalendarStore // nil when the database is disabled
	provider contracts.CalendarProvider
	logger   *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(store contracts.CalendarStore, provider contracts.CalendarProvider, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		store:    store,
		provider: provider,
		logger:   log,
	}
}

// GetEvents returns upcoming events for a country
// GET /api/calendar?country=BR&days=7
func (h *CalendarHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(r.URL.Query().Get("country"))
	if country == "" {
		country = "BR"
	}

	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 && d <= 90 {
			days = d
		}
	}

	events, err := h.fetch(r, country, days)
	if err != nil {
		h.logger.WithError(err).WithField("country", country).Error("Failed to fetch calendar events")
		respondError(w, http.StatusServiceUnavailable, "calendar temporarily unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"country": country,
		"days":    days,
		"events":  events,
	})
}

func (h *CalendarHandler) fetch(r *http.Request, country string, days int) ([]contracts.CalendarEvent, error) {
	ctx := r.Context()

	if h.store != nil {
		now := time.Now()
		events, err := h.store.EventsByCountry(ctx, country, now, now.AddDate(0, 0, days))
		if err == nil {
			return events, nil
		}
		h.logger.WithError(err).Warn("Calendar store read failed; falling back to live feed")
	}

	return h.provider.Events(ctx, country)
}
