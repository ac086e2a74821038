package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rfarias/garimpo/internal/api/handlers"
	"github.com/rfarias/garimpo/pkg/logger"
)

// NewRouter creates and configures the HTTP router. Handlers may be nil
// when their upstream is not configured; those routes are simply absent.
func NewRouter(
	ranking *handlers.RankingHandler,
	funds *handlers.FundsHandler,
	signals *handlers.SignalsHandler,
	calendar *handlers.CalendarHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	if ranking != nil {
		api.HandleFunc("/ranking/stocks", ranking.GetStocks).Methods("GET")
		api.HandleFunc("/ranking/usa", ranking.GetUSA).Methods("GET")
	}
	if funds != nil {
		api.HandleFunc("/ranking/funds", funds.GetFunds).Methods("GET")
	}
	if signals != nil {
		api.HandleFunc("/signals/ema/{symbol}", signals.GetEMA).Methods("GET")
		api.HandleFunc("/signals/wyckoff/{symbol}", signals.GetWyckoff).Methods("GET")
		api.HandleFunc("/signals/gap/{symbol}", signals.GetGap).Methods("GET")
	}
	if calendar != nil {
		api.HandleFunc("/calendar", calendar.GetEvents).Methods("GET")
	}

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "garimpo-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
