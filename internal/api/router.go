package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/VerticalAgents/mischa-os-sub004/internal/api/handlers"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/database"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(giroHandler *handlers.GiroHandler, db *database.DB, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health checks
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.HandleFunc("/health/db", dbHealthHandler(db)).Methods("GET")

	// API
	api := r.PathPrefix("/api").Subrouter()

	// Turnover analytics endpoints
	api.HandleFunc("/giro/consolidated", giroHandler.GetConsolidated).Methods("GET")
	api.HandleFunc("/giro/ranking", giroHandler.GetRanking).Methods("GET")
	api.HandleFunc("/giro/regional", giroHandler.GetRegional).Methods("GET")
	api.HandleFunc("/giro/overview", giroHandler.GetOverview).Methods("GET")
	api.HandleFunc("/giro/temporal/{clientID:[0-9]+}", giroHandler.GetTemporal).Methods("GET")
	api.HandleFunc("/giro/forecast/{clientID:[0-9]+}", giroHandler.GetForecast).Methods("GET")
	api.HandleFunc("/giro/refresh", giroHandler.Refresh).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "giro-analytics-api",
	})
}

// dbHealthHandler returns connection pool health.
func dbHealthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := db.HealthCheck(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	}
}

// loggingMiddleware logs HTTP requests.
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

// recoveryMiddleware recovers from panics.
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
