package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/VerticalAgents/mischa-os-sub004/internal/contracts"
	"github.com/VerticalAgents/mischa-os-sub004/internal/giro"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/logger"
	"github.com/VerticalAgents/mischa-os-sub004/pkg/redis"
)

// GiroHandler serves the turnover analytics endpoints.
type GiroHandler struct {
	engine  *giro.Engine
	limiter *redis.RateLimiter
	// localLimiter backs the refresh guard when Redis is disabled.
	localLimiter *rate.Limiter
	logger       *logger.Logger
}

// NewGiroHandler creates a new analytics handler.
func NewGiroHandler(engine *giro.Engine, limiter *redis.RateLimiter, log *logger.Logger) *GiroHandler {
	cfg := redis.RefreshRateLimit
	return &GiroHandler{
		engine:       engine,
		limiter:      limiter,
		localLimiter: rate.NewLimiter(rate.Limit(float64(cfg.Limit)/cfg.Window.Seconds()), cfg.Limit),
		logger:       log,
	}
}

// GetConsolidated returns the consolidated client records.
// GET /api/giro/consolidated?representative=&route=&category=
func (h *GiroHandler) GetConsolidated(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	records, err := h.engine.GetConsolidated(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get consolidated records")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve consolidated records")
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetRanking returns the turnover ranking.
// GET /api/giro/ranking?representative=&route=&category=
func (h *GiroHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	entries, err := h.engine.GetRanking(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get ranking")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve ranking")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// GetRegional returns the per-route rollup.
// GET /api/giro/regional?representative=&route=&category=
func (h *GiroHandler) GetRegional(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	summaries, err := h.engine.GetRegional(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get regional rollup")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve regional rollup")
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// GetOverview returns the portfolio overview.
// GET /api/giro/overview?representative=&route=&category=
func (h *GiroHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	overview, err := h.engine.GetOverview(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get overview")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve overview")
		return
	}

	respondJSON(w, http.StatusOK, overview)
}

// GetTemporal returns one client's weekly series.
// GET /api/giro/temporal/{clientID}
func (h *GiroHandler) GetTemporal(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathClientID(w, r)
	if !ok {
		return
	}

	series, err := h.engine.GetTemporal(r.Context(), clientID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get temporal series")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve temporal series")
		return
	}
	if series == nil {
		respondError(w, http.StatusNotFound, "No delivery history for client")
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// GetForecast returns one client's next-period forecast.
// GET /api/giro/forecast/{clientID}
func (h *GiroHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathClientID(w, r)
	if !ok {
		return
	}

	forecast, err := h.engine.GetForecast(r.Context(), clientID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get forecast")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve forecast")
		return
	}
	if forecast == nil {
		respondError(w, http.StatusNotFound, "No delivery history for client")
		return
	}

	respondJSON(w, http.StatusOK, forecast)
}

// Refresh triggers the consolidated snapshot rebuild. Rate limited: the
// rebuild is heavyweight and several open dashboards must not stack it.
// POST /api/giro/refresh
func (h *GiroHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	allowed, _, err := h.limiter.Allow(ctx, redis.RefreshRateLimit)
	if err != nil {
		h.logger.WithError(err).Warn("Rate limiter check failed, falling back to local limiter")
		allowed = true
	}
	if allowed {
		// The Redis limiter admits everything when Redis is disabled;
		// the local limiter still applies per instance.
		allowed = h.localLimiter.Allow()
	}
	if !allowed {
		respondError(w, http.StatusTooManyRequests, "Snapshot refresh already in progress, try again shortly")
		return
	}

	if err := h.engine.RefreshSnapshot(ctx); err != nil {
		h.logger.WithError(err).Error("Snapshot refresh failed")
		respondError(w, http.StatusInternalServerError, "Snapshot refresh failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// parseFilter reads the optional filter query parameters.
func parseFilter(r *http.Request) contracts.Filter {
	q := r.URL.Query()
	return contracts.Filter{
		RepresentativeID: parseID(q.Get("representative")),
		RouteID:          parseID(q.Get("route")),
		CategoryID:       parseID(q.Get("category")),
	}
}

func parseID(value string) int64 {
	if value == "" {
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func pathClientID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["clientID"], 10, 64)
	if err != nil || clientID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid client id")
		return 0, false
	}
	return clientID, true
}
