package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/folio-cms/folio/shared/api"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/utils"
)

const readyTimeout = 2 * time.Second

// Health answers as long as the process serves requests.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// Ready pings the configured store; load balancers stop routing on 503.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	backend := h.cfg.Public.Storage
	start := time.Now()
	err := h.health.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		logger.Log.Warn("store not ready", "storage", backend, "error", err)
		utils.WriteJSON(w, http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable", Storage: backend})
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.HealthResponse{Status: "ready", Storage: backend, LatencyMs: &latency})
}
