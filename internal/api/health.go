package api

import (
	"net/http"
	"time"

	"github.com/happythoughts/thoughts-service/internal/api/respond"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler { return &HealthHandler{store: s} }

// CheckHealth handles GET /health. Always 200: it only says the process is
// serving, not that its dependencies are.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// CheckStorageHealth handles GET /health/db by pinging the database.
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthPing(r.Context()); err != nil {
		respond.WriteFailure(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respond.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
