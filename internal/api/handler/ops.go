// Package handler implements the HTTP handlers for the StoreRoute API.
package handler

import (
	"net/http"

	"github.com/storeroute/storeroute/internal/api/models"
	"github.com/storeroute/storeroute/internal/api/response"
	"github.com/storeroute/storeroute/internal/store"
)

// OpsHandler serves liveness and readiness probes.
type OpsHandler struct {
	catalog store.Repository
	version string
}

// NewOpsHandler creates a new ops handler.
func NewOpsHandler(catalog store.Repository, version string) *OpsHandler {
	return &OpsHandler{catalog: catalog, version: version}
}

// Health handles GET /healthz.
func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Service: "storeroute-api",
		Version: h.version,
	})
}

// Ready handles GET /readyz. The service is ready once the store catalog is
// reachable and non-empty.
func (h *OpsHandler) Ready(w http.ResponseWriter, r *http.Request) {
	retailers, err := h.catalog.Retailers(r.Context())
	if err != nil || len(retailers) == 0 {
		response.ServiceUnavailable(w, r, "store catalog is not available")
		return
	}

	response.JSON(w, http.StatusOK, models.HealthResponse{
		Status:  "ready",
		Service: "storeroute-api",
		Version: h.version,
	})
}
