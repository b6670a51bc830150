package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storeroute/storeroute/internal/api/models"
	"github.com/storeroute/storeroute/internal/api/response"
	"github.com/storeroute/storeroute/internal/store"
)

// CatalogHandler serves read-only store catalog lookups.
type CatalogHandler struct {
	catalog store.Repository
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog store.Repository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListRetailers handles GET /v1/catalog/retailers.
func (h *CatalogHandler) ListRetailers(w http.ResponseWriter, r *http.Request) {
	retailers, err := h.catalog.Retailers(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load store catalog")
		return
	}

	response.JSON(w, http.StatusOK, models.RetailersResponse{
		Retailers: store.SortRetailers(retailers),
	})
}

// ListStores handles GET /v1/catalog/retailers/{retailer}/stores.
func (h *CatalogHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	retailer := chi.URLParam(r, "retailer")

	numbers, err := h.catalog.StoreNumbers(r.Context(), retailer)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			response.NotFound(w, r, fmt.Sprintf("no stores found for retailer %q", retailer))
			return
		}
		response.InternalError(w, r, "failed to load store catalog")
		return
	}
	if len(numbers) == 0 {
		response.NotFound(w, r, fmt.Sprintf("no stores found for retailer %q", retailer))
		return
	}

	response.JSON(w, http.StatusOK, models.StoresResponse{
		Retailer:     retailer,
		StoreNumbers: numbers,
	})
}
