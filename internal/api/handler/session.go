package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/storeroute/storeroute/internal/api/models"
	"github.com/storeroute/storeroute/internal/api/response"
	"github.com/storeroute/storeroute/internal/session"
	"github.com/storeroute/storeroute/internal/store"
)

// SessionHandler serves the planning session lifecycle: departure point,
// destination list, and reset.
type SessionHandler struct {
	sessions *session.Service
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /v1/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to create session")
		return
	}

	response.JSON(w, http.StatusCreated, models.NewSessionResponse(sess))
}

// Get handles GET /v1/sessions/{sessionID}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, models.NewSessionResponse(sess))
}

// SetDeparture handles PUT /v1/sessions/{sessionID}/departure.
func (h *SessionHandler) SetDeparture(w http.ResponseWriter, r *http.Request) {
	var req models.SetDepartureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		response.BadRequest(w, r, "address must not be empty")
		return
	}

	sess, err := h.sessions.SetDeparture(r.Context(), chi.URLParam(r, "sessionID"), req.Address)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, models.NewSessionResponse(sess))
}

// AddDestination handles POST /v1/sessions/{sessionID}/destinations.
func (h *SessionHandler) AddDestination(w http.ResponseWriter, r *http.Request) {
	var req models.AddDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}
	if req.Retailer == "" || req.StoreNumber == "" {
		response.BadRequest(w, r, "retailer and storeNumber are required")
		return
	}

	sess, err := h.sessions.AddDestination(r.Context(), chi.URLParam(r, "sessionID"), req.Retailer, req.StoreNumber)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, models.NewSessionResponse(sess))
}

// RemoveDestination handles DELETE /v1/sessions/{sessionID}/destinations/{index}.
func (h *SessionHandler) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, r, "destination index must be an integer")
		return
	}

	sess, err := h.sessions.RemoveDestination(r.Context(), chi.URLParam(r, "sessionID"), index)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, models.NewSessionResponse(sess))
}

// Reset handles POST /v1/sessions/{sessionID}/reset.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, models.NewSessionResponse(sess))
}

// writeSessionError maps session domain errors to problem responses.
func (h *SessionHandler) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(w, r, "session not found")
	case errors.Is(err, store.ErrStoreNotFound):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, session.ErrDuplicateStore),
		errors.Is(err, session.ErrDuplicateAddress):
		response.Conflict(w, r, err.Error())
	case errors.Is(err, session.ErrDestinationIndex):
		response.BadRequest(w, r, err.Error())
	case errors.Is(err, session.ErrMissingDeparture),
		errors.Is(err, session.ErrTooFewDestinations):
		response.UnprocessableEntity(w, r, err.Error())
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
