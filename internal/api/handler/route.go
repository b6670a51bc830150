package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storeroute/storeroute/internal/api/models"
	"github.com/storeroute/storeroute/internal/api/response"
	"github.com/storeroute/storeroute/internal/routing"
	"github.com/storeroute/storeroute/internal/session"
)

// Mailer delivers a route plan by email, reporting the attachment filename it
// used. *mail.Service satisfies this.
type Mailer interface {
	SendRoutePlan(ctx context.Context, plan *routing.Plan) (filename string, err error)
	Recipient() string
}

// RouteHandler computes route plans for a session and emails itineraries.
type RouteHandler struct {
	sessions *session.Service
	mailer   Mailer
}

// NewRouteHandler creates a new route handler. mailer may be nil when email
// delivery is not configured.
func NewRouteHandler(sessions *session.Service, mailer Mailer) *RouteHandler {
	return &RouteHandler{sessions: sessions, mailer: mailer}
}

// Create handles POST /v1/sessions/{sessionID}/route. Optimization failures
// still return 200 with a fallback plan; only session-state problems fail.
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.CreateRoute(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, models.NewSessionResponse(sess))
}

// Email handles POST /v1/sessions/{sessionID}/route/email, sending the
// session's current plan with the RTF itinerary attached.
func (h *RouteHandler) Email(w http.ResponseWriter, r *http.Request) {
	if h.mailer == nil {
		response.ServiceUnavailable(w, r, "email delivery is not configured")
		return
	}

	sess, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}
	if sess.Plan == nil {
		response.UnprocessableEntity(w, r, session.ErrNoPlan.Error())
		return
	}

	filename, err := h.mailer.SendRoutePlan(r.Context(), sess.Plan)
	if err != nil {
		response.BadGateway(w, r, "failed to send route email")
		return
	}

	response.JSON(w, http.StatusOK, models.EmailRouteResponse{
		Recipient: h.mailer.Recipient(),
		Filename:  filename,
	})
}

func (h *RouteHandler) writeRouteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(w, r, "session not found")
	case errors.Is(err, session.ErrMissingDeparture),
		errors.Is(err, session.ErrTooFewDestinations):
		response.UnprocessableEntity(w, r, err.Error())
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
