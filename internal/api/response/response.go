// Package response writes JSON and RFC 7807 problem responses.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/storeroute/storeroute/internal/api/middleware"
	"github.com/storeroute/storeroute/internal/api/models"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeProblem(w http.ResponseWriter, r *http.Request, p *models.Problem) {
	p.Instance = r.URL.Path
	p.Write(w)
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, models.NewBadRequest(middleware.GetRequestID(r.Context()), detail))
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, models.NewNotFound(middleware.GetRequestID(r.Context()), detail))
}

// Conflict writes a 409 problem response.
func Conflict(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, models.NewConflict(middleware.GetRequestID(r.Context()), detail))
}

// UnprocessableEntity writes a 422 problem response.
func UnprocessableEntity(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, models.NewUnprocessableEntity(middleware.GetRequestID(r.Context()), detail))
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, models.NewInternalError(middleware.GetRequestID(r.Context()), detail))
}

// BadGateway writes a 502 problem response.
func BadGateway(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, models.NewBadGateway(middleware.GetRequestID(r.Context()), detail))
}

// ServiceUnavailable writes a 503 problem response.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, models.NewServiceUnavailable(middleware.GetRequestID(r.Context()), detail))
}
