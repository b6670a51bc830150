// Package models defines the request and response payloads for the
// StoreRoute HTTP API.
package models

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC 7807 problem details response body.
type Problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

const problemTypeBase = "https://storeroute.dev/problems/"

// NewProblem creates a problem with the given type slug, title, and status.
func NewProblem(slug, title string, status int) *Problem {
	return &Problem{
		Type:   problemTypeBase + slug,
		Title:  title,
		Status: status,
	}
}

// NewBadRequest creates a 400 problem.
func NewBadRequest(requestID, detail string) *Problem {
	p := NewProblem("bad-request", "Bad Request", http.StatusBadRequest)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// NewNotFound creates a 404 problem.
func NewNotFound(requestID, detail string) *Problem {
	p := NewProblem("not-found", "Not Found", http.StatusNotFound)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// NewConflict creates a 409 problem.
func NewConflict(requestID, detail string) *Problem {
	p := NewProblem("conflict", "Conflict", http.StatusConflict)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// NewUnprocessableEntity creates a 422 problem.
func NewUnprocessableEntity(requestID, detail string) *Problem {
	p := NewProblem("unprocessable-entity", "Unprocessable Entity", http.StatusUnprocessableEntity)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// NewTooManyRequests creates a 429 problem.
func NewTooManyRequests(requestID, detail string) *Problem {
	p := NewProblem("rate-limit-exceeded", "Too Many Requests", http.StatusTooManyRequests)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// NewInternalError creates a 500 problem.
func NewInternalError(requestID, detail string) *Problem {
	p := NewProblem("internal-error", "Internal Server Error", http.StatusInternalServerError)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// NewBadGateway creates a 502 problem for upstream delivery failures.
func NewBadGateway(requestID, detail string) *Problem {
	p := NewProblem("upstream-failure", "Bad Gateway", http.StatusBadGateway)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// NewServiceUnavailable creates a 503 problem.
func NewServiceUnavailable(requestID, detail string) *Problem {
	p := NewProblem("service-unavailable", "Service Unavailable", http.StatusServiceUnavailable)
	p.Detail = detail
	p.RequestID = requestID
	return p
}

// Write serializes the problem to the response writer.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}
