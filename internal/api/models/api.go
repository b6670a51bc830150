package models

import (
	"time"

	"github.com/storeroute/storeroute/internal/routing"
	"github.com/storeroute/storeroute/internal/session"
)

// SetDepartureRequest updates the session's departure address.
type SetDepartureRequest struct {
	Address string `json:"address"`
}

// AddDestinationRequest adds a catalog store to the session.
type AddDestinationRequest struct {
	Retailer    string `json:"retailer"`
	StoreNumber string `json:"storeNumber"`
}

// DestinationResponse is one selected destination.
type DestinationResponse struct {
	Retailer    string `json:"retailer"`
	StoreNumber string `json:"storeNumber"`
	Label       string `json:"label"`
	Address     string `json:"address"`
}

// SessionResponse is the API view of a planning session.
type SessionResponse struct {
	ID             string                `json:"id"`
	DeparturePoint string                `json:"departurePoint"`
	Destinations   []DestinationResponse `json:"destinations"`
	Plan           *routing.Plan         `json:"plan,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// NewSessionResponse converts a domain session to its API view.
func NewSessionResponse(s *session.Session) *SessionResponse {
	destinations := make([]DestinationResponse, 0, len(s.Destinations))
	for _, d := range s.Destinations {
		destinations = append(destinations, DestinationResponse{
			Retailer:    d.Retailer,
			StoreNumber: d.StoreNumber,
			Label:       d.Label,
			Address:     d.Address,
		})
	}

	return &SessionResponse{
		ID:             s.ID,
		DeparturePoint: s.DeparturePoint,
		Destinations:   destinations,
		Plan:           s.Plan,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// RetailersResponse lists the catalog's retailers in preferred display order.
type RetailersResponse struct {
	Retailers []string `json:"retailers"`
}

// StoresResponse lists the store numbers for one retailer.
type StoresResponse struct {
	Retailer     string   `json:"retailer"`
	StoreNumbers []string `json:"storeNumbers"`
}

// EmailRouteResponse confirms itinerary delivery.
type EmailRouteResponse struct {
	Recipient string `json:"recipient"`
	Filename  string `json:"filename"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
