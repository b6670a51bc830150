// Package session holds per-user planning state: the departure point, the
// selected destinations, and the last computed plan.
package session

import (
	"errors"
	"time"

	"github.com/storeroute/storeroute/internal/routing"
)

// Session errors.
var (
	// ErrSessionNotFound indicates no session exists with the given ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrDuplicateStore indicates the store is already in the destination list.
	ErrDuplicateStore = errors.New("store is already in the destination list")
	// ErrDuplicateAddress indicates another destination already uses this address.
	ErrDuplicateAddress = errors.New("address is already selected for another destination")
	// ErrDestinationIndex indicates the removal index is out of range.
	ErrDestinationIndex = errors.New("destination index out of range")
	// ErrTooFewDestinations indicates route creation needs at least two destinations.
	ErrTooFewDestinations = errors.New("at least 2 destinations are required to create a route")
	// ErrMissingDeparture indicates the departure point is blank.
	ErrMissingDeparture = errors.New("a departure point address is required")
	// ErrNoPlan indicates no route has been created for the session yet.
	ErrNoPlan = errors.New("no route has been created for this session")
)

// Session is the state of one planning session. All fields are fully replaced
// by the operations that touch them; a new plan always displaces the old one.
type Session struct {
	ID             string                `json:"id"`
	DeparturePoint string                `json:"departurePoint"`
	Destinations   []routing.Destination `json:"destinations"`
	Plan           *routing.Plan         `json:"plan,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// clone returns a deep-enough copy so callers never share the repository's
// destination slice.
func (s *Session) clone() *Session {
	out := *s
	out.Destinations = make([]routing.Destination, len(s.Destinations))
	copy(out.Destinations, s.Destinations)
	return &out
}
