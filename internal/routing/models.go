// Package routing provides round-trip route optimization over an external
// directions provider, route assembly, and the degraded fallback path.
package routing

import (
	"context"
	"errors"
)

// Reserved stop labels for the route bookends.
const (
	DepartureLabel = "Departure Point"
	ReturnLabel    = "Return to Departure Point"
)

// Sentinel errors for optimization operations.
var (
	// ErrProviderUnavailable indicates the directions provider is unreachable
	// or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("directions provider unavailable")
	// ErrNoRouteFound indicates the provider returned no route for the request.
	ErrNoRouteFound = errors.New("no route found")
	// ErrRateLimitExceeded indicates the provider quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrRequestDenied indicates the provider rejected the credentials.
	ErrRequestDenied = errors.New("request denied by directions provider")
)

// Optimizer chooses a visiting order for a set of waypoints.
// Implementations must convert every provider failure into an error; they
// never panic past this boundary.
type Optimizer interface {
	// Optimize requests a round trip from the request origin through all
	// destinations and back, letting the provider pick the waypoint order.
	Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error)
	// Name returns the provider identifier for logging.
	Name() string
}

// Stop is one point on an assembled route. The departure and return bookends
// are Stops with reserved labels and no retailer identity.
type Stop struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}

// Destination is a user-selected store to visit.
type Destination struct {
	Label       string `json:"label"`
	Address     string `json:"address"`
	Retailer    string `json:"retailer"`
	StoreNumber string `json:"storeNumber"`
}

// Stop converts the destination to a route Stop.
func (d Destination) Stop() Stop {
	return Stop{Label: d.Label, Address: d.Address}
}

// Options are the route preference flags forwarded to the provider.
type Options struct {
	AvoidTolls    bool
	AvoidHighways bool
	// TrafficModel selects the provider's traffic estimation model
	// (default "best_guess"). Departure time is always "now".
	TrafficModel string
}

// OptimizationRequest asks for an optimized round trip: origin -> each
// destination exactly once -> origin.
type OptimizationRequest struct {
	Origin       string
	Destinations []string
	Options      Options
}

// Leg is one directed segment between consecutive stops.
type Leg struct {
	DistanceMeters  int
	DurationSeconds int
}

// OptimizationResult is the provider's answer: the zero-based permutation of
// the request's destination indices in visiting order, and the n+1 legs of the
// full round trip.
type OptimizationResult struct {
	WaypointOrder []int
	Legs          []Leg
}

// Error provides detailed error information from the directions provider.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
