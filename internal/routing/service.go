package routing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/analysis"
	"github.com/storeroute/storeroute/internal/maplink"
)

// Plan is the outcome of one "create route" action. A plan fully replaces any
// prior plan for the session; it is never merged or updated in place.
type Plan struct {
	Stops         []Stop                  `json:"stops"`
	Metrics       *analysis.RouteMetrics  `json:"metrics,omitempty"`
	DirectionsURL string                  `json:"directionsUrl,omitempty"`
	WaypointOrder []int                   `json:"waypointOrder,omitempty"`
	// Fallback reports that optimization failed and the stops are in the
	// original insertion order. Absent metrics are the signal consumers key
	// off; FallbackReason carries the user-facing warning.
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// PlannerConfig holds configuration for the route planner.
type PlannerConfig struct {
	// Optimizer is the directions provider. Required.
	Optimizer Optimizer

	// Analyzer derives metrics on the success path. Required.
	Analyzer *analysis.Analyzer

	// Options are the route preferences forwarded on every request.
	Options Options

	// Logger for planner operations.
	Logger zerolog.Logger
}

// Planner turns a departure point and a destination list into a Plan.
type Planner struct {
	optimizer Optimizer
	analyzer  *analysis.Analyzer
	options   Options
	logger    zerolog.Logger
}

// NewPlanner creates a new route planner.
func NewPlanner(cfg PlannerConfig) *Planner {
	return &Planner{
		optimizer: cfg.Optimizer,
		analyzer:  cfg.Analyzer,
		options:   cfg.Options,
		logger:    cfg.Logger,
	}
}

// CreateRoute requests an optimized round trip and assembles the result.
// Provider failures do not surface as errors: the plan degrades to the
// unoptimized insertion order with no metrics and a warning reason.
func (p *Planner) CreateRoute(ctx context.Context, departure string, destinations []Destination) *Plan {
	addresses := make([]string, 0, len(destinations))
	for _, d := range destinations {
		addresses = append(addresses, d.Address)
	}

	result, err := p.optimizer.Optimize(ctx, OptimizationRequest{
		Origin:       departure,
		Destinations: addresses,
		Options:      p.options,
	})
	if err != nil {
		p.logger.Warn().
			Err(err).
			Str("provider", p.optimizer.Name()).
			Int("destinations", len(destinations)).
			Msg("route optimization failed, using unoptimized order")

		return &Plan{
			Stops:          AssembleFallbackRoute(departure, destinations),
			Fallback:       true,
			FallbackReason: "Route optimization failed: " + err.Error(),
		}
	}

	stops := AssembleRoute(departure, destinations, result.WaypointOrder)
	metrics := p.analyzer.Analyze(toAnalysisLegs(result.Legs), len(destinations))

	p.logger.Info().
		Str("provider", p.optimizer.Name()).
		Int("destinations", len(destinations)).
		Ints("waypoint_order", result.WaypointOrder).
		Float64("distance_km", metrics.TotalDistanceKM).
		Msg("route optimized")

	return &Plan{
		Stops:         stops,
		Metrics:       &metrics,
		DirectionsURL: p.directionsURL(departure, addresses, result.WaypointOrder),
		WaypointOrder: result.WaypointOrder,
	}
}

// toAnalysisLegs converts provider legs at the analysis boundary; the analysis
// package stays free of routing types.
func toAnalysisLegs(legs []Leg) []analysis.Leg {
	out := make([]analysis.Leg, 0, len(legs))
	for _, leg := range legs {
		out = append(out, analysis.Leg{
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
		})
	}
	return out
}

// directionsURL builds the shareable deep link for the optimized round trip.
func (p *Planner) directionsURL(origin string, addresses []string, order []int) string {
	points := make([]string, 0, len(addresses)+2)
	points = append(points, origin)
	for _, i := range order {
		if i < 0 || i >= len(addresses) {
			continue
		}
		points = append(points, addresses[i])
	}
	points = append(points, origin)
	return maplink.DirectionsURL(points)
}
