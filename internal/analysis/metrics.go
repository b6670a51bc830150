// Package analysis derives human-readable route metrics and recommendations
// from the per-leg results of an optimized route.
package analysis

import (
	"fmt"
	"math"
)

// Default fuel model constants.
const (
	DefaultFuelConsumptionPer100KM = 8.0  // liters
	DefaultFuelPricePerLiter       = 1.60 // CAD
)

// Leg is one directed segment of a round trip, as raw provider units.
// The package depends on nothing but these two integers, so callers convert
// their own leg representation at the boundary.
type Leg struct {
	DistanceMeters  int
	DurationSeconds int
}

// RouteMetrics summarizes an optimized route. Derived, never mutated after
// creation; recomputed fully on each optimization attempt.
type RouteMetrics struct {
	TotalStops             int      `json:"totalStops"`
	TotalDistanceKM        float64  `json:"totalDistanceKm"`
	TotalDurationFormatted string   `json:"totalDurationFormatted"`
	EstimatedFuelCostCAD   float64  `json:"estimatedFuelCostCad"`
	AverageTimePerStop     string   `json:"averageTimePerStop"`
	RouteEfficiency        string   `json:"routeEfficiency"`
	Recommendations        []string `json:"recommendations"`
}

// Analyzer computes RouteMetrics. The fuel constants and the optimization
// objective come from configuration, not from the provider response.
type Analyzer struct {
	objective           string
	consumptionPer100KM float64
	pricePerLiter       float64
}

// NewAnalyzer creates an Analyzer for the given optimization objective
// ("time" or "distance"). Non-positive fuel parameters fall back to defaults.
func NewAnalyzer(objective string, consumptionPer100KM, pricePerLiter float64) *Analyzer {
	if consumptionPer100KM <= 0 {
		consumptionPer100KM = DefaultFuelConsumptionPer100KM
	}
	if pricePerLiter <= 0 {
		pricePerLiter = DefaultFuelPricePerLiter
	}
	return &Analyzer{
		objective:           objective,
		consumptionPer100KM: consumptionPer100KM,
		pricePerLiter:       pricePerLiter,
	}
}

// Analyze aggregates the round-trip legs into route metrics. It is a pure
// function of its inputs: same legs and destination count, same metrics.
func (a *Analyzer) Analyze(legs []Leg, destinationCount int) RouteMetrics {
	totalSeconds := 0
	totalMeters := 0
	for _, leg := range legs {
		totalSeconds += leg.DurationSeconds
		totalMeters += leg.DistanceMeters
	}

	distanceKM := float64(totalMeters) / 1000
	fuelCost := (distanceKM / 100) * a.consumptionPer100KM * a.pricePerLiter

	avgMinutes := totalSeconds / max(destinationCount, 1) / 60

	return RouteMetrics{
		TotalStops:             destinationCount,
		TotalDistanceKM:        round2(distanceKM),
		TotalDurationFormatted: FormatDuration(totalSeconds),
		EstimatedFuelCostCAD:   round2(fuelCost),
		AverageTimePerStop:     fmt.Sprintf("%dm", avgMinutes),
		RouteEfficiency:        fmt.Sprintf("Optimized for %s", a.objective),
		Recommendations:        a.recommendations(distanceKM, totalSeconds, destinationCount),
	}
}

// recommendations evaluates the fixed rule set. Rules are independent and
// appended in a fixed order.
func (a *Analyzer) recommendations(distanceKM float64, totalSeconds, destinationCount int) []string {
	var recs []string

	if distanceKM > 100 {
		recs = append(recs, "Consider planning fuel stops for this long journey")
	}
	if totalSeconds > 3600 {
		recs = append(recs, "Plan rest breaks during this lengthy route")
	}
	if destinationCount > 4 {
		recs = append(recs, "Consider grouping nearby stores for efficiency")
	}

	recs = append(recs, "Route optimized using real-time traffic data")

	switch a.objective {
	case "distance":
		recs = append(recs, "Route prioritizes shortest distance over time")
	case "time":
		recs = append(recs, "Route prioritizes fastest travel time")
	}

	return recs
}

// FormatDuration renders seconds as "{h}h {m}m", or "{m}m" when under an hour.
// Integer truncation throughout; seconds are never shown.
func FormatDuration(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
