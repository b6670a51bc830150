package routing

// AssembleRoute orders the destinations by the provider's waypoint permutation
// and brackets them with the departure bookends. Indices outside [0, n) are
// skipped; a well-formed permutation yields len(destinations)+2 stops.
func AssembleRoute(departure string, destinations []Destination, order []int) []Stop {
	stops := make([]Stop, 0, len(destinations)+2)
	stops = append(stops, Stop{Label: DepartureLabel, Address: departure})

	for _, i := range order {
		if i < 0 || i >= len(destinations) {
			continue
		}
		stops = append(stops, destinations[i].Stop())
	}

	stops = append(stops, Stop{Label: ReturnLabel, Address: departure})
	return stops
}

// AssembleFallbackRoute brackets the destinations in their original insertion
// order. Used when optimization fails; no metrics accompany this route.
func AssembleFallbackRoute(departure string, destinations []Destination) []Stop {
	stops := make([]Stop, 0, len(destinations)+2)
	stops = append(stops, Stop{Label: DepartureLabel, Address: departure})
	for _, d := range destinations {
		stops = append(stops, d.Stop())
	}
	stops = append(stops, Stop{Label: ReturnLabel, Address: departure})
	return stops
}
