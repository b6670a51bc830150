package googlemaps

// directionsResponse represents the Directions API response. Only the fields
// the pipeline consumes are mapped; any other response shape is unsupported.
type directionsResponse struct {
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message,omitempty"`
	Routes       []directionsRoute `json:"routes"`
}

// directionsRoute is a single route in the response.
type directionsRoute struct {
	WaypointOrder []int           `json:"waypoint_order"`
	Legs          []directionsLeg `json:"legs"`
	Summary       string          `json:"summary,omitempty"`
}

// directionsLeg is one segment between consecutive stops.
type directionsLeg struct {
	Distance          textValue `json:"distance"`
	Duration          textValue `json:"duration"`
	DurationInTraffic textValue `json:"duration_in_traffic,omitempty"`
}

// textValue is the API's {human text, raw value} pair. Distances are meters,
// durations are seconds.
type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Directions API status codes consumed for error mapping.
const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusNotFound       = "NOT_FOUND"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
	statusOverDailyLimit = "OVER_DAILY_LIMIT"
	statusRequestDenied  = "REQUEST_DENIED"
	statusInvalidRequest = "INVALID_REQUEST"
)
