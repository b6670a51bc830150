// Package maplink builds Google Maps deep links for assembled routes.
package maplink

import (
	"net/url"
	"strings"
)

const (
	directionsBaseURL = "https://www.google.com/maps/dir/"
	searchBaseURL     = "https://maps.google.com/"
)

// DirectionsURL serializes the ordered stop addresses into a directions deep
// link: <base>/<origin>/<stop-1>/…/<stop-k>/<origin>. Each point is encoded
// query-component style, so spaces become '+'. Returns an empty string when
// there are fewer than two points to link.
func DirectionsURL(points []string) string {
	if len(points) < 2 {
		return ""
	}

	encoded := make([]string, 0, len(points))
	for _, point := range points {
		encoded = append(encoded, url.QueryEscape(point))
	}

	return directionsBaseURL + strings.Join(encoded, "/")
}

// SearchURL builds a single-query map search link for one address, used for
// the clickable addresses in the exported itinerary.
func SearchURL(address string) string {
	return searchBaseURL + "?q=" + url.QueryEscape(address)
}
