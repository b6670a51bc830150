// Package itinerary renders an assembled route as an RTF document with
// clickable map links, suitable as an email attachment.
package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/storeroute/storeroute/internal/maplink"
	"github.com/storeroute/storeroute/internal/routing"
)

// Fixed document bracketing. The preamble declares a font table and a
// one-entry color table (color index 1 = link blue); common viewers require
// this exact shape to render the link fields.
const (
	rtfPreamble = `{\rtf1\ansi\deff0 {\fonttbl {\f0 Arial;}}{\colortbl;\red0\green0\blue255;}\f0\fs48` + "\n"
	rtfTrailer  = "}"
)

// Render produces the RTF body for the route. Only the interior stops are
// listed; the departure and return bookends are dropped. Each stop becomes a
// plain-text label line followed by a hyperlink field whose display run is
// underlined and colored with index 1.
func Render(stops []routing.Stop) []byte {
	var b strings.Builder
	b.WriteString(rtfPreamble)

	for i, stop := range stops {
		if i == 0 || i == len(stops)-1 {
			continue
		}

		b.WriteString(escape(stop.Label))
		b.WriteString("\\line\n")

		link := maplink.SearchURL(stop.Address)
		fmt.Fprintf(&b,
			`{\field{\*\fldinst HYPERLINK "%s"}{\fldrslt \cf1\ul %s}}\line\line`,
			link, escape(stop.Address))
		b.WriteString("\n")
	}

	b.WriteString(rtfTrailer)
	return []byte(b.String())
}

// Filename returns the attachment filename for a route exported at t.
func Filename(t time.Time) string {
	return "Store_Locations_" + t.Format("20060102_150405") + ".rtf"
}

// escape protects RTF control characters in user-visible text.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)
	return r.Replace(s)
}
