package maps

import (
	"net/url"
	"strings"

	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

const searchEndpoint = "https://www.google.com/maps/search/?api=1&query="

// componentUnescape restores the marks that browsers leave alone when
// encoding a URI component.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// DirectionsURL builds the map-search deep link for a temple. Nothing is
// fetched; the link is handed to the client to open.
func DirectionsURL(t model.TempleRecord) string {
	return searchEndpoint + EscapeComponent(t.Name+", "+t.Location)
}

// EscapeComponent percent-encodes s the way a browser encodes a URI
// component: spaces become %20 and only A-Z a-z 0-9 - _ . ! ~ * ' ( ) stay.
func EscapeComponent(s string) string {
	// QueryEscape writes a literal '+' as %2B, so every '+' left is a space
	return componentUnescape.Replace(url.QueryEscape(s))
}
