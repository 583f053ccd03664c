// Package coords pulls latitude/longitude pairs out of map-viewer URLs.
package coords

import "regexp"

// pinRe matches the "@lat,lng" pin segment of a map-viewer URL. Each value
// needs at least one digit on both sides of the decimal point.
var pinRe = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)

// Pair is a latitude/longitude pair kept as the exact text found in the URL.
type Pair struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// IsZero reports whether the pair is empty.
func (p Pair) IsZero() bool {
	return p.Latitude == "" && p.Longitude == ""
}

// Extract returns the leftmost "@lat,lng" pair in s. The second return value
// is false when s holds no such pair; later matches are never considered.
func Extract(s string) (Pair, bool) {
	m := pinRe.FindStringSubmatch(s)
	if m == nil {
		return Pair{}, false
	}
	return Pair{Latitude: m[1], Longitude: m[2]}, true
}
