// Package boundaries loads state outlines for the map background: the
// Census cartographic boundary shapefile, cached in sqlite as GeoJSON, or
// a GeoJSON FeatureCollection from disk.
package boundaries

import (
	"github.com/paulmach/orb"
)

// PuertoRicoGEOID identifies Puerto Rico among the states
const PuertoRicoGEOID = "72"

// State is one state or territory outline in lon/lat degrees
type State struct {
	GEOID    string
	Name     string
	Abbr     string
	Geometry orb.MultiPolygon
}

// IsPuertoRico reports whether s is drawn on the inset
func (s State) IsPuertoRico() bool {
	return s.GEOID == PuertoRicoGEOID
}

// Set is a loaded collection of outlines
type Set struct {
	States []State
}

// Mainland returns every outline except Puerto Rico
func (s Set) Mainland() []State {
	out := make([]State, 0, len(s.States))
	for _, st := range s.States {
		if !st.IsPuertoRico() {
			out = append(out, st)
		}
	}
	return out
}

// PuertoRico returns the Puerto Rico outline if present
func (s Set) PuertoRico() (State, bool) {
	for _, st := range s.States {
		if st.IsPuertoRico() {
			return st, true
		}
	}
	return State{}, false
}

// toMultiPolygon accepts the two areal geometry types
func toMultiPolygon(g orb.Geometry) (orb.MultiPolygon, bool) {
	switch g := g.(type) {
	case orb.MultiPolygon:
		return g, true
	case orb.Polygon:
		return orb.MultiPolygon{g}, true
	}
	return nil, false
}
