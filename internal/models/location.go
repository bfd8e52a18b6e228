package models

// Location is a geographic point in degrees
type Location struct {
	Latitude  float64
	Longitude float64
}

// GeocodeHit is a single candidate returned by the geocoding service
type GeocodeHit struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Location returns the hit's coordinates
func (h GeocodeHit) Location() Location {
	return Location{Latitude: h.Lat, Longitude: h.Lon}
}
