// Package nearest resolves the warehouse closest to a point by great-circle
// distance.
package nearest

import (
	"errors"
	"math"

	"github.com/jftuga/geodist"
	"github.com/ngmaloney/warehouse-map/internal/models"
)

// ErrNoWarehouses is returned when there is nothing to search
var ErrNoWarehouses = errors.New("no warehouses to search")

// Result is the closest warehouse and its distance in miles
type Result struct {
	Warehouse models.Warehouse
	Miles     float64
}

// Find scans every warehouse and keeps the first one at the minimum
// haversine distance from p. Ties go to the earlier element.
func Find(p models.Location, warehouses []models.Warehouse) (Result, error) {
	if len(warehouses) == 0 {
		return Result{}, ErrNoWarehouses
	}

	dst := geodist.Coord{Lat: p.Latitude, Lon: p.Longitude}
	best := math.MaxFloat64
	var idx int
	for i, w := range warehouses {
		miles, _ := geodist.HaversineDistance(geodist.Coord{Lat: w.Latitude, Lon: w.Longitude}, dst)
		if miles < best {
			best = miles
			idx = i
		}
	}

	return Result{Warehouse: warehouses[idx], Miles: best}, nil
}

// Miles is the haversine distance between two locations
func Miles(a, b models.Location) float64 {
	mi, _ := geodist.HaversineDistance(
		geodist.Coord{Lat: a.Latitude, Lon: a.Longitude},
		geodist.Coord{Lat: b.Latitude, Lon: b.Longitude},
	)
	return mi
}
