// Package projection maps geographic coordinates onto the two fixed screen
// spaces of the map: the mainland canvas and the Puerto Rico inset.
package projection

import "math"

const (
	// Logical size of the mainland canvas
	Width  = 1000.0
	Height = 600.0

	// Logical size of the Puerto Rico inset canvas
	InsetWidth  = 150.0
	InsetHeight = 100.0

	radians = math.Pi / 180
)

// Point is a position in a logical screen space
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned extent in a logical screen space
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether p lies inside the rectangle (edges included)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Projector maps longitude/latitude in degrees to a screen point.
// ok is false when the point cannot be shown in that screen space.
type Projector interface {
	Project(lon, lat float64) (p Point, ok bool)
}

// View selects one of the two screen spaces
type View int

const (
	MainlandView View = iota
	PuertoRicoView
)

func (v View) String() string {
	switch v {
	case MainlandView:
		return "mainland"
	case PuertoRicoView:
		return "puertoRico"
	}
	return "unknown"
}

var (
	// Mainland is the composite Albers USA projection of the mainland canvas
	Mainland = NewAlbersUSA(1200, Point{X: Width / 2, Y: Height / 2})

	// PuertoRico is the Mercator projection of the inset canvas
	PuertoRico = NewMercator(-66.5, 18.2, 4000, Point{X: InsetWidth / 2, Y: InsetHeight / 2})
)

// Project maps a point onto the requested view. Both views are immutable,
// so repeated calls with the same input always agree.
func Project(view View, lon, lat float64) (Point, bool) {
	switch view {
	case MainlandView:
		return Mainland.Project(lon, lat)
	case PuertoRicoView:
		return PuertoRico.Project(lon, lat)
	}
	return Point{}, false
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// wrapLongitude keeps a rotated longitude (radians) within [-π, π]
func wrapLongitude(lambda float64) float64 {
	return math.Remainder(lambda, 2*math.Pi)
}
