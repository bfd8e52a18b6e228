package projection

import "math"

// Mercator is a spherical Mercator centered on a fixed point. Points beyond
// the square world extent (|lat| above ~85.05°) are unprojectable.
type Mercator struct {
	k      float64
	dx, dy float64
}

// NewMercator centers (lon, lat) at translate t with scale k
func NewMercator(lon, lat, k float64, t Point) Mercator {
	cx, cy := mercatorRaw(lon*radians, lat*radians)
	return Mercator{k: k, dx: t.X - k*cx, dy: t.Y + k*cy}
}

func mercatorRaw(lambda, phi float64) (float64, float64) {
	return lambda, math.Log(math.Tan((math.Pi/2 + phi) / 2))
}

func (m Mercator) Project(lon, lat float64) (Point, bool) {
	if !finite(lon, lat) {
		return Point{}, false
	}
	x, y := mercatorRaw(wrapLongitude(lon*radians), lat*radians)
	if !finite(x, y) || math.Abs(y) > math.Pi {
		return Point{}, false
	}
	return Point{X: m.dx + m.k*x, Y: m.dy - m.k*y}, true
}
