package projection

import "math"

const clipEpsilon = 1e-6

// conicEqualArea is the raw Albers equal-area conic for two standard
// parallels, in radians
type conicEqualArea struct {
	n  float64
	c  float64
	r0 float64
}

func newConicEqualArea(phi0, phi1 float64) conicEqualArea {
	sy0 := math.Sin(phi0)
	n := (sy0 + math.Sin(phi1)) / 2
	c := 1 + sy0*(2*n-sy0)
	return conicEqualArea{n: n, c: c, r0: math.Sqrt(c) / n}
}

func (a conicEqualArea) project(lambda, phi float64) (float64, float64) {
	r := math.Sqrt(a.c-2*a.n*math.Sin(phi)) / a.n
	lambda *= a.n
	return r * math.Sin(lambda), a.r0 - r*math.Cos(lambda)
}

// conic is a rotated, centered, scaled and clipped conicEqualArea
type conic struct {
	raw    conicEqualArea
	rotate float64 // longitude rotation, radians
	k      float64
	dx, dy float64
	extent Rect
}

type conicParams struct {
	parallels [2]float64 // degrees
	rotate    float64    // degrees
	center    [2]float64 // degrees, in rotated space
	scale     float64
	translate Point
	extent    Rect
}

func newConic(p conicParams) conic {
	raw := newConicEqualArea(p.parallels[0]*radians, p.parallels[1]*radians)
	cx, cy := raw.project(p.center[0]*radians, p.center[1]*radians)
	return conic{
		raw:    raw,
		rotate: p.rotate * radians,
		k:      p.scale,
		dx:     p.translate.X - p.scale*cx,
		dy:     p.translate.Y + p.scale*cy,
		extent: p.extent,
	}
}

func (c conic) Project(lon, lat float64) (Point, bool) {
	lambda := wrapLongitude(lon*radians + c.rotate)
	x, y := c.raw.project(lambda, lat*radians)
	p := Point{X: c.dx + c.k*x, Y: c.dy - c.k*y}
	if !finite(p.X, p.Y) || !c.extent.Contains(p) {
		return Point{}, false
	}
	return p, true
}

// AlbersUSA is the composite projection of the lower 48 states with Alaska
// and Hawaii insets. Anything outside the three clip extents, including
// Puerto Rico, is unprojectable.
type AlbersUSA struct {
	lower48 conic
	alaska  conic
	hawaii  conic
}

// NewAlbersUSA builds the composite for a scale and a screen translate
func NewAlbersUSA(k float64, t Point) AlbersUSA {
	x, y := t.X, t.Y
	return AlbersUSA{
		lower48: newConic(conicParams{
			parallels: [2]float64{29.5, 45.5},
			rotate:    96,
			center:    [2]float64{-0.6, 38.7},
			scale:     k,
			translate: t,
			extent:    Rect{MinX: x - 0.455*k, MinY: y - 0.238*k, MaxX: x + 0.455*k, MaxY: y + 0.238*k},
		}),
		alaska: newConic(conicParams{
			parallels: [2]float64{55, 65},
			rotate:    154,
			center:    [2]float64{-2, 58.5},
			scale:     k * 0.35,
			translate: Point{X: x - 0.307*k, Y: y + 0.201*k},
			extent: Rect{
				MinX: x - 0.425*k + clipEpsilon, MinY: y + 0.120*k + clipEpsilon,
				MaxX: x - 0.214*k - clipEpsilon, MaxY: y + 0.234*k - clipEpsilon,
			},
		}),
		hawaii: newConic(conicParams{
			parallels: [2]float64{8, 18},
			rotate:    157,
			center:    [2]float64{-3, 19.9},
			scale:     k,
			translate: Point{X: x - 0.205*k, Y: y + 0.212*k},
			extent: Rect{
				MinX: x - 0.214*k + clipEpsilon, MinY: y + 0.166*k + clipEpsilon,
				MaxX: x - 0.115*k - clipEpsilon, MaxY: y + 0.234*k - clipEpsilon,
			},
		}),
	}
}

// Project tries the lower 48, then Alaska, then Hawaii
func (a AlbersUSA) Project(lon, lat float64) (Point, bool) {
	if !finite(lon, lat) {
		return Point{}, false
	}
	if p, ok := a.lower48.Project(lon, lat); ok {
		return p, true
	}
	if p, ok := a.alaska.Project(lon, lat); ok {
		return p, true
	}
	return a.hawaii.Project(lon, lat)
}
