package viewport

import (
	"math"

	"github.com/ngmaloney/warehouse-map/internal/projection"
)

const (
	rho  = math.Sqrt2
	rho2 = 2.0
	rho4 = 4.0
)

// view is a zoom window: the logical point at the viewport anchor and the
// logical width visible across the viewport
type view struct {
	ux, uy, w float64
}

// smoothZoom is van Wijk and Nuij's optimal pan-and-zoom path between two
// views, as used by d3.interpolateZoom
func smoothZoom(a, b view) func(t float64) view {
	dx, dy := b.ux-a.ux, b.uy-a.uy
	d2 := dx*dx + dy*dy

	if d2 < 1e-12 {
		s := math.Log(b.w/a.w) / rho
		return func(t float64) view {
			return view{ux: a.ux + t*dx, uy: a.uy + t*dy, w: a.w * math.Exp(rho*t*s)}
		}
	}

	d1 := math.Sqrt(d2)
	b0 := (b.w*b.w - a.w*a.w + rho4*d2) / (2 * a.w * rho2 * d1)
	b1 := (b.w*b.w - a.w*a.w - rho4*d2) / (2 * b.w * rho2 * d1)
	r0 := math.Log(math.Sqrt(b0*b0+1) - b0)
	r1 := math.Log(math.Sqrt(b1*b1+1) - b1)
	s := (r1 - r0) / rho
	coshr0 := math.Cosh(r0)

	return func(t float64) view {
		st := t * s
		u := a.w / (rho2 * d1) * (coshr0*math.Tanh(rho*st+r0) - math.Sinh(r0))
		return view{ux: a.ux + u*dx, uy: a.uy + u*dy, w: a.w * coshr0 / math.Cosh(rho*st+r0)}
	}
}

// interpolateTransform animates from a to b around the viewport anchor p.
// At t == 1 it returns b exactly. The smooth-zoom path may pull back past
// MinScale on long flights; the scale is clamped there with the logical
// point under p held in place.
func interpolateTransform(a, b Transform, p projection.Point, width float64) func(t float64) Transform {
	pa, pb := a.Invert(p), b.Invert(p)
	path := smoothZoom(
		view{ux: pa.X, uy: pa.Y, w: width / a.K},
		view{ux: pb.X, uy: pb.Y, w: width / b.K},
	)

	return func(t float64) Transform {
		if t >= 1 {
			return b
		}
		v := path(t)
		k := clampScale(width / v.w)
		return Transform{X: p.X - v.ux*k, Y: p.Y - v.uy*k, K: k}
	}
}

// easeCubicInOut is d3's default transition easing
func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
