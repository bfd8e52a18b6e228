// Package viewport owns the pan/zoom transform of the mainland map.
package viewport

import (
	"math"

	"github.com/ngmaloney/warehouse-map/internal/projection"
)

const (
	MinScale = 1.0
	MaxScale = 8.0
)

// Transform is a uniform scale K followed by a translation (X, Y):
// screen = logical*K + (X, Y)
type Transform struct {
	X float64
	Y float64
	K float64
}

// Identity is the unzoomed, unpanned transform
var Identity = Transform{K: 1}

// Apply maps a logical canvas point to the screen
func (t Transform) Apply(p projection.Point) projection.Point {
	return projection.Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a screen point back to the logical canvas
func (t Transform) Invert(p projection.Point) projection.Point {
	return projection.Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

// Translate pans by a screen-space delta
func (t Transform) Translate(dx, dy float64) Transform {
	t.X += dx
	t.Y += dy
	return t
}

// ScaleAbout sets the scale to k while keeping the screen point p fixed
func (t Transform) ScaleAbout(p projection.Point, k float64) Transform {
	anchor := t.Invert(p)
	return Transform{X: p.X - anchor.X*k, Y: p.Y - anchor.Y*k, K: k}
}

// Clamped returns t with K limited to [MinScale, MaxScale]
func (t Transform) Clamped() Transform {
	if math.IsNaN(t.K) || t.K < MinScale {
		t.K = MinScale
	} else if t.K > MaxScale {
		t.K = MaxScale
	}
	return t
}

// CenteredOn returns the transform at scale k that puts the logical point
// p at the middle of a w x h viewport
func CenteredOn(p projection.Point, k, w, h float64) Transform {
	return Transform{X: w/2 - k*p.X, Y: h/2 - k*p.Y, K: k}
}
