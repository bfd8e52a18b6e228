// Package tooltip places and fills the warehouse tooltip.
package tooltip

// Point is a position in container or screen units
type Point struct {
	X float64
	Y float64
}

// Size is a tooltip width and height
type Size struct {
	W float64
	H float64
}

// Rect is a container's bounding rectangle
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Layout holds the pointer offset and the minimum gap to the container edge
type Layout struct {
	Offset float64
	Margin float64
}

// DefaultLayout matches a pixel-based surface
var DefaultLayout = Layout{Offset: 15, Margin: 10}

// TabletWidth is the viewport width at which the compact tooltip is used
const TabletWidth = 768

// SizeFor picks the tooltip size for a viewport width
func SizeFor(viewportWidth float64) Size {
	if viewportWidth >= TabletWidth {
		return Size{W: 250, H: 100}
	}
	return Size{W: 260, H: 120}
}

// Position returns the tooltip's top-left corner relative to container.
// The tooltip sits down-right of the pointer, flips up or left on the axis
// where it would overflow, and is then clamped so it keeps layout.Margin
// from every edge. Mouse and touch pointers are handled alike.
func Position(pointer Point, container Rect, size Size, layout Layout) Point {
	rx := pointer.X - container.Left
	ry := pointer.Y - container.Top

	x := rx + layout.Offset
	if x+size.W > container.Width {
		x = rx - size.W - layout.Offset
	}
	y := ry + layout.Offset
	if y+size.H > container.Height {
		y = ry - size.H - layout.Offset
	}

	return Point{
		X: clamp(x, layout.Margin, container.Width-size.W-layout.Margin),
		Y: clamp(y, layout.Margin, container.Height-size.H-layout.Margin),
	}
}

// TranslateToInset converts a dot position in the inset's own logical
// space into the frame its container rectangle is expressed in
func TranslateToInset(local Point, inset Rect, logical Size) Point {
	sx, sy := 1.0, 1.0
	if logical.W > 0 {
		sx = inset.Width / logical.W
	}
	if logical.H > 0 {
		sy = inset.Height / logical.H
	}
	return Point{X: inset.Left + local.X*sx, Y: inset.Top + local.Y*sy}
}

// clamp favours lo when the range is empty (container smaller than tooltip)
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
