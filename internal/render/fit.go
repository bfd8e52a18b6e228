package render

import (
	"math"

	"github.com/ngmaloney/warehouse-map/internal/projection"
)

// Fit maps logical canvas units onto a dot grid with a uniform scale,
// centring the logical canvas in whichever axis has room to spare. Braille
// dots are close to square on screen so one scale serves both axes.
type Fit struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewFit fits a logicalW x logicalH canvas into dotW x dotH dots.
func NewFit(logicalW, logicalH float64, dotW, dotH int) Fit {
	if logicalW <= 0 || logicalH <= 0 || dotW <= 0 || dotH <= 0 {
		return Fit{Scale: 1}
	}
	s := math.Min(float64(dotW)/logicalW, float64(dotH)/logicalH)
	return Fit{
		Scale:   s,
		OffsetX: (float64(dotW) - logicalW*s) / 2,
		OffsetY: (float64(dotH) - logicalH*s) / 2,
	}
}

// ToDot converts a logical point to fractional dot coordinates
func (f Fit) ToDot(p projection.Point) (x, y float64) {
	return p.X*f.Scale + f.OffsetX, p.Y*f.Scale + f.OffsetY
}

// FromDot is the inverse of ToDot
func (f Fit) FromDot(x, y float64) projection.Point {
	return projection.Point{X: (x - f.OffsetX) / f.Scale, Y: (y - f.OffsetY) / f.Scale}
}

// FromCell returns the logical point under the centre of a terminal cell.
func (f Fit) FromCell(col, row int) projection.Point {
	return f.FromDot(float64(col*2)+1, float64(row*4)+2)
}

// ToCell returns the terminal cell containing a logical point.
func (f Fit) ToCell(p projection.Point) (col, row int) {
	x, y := f.ToDot(p)
	return int(math.Floor(x / 2)), int(math.Floor(y / 4))
}

// Length converts a logical length to dots
func (f Fit) Length(l float64) float64 {
	return l * f.Scale
}
