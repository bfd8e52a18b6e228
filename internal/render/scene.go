package render

import (
	"github.com/ngmaloney/warehouse-map/internal/boundaries"
	"github.com/ngmaloney/warehouse-map/internal/highlight"
	"github.com/ngmaloney/warehouse-map/internal/projection"
	"github.com/ngmaloney/warehouse-map/internal/viewport"
)

// Minimum map size in cells for the inset to be shown
const (
	minInsetMapCols = 24
	minInsetMapRows = 10
)

// Layout places the mainland map and the Puerto Rico inset on a grid of
// terminal cells. The inset sits in the bottom-right corner over open sea
// with a one-cell frame.
type Layout struct {
	Cols int
	Rows int
	Main Fit

	InsetCol  int
	InsetRow  int
	InsetCols int
	InsetRows int
	Inset     Fit
}

// NewLayout computes the layout for a cols x rows map area.
func NewLayout(cols, rows int) Layout {
	l := Layout{Cols: cols, Rows: rows}
	l.Main = NewFit(projection.Width, projection.Height, cols*2, rows*4)
	if cols < minInsetMapCols || rows < minInsetMapRows {
		return l
	}

	// 150x100 logical is 3 cells wide per cell tall in braille dots.
	l.InsetRows = max(rows/4, 5)
	l.InsetCols = min(3*(l.InsetRows-2)+2, cols/3)
	l.InsetCol = cols - l.InsetCols
	l.InsetRow = rows - l.InsetRows
	l.Inset = NewFit(projection.InsetWidth, projection.InsetHeight, (l.InsetCols-2)*2, (l.InsetRows-2)*4)
	return l
}

// HasInset reports whether the inset fits in this layout
func (l Layout) HasInset() bool {
	return l.InsetCols > 0 && l.InsetRows > 0
}

// InInset reports whether a cell lies inside the inset frame.
func (l Layout) InInset(col, row int) bool {
	return l.HasInset() &&
		col >= l.InsetCol && col < l.InsetCol+l.InsetCols &&
		row >= l.InsetRow && row < l.InsetRow+l.InsetRows
}

// InsetPoint converts a cell inside the inset to inset logical units.
func (l Layout) InsetPoint(col, row int) projection.Point {
	return l.Inset.FromCell(col-l.InsetCol-1, row-l.InsetRow-1)
}

// InsetCell converts an inset logical point to a map cell.
func (l Layout) InsetCell(p projection.Point) (col, row int) {
	c, r := l.Inset.ToCell(p)
	return c + l.InsetCol + 1, r + l.InsetRow + 1
}

// Scene holds both static layers.
type Scene struct {
	Mainland *Mainland
	Inset    *Inset
}

// NewScene builds the layers from loaded boundaries and the dot sets of
// each view. Without a Puerto Rico boundary the inset still shows its dots.
func NewScene(set boundaries.Set, mainland, puertoRico *highlight.Dots) *Scene {
	pr, _ := set.PuertoRico()
	return &Scene{
		Mainland: NewMainland(set.Mainland(), mainland),
		Inset:    NewInset(pr, puertoRico),
	}
}

// Frame is the per-frame state handed to Draw
type Frame struct {
	Transform  viewport.Transform
	Attributes viewport.Attributes
	Overlay    Overlay
}

// Draw renders a full frame for the layout.
func (s *Scene) Draw(l Layout, f Frame) *Canvas {
	c := NewCanvas(l.Cols, l.Rows)
	s.Mainland.Draw(c, f.Transform, f.Attributes, f.Overlay)
	if l.HasInset() {
		frame := c.Sub(l.InsetCol, l.InsetRow, l.InsetCols, l.InsetRows)
		frame.Clear()
		frame.Border()
		s.Inset.Draw(frame.Sub(1, 1, l.InsetCols-2, l.InsetRows-2), f.Overlay)
	}
	return c
}

// Hit is a dot under the pointer
type Hit struct {
	Dot  highlight.Dot
	View projection.View
}

// HitTest finds the dot under a map cell. The inset shadows the mainland
// beneath it.
func (s *Scene) HitTest(l Layout, f Frame, col, row int) (Hit, bool) {
	if l.InInset(col, row) {
		d, ok := s.Inset.DotAt(l.Inset, l.InsetPoint(col, row))
		return Hit{Dot: d, View: projection.PuertoRicoView}, ok
	}
	d, ok := s.Mainland.DotAt(l.Main, f.Transform, f.Attributes, l.Main.FromCell(col, row))
	return Hit{Dot: d, View: projection.MainlandView}, ok
}
