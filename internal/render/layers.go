package render

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/ngmaloney/warehouse-map/internal/boundaries"
	"github.com/ngmaloney/warehouse-map/internal/highlight"
	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/ngmaloney/warehouse-map/internal/projection"
	"github.com/ngmaloney/warehouse-map/internal/viewport"
)

// InsetLabel is drawn at the centre of the Puerto Rico inset
const InsetLabel = "Puerto Rico"

var insetLabelAt = projection.Point{X: 75, Y: 51}

// cellReach is how far in dots a pointer may be from a dot and still hit it,
// enough to cover any point of the cell holding the dot's centre.
const cellReach = 3.0

// path is a run of consecutive projectable vertices of one ring. A ring is
// split wherever a vertex falls outside the projection's domain.
type path []projection.Point

func projectRings(view projection.View, mp orb.MultiPolygon) []path {
	var out []path
	for _, poly := range mp {
		for _, ring := range poly {
			var cur path
			for _, pt := range ring {
				p, ok := projection.Project(view, pt.Lon(), pt.Lat())
				if !ok {
					if len(cur) > 1 {
						out = append(out, cur)
					}
					cur = nil
					continue
				}
				cur = append(cur, p)
			}
			if len(cur) > 1 {
				out = append(out, cur)
			}
		}
	}
	return out
}

// Overlay is the interaction state drawn over the static layers.
type Overlay struct {
	Hovered     *models.WarehouseKey
	Highlighted *models.WarehouseKey
	Marker      *highlight.Marker
}

func (o Overlay) isHovered(k models.WarehouseKey) bool {
	return o.Hovered != nil && *o.Hovered == k
}

func (o Overlay) isHighlighted(k models.WarehouseKey) bool {
	return o.Highlighted != nil && *o.Highlighted == k
}

func categoryInk(w models.Warehouse) Ink {
	if w.Category() == models.CategoryConfirmed {
		return InkConfirmed
	}
	return InkPotential
}

// Mainland draws state outlines, warehouse dots, the highlight and the
// searched-location marker under the zoom/pan transform.
type Mainland struct {
	paths []path
	dots  *highlight.Dots
}

// NewMainland projects the state outlines once; only the transform changes
// between frames.
func NewMainland(states []boundaries.State, dots *highlight.Dots) *Mainland {
	m := &Mainland{dots: dots}
	for _, s := range states {
		m.paths = append(m.paths, projectRings(projection.MainlandView, s.Geometry)...)
	}
	return m
}

// Draw renders the layer into c, fitting the 1000x600 logical canvas.
func (m *Mainland) Draw(c *Canvas, t viewport.Transform, a viewport.Attributes, o Overlay) {
	w, h := c.DotSize()
	fit := NewFit(projection.Width, projection.Height, w, h)
	toDot := func(p projection.Point) (float64, float64) {
		return fit.ToDot(t.Apply(p))
	}
	// Attributes are in pre-transform units; the transform scales them back up.
	screen := func(r float64) float64 {
		return fit.Length(r * t.K)
	}

	for _, p := range m.paths {
		x0, y0 := toDot(p[0])
		for _, q := range p[1:] {
			x1, y1 := toDot(q)
			c.Line(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), InkBoundary)
			x0, y0 = x1, y1
		}
	}

	if m.dots != nil {
		var hovered, highlighted *highlight.Dot
		for _, d := range m.dots.All() {
			key := d.Warehouse.Key()
			switch {
			case o.isHighlighted(key):
				highlighted = &d
			case o.isHovered(key):
				hovered = &d
			default:
				x, y := toDot(d.Point)
				c.Disc(x, y, screen(a.DotRadius), categoryInk(d.Warehouse))
			}
		}
		if hovered != nil {
			x, y := toDot(hovered.Point)
			c.Disc(x, y, screen(a.HoverDotRadius), InkHover)
		}
		if highlighted != nil {
			x, y := toDot(highlighted.Point)
			r := a.DotRadius
			if o.isHovered(highlighted.Warehouse.Key()) {
				r = a.HoverDotRadius
			}
			c.Disc(x, y, screen(r), categoryInk(highlighted.Warehouse))
			c.Ring(x, y, screen(a.HighlightRadius), InkHighlight)
		}
	}

	if o.Marker != nil {
		x, y := toDot(o.Marker.Point)
		c.Disc(x, y, screen(a.MarkerRadius), InkMarker)
	}
}

// DotAt returns the dot nearest to p, a point on the transformed canvas,
// if p is within the dot's drawn radius or about one terminal cell of it.
func (m *Mainland) DotAt(fit Fit, t viewport.Transform, a viewport.Attributes, p projection.Point) (highlight.Dot, bool) {
	if m.dots == nil {
		return highlight.Dot{}, false
	}
	reach := math.Max(a.DotRadius*t.K, cellReach/fit.Scale)
	return nearestDot(m.dots.All(), p, reach, t.Apply)
}

// Inset draws Puerto Rico at a fixed scale. It has no transform.
type Inset struct {
	paths []path
	dots  *highlight.Dots
}

// NewInset projects Puerto Rico's outline with the inset projection.
func NewInset(pr boundaries.State, dots *highlight.Dots) *Inset {
	return &Inset{
		paths: projectRings(projection.PuertoRicoView, pr.Geometry),
		dots:  dots,
	}
}

// Draw renders the inset into c, fitting the 150x100 logical canvas.
func (in *Inset) Draw(c *Canvas, o Overlay) {
	w, h := c.DotSize()
	fit := NewFit(projection.InsetWidth, projection.InsetHeight, w, h)

	for _, p := range in.paths {
		x0, y0 := fit.ToDot(p[0])
		for _, q := range p[1:] {
			x1, y1 := fit.ToDot(q)
			c.Line(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), InkBoundary)
			x0, y0 = x1, y1
		}
	}

	if in.dots != nil {
		for _, d := range in.dots.All() {
			x, y := fit.ToDot(d.Point)
			r := viewport.InsetDotRadius
			ink := categoryInk(d.Warehouse)
			if o.isHovered(d.Warehouse.Key()) {
				r *= viewport.HoverDotScale
				ink = InkHover
			}
			c.Disc(x, y, fit.Length(r), ink)
		}
	}

	col, row := fit.ToCell(insetLabelAt)
	c.Text(col-len(InsetLabel)/2, row+1, InsetLabel, InkFrame)
}

// DotAt returns the inset dot nearest to p in inset logical units
func (in *Inset) DotAt(fit Fit, p projection.Point) (highlight.Dot, bool) {
	if in.dots == nil {
		return highlight.Dot{}, false
	}
	reach := math.Max(viewport.InsetDotRadius, cellReach/fit.Scale)
	return nearestDot(in.dots.All(), p, reach, func(q projection.Point) projection.Point { return q })
}

func nearestDot(dots []highlight.Dot, p projection.Point, reach float64, place func(projection.Point) projection.Point) (highlight.Dot, bool) {
	best := -1
	bestDist := reach
	for i, d := range dots {
		q := place(d.Point)
		dist := math.Hypot(q.X-p.X, q.Y-p.Y)
		if dist < bestDist || (best < 0 && dist <= reach) {
			best = i
			bestDist = dist
		}
	}
	if best < 0 {
		return highlight.Dot{}, false
	}
	return dots[best], true
}
