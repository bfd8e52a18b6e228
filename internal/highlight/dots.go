package highlight

import (
	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/ngmaloney/warehouse-map/internal/projection"
)

// Dot is a warehouse drawn at its projected position
type Dot struct {
	Warehouse models.Warehouse
	Point     projection.Point
}

// Dots is the set of warehouse dots rendered on one view, keyed by
// warehouse identity. Warehouses the view cannot project are left out.
type Dots struct {
	view  projection.View
	list  []Dot
	index map[models.WarehouseKey]int
}

// NewDots projects warehouses onto view
func NewDots(view projection.View, warehouses []models.Warehouse) *Dots {
	d := &Dots{
		view:  view,
		index: make(map[models.WarehouseKey]int, len(warehouses)),
	}
	for _, w := range warehouses {
		p, ok := projection.Project(view, w.Longitude, w.Latitude)
		if !ok {
			continue
		}
		// First record wins for duplicate keys
		if _, dup := d.index[w.Key()]; dup {
			continue
		}
		d.index[w.Key()] = len(d.list)
		d.list = append(d.list, Dot{Warehouse: w, Point: p})
	}
	return d
}

// View is the projection the dots were placed with
func (d *Dots) View() projection.View {
	return d.view
}

// Has reports whether a dot with this key was rendered
func (d *Dots) Has(key models.WarehouseKey) bool {
	_, ok := d.index[key]
	return ok
}

// Lookup returns the dot for key
func (d *Dots) Lookup(key models.WarehouseKey) (Dot, bool) {
	i, ok := d.index[key]
	if !ok {
		return Dot{}, false
	}
	return d.list[i], true
}

// All returns the dots in input order
func (d *Dots) All() []Dot {
	return d.list
}

// Len is the number of rendered dots
func (d *Dots) Len() int {
	return len(d.list)
}
