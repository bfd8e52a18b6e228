// Package highlight tracks the single highlighted warehouse and the user
// location marker on the mainland map.
package highlight

import (
	"fmt"

	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/ngmaloney/warehouse-map/internal/nearest"
	"github.com/ngmaloney/warehouse-map/internal/projection"
	"github.com/ngmaloney/warehouse-map/internal/viewport"
	"go.uber.org/zap"
)

// Panner moves the map to a location. viewport.Controller implements it.
type Panner interface {
	FlyTo(lon, lat, k float64) bool
}

// DotLayer answers whether a warehouse has a rendered mainland dot
type DotLayer interface {
	Has(key models.WarehouseKey) bool
}

// Marker is the user location pin
type Marker struct {
	Location models.Location
	Point    projection.Point
}

// Selection is the outcome of SelectLocation
type Selection struct {
	DisplayName string
	Nearest     nearest.Result
	MapPanned   bool // false when the location is outside the mainland map
}

// Manager is the only writer of highlight and marker state
type Manager struct {
	dots   DotLayer
	panner Panner

	highlighted *models.WarehouseKey
	marker      *Marker
}

// NewManager creates a manager over the rendered mainland dots. panner may
// be nil, in which case the map is never moved.
func NewManager(dots DotLayer, panner Panner) *Manager {
	return &Manager{dots: dots, panner: panner}
}

// SetDots replaces the rendered dot layer after a data reload
func (m *Manager) SetDots(dots DotLayer) {
	m.dots = dots
	if m.highlighted != nil && (dots == nil || !dots.Has(*m.highlighted)) {
		m.highlighted = nil
	}
}

// SelectLocation marks hit on the map, highlights the warehouse nearest to
// it and pans there. Points the mainland projection rejects still get a
// nearest warehouse; only the marker and the pan are skipped.
func (m *Manager) SelectLocation(hit models.GeocodeHit, warehouses []models.Warehouse) (Selection, error) {
	sel := Selection{DisplayName: hit.DisplayName}
	loc := hit.Location()

	m.marker = nil
	p, projectable := projection.Project(projection.MainlandView, hit.Lon, hit.Lat)
	if projectable {
		m.marker = &Marker{Location: loc, Point: p}
	}

	res, err := nearest.Find(loc, warehouses)
	m.highlighted = nil
	if err != nil {
		return sel, fmt.Errorf("resolving nearest warehouse: %w", err)
	}
	sel.Nearest = res

	key := res.Warehouse.Key()
	if m.dots != nil && m.dots.Has(key) {
		m.highlighted = &key
	}

	if projectable {
		sel.MapPanned = true
		if m.panner != nil {
			sel.MapPanned = m.panner.FlyTo(hit.Lon, hit.Lat, viewport.DefaultFlyToScale)
		}
	}

	zap.L().Debug("location selected",
		zap.String("display_name", hit.DisplayName),
		zap.String("nearest", res.Warehouse.Company),
		zap.Float64("miles", res.Miles),
		zap.Bool("map_panned", sel.MapPanned),
	)
	return sel, nil
}

// Clear removes the marker and the highlight
func (m *Manager) Clear() {
	m.marker = nil
	m.highlighted = nil
}

// Highlighted returns the highlighted warehouse key
func (m *Manager) Highlighted() (models.WarehouseKey, bool) {
	if m.highlighted == nil {
		return models.WarehouseKey{}, false
	}
	return *m.highlighted, true
}

// IsHighlighted reports whether key is the highlighted warehouse
func (m *Manager) IsHighlighted(key models.WarehouseKey) bool {
	return m.highlighted != nil && *m.highlighted == key
}

// Marker returns the user location marker
func (m *Manager) Marker() (Marker, bool) {
	if m.marker == nil {
		return Marker{}, false
	}
	return *m.marker, true
}
