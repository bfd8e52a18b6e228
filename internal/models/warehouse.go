package models

import "strings"

// Category is the visual classification of a warehouse dot
type Category string

const (
	CategoryConfirmed Category = "confirmed"
	CategoryPotential Category = "potential"
)

// Warehouse represents a single warehouse record from the data feed.
// Records are plain values; identity is the (Company, Address) pair.
type Warehouse struct {
	Company   string  `json:"company"`
	Address   string  `json:"address"`
	State     string  `json:"state"`
	Source    string  `json:"source"`
	Type      string  `json:"type"` // Free-text status, e.g. "Confirmed"
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WarehouseKey identifies a warehouse across re-fetched copies of the data
type WarehouseKey struct {
	Company string
	Address string
}

// Key returns the composite identity of the warehouse
func (w Warehouse) Key() WarehouseKey {
	return WarehouseKey{Company: w.Company, Address: w.Address}
}

// Category classifies the free-text type. Anything other than a literal
// "confirmed" (any case) is potential.
func (w Warehouse) Category() Category {
	if strings.EqualFold(strings.TrimSpace(w.Type), string(CategoryConfirmed)) {
		return CategoryConfirmed
	}
	return CategoryPotential
}

// IsPuertoRico reports whether the warehouse belongs on the Puerto Rico inset
func (w Warehouse) IsPuertoRico() bool {
	return w.State == "PR" || w.State == "Puerto Rico"
}

// Location returns the warehouse position
func (w Warehouse) Location() Location {
	return Location{Latitude: w.Latitude, Longitude: w.Longitude}
}

// Partition splits warehouses into mainland and Puerto Rico subsets,
// preserving input order in both.
func Partition(warehouses []Warehouse) (mainland, puertoRico []Warehouse) {
	for _, w := range warehouses {
		if w.IsPuertoRico() {
			puertoRico = append(puertoRico, w)
		} else {
			mainland = append(mainland, w)
		}
	}
	return mainland, puertoRico
}
