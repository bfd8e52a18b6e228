package tooltip

import "github.com/ngmaloney/warehouse-map/internal/models"

// State is the tooltip visibility for hover and tap interaction
type State struct {
	Visible bool
	Key     models.WarehouseKey
	Anchor  Point
}

// Hover shows the tooltip for key at the pointer
func (s State) Hover(key models.WarehouseKey, at Point) State {
	return State{Visible: true, Key: key, Anchor: at}
}

// Leave hides the tooltip when the pointer leaves a dot
func (s State) Leave() State {
	return State{}
}

// Tap toggles the tooltip: tapping the dot it is showing for hides it,
// any other dot moves it there
func (s State) Tap(key models.WarehouseKey, at Point) State {
	if s.Visible && s.Key == key {
		return State{}
	}
	return s.Hover(key, at)
}

// Dismiss hides the tooltip after a click or tap on anything but a dot
func (s State) Dismiss() State {
	return State{}
}
