package tooltip

import "github.com/ngmaloney/warehouse-map/internal/models"

// Content is the tooltip text for a warehouse: the company as a heading,
// then address, state and status
func Content(w models.Warehouse) (title string, lines []string) {
	estatus := "Potencial"
	if w.Category() == models.CategoryConfirmed {
		estatus = "Confirmado"
	}
	return w.Company, []string{
		"Dirección: " + w.Address,
		"Estado: " + w.State,
		"Estatus: " + estatus,
	}
}
