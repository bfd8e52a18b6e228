package status

import (
	"testing"

	"github.com/ngmaloney/warehouse-map/internal/models"
)

func TestNew(t *testing.T) {
	tests := []struct {
		kind    Kind
		want    string
		isError bool
	}{
		{EmptyQuery, "Introduzca una dirección o código postal.", true},
		{Searching, "Buscando...", false},
		{Processing, "Processing selected location...", false},
		{NotFound, "La dirección no fue encontrada. Por favor, intente una búsqueda diferente.", true},
	}

	for _, tt := range tests {
		m := New(tt.kind)
		if m.String() != tt.want {
			t.Errorf("New(%d) = %q, want %q", tt.kind, m.String(), tt.want)
		}
		if m.IsError() != tt.isError {
			t.Errorf("New(%d).IsError() = %v", tt.kind, m.IsError())
		}
	}

	if !New(None).Empty() {
		t.Error("None should be empty")
	}
}

func TestSummary(t *testing.T) {
	w := models.Warehouse{Company: "Acme Logistics", Type: "Confirmed"}

	m := Summary("Newark, NJ, USA", true, w, 12.345)
	if len(m.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(m.Lines))
	}
	if m.Lines[0] != "📍 Ubicación buscada: Newark, NJ, USA" {
		t.Errorf("unexpected first line %q", m.Lines[0])
	}
	if m.Lines[1] != "🚚 Almacén confirmado más cercano: Acme Logistics (12.3 millas de distancia)" {
		t.Errorf("unexpected second line %q", m.Lines[1])
	}
}

func TestSummary_NotPannedPotential(t *testing.T) {
	w := models.Warehouse{Company: "Isla Storage", Type: "Potential"}

	m := Summary("San Juan, PR, USA", false, w, 3.06)
	want0 := "📍 Ubicación buscada: San Juan, PR, USA (Map panning only available for mainland US)"
	if m.Lines[0] != want0 {
		t.Errorf("got %q, want %q", m.Lines[0], want0)
	}
	want1 := "🚚 Almacén potencial más cercano: Isla Storage (3.1 millas de distancia)"
	if m.Lines[1] != want1 {
		t.Errorf("got %q, want %q", m.Lines[1], want1)
	}
	if m.IsError() {
		t.Error("summary is not an error")
	}
}
