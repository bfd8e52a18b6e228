// Package status holds the user-facing messages shown under the search box.
package status

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/warehouse-map/internal/models"
)

// Kind identifies a status message
type Kind int

const (
	None Kind = iota
	EmptyQuery
	Searching
	Processing
	NotFound
	Found
	LoadFailed
)

// MapPanningUnavailable is appended to the searched location when the map
// could not fly to it
const MapPanningUnavailable = "(Map panning only available for mainland US)"

var texts = map[Kind]string{
	EmptyQuery: "Introduzca una dirección o código postal.",
	Searching:  "Buscando...",
	Processing: "Processing selected location...",
	NotFound:   "La dirección no fue encontrada. Por favor, intente una búsqueda diferente.",
	LoadFailed: "No se pudieron cargar los datos del mapa.",
}

// Message is what the status surface displays
type Message struct {
	Kind  Kind
	Lines []string
}

// New returns the fixed message for k
func New(k Kind) Message {
	if t, ok := texts[k]; ok {
		return Message{Kind: k, Lines: []string{t}}
	}
	return Message{Kind: k}
}

// Empty reports whether there is nothing to show
func (m Message) Empty() bool {
	return len(m.Lines) == 0
}

// IsError reports whether the message describes a failed search or load
func (m Message) IsError() bool {
	return m.Kind == EmptyQuery || m.Kind == NotFound || m.Kind == LoadFailed
}

func (m Message) String() string {
	return strings.Join(m.Lines, "\n")
}

// Summary describes a completed search: where the user searched and the
// closest warehouse with its distance in miles.
func Summary(displayName string, mapPanned bool, nearest models.Warehouse, miles float64) Message {
	searched := "📍 Ubicación buscada: " + displayName
	if !mapPanned {
		searched += " " + MapPanningUnavailable
	}

	category := "potencial"
	if nearest.Category() == models.CategoryConfirmed {
		category = "confirmado"
	}
	closest := fmt.Sprintf("🚚 Almacén %s más cercano: %s (%.1f millas de distancia)",
		category, nearest.Company, miles)

	return Message{Kind: Found, Lines: []string{searched, closest}}
}
