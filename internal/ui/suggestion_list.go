package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/warehouse-map/internal/models"
)

// suggestionItem wraps a GeocodeHit for use in a list
type suggestionItem struct {
	hit models.GeocodeHit
}

// FilterValue implements list.Item
func (s suggestionItem) FilterValue() string {
	return s.hit.DisplayName
}

// suggestionDelegate draws one line per suggestion. The highlighted row
// comes from the suggestion machine, not from the list's own cursor.
type suggestionDelegate struct {
	highlighted int
	width       int
}

func (d suggestionDelegate) Height() int                         { return 1 }
func (d suggestionDelegate) Spacing() int                        { return 0 }
func (d suggestionDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d suggestionDelegate) Render(w io.Writer, _ list.Model, index int, item list.Item) {
	s, ok := item.(suggestionItem)
	if !ok {
		return
	}
	text := truncate(s.hit.DisplayName, d.width-3)
	if index == d.highlighted {
		fmt.Fprint(w, highlightedSuggestionStyle.Render(text))
		return
	}
	fmt.Fprint(w, suggestionStyle.Render(text))
}

// renderSuggestions draws the visible list, one row per hit
func renderSuggestions(hits []models.GeocodeHit, highlighted, width int) string {
	items := make([]list.Item, len(hits))
	for i, hit := range hits {
		items[i] = suggestionItem{hit: hit}
	}

	l := list.New(items, suggestionDelegate{highlighted: highlighted, width: width}, width, len(hits))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return l.View()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
