package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/warehouse-map/internal/render"
	"github.com/ngmaloney/warehouse-map/internal/tooltip"
)

// Terminal cells are roughly 8x16 pixels. Tooltip sizes are given in
// pixels and converted with these.
const (
	cellPixelWidth  = 8
	cellPixelHeight = 16

	searchBoxHeight = 3
)

// tooltipLayout is the pointer offset and edge margin in cells
var tooltipLayout = tooltip.Layout{Offset: 2, Margin: 1}

// screen is the vertical arrangement of the map view, in rows
type screen struct {
	inputTop   int
	listTop    int
	listRows   int
	statusTop  int
	statusRows int
	mapTop     int
	mapCols    int
	mapRows    int
}

// screen lays out the title, search box, suggestions, status, map and
// help line from top to bottom
func (m Model) screen() screen {
	var s screen
	s.inputTop = 1
	s.listTop = s.inputTop + searchBoxHeight
	if m.suggest.Visible() {
		s.listRows = len(m.suggest.Items)
	}
	s.statusTop = s.listTop + s.listRows
	s.statusRows = len(m.statusLines())
	s.mapTop = s.statusTop + s.statusRows
	s.mapCols = max(m.width, 0)
	s.mapRows = max(m.height-s.mapTop-1, 0)
	return s
}

// View renders the current state
func (m Model) View() string {
	if m.width == 0 {
		return "Cargando..."
	}

	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateError:
		return m.viewError()
	}
	return m.viewMap()
}

func (m Model) viewLoading() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mapa de almacenes EtO"))
	b.WriteString("\n\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.loadStatus)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("q: salir"))
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(errorTitleStyle.Render("✗ " + m.status.String()))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(mutedStyle.Render(truncate(m.err.Error(), max(m.width-2, 10))))
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render("r: reintentar • q: salir"))
	return b.String()
}

func (m Model) viewMap() string {
	sc := m.screen()
	parts := []string{m.viewTitle()}

	box := searchBoxStyle
	if m.focus == focusSearch {
		box = activeSearchBoxStyle
	}
	parts = append(parts, box.Width(max(m.width-2, 10)).Render(m.searchInput.View()))

	if sc.listRows > 0 {
		parts = append(parts, renderSuggestions(m.suggest.Items, m.suggest.Highlighted, m.width))
	}

	for i, line := range m.statusLines() {
		style := statusStyle
		if m.status.IsError() {
			style = statusErrorStyle
		}
		if i == 0 && m.searching {
			line = m.spinner.View() + " " + line
		}
		parts = append(parts, style.Render(truncate(line, max(m.width-2, 1))))
	}

	if sc.mapRows > 0 && sc.mapCols > 0 {
		parts = append(parts, m.viewCanvas(sc))
	}

	if m.focus == focusSearch {
		parts = append(parts, helpStyle.Render(m.help.View(searchHelp{m.keys})))
	} else {
		parts = append(parts, helpStyle.Render(m.help.View(mapHelp{m.keys})))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTitle() string {
	mainland, pr := 0, 0
	if m.mainDots != nil {
		mainland = m.mainDots.Len()
	}
	if m.prDots != nil {
		pr = m.prDots.Len()
	}
	info := fmt.Sprintf("%d almacenes (%d en Puerto Rico) • zoom %.1fx", mainland+pr, pr, m.controller.Transform().K)
	return titleStyle.Render("Mapa de almacenes EtO") + "  " + mutedStyle.Render(info)
}

func (m Model) statusLines() []string {
	return m.status.Lines
}

// viewCanvas draws the map and, when one is open, the tooltip on top
func (m Model) viewCanvas(sc screen) string {
	l := render.NewLayout(sc.mapCols, sc.mapRows)
	c := m.scene.Draw(l, m.frame())
	if m.tip.Visible {
		m.drawTooltip(c, sc)
	}
	return c.Render(m.palette)
}

// drawTooltip boxes the hovered warehouse's details next to its anchor
func (m Model) drawTooltip(c *render.Canvas, sc screen) {
	w, ok := m.lookup(m.tip.Key)
	if !ok {
		return
	}
	title, lines := tooltip.Content(w)

	px := tooltip.SizeFor(float64(m.width * cellPixelWidth))
	size := tooltip.Size{
		W: min(px.W/cellPixelWidth, float64(sc.mapCols)),
		H: min(max(px.H/cellPixelHeight, float64(len(lines)+3)), float64(sc.mapRows)),
	}
	container := tooltip.Rect{Width: float64(sc.mapCols), Height: float64(sc.mapRows)}
	at := tooltip.Position(m.tip.Anchor, container, size, tooltipLayout)

	box := c.Sub(int(at.X), int(at.Y), int(size.W), int(size.H))
	box.Clear()
	box.Border()
	inner := max(int(size.W)-4, 1)
	box.Text(2, 1, truncate(title, inner), render.InkHighlight)
	for i, line := range lines {
		box.Text(2, i+2, truncate(line, inner), render.InkFrame)
	}
}
