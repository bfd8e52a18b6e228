package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ngmaloney/warehouse-map/internal/boundaries"
	"github.com/ngmaloney/warehouse-map/internal/highlight"
	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/ngmaloney/warehouse-map/internal/projection"
	"github.com/ngmaloney/warehouse-map/internal/render"
	"github.com/ngmaloney/warehouse-map/internal/status"
	"github.com/ngmaloney/warehouse-map/internal/suggest"
	"github.com/ngmaloney/warehouse-map/internal/tooltip"
	"github.com/ngmaloney/warehouse-map/internal/viewport"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading AppState = iota // Loading (and on first run provisioning) map data
	StateMap                     // Interactive map with search
	StateError                   // Map data could not be loaded
)

// focus is the part of the screen receiving keys
type focus int

const (
	focusSearch focus = iota
	focusMap
)

// panStep is how far one arrow key press moves the map, in logical units
const panStep = 50.0

// Model represents the application's state
type Model struct {
	state  AppState
	focus  focus
	width  int
	height int
	err    error

	// Search
	searchInput textinput.Model
	suggest     suggest.Machine
	searcher    Searcher
	debounce    time.Duration
	searching   bool
	status      status.Message

	// Map
	sources    DataSources
	warehouses []models.Warehouse
	mainDots   *highlight.Dots
	prDots     *highlight.Dots
	scene      *render.Scene
	palette    render.Palette
	controller *viewport.Controller
	highlights *highlight.Manager
	tip        tooltip.State
	animating  bool
	dragging   bool
	dragCol    int
	dragRow    int

	// Loading
	spinner      spinner.Model
	loadStatus   string
	loadChannels *loadStartedMsg

	keys keyMap
	help help.Model
}

// NewModel creates a new application model. A debounce <= 0 uses the
// default typing pause.
func NewModel(sources DataSources, searcher Searcher, debounce time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Introduzca una dirección o código postal..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if debounce <= 0 {
		debounce = suggest.DebounceDelay
	}

	controller := viewport.NewController()
	return Model{
		state:       StateLoading,
		focus:       focusSearch,
		searchInput: ti,
		suggest:     suggest.New(),
		searcher:    searcher,
		debounce:    debounce,
		sources:     sources,
		palette:     render.DefaultPalette(),
		controller:  controller,
		highlights:  highlight.NewManager(nil, controller),
		spinner:     s,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
}

// Init starts loading map data
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startLoading(m.sources), textinput.Blink)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(msg.Width-8, 10)
		m.help.Width = msg.Width
		return m, nil

	case loadStartedMsg:
		m.loadStatus = "Cargando datos del mapa..."
		m.loadChannels = &msg
		return m, tea.Batch(
			waitForLoadProgress(msg.progressChan),
			waitForLoadResult(msg.resultChan),
		)

	case loadProgressMsg:
		m.loadStatus = string(msg)
		// Continue waiting for more status updates using stored channel
		if m.loadChannels != nil {
			return m, waitForLoadProgress(m.loadChannels.progressChan)
		}
		return m, nil

	case loadResultMsg:
		m.loadChannels = nil
		if msg.err != nil {
			m.err = fmt.Errorf("loading map data: %w", msg.err)
			m.state = StateError
			m.status = status.New(status.LoadFailed)
			return m, nil
		}
		m.setData(msg.warehouses, msg.boundaries)
		m.state = StateMap
		m.err = nil
		m.status = status.Message{}
		return m, textinput.Blink

	case debounceMsg:
		next, eff := m.suggest.QueryDue(msg.seq)
		m.suggest = next
		return m, m.apply(eff)

	case suggestionsMsg:
		m.suggest = m.suggest.SuggestionsLoaded(msg.seq, msg.hits)
		return m, nil

	case searchResultMsg:
		if msg.seq == m.suggest.SearchSeq() {
			m.searching = false
		}
		next, eff := m.suggest.DirectSearchLoaded(msg.seq, msg.hits)
		m.suggest = next
		return m, m.apply(eff)

	case frameMsg:
		if m.controller.Tick(time.Time(msg)) {
			return m, nextFrame()
		}
		m.animating = false
		return m, nil

	case spinner.TickMsg:
		if m.state == StateLoading || m.searching {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// setData installs freshly loaded warehouses and outlines
func (m *Model) setData(ws []models.Warehouse, set boundaries.Set) {
	m.warehouses = ws
	mainland, puertoRico := models.Partition(ws)
	m.mainDots = highlight.NewDots(projection.MainlandView, mainland)
	m.prDots = highlight.NewDots(projection.PuertoRicoView, puertoRico)
	m.scene = render.NewScene(set, m.mainDots, m.prDots)
	m.highlights.SetDots(m.mainDots)
	m.tip = m.tip.Dismiss()
}

// apply performs the work a suggestion machine effect asks for
func (m *Model) apply(eff suggest.Effect) tea.Cmd {
	switch e := eff.(type) {
	case suggest.ScheduleQuery:
		return debounce(e.Seq, m.debounce)

	case suggest.FetchSuggestions:
		return fetchSuggestions(m.searcher, e.Seq, e.Query, e.Limit)

	case suggest.DirectSearch:
		m.searching = true
		m.status = status.New(status.Searching)
		return tea.Batch(directSearch(m.searcher, e.Seq, e.Query, e.Limit), m.spinner.Tick)

	case suggest.Commit:
		m.searching = false
		m.searchInput.SetValue(e.Hit.DisplayName)
		m.searchInput.CursorEnd()
		return m.selectLocation(e.Hit)

	case suggest.ShowMessage:
		m.searching = false
		m.status = status.New(e.Kind)
	}
	return nil
}

// selectLocation resolves the nearest warehouse to hit and moves the map
func (m *Model) selectLocation(hit models.GeocodeHit) tea.Cmd {
	m.status = status.New(status.Processing)
	sel, err := m.highlights.SelectLocation(hit, m.warehouses)
	if err != nil {
		zap.L().Warn("selecting location failed", zap.String("query", hit.DisplayName), zap.Error(err))
		m.status = status.New(status.NotFound)
		return nil
	}
	m.status = status.Summary(sel.DisplayName, sel.MapPanned, sel.Nearest.Warehouse, sel.Nearest.Miles)
	m.tip = m.tip.Dismiss()
	return m.animate()
}

// animate starts the frame loop if a transition is running and no loop is
func (m *Model) animate() tea.Cmd {
	if !m.controller.Animating() || m.animating {
		return nil
	}
	m.animating = true
	return nextFrame()
}

// reset clears the search, the selection and the tooltip and zooms out
func (m *Model) reset() tea.Cmd {
	m.searchInput.SetValue("")
	m.suggest = m.suggest.Reset()
	m.status = status.Message{}
	m.searching = false
	m.highlights.Clear()
	m.tip = m.tip.Dismiss()
	m.controller.Reset()
	return m.animate()
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusSearch
	return m.searchInput.Focus()
}

func (m *Model) focusCanvas() {
	m.focus = focusMap
	m.searchInput.Blur()
	m.suggest = m.suggest.Hide()
}

// handleKey routes keyboard input by state and focus
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceEnd) {
		return m, tea.Quit
	}

	switch m.state {
	case StateLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case StateError:
		switch {
		case key.Matches(msg, m.keys.Retry):
			m.state = StateLoading
			m.err = nil
			m.status = status.Message{}
			return m, tea.Batch(m.spinner.Tick, startLoading(m.sources))
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Focus) {
		if m.focus == focusSearch {
			m.focusCanvas()
			return m, nil
		}
		return m, m.focusInput()
	}

	if m.focus == focusMap {
		return m.handleMapKey(msg)
	}
	return m.handleSearchKey(msg)
}

// handleSearchKey handles keyboard input while the search box has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if next, label, ok := m.suggest.ArrowUp(); ok {
			m.suggest = next
			m.searchInput.SetValue(label)
			m.searchInput.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if next, label, ok := m.suggest.ArrowDown(); ok {
			m.suggest = next
			m.searchInput.SetValue(label)
			m.searchInput.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		next, eff := m.suggest.Enter(m.searchInput.Value())
		m.suggest = next
		return m, m.apply(eff)

	case key.Matches(msg, m.keys.Dismiss):
		if m.suggest.Visible() {
			m.suggest = m.suggest.Hide()
			return m, nil
		}
		m.focusCanvas()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	// Clear error when typing
	if m.status.IsError() {
		m.status = status.Message{}
	}
	next, eff := m.suggest.QueryChanged(m.searchInput.Value())
	m.suggest = next
	return m, tea.Batch(cmd, m.apply(eff))
}

// handleMapKey handles keyboard input while the map has focus
func (m Model) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ZoomIn):
		m.controller.ZoomBy(viewport.ZoomInFactor)
		return m, m.animate()

	case key.Matches(msg, m.keys.ZoomOut):
		m.controller.ZoomBy(viewport.ZoomOutFactor)
		return m, m.animate()

	case key.Matches(msg, m.keys.Reset):
		return m, m.reset()

	case key.Matches(msg, m.keys.Pan):
		dx, dy := 0.0, 0.0
		switch msg.String() {
		case "left", "h":
			dx = panStep
		case "right", "l":
			dx = -panStep
		case "up", "k":
			dy = panStep
		case "down", "j":
			dy = -panStep
		}
		m.controller.PanBy(dx, dy)
		m.tip = m.tip.Dismiss()
		return m, nil
	}

	switch msg.String() {
	case "/", "s":
		return m, m.focusInput()
	}
	return m, nil
}

// handleMouse handles wheel zoom, drag pan, dot hover and taps, and
// clicks on the suggestion list
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != StateMap || m.scene == nil {
		return m, nil
	}

	sc := m.screen()
	l := render.NewLayout(sc.mapCols, sc.mapRows)
	col, row := msg.X, msg.Y-sc.mapTop
	inMap := col >= 0 && col < sc.mapCols && row >= 0 && row < sc.mapRows

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !inMap || l.InInset(col, row) {
			return m, nil
		}
		factor := viewport.WheelFactor
		if msg.Button == tea.MouseButtonWheelDown {
			factor = 1 / viewport.WheelFactor
		}
		m.controller.WheelAt(l.Main.FromCell(col, row), factor)
		m.tip = m.tip.Dismiss()
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if sc.listRows > 0 && msg.Y >= sc.listTop && msg.Y < sc.listTop+sc.listRows {
			next, eff := m.suggest.Click(msg.Y - sc.listTop)
			m.suggest = next
			return m, m.apply(eff)
		}
		if msg.Y >= sc.inputTop && msg.Y < sc.inputTop+searchBoxHeight {
			return m, m.focusInput()
		}

		// Anything outside the input and the list closes the list
		m.suggest = m.suggest.Hide()
		if !inMap {
			return m, nil
		}
		m.focusCanvas()
		if hit, ok := m.scene.HitTest(l, m.frame(), col, row); ok {
			m.tip = m.tip.Tap(hit.Dot.Warehouse.Key(), m.anchor(l, hit, col, row))
			return m, nil
		}
		m.tip = m.tip.Dismiss()
		if !l.InInset(col, row) {
			m.dragging = true
			m.dragCol, m.dragRow = col, row
		}
		return m, nil

	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
		return m, nil

	case msg.Action == tea.MouseActionMotion:
		if m.dragging && msg.Button == tea.MouseButtonLeft {
			dx := float64(col-m.dragCol) * 2 / l.Main.Scale
			dy := float64(row-m.dragRow) * 4 / l.Main.Scale
			m.controller.PanBy(dx, dy)
			m.dragCol, m.dragRow = col, row
			return m, nil
		}
		m.dragging = false
		if !inMap {
			if m.tip.Visible {
				m.tip = m.tip.Leave()
			}
			return m, nil
		}
		if hit, ok := m.scene.HitTest(l, m.frame(), col, row); ok {
			k := hit.Dot.Warehouse.Key()
			if !m.tip.Visible || m.tip.Key != k {
				m.tip = m.tip.Hover(k, m.anchor(l, hit, col, row))
			}
			return m, nil
		}
		if m.tip.Visible {
			m.tip = m.tip.Leave()
		}
	}
	return m, nil
}

// anchor is where the tooltip points, in map cells. Mainland tooltips
// follow the pointer; inset tooltips point at the dot's position mapped
// into the inset's rectangle.
func (m Model) anchor(l render.Layout, hit render.Hit, col, row int) tooltip.Point {
	if hit.View != projection.PuertoRicoView {
		return tooltip.Point{X: float64(col), Y: float64(row)}
	}
	inset := tooltip.Rect{
		Left:   float64(l.InsetCol + 1),
		Top:    float64(l.InsetRow + 1),
		Width:  float64(l.InsetCols - 2),
		Height: float64(l.InsetRows - 2),
	}
	return tooltip.TranslateToInset(
		tooltip.Point{X: hit.Dot.Point.X, Y: hit.Dot.Point.Y},
		inset,
		tooltip.Size{W: projection.InsetWidth, H: projection.InsetHeight},
	)
}

// frame is the per-frame drawing state
func (m Model) frame() render.Frame {
	f := render.Frame{
		Transform:  m.controller.Transform(),
		Attributes: m.controller.Attributes(),
	}
	if m.tip.Visible {
		k := m.tip.Key
		f.Overlay.Hovered = &k
	}
	if k, ok := m.highlights.Highlighted(); ok {
		f.Overlay.Highlighted = &k
	}
	if mk, ok := m.highlights.Marker(); ok {
		f.Overlay.Marker = &mk
	}
	return f
}

// lookup finds a drawn warehouse by key in either layer
func (m Model) lookup(k models.WarehouseKey) (models.Warehouse, bool) {
	for _, dots := range []*highlight.Dots{m.mainDots, m.prDots} {
		if dots == nil {
			continue
		}
		if d, ok := dots.Lookup(k); ok {
			return d.Warehouse, true
		}
	}
	return models.Warehouse{}, false
}
